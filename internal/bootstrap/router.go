package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/config"
	httpapi "github.com/carteapp/carte-backend/internal/api/http"
	"github.com/carteapp/carte-backend/internal/api/http/middleware"
	attachhttp "github.com/carteapp/carte-backend/internal/attachments/http"
	attachsvc "github.com/carteapp/carte-backend/internal/attachments/service"
	authhttp "github.com/carteapp/carte-backend/internal/auth/http"
	authmw "github.com/carteapp/carte-backend/internal/auth/middleware"
	authsvc "github.com/carteapp/carte-backend/internal/auth/service"
	mediahttp "github.com/carteapp/carte-backend/internal/media/http"
	mediasvc "github.com/carteapp/carte-backend/internal/media/service"
	projecthttp "github.com/carteapp/carte-backend/internal/projects/http"
	projectsvc "github.com/carteapp/carte-backend/internal/projects/service"
	reporthttp "github.com/carteapp/carte-backend/internal/reports/http"
	reportsvc "github.com/carteapp/carte-backend/internal/reports/service"
	"github.com/carteapp/carte-backend/internal/users"

	attachblob "github.com/carteapp/carte-backend/internal/attachments/blob"
	authrepo "github.com/carteapp/carte-backend/internal/auth/repository"
	projectrepo "github.com/carteapp/carte-backend/internal/projects/repository"
)

const attachmentsBasePath = "/api/v1/attachments"

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	Log         *zap.Logger
	RDB         *redis.Client
	DB          *pgxpool.Pool // nil disables the users routes
	Blobs       *attachblob.Store
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.RDB, dep.DB)
	healthHandler.RegisterRoutes(r)

	projectRepo := projectrepo.NewProjectRepository(dep.RDB)
	projectService := projectsvc.NewProjectService(projectRepo, dep.Log)

	identityRepo := authrepo.NewIdentityRepository(dep.RDB, dep.Cfg.Auth.SessionTTL)
	authenticator, err := authsvc.NewStaticAuthenticator(dep.Cfg.Auth.DemoUsername, dep.Cfg.Auth.DemoPassword)
	if err != nil {
		return nil, err
	}
	authService := authsvc.NewAuthService(authenticator, identityRepo, dep.Cfg.Auth.JWTSecret, dep.Cfg.Auth.SessionTTL, dep.Log)

	attachService := attachsvc.New(projectRepo, dep.Blobs, dep.Cfg.Upload.MaxBytes, attachmentsBasePath, dep.Log)
	mediaClient := mediasvc.NewClient(dep.Cfg.Media.BaseURL)

	api := r.Group("/api/v1")

	// Guest routes: reachable without an identity.
	authHandler := authhttp.New(authService)
	authHandler.RegisterGuest(api.Group("/auth"))

	// The media search pages have no login at all.
	mediaHandler := mediahttp.New(mediaClient, dep.Log)
	mediaHandler.Register(api.Group("/media"))

	// Blob references are unguessable UUIDs handed out on upload; the
	// SPA fetches them with plain anchors, so no bearer token here.
	attachHandler := attachhttp.New(attachService)
	attachHandler.RegisterBlobRoutes(api.Group("/attachments"))

	// Everything below requires a present identity.
	protected := api.Group("")
	protected.Use(authmw.RequireIdentity(authService))

	authHandler.RegisterProtected(protected.Group("/auth"))

	projectsGroup := protected.Group("/projects")
	projectHandler := projecthttp.New(projectService)
	projectHandler.Register(projectsGroup)
	attachHandler.RegisterProjectSubroutes(projectsGroup)

	reportHandler := reporthttp.New(projectService, reportsvc.NewRenderer())
	reportHandler.RegisterProjectSubroutes(projectsGroup)

	if dep.DB != nil {
		users.Register(protected.Group("/users"), users.NewRepo(dep.DB))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	return r, nil
}
