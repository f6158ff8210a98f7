package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/config"
	"github.com/carteapp/carte-backend/internal/attachments/blob"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		Server: config.Server{Port: "8080"},
		Redis:  config.Redis{Addr: mr.Addr()},
		Auth: config.Auth{
			JWTSecret:    "test-secret",
			DemoUsername: "demo",
			DemoPassword: "password",
			SessionTTL:   time.Hour,
		},
		Upload: config.Upload{MaxBytes: 10 * 1024 * 1024, BlobTTL: time.Hour},
		Media:  config.Media{BaseURL: "http://127.0.0.1:0"},
		App:    config.App{Environment: "test", Version: "test"},
	}

	r, err := BuildRouter(RouterDeps{
		ServiceName: "carte-backend",
		Cfg:         cfg,
		Log:         zap.NewNop(),
		RDB:         client,
		Blobs:       blob.NewStore(time.Hour),
	})
	require.NoError(t, err)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func loginDemo(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "demo",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["redis"])
	assert.Equal(t, "disabled", body["db"])
}

func TestProjects_RequireIdentity(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "demo",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
}

func TestProjectLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := loginDemo(t, r)

	// Create.
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", token, gin.H{
		"name": "Warehouse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	project := body["project"].(map[string]any)
	id := project["id"].(string)
	require.NotEmpty(t, id)

	// Save the technical section alone.
	w = doJSON(t, r, http.MethodPut, "/api/v1/projects/"+id+"/sections/technical", token, gin.H{
		"complexity": "High",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Reload and verify the save stuck without touching siblings.
	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	project = body["project"].(map[string]any)
	sections := project["sections"].(map[string]any)
	technical := sections["technical"].(map[string]any)
	assert.Equal(t, "High", technical["complexity"])
	assert.Equal(t, "Warehouse", project["name"])

	// Printable report.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+id+"/report", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rw := httptest.NewRecorder()
	r.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
	assert.Contains(t, rw.Body.String(), "Cartea Tehnica")
	assert.Contains(t, rw.Body.String(), "Warehouse")

	// Delete.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/projects/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveSection_InvalidComplexity(t *testing.T) {
	r := newTestRouter(t)
	token := loginDemo(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", token, gin.H{"name": "Warehouse"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["project"].(map[string]any)["id"].(string)

	w = doJSON(t, r, http.MethodPut, "/api/v1/projects/"+id+"/sections/technical", token, gin.H{
		"complexity": "Extreme",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveSection_UnknownSection(t *testing.T) {
	r := newTestRouter(t)
	token := loginDemo(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/v1/projects/any/sections/marketing", token, gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	r := newTestRouter(t)
	token := loginDemo(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoRoute(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "not found", body["error"])
}
