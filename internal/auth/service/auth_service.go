package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/carteapp/carte-backend/internal/auth"
	"github.com/carteapp/carte-backend/internal/auth/domain"
	"github.com/carteapp/carte-backend/internal/auth/repository"
	"github.com/carteapp/carte-backend/internal/projects/utils"
)

// Authenticator decides whether a credential pair maps to an identity.
// Swapping in a real backend only requires a new implementation; the
// HTTP layer never sees the difference.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Identity, error)
}

// StaticAuthenticator accepts exactly one credential pair. The password
// is held as a bcrypt hash from construction onward.
type StaticAuthenticator struct {
	username     string
	passwordHash []byte
	identity     domain.Identity
}

// NewStaticAuthenticator builds the fixed-pair authenticator used by the
// demo deployment.
func NewStaticAuthenticator(username, password string) (*StaticAuthenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticAuthenticator{
		username:     username,
		passwordHash: hash,
		identity: domain.Identity{
			ID:       "1",
			Username: username,
			Email:    username + "@example.com",
		},
	}, nil
}

func (a *StaticAuthenticator) Authenticate(_ context.Context, username, password string) (*domain.Identity, error) {
	if username != a.username {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	id := a.identity
	return &id, nil
}

// AuthService implements the session lifecycle: login, register, logout,
// and current-identity lookup.
type AuthService struct {
	authn      Authenticator
	identities *repository.IdentityRepository
	jwtSecret  string
	sessionTTL time.Duration
	log        *zap.Logger
}

func NewAuthService(authn Authenticator, identities *repository.IdentityRepository, jwtSecret string, sessionTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		authn:      authn,
		identities: identities,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Login validates the credentials, persists the identity and returns it
// with a session token. Bad credentials yield domain.ErrInvalidCredentials,
// never a panic or a 500.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Identity, string, error) {
	id, err := s.authn.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	if err := s.identities.Save(ctx, id); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(id.ID, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user logged in", zap.String("user_id", id.ID))
	return id, token, nil
}

// Register always succeeds: it synthesizes an identity from the inputs
// and persists it. The password is not stored anywhere.
func (s *AuthService) Register(ctx context.Context, username, email, _ string) (*domain.Identity, string, error) {
	userID, err := utils.NewID("usr")
	if err != nil {
		return nil, "", err
	}

	id := &domain.Identity{
		ID:       userID,
		Username: username,
		Email:    email,
	}

	if err := s.identities.Save(ctx, id); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(id.ID, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.String("user_id", id.ID))
	return id, token, nil
}

// Logout removes the persisted identity. A later request with the old
// token finds nothing and is treated as logged out.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.identities.Delete(ctx, userID)
}

// Current resolves a session token to its persisted identity.
func (s *AuthService) Current(ctx context.Context, token string) (*domain.Identity, error) {
	userID, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.identities.Get(ctx, userID)
}
