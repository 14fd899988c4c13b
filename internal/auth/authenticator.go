package auth

import (
	"time"

	"github.com/spec-kit/interaction-analytics/internal/config"
	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

// Authenticator validates config-provisioned accounts and issues tokens.
type Authenticator struct {
	cfg    config.AuthConfig
	tokens *TokenManager
}

// NewAuthenticator constructs the authenticator.
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		cfg:    cfg,
		tokens: NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (a *Authenticator) TokenManager() *TokenManager {
	return a.tokens
}

// Login verifies credentials and issues a signed token.
func (a *Authenticator) Login(username, password string) (string, time.Time, Role, error) {
	role, hash, ok := a.lookup(username)
	if !ok || hash == "" || !CheckPassword(hash, password) {
		return "", time.Time{}, "", apperrors.NewUnauthorized("invalid credentials")
	}
	token, expiresAt, err := a.tokens.GenerateToken(username, role)
	if err != nil {
		return "", time.Time{}, "", apperrors.NewInternalError(err)
	}
	return token, expiresAt, role, nil
}

func (a *Authenticator) lookup(username string) (Role, string, bool) {
	switch username {
	case a.cfg.AdminUsername:
		return RoleAdmin, a.cfg.AdminPasswordHash, true
	case a.cfg.AnalystUsername:
		return RoleAnalyst, a.cfg.AnalystPasswordHash, true
	}
	return "", "", false
}
