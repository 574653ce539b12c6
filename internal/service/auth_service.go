package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/repository"
	"github.com/google/uuid"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (sessionID string, err error)
	Logout(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) bool
}

type authService struct {
	cfg config.Config
	dr  repository.DraftRepository
	sr  repository.SessionRepository
}

func NewAuthService(cfg config.Config, dr repository.DraftRepository, sr repository.SessionRepository) AuthService {
	return &authService{
		cfg: cfg,
		dr:  dr,
		sr:  sr,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Demo.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Demo.Password)) == 1
	if !userOK || !passOK {
		slog.Info(ErrInvalidCredentials.Error(), "username", username)
		return "", ErrInvalidCredentials
	}

	return uuid.NewString(), nil
}

func (s *authService) Logout(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if err := s.dr.Remove(ctx, sessionID); err != nil {
		return err
	}
	s.sr.Revoke(ctx, sessionID, expiresAt)
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, sessionID string) bool {
	return s.sr.IsRevoked(ctx, sessionID)
}
