package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/cart"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/notify"
	"github.com/milkroute/storefront_api/internal/session"
	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// AuthService owns the local session lifecycle around the backend's auth
// endpoints. Credentials pass through untouched; the backend is the only
// party that ever sees or verifies a password.
type AuthService struct {
	api      *dairyapi.Client
	sessions *session.Store
	carts    *cart.Store
	notices  *notify.Center
}

func NewAuthService(api *dairyapi.Client, sessions *session.Store, carts *cart.Store, notices *notify.Center) *AuthService {
	return &AuthService{api: api, sessions: sessions, carts: carts, notices: notices}
}

// Login authenticates against the backend and mints a local session.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.SessionUser, string, error) {
	resp, backendSession, err := s.api.Login(ctx, &dairyapi.LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		log.Warn().Err(err).Str("identifier", identifier).Msg("Login rejected by backend")
		return nil, "", err
	}
	return s.establish(ctx, resp.User, backendSession)
}

// Signup registers with the backend and mints a local session.
func (s *AuthService) Signup(ctx context.Context, req *dairyapi.SignupRequest) (*models.SessionUser, string, error) {
	resp, backendSession, err := s.api.Signup(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Signup rejected by backend")
		return nil, "", err
	}
	return s.establish(ctx, resp.User, backendSession)
}

func (s *AuthService) establish(ctx context.Context, user *dairyapi.AuthUser, backendSession string) (*models.SessionUser, string, error) {
	if user == nil {
		log.Warn().Msg("Backend accepted auth but returned no user")
		return nil, "", utils.ErrAuthUserMissing
	}
	su := models.SessionUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		AdminRole: user.AdminRole,
	}
	sid, err := s.sessions.Create(ctx, su, backendSession)
	if err != nil {
		return nil, "", err
	}
	log.Info().Int("user_id", su.ID).Str("role", su.Role).Msg("Session established")
	return &su, sid, nil
}

// Logout revokes the backend session best-effort and always tears down the
// local one, including the session's cart lines and notice timers.
func (s *AuthService) Logout(ctx context.Context, rec *session.Record) {
	s.carts.Drop(rec.SID)
	s.notices.DropSession(rec.SID)
	if rec.BackendSession != "" {
		if err := s.api.Logout(ctx, rec.BackendSession); err != nil {
			log.Warn().Err(err).Msg("Backend logout failed, clearing local session anyway")
		}
	}
	if err := s.sessions.Delete(ctx, rec.SID); err != nil {
		log.Error().Err(err).Msg("Failed to delete session record")
	}
}
