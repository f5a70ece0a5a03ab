package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/session"
)

// AuthService coordinates login, registration and logout flows between the
// remote backend and the session store.
type AuthService struct {
	api      *backend.Client
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(api *backend.Client, sessions *session.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{api: api, sessions: sessions, logger: logger}
}

// Login authenticates against the backend and stores the issued token under
// the browser session. A 2xx response without a token is a failure
// (session.ErrNoToken): a role-gated view must never render without one.
func (s *AuthService) Login(ctx context.Context, sessionID string, creds backend.Credentials) error {
	result, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	return s.sessions.SaveLogin(ctx, sessionID, result.Token, result.Role)
}

// RegisterCustomer creates a customer account, then logs the new account in.
// When registration succeeds but the follow-up login fails, the failure is
// logged and the caller proceeds unauthenticated; the dashboard guard then
// bounces to the login page.
func (s *AuthService) RegisterCustomer(ctx context.Context, sessionID string, reg backend.CustomerRegistration) error {
	if err := s.api.CreateUser(ctx, reg); err != nil {
		return err
	}
	s.autoLogin(ctx, sessionID, reg.Email, reg.Password)
	return nil
}

// RegisterVendor creates a vendor account with its business profile, then
// logs the new account in with the same partial-failure semantics as
// RegisterCustomer.
func (s *AuthService) RegisterVendor(ctx context.Context, sessionID string, reg backend.VendorRegistration) error {
	if err := s.api.CreateVendor(ctx, reg); err != nil {
		return err
	}
	s.autoLogin(ctx, sessionID, reg.Email, reg.Password)
	return nil
}

func (s *AuthService) autoLogin(ctx context.Context, sessionID, email, password string) {
	err := s.Login(ctx, sessionID, backend.Credentials{Email: email, Password: password})
	if err != nil {
		s.logger.Warn("registration succeeded but auto-login failed", zap.Error(err))
	}
}

// Logout removes the session's token; the only mutation the client
// performs on session state outside of login.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Invalidate(ctx, sessionID)
}
