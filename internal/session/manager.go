package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoToken signals a login completion without a token in the response.
// Proceeding without one would leave role-gated views in an undefined state,
// so callers must treat it as a login failure.
var ErrNoToken = errors.New("no session token received")

// Manager centralizes every read and write of session state. Call sites
// never touch the storage keys directly; this is the only place the token
// lifecycle (store on login, read on every guard, remove on logout) lives.
type Manager struct {
	store  Store
	logger *zap.Logger
}

// NewManager builds a manager over the given store.
func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// NewSessionID mints an id for a fresh browser session.
func NewSessionID() string {
	return uuid.NewString()
}

// Resolve derives the identity for a browser session. It returns nil for an
// unknown session, a missing token, or a token that cannot be decoded;
// callers treat all three as anonymous. Store failures also resolve to
// anonymous rather than erroring a page render.
func (m *Manager) Resolve(ctx context.Context, sessionID string) *Identity {
	if sessionID == "" {
		return nil
	}
	token, err := m.store.Get(ctx, sessionID, KeyToken)
	if err != nil {
		m.logger.Warn("session store read failed", zap.Error(err))
		return nil
	}
	return ResolveIdentity(token)
}

// Token returns the raw bearer token for outgoing request authorization,
// or "" when the session is anonymous.
func (m *Manager) Token(ctx context.Context, sessionID string) string {
	if sessionID == "" {
		return ""
	}
	token, err := m.store.Get(ctx, sessionID, KeyToken)
	if err != nil {
		m.logger.Warn("session store read failed", zap.Error(err))
		return ""
	}
	return token
}

// SaveLogin stores the token issued at login or registration time, plus the
// optional role hint the backend sometimes includes. The hint is cached but
// never authoritative.
func (m *Manager) SaveLogin(ctx context.Context, sessionID, token, roleHint string) error {
	if token == "" {
		return ErrNoToken
	}
	if err := m.store.Set(ctx, sessionID, KeyToken, token); err != nil {
		return err
	}
	if roleHint != "" {
		if err := m.store.Set(ctx, sessionID, KeyUserRole, roleHint); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate removes all session state. Afterwards Resolve returns nil and
// Token returns "". Invalidating an unknown session is a no-op.
func (m *Manager) Invalidate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, sessionID, KeyToken, KeyUserRole)
}
