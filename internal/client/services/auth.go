// Package services contains the application services of the SRSP client.
// This file defines the auth service: the only component allowed to mutate
// the session store.
package services

import (
	"context"
	"fmt"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/session"
	"github.com/vinaykumardeekonda/srsp-cli/internal/logging"
)

// AuthService mediates every identity-changing backend call and translates
// the outcome into session store updates.
//
// Contract:
//   - CheckSession: resolve the cookie session; any ambiguity means logged
//     out. Never returns an error.
//   - Login: on success the store holds the new session; on any failure the
//     store is cleared, never left with a partial or stale session.
//   - Logout: client-authoritative; the local session is cleared no matter
//     what the backend says.
//   - Register: create an account; does not log in.
type AuthService interface {
	CheckSession(ctx context.Context) *models.Session
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) error
}

type authService struct {
	client api.Client
	store  *session.Store
	log    logging.Logger
}

func NewAuthService(client api.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log}
}

// CheckSession asks the backend who the cookie belongs to and confirms the
// store with the answer. Network errors, 401s and malformed payloads all
// resolve to "no session".
func (a *authService) CheckSession(ctx context.Context) *models.Session {
	user, err := a.client.Me(ctx)
	if err != nil {
		a.log.Warn(ctx, "session check failed, treating as logged out", "error", err)
		if err := a.store.Confirm(ctx, nil); err != nil {
			a.log.Error(ctx, "clearing session state", "error", err)
		}
		return nil
	}
	if err := a.store.Confirm(ctx, user); err != nil {
		a.log.Error(ctx, "persisting session snapshot", "error", err)
	}
	return user
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		if clearErr := a.store.Clear(ctx); clearErr != nil {
			a.log.Error(ctx, "clearing session state after failed login", "error", clearErr)
		}
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.store.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		// Backend unreachable or already logged out; either way the
		// local session goes.
		a.log.Warn(ctx, "backend logout failed, clearing local session anyway", "error", err)
	}
	return a.store.Clear(ctx)
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	if err := a.client.Register(ctx, name, email, password); err != nil {
		return fmt.Errorf("registration error: %w", err)
	}
	return nil
}
