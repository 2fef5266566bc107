// Package session holds the single source of truth for "who is logged in".
//
// The Store is explicitly constructed and injected; there is no package
// singleton. Lifecycle: Restore at process start, Confirm once the backend
// session check answers, Set on login, Clear on logout or auth failure.
// Only the auth service mutates the store; every other component reads.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/repositories/metadata"
)

const snapshotKey = "session"

// Store keeps the current authenticated identity in memory and writes every
// change through to the local metadata store, so a restart shows the last
// known identity immediately instead of an unauthenticated flash.
//
// A restored snapshot is provisional until Confirm is called with the
// backend's answer. The session's role never changes in place; a different
// role means a different Session instance from a fresh login.
type Store struct {
	mu        sync.RWMutex
	repo      metadata.Repository
	current   *models.Session
	confirmed bool
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Restore loads the persisted snapshot, if any, and exposes it as the
// provisional session. A corrupt snapshot is discarded silently; the
// session check resolves the truth shortly after.
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, snapshotKey)
	if err != nil {
		return fmt.Errorf("restoring session snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed = false
	s.current = nil

	if len(raw) == 0 {
		return nil
	}
	var snapshot models.Session
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		_ = s.repo.Delete(ctx, snapshotKey)
		return nil
	}
	s.current = &snapshot
	return nil
}

// Confirm records the authoritative result of the backend session check.
// A nil session clears all persisted state.
func (s *Store) Confirm(ctx context.Context, session *models.Session) error {
	if session == nil {
		return s.clear(ctx)
	}
	return s.persist(ctx, session)
}

// Set records a successful login.
func (s *Store) Set(ctx context.Context, session *models.Session) error {
	return s.persist(ctx, session)
}

// Clear wipes the session on logout or auth failure. The in-memory state is
// cleared even if the durable store cannot be written.
func (s *Store) Clear(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Store) persist(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session snapshot: %w", err)
	}

	s.mu.Lock()
	s.current = session
	s.confirmed = true
	s.mu.Unlock()

	if err := s.repo.Set(ctx, snapshotKey, raw); err != nil {
		return fmt.Errorf("persisting session snapshot: %w", err)
	}
	return nil
}

// clear drops the session and counts as an authoritative answer: after a
// logout or a failed check, "logged out" is the confirmed state.
func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.confirmed = true
	s.mu.Unlock()

	// Clearing the whole store also drops the persisted cookie, which is
	// exactly what logout means.
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session state: %w", err)
	}
	return nil
}

// Current returns the session as last known, provisional or confirmed.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Confirmed reports whether the backend session check has answered since
// the last Restore.
func (s *Store) Confirmed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.confirmed
}

func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}
