package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/session"
)

// ModerationService drives the admin review workflow over an in-memory
// resource collection kept consistent with backend truth.
//
// There are no optimistic updates: a resource's displayed state changes only
// after the backend acknowledges the transition, and a failed call leaves
// the prior state untouched. Statistics are always recomputed from the
// collection, never tracked separately.
type ModerationService struct {
	client api.Client
	store  *session.Store
	now    func() time.Time

	mu        sync.Mutex
	resources []models.Resource
	// intents tags the latest outstanding mutation per resource id.
	// Completions carrying a stale tag are discarded instead of
	// overwriting newer state.
	intents map[string]uuid.UUID
}

func NewModerationService(client api.Client, store *session.Store) *ModerationService {
	return &ModerationService{
		client:  client,
		store:   store,
		now:     time.Now,
		intents: make(map[string]uuid.UUID),
	}
}

func (m *ModerationService) requireAdmin() error {
	if !m.store.IsAdmin() {
		return fmt.Errorf("moderation requires an admin session: %w", api.ErrForbidden)
	}
	return nil
}

// Refresh replaces the collection with the backend's current view.
func (m *ModerationService) Refresh(ctx context.Context) ([]models.Resource, error) {
	if err := m.requireAdmin(); err != nil {
		return nil, err
	}
	resources, err := m.client.PendingResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading resources: %w", err)
	}

	m.mu.Lock()
	m.resources = resources
	m.intents = make(map[string]uuid.UUID)
	m.mu.Unlock()

	return m.Resources(), nil
}

// Resources returns a copy of the current collection.
func (m *ModerationService) Resources() []models.Resource {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Resource, len(m.resources))
	copy(out, m.resources)
	return out
}

// ByStatus returns the tab view for one moderation state.
func (m *ModerationService) ByStatus(status models.Status) []models.Resource {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Resource
	for _, r := range m.resources {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Stats recomputes the panel counters from the current collection.
func (m *ModerationService) Stats() models.AdminStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.ComputeAdminStats(m.resources, m.now())
}

// Approve moves a pending resource to approved.
func (m *ModerationService) Approve(ctx context.Context, id string) error {
	return m.setStatus(ctx, id, models.StatusApproved)
}

// Reject moves a pending or approved resource to rejected.
func (m *ModerationService) Reject(ctx context.Context, id string) error {
	return m.setStatus(ctx, id, models.StatusRejected)
}

func (m *ModerationService) setStatus(ctx context.Context, id string, target models.Status) error {
	if err := m.requireAdmin(); err != nil {
		return err
	}

	m.mu.Lock()
	idx := m.indexLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("resource %s: %w", id, api.ErrNotFound)
	}
	current := m.resources[idx].Status
	if !models.CanTransition(current, target) {
		m.mu.Unlock()
		return fmt.Errorf("%s -> %s: %w", current, target, models.ErrIllegalTransition)
	}
	if current == target {
		// Re-applying the same status is a no-op for the backend too.
		m.mu.Unlock()
		return nil
	}
	tag := uuid.New()
	m.intents[id] = tag
	m.mu.Unlock()

	updated, err := m.client.UpdateResourceStatus(ctx, id, target)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.intents[id] != tag {
		// A newer mutation for this resource was issued while this one
		// was in flight; its completion is the authoritative one.
		return nil
	}
	delete(m.intents, id)

	idx = m.indexLocked(id)
	if idx < 0 {
		return nil
	}
	if updated != nil {
		m.resources[idx] = *updated
	} else {
		m.resources[idx].Status = target
		m.resources[idx].UpdatedAt = m.now()
	}
	return nil
}

// Remove deletes a resource outright; on success it disappears from the
// collection, on failure it stays visible.
func (m *ModerationService) Remove(ctx context.Context, id string) error {
	if err := m.requireAdmin(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.indexLocked(id) < 0 {
		m.mu.Unlock()
		return fmt.Errorf("resource %s: %w", id, api.ErrNotFound)
	}
	tag := uuid.New()
	m.intents[id] = tag
	m.mu.Unlock()

	if err := m.client.DeleteAdminResource(ctx, id); err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.intents[id] != tag {
		return nil
	}
	delete(m.intents, id)

	if idx := m.indexLocked(id); idx >= 0 {
		m.resources = append(m.resources[:idx], m.resources[idx+1:]...)
	}
	return nil
}

func (m *ModerationService) indexLocked(id string) int {
	for i := range m.resources {
		if m.resources[i].ID == id {
			return i
		}
	}
	return -1
}
