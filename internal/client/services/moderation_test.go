package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func seedResources() []models.Resource {
	now := fixedNow()
	return []models.Resource{
		{ID: "r1", Title: "Calculus notes", Status: models.StatusPending, UploadedBy: models.Uploader{ID: "u1"}, CreatedAt: now.Add(-48 * time.Hour), UpdatedAt: now.Add(-48 * time.Hour)},
		{ID: "r2", Title: "Physics lab report", Status: models.StatusApproved, UploadedBy: models.Uploader{ID: "u2"}, CreatedAt: now.Add(-24 * time.Hour), UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "r3", Title: "Old exam", Status: models.StatusRejected, UploadedBy: models.Uploader{ID: "u1"}, CreatedAt: now.Add(-72 * time.Hour), UpdatedAt: now.Add(-30 * time.Hour)},
	}
}

func setupModeration(t *testing.T, fc *fakeClient) *ModerationService {
	t.Helper()
	store := setupStore(t)
	require.NoError(t, store.Set(context.Background(), adminSession()))

	m := NewModerationService(fc, store)
	m.now = fixedNow
	if fc.pendingRet != nil {
		_, err := m.Refresh(context.Background())
		require.NoError(t, err)
	}
	return m
}

func TestRefresh_RequiresAdmin(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.Set(context.Background(), studentSession()))

	m := NewModerationService(&fakeClient{pendingRet: seedResources()}, store)
	_, err := m.Refresh(context.Background())
	require.ErrorIs(t, err, api.ErrForbidden)
}

func TestRefresh_ReplacesCollection(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	assert.Len(t, m.Resources(), 3)
	assert.Len(t, m.ByStatus(models.StatusPending), 1)
	assert.Len(t, m.ByStatus(models.StatusApproved), 1)
}

func TestApprove_PatchesStatusAndTimestamp(t *testing.T) {
	// Backend answers with an empty body, so the local patch applies.
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	require.NoError(t, m.Approve(context.Background(), "r1"))

	got := m.ByStatus(models.StatusApproved)
	require.Len(t, got, 2)
	for _, r := range got {
		if r.ID == "r1" {
			assert.Equal(t, fixedNow(), r.UpdatedAt)
		}
	}
	assert.Equal(t, 1, fc.updateStatusCalls)
	assert.Equal(t, models.StatusApproved, fc.lastStatus)
}

func TestApprove_AdoptsReturnedResource(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	updated := seedResources()[0]
	updated.Status = models.StatusApproved
	updated.Title = "Calculus notes (reviewed)"
	fc.updateStatusRet = &updated

	m := setupModeration(t, fc)
	require.NoError(t, m.Approve(context.Background(), "r1"))

	for _, r := range m.Resources() {
		if r.ID == "r1" {
			assert.Equal(t, "Calculus notes (reviewed)", r.Title)
			assert.Equal(t, models.StatusApproved, r.Status)
		}
	}
}

func TestApprove_SameStatusIsNoOp(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	require.NoError(t, m.Approve(context.Background(), "r1"))
	require.NoError(t, m.Approve(context.Background(), "r1"))

	assert.Equal(t, 1, fc.updateStatusCalls, "re-applying the same status must not hit the backend")
}

func TestSetStatus_IllegalTransitions(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	// rejected -> approved is not a thing; the uploader resubmits instead.
	err := m.Approve(context.Background(), "r3")
	require.ErrorIs(t, err, models.ErrIllegalTransition)
	assert.Zero(t, fc.updateStatusCalls)
}

func TestSetStatus_UnknownResource(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	err := m.Reject(context.Background(), "missing")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestSetStatus_BackendFailureLeavesStateUntouched(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources(), updateStatusErr: api.ErrUnavailable}
	m := setupModeration(t, fc)

	err := m.Approve(context.Background(), "r1")
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Len(t, m.ByStatus(models.StatusPending), 1, "failed call must not change the displayed state")
}

func TestSetStatus_StaleCompletionDiscarded(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	// While the approve call is in flight, a reject for the same resource
	// goes out and completes. The approve completion is then stale and must
	// not overwrite the newer state.
	fc.updateStatusFn = func(ctx context.Context, id string, status models.Status) (*models.Resource, error) {
		if status == models.StatusApproved {
			fc.updateStatusFn = nil
			require.NoError(t, m.Reject(ctx, id))
		}
		return nil, nil
	}

	require.NoError(t, m.Approve(context.Background(), "r1"))

	for _, r := range m.Resources() {
		if r.ID == "r1" {
			assert.Equal(t, models.StatusRejected, r.Status)
		}
	}
}

func TestRemove_DropsFromCollection(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	require.NoError(t, m.Remove(context.Background(), "r2"))
	assert.Len(t, m.Resources(), 2)
	assert.Equal(t, "r2", fc.lastAdminDeleteID)
}

func TestRemove_FailureKeepsResource(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources(), adminDeleteErr: api.ErrUnavailable}
	m := setupModeration(t, fc)

	err := m.Remove(context.Background(), "r2")
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Len(t, m.Resources(), 3)
}

func TestStats_AlwaysMatchFreshCount(t *testing.T) {
	fc := &fakeClient{pendingRet: seedResources()}
	m := setupModeration(t, fc)

	check := func() {
		want := models.ComputeAdminStats(m.Resources(), fixedNow())
		assert.Equal(t, want, m.Stats())
	}

	check()
	require.NoError(t, m.Approve(context.Background(), "r1"))
	check()
	require.NoError(t, m.Remove(context.Background(), "r3"))
	check()
}
