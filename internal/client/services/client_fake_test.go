package services

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/repositories/metadata"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/session"

	_ "modernc.org/sqlite"
)

// fakeClient implements api.Client for service unit tests. Canned returns,
// recorded arguments, and an optional hook for status updates.
type fakeClient struct {
	registerErr       error
	lastRegisterName  string
	lastRegisterEmail string

	loginUser      *models.Session
	loginErr       error
	lastLoginEmail string

	logoutErr   error
	logoutCalls int

	meUser *models.Session
	meErr  error

	categoriesRet []models.Category
	categoriesErr error
	subjectsRet   []string
	subjectsErr   error

	uploadRet *models.Resource
	uploadErr error
	lastDraft models.UploadDraft

	myUploadsRet []models.Resource
	myUploadsErr error

	resubmitRet *models.Resource
	resubmitErr error

	deleteErr     error
	lastDeletedID string

	dashboardRet *models.Dashboard
	dashboardErr error

	downloadRet      io.ReadCloser
	downloadErr      error
	lastDownloadID   string
	lastDownloadFile string

	pendingRet []models.Resource
	pendingErr error

	// updateStatusFn, when set, overrides the canned status-update result.
	updateStatusFn    func(ctx context.Context, id string, status models.Status) (*models.Resource, error)
	updateStatusRet   *models.Resource
	updateStatusErr   error
	updateStatusCalls int
	lastStatusID      string
	lastStatus        models.Status

	adminDeleteErr    error
	adminDeleteCalls  int
	lastAdminDeleteID string

	logsRet []models.ActivityLogEntry
	logsErr error
}

func (f *fakeClient) Register(_ context.Context, name, email string, _ []byte) error {
	f.lastRegisterName, f.lastRegisterEmail = name, email
	return f.registerErr
}

func (f *fakeClient) Login(_ context.Context, email string, _ []byte) (*models.Session, error) {
	f.lastLoginEmail = email
	return f.loginUser, f.loginErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeClient) Me(context.Context) (*models.Session, error) {
	return f.meUser, f.meErr
}

func (f *fakeClient) Categories(context.Context) ([]models.Category, error) {
	return f.categoriesRet, f.categoriesErr
}

func (f *fakeClient) Subjects(context.Context) ([]string, error) {
	return f.subjectsRet, f.subjectsErr
}

func (f *fakeClient) Upload(_ context.Context, draft models.UploadDraft) (*models.Resource, error) {
	f.lastDraft = draft
	return f.uploadRet, f.uploadErr
}

func (f *fakeClient) MyUploads(context.Context) ([]models.Resource, error) {
	return f.myUploadsRet, f.myUploadsErr
}

func (f *fakeClient) Resubmit(_ context.Context, id string, _ models.ResubmitChanges) (*models.Resource, error) {
	return f.resubmitRet, f.resubmitErr
}

func (f *fakeClient) DeleteResource(_ context.Context, id string) error {
	f.lastDeletedID = id
	return f.deleteErr
}

func (f *fakeClient) Dashboard(context.Context) (*models.Dashboard, error) {
	return f.dashboardRet, f.dashboardErr
}

func (f *fakeClient) Download(_ context.Context, id, filename string) (io.ReadCloser, error) {
	f.lastDownloadID, f.lastDownloadFile = id, filename
	return f.downloadRet, f.downloadErr
}

func (f *fakeClient) PendingResources(context.Context) ([]models.Resource, error) {
	return f.pendingRet, f.pendingErr
}

func (f *fakeClient) UpdateResourceStatus(ctx context.Context, id string, status models.Status) (*models.Resource, error) {
	f.updateStatusCalls++
	f.lastStatusID, f.lastStatus = id, status
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return f.updateStatusRet, f.updateStatusErr
}

func (f *fakeClient) DeleteAdminResource(_ context.Context, id string) error {
	f.adminDeleteCalls++
	f.lastAdminDeleteID = id
	return f.adminDeleteErr
}

func (f *fakeClient) ActivityLogs(context.Context) ([]models.ActivityLogEntry, error) {
	return f.logsRet, f.logsErr
}

// setupStore builds a session store over an in-memory metadata table.
func setupStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)

	return session.NewStore(metadata.NewSQLiteRepository(db))
}

func adminSession() *models.Session {
	return &models.Session{UserID: "a1", Alias: "anonAdmin", Email: "admin@example.org", Role: models.RoleAdmin, Name: "Alice Admin"}
}

func studentSession() *models.Session {
	return &models.Session{UserID: "s1", Alias: "anonStudent", Email: "student@example.org", Role: models.RoleUser}
}
