// Package api is the transport layer of the SRSP client: a thin, typed
// wrapper over the backend's REST contract. Authorization is carried by a
// credentialed session cookie on every call; the package never reads or
// writes bearer tokens.
package api

import (
	"context"
	"io"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

// Client is the surface the application services depend on. The concrete
// implementation is RESTClient; tests substitute fakes.
type Client interface {
	// Auth.
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Session, error)

	// Student-side resources.
	Categories(ctx context.Context) ([]models.Category, error)
	Subjects(ctx context.Context) ([]string, error)
	Upload(ctx context.Context, draft models.UploadDraft) (*models.Resource, error)
	MyUploads(ctx context.Context) ([]models.Resource, error)
	Resubmit(ctx context.Context, id string, changes models.ResubmitChanges) (*models.Resource, error)
	DeleteResource(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Download(ctx context.Context, id, filename string) (io.ReadCloser, error)

	// Admin-scoped.
	PendingResources(ctx context.Context) ([]models.Resource, error)
	UpdateResourceStatus(ctx context.Context, id string, status models.Status) (*models.Resource, error)
	DeleteAdminResource(ctx context.Context, id string) error
	ActivityLogs(ctx context.Context) ([]models.ActivityLogEntry, error)
}
