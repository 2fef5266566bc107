package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

var (
	ErrMissingFields = errors.New("title, description, category, subject and file are required")
	ErrNotDeletable  = errors.New("only pending or rejected uploads can be deleted")
	ErrNotResubmit   = errors.New("only rejected uploads can be resubmitted")
	ErrNoFile        = errors.New("resource has no downloadable file")
	ErrNotApproved   = errors.New("only approved resources can be downloaded")
)

// ResourceService covers the student-side resource operations: the upload
// form, the profile's upload list, owner-scoped delete/resubmit, downloads
// and the dashboard.
type ResourceService interface {
	Options(ctx context.Context) ([]models.Category, []string, error)
	Upload(ctx context.Context, draft models.UploadDraft) (*models.Resource, error)
	MyUploads(ctx context.Context) ([]models.Resource, error)
	Resubmit(ctx context.Context, resource *models.Resource, changes models.ResubmitChanges) (*models.Resource, error)
	Delete(ctx context.Context, resource *models.Resource) error
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Download(ctx context.Context, resource *models.Resource, dir string) (string, error)
}

type resourceService struct {
	client api.Client
}

func NewResourceService(client api.Client) ResourceService {
	return &resourceService{client: client}
}

// Options fetches the category and subject lists concurrently; the form
// needs both before it can render.
func (s *resourceService) Options(ctx context.Context) ([]models.Category, []string, error) {
	var (
		categories []models.Category
		subjects   []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.client.Categories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		subjects, err = s.client.Subjects(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("loading form options: %w", err)
	}
	return categories, subjects, nil
}

func (s *resourceService) Upload(ctx context.Context, draft models.UploadDraft) (*models.Resource, error) {
	if draft.File == nil || draft.Filename == "" ||
		draft.Title == "" || draft.Description == "" ||
		draft.Category == "" || draft.Subject == "" {
		return nil, ErrMissingFields
	}
	created, err := s.client.Upload(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}
	return created, nil
}

func (s *resourceService) MyUploads(ctx context.Context) ([]models.Resource, error) {
	resources, err := s.client.MyUploads(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading uploads: %w", err)
	}
	return resources, nil
}

func (s *resourceService) Resubmit(ctx context.Context, resource *models.Resource, changes models.ResubmitChanges) (*models.Resource, error) {
	if resource.Status != models.StatusRejected {
		return nil, ErrNotResubmit
	}
	updated, err := s.client.Resubmit(ctx, resource.ID, changes)
	if err != nil {
		return nil, fmt.Errorf("resubmit error: %w", err)
	}
	return updated, nil
}

// Delete removes an owned upload. The backend re-validates ownership; the
// client only pre-checks the draft-like states to give a better message.
func (s *resourceService) Delete(ctx context.Context, resource *models.Resource) error {
	if !resource.Deletable() {
		return ErrNotDeletable
	}
	if err := s.client.DeleteResource(ctx, resource.ID); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

func (s *resourceService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	dashboard, err := s.client.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}
	return dashboard, nil
}

// Download fetches the first stored file of an approved resource into dir
// and returns the written path. The file keeps its original name when the
// backend recorded one.
func (s *resourceService) Download(ctx context.Context, resource *models.Resource, dir string) (string, error) {
	if resource.Status != models.StatusApproved {
		return "", ErrNotApproved
	}
	if len(resource.Files) == 0 || resource.Files[0].Filename == "" {
		return "", ErrNoFile
	}
	stored := resource.Files[0]

	body, err := s.client.Download(ctx, resource.ID, stored.Filename)
	if err != nil {
		return "", fmt.Errorf("download error: %w", err)
	}
	defer body.Close()

	name := stored.OriginalName
	if name == "" {
		name = stored.Filename
	}
	path := filepath.Join(dir, filepath.Base(name))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return path, nil
}
