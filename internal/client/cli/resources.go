package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/services"
)

// userMessage prefers the local validation sentinels, which already read
// well, over the generic backend-failure mapping.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrNotDeletable),
		errors.Is(err, services.ErrNotResubmit),
		errors.Is(err, services.ErrNoFile),
		errors.Is(err, services.ErrNotApproved):
		return err.Error()
	}
	return api.UserMessage(err)
}

// openFile is a test seam for os.Open.
var openFile = func(name string) (*os.File, error) { return os.Open(name) }

var errNoListing = errors.New("run 'mine' first to get a numbered listing")

// pickUpload resolves a 1-based list position from the last "mine" listing.
func (a *App) pickUpload(args []string) (*models.Resource, error) {
	if len(a.lastUploads) == 0 {
		return nil, errNoListing
	}
	if len(args) == 0 {
		return nil, errors.New("usage: <command> <number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.lastUploads) {
		return nil, fmt.Errorf("no entry %q in the last listing", args[0])
	}
	return &a.lastUploads[n-1], nil
}

// Dashboard shows the personal counters and the most recent own uploads.
func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.resources.Dashboard(ctx)
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Uploads: %d total, %d this week, %d approved, %d pending\n",
		d.Stats.TotalUploads, d.Stats.UploadsThisWeek, d.Stats.ApprovedUploads, d.Stats.PendingUploads)
	fmt.Fprintf(a.out, "Downloads of your resources: %d\n", d.Stats.TotalDownloads)

	if len(d.RecentUploads) > 0 {
		fmt.Fprintln(a.out, "Recent uploads:")
		for _, r := range d.RecentUploads {
			fmt.Fprintf(a.out, "  [%s] %s\n", r.Status, r.Title)
		}
	}
	return nil
}

// Upload walks the user through the submission form and sends the file. The
// created resource starts in the pending state and waits for moderation.
func (a *App) Upload(ctx context.Context) error {
	categories, subjects, err := a.resources.Options(ctx)
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, c.Value)
	}
	fmt.Fprintf(a.out, "Categories: %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(a.out, "Subjects: %s\n", strings.Join(subjects, ", "))

	path, err := getSimpleText(a.reader, "Path of the file to upload", a.out)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	subject, err := getSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}
	college, err := getSimpleText(a.reader, "College (optional)", a.out)
	if err != nil {
		return err
	}
	course, err := getSimpleText(a.reader, "Course (optional)", a.out)
	if err != nil {
		return err
	}
	year, err := getSimpleText(a.reader, "Year (optional)", a.out)
	if err != nil {
		return err
	}

	file, err := openFile(path)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot open %s\n", path)
		return err
	}
	defer file.Close()

	created, err := a.resources.Upload(ctx, models.UploadDraft{
		File:        file,
		Filename:    filepath.Base(path),
		Title:       title,
		Description: description,
		Category:    category,
		Subject:     subject,
		College:     college,
		Course:      course,
		Year:        year,
	})
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %q, waiting for review.\n", created.Title)
	return nil
}

// MyUploads lists the caller's submissions and caches the listing for the
// number-addressed commands.
func (a *App) MyUploads(ctx context.Context) error {
	resources, err := a.resources.MyUploads(ctx)
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}
	a.lastUploads = resources

	if len(resources) == 0 {
		fmt.Fprintln(a.out, "No uploads yet.")
		return nil
	}
	for i, r := range resources {
		fmt.Fprintf(a.out, "%d. [%s] %s (%s / %s)\n", i+1, r.Status, r.Title, r.Category, r.Subject)
	}
	return nil
}

// Resubmit edits a rejected upload and sends it for another review round.
func (a *App) Resubmit(ctx context.Context, args []string) error {
	resource, err := a.pickUpload(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("New title (empty keeps %q)", resource.Title), a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "New description (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}

	updated, err := a.resources.Resubmit(ctx, resource, models.ResubmitChanges{
		Title:       title,
		Description: description,
	})
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Resubmitted %q, waiting for review.\n", updated.Title)
	return nil
}

// Delete removes an own pending or rejected upload.
func (a *App) Delete(ctx context.Context, args []string) error {
	resource, err := a.pickUpload(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.resources.Delete(ctx, resource); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Deleted %q.\n", resource.Title)
	return nil
}

// Download saves an approved resource's file into the working directory.
func (a *App) Download(ctx context.Context, args []string) error {
	resource, err := a.pickUpload(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	path, err := a.resources.Download(ctx, resource, ".")
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}
