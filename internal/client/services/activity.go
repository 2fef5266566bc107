package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

// csvHeader matches the export the web panel produced.
var csvHeader = []string{"Timestamp", "Action", "Anonymous User", "Real User", "Details", "IP Address", "Resource"}

// ActivityService fetches, filters and exports the backend's audit trail.
// Entries are read-only; the client never creates or edits them.
type ActivityService interface {
	Fetch(ctx context.Context) ([]models.ActivityLogEntry, error)
	Filter(logs []models.ActivityLogEntry, query string, action models.Action, date string) []models.ActivityLogEntry
	ExportCSV(w io.Writer, logs []models.ActivityLogEntry) error
	ExportFilename(now time.Time) string
}

type activityService struct {
	client api.Client
}

func NewActivityService(client api.Client) ActivityService {
	return &activityService{client: client}
}

func (s *activityService) Fetch(ctx context.Context) ([]models.ActivityLogEntry, error) {
	logs, err := s.client.ActivityLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activity logs: %w", err)
	}
	return logs, nil
}

// Filter narrows logs by a case-insensitive substring over details and both
// user fields, an exact action, and a YYYY-MM-DD date. Empty filters match
// everything.
func (s *activityService) Filter(logs []models.ActivityLogEntry, query string, action models.Action, date string) []models.ActivityLogEntry {
	query = strings.ToLower(query)

	out := make([]models.ActivityLogEntry, 0, len(logs))
	for _, entry := range logs {
		if query != "" &&
			!strings.Contains(strings.ToLower(entry.Details), query) &&
			!strings.Contains(strings.ToLower(entry.RealUser), query) &&
			!strings.Contains(strings.ToLower(entry.User), query) {
			continue
		}
		if action != "" && entry.Action != action {
			continue
		}
		if date != "" && entry.Timestamp.Format("2006-01-02") != date {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (s *activityService) ExportCSV(w io.Writer, logs []models.ActivityLogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, entry := range logs {
		record := []string{
			entry.Timestamp.Format(time.RFC3339),
			string(entry.Action),
			entry.User,
			entry.RealUser,
			entry.Details,
			entry.IPAddress,
			entry.Resource,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename is the default name for an export, dated like the web
// panel's download.
func (s *activityService) ExportFilename(now time.Time) string {
	return fmt.Sprintf("activity_logs_%s.csv", now.Format("2006-01-02"))
}
