package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Status is the moderation state of a resource.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"

	// StatusDeleted is terminal and only ever exists client-side, as the
	// result of a successful delete; the backend removes the record.
	StatusDeleted Status = "deleted"
)

var ErrIllegalTransition = errors.New("illegal status transition")

// CanTransition reports whether moving a resource from one status to another
// is a legal moderation step. Re-applying the current status is allowed
// (the backend treats it as a no-op), and deletion is reachable from any
// state. Nothing leaves StatusDeleted.
func CanTransition(from, to Status) bool {
	if from == StatusDeleted {
		return false
	}
	if to == StatusDeleted || from == to {
		return true
	}
	switch {
	case from == StatusPending && (to == StatusApproved || to == StatusRejected):
		return true
	case from == StatusApproved && to == StatusRejected:
		return true
	default:
		return false
	}
}

// StoredFile describes one uploaded file attached to a resource.
type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
}

// Uploader identifies the owning user of a resource.
type Uploader struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
}

func (u *Uploader) UnmarshalJSON(data []byte) error {
	type alias Uploader
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.LegacyID
	}
	return nil
}

// Resource is a user-submitted educational file plus its moderation metadata.
// The backend owns UpdatedAt; the client adopts whatever it returns and never
// advances it locally.
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Subject     string       `json:"subject"`
	Status      Status       `json:"status"`
	UploadedBy  Uploader     `json:"uploadedBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Files       []StoredFile `json:"files"`
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	type alias Resource
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = aux.LegacyID
	}
	return nil
}

// Deletable reports whether the owning user may still delete the resource
// themselves. Approved resources are only removable by an admin.
func (r *Resource) Deletable() bool {
	return r.Status == StatusPending || r.Status == StatusRejected
}

// AdminStats are the moderation panel counters. They are always recomputed
// from the current resource collection, never tracked incrementally.
type AdminStats struct {
	TotalSubmissions int
	PendingReviews   int
	ApprovedToday    int
	RejectedToday    int
	ActiveUploaders  int
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ComputeAdminStats derives the panel counters from the given collection.
// "Today" is the calendar day of now in its own location.
func ComputeAdminStats(resources []Resource, now time.Time) AdminStats {
	stats := AdminStats{TotalSubmissions: len(resources)}
	uploaders := make(map[string]struct{})

	for _, r := range resources {
		switch r.Status {
		case StatusPending:
			stats.PendingReviews++
		case StatusApproved:
			if sameDay(r.UpdatedAt, now) {
				stats.ApprovedToday++
			}
		case StatusRejected:
			if sameDay(r.UpdatedAt, now) {
				stats.RejectedToday++
			}
		}
		if r.UploadedBy.ID != "" {
			uploaders[r.UploadedBy.ID] = struct{}{}
		}
	}

	stats.ActiveUploaders = len(uploaders)
	return stats
}

// CountByStatus returns how many resources currently carry the given status.
func CountByStatus(resources []Resource, status Status) int {
	n := 0
	for _, r := range resources {
		if r.Status == status {
			n++
		}
	}
	return n
}
