package models

import "time"

// Action classifies an activity log entry.
type Action string

const (
	ActionUpload       Action = "upload"
	ActionApproval     Action = "approval"
	ActionRejection    Action = "rejection"
	ActionDownload     Action = "download"
	ActionLogin        Action = "login"
	ActionRegistration Action = "registration"
)

// ActivityLogEntry is one audit record produced by the backend. The client
// only filters and exports these; it never creates or mutates them.
//
// User carries the anonymized alias shown publicly, RealUser the actual
// account name visible to admins.
type ActivityLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	User      string    `json:"user"`
	RealUser  string    `json:"realUser"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ipAddress"`
	Resource  string    `json:"resource"`
}
