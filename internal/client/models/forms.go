package models

import "io"

// Category is one selectable resource category as served by the backend.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UploadDraft is a student submission before it reaches the backend.
// File and Filename are required along with Title, Description, Category
// and Subject; the remaining fields are optional.
type UploadDraft struct {
	File        io.Reader
	Filename    string
	Title       string
	Description string
	Category    string
	Subject     string
	College     string
	Course      string
	Year        string
}

// ResubmitChanges carries the fields an owner may edit when resubmitting
// a rejected resource for another review round.
type ResubmitChanges struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

// DashboardStats are the per-student counters returned by the dashboard
// endpoint. Computed server-side; shown as-is.
type DashboardStats struct {
	TotalUploads    int `json:"totalUploads"`
	UploadsThisWeek int `json:"uploadsThisWeek"`
	ApprovedUploads int `json:"approvedUploads"`
	PendingUploads  int `json:"pendingUploads"`
	TotalDownloads  int `json:"totalDownloads"`
}

// Dashboard is the student landing view payload.
type Dashboard struct {
	Stats         DashboardStats `json:"stats"`
	RecentUploads []Resource     `json:"recentUploads"`
}
