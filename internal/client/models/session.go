// Package models defines client-side data models for the SRSP CLI:
// the authenticated session, shared resources and their moderation states,
// and admin activity log entries.
package models

import "encoding/json"

// Role is the authorization level carried by a session.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the authenticated identity for the current client instance.
// The role is fixed for the lifetime of a session; changing roles requires
// a fresh login.
type Session struct {
	// UserID is the backend identifier of the account.
	UserID string `json:"id"`

	// Alias is the public display name shown to other users.
	Alias string `json:"alias"`

	// Email is the login email.
	Email string `json:"email"`

	// Role is either RoleUser or RoleAdmin.
	Role Role `json:"role"`

	// Name is the real name; the backend includes it only for admins.
	Name string `json:"name,omitempty"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// UnmarshalJSON accepts both "id" and the legacy "_id" key for the user
// identifier, whichever the backend happens to send.
func (s *Session) UnmarshalJSON(data []byte) error {
	type alias Session
	aux := struct {
		*alias
		LegacyID string `json:"_id"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.UserID == "" {
		s.UserID = aux.LegacyID
	}
	return nil
}
