// Package models - audit_log.go defines the AuditLog model for recording
// security-relevant events, capturing actor, action, affected resource,
// client IP, and arbitrary metadata.
package models

import "time"

// AuditLog represents an audit log entry for tracking admin and account actions
type AuditLog struct {
	ID           string
	VolunteerID  *string                // Nullable for system actions
	Action       string                 // "request.approve", "request.reject", "profile.update"
	ResourceType *string                // "organization_request", "organization_account", "volunteer"
	ResourceID   *string                // ID of affected resource
	Metadata     map[string]interface{} // JSONB: additional context
	IPAddress    *string                // Client IP
	CreatedAt    time.Time
}
