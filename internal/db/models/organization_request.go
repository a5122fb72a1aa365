// Package models - organization_request.go defines the OrganizationRequest model
// representing a pending signup request awaiting administrator review.
package models

import "time"

// OrganizationRequest represents a pending organization signup request.
// Email is stored in normalized (trimmed, lowercased) form; at most one
// pending request may exist per email.
type OrganizationRequest struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number"`
	URL          string    `json:"url"`
	LocationName string    `json:"location_name"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
}
