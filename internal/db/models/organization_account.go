// Package models - organization_account.go defines the OrganizationAccount model
// representing an approved organization that can post volunteer opportunities.
package models

import "time"

// OrganizationAccount represents an approved organization account.
// Email is stored in normalized (trimmed, lowercased) form and is unique,
// as are phone number and URL.
type OrganizationAccount struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number"`
	URL          string    `json:"url"`
	Password     string    `json:"-"` // bcrypt hash of the generated credential, never serialized
	LocationName string    `json:"location_name"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
