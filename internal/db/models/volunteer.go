// Package models - volunteer.go defines the Volunteer model and its skill rows.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Visibility values for a volunteer profile.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Volunteer represents a volunteer account and profile.
type Volunteer struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, never serialized
	BirthDate   *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Gender      string     `json:"gender" db:"gender"`
	Description string     `json:"description" db:"description"`
	CVURL       *string    `json:"cv_url,omitempty" db:"cv_url"`
	Visibility  string     `json:"visibility" db:"visibility"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// VolunteerSkill is one skill entry on a volunteer profile. Position preserves
// the order the volunteer entered the skills in; duplicates are allowed.
type VolunteerSkill struct {
	ID          int64     `json:"id" db:"id"`
	VolunteerID uuid.UUID `json:"volunteer_id" db:"volunteer_id"`
	Skill       string    `json:"skill" db:"skill"`
	Position    int       `json:"position" db:"position"`
}
