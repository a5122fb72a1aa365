// volunteer_repository.go implements VolunteerRepository, providing database
// queries for volunteer accounts, profiles, and their skill rows.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

// VolunteerRepository handles volunteer database operations
type VolunteerRepository struct {
	db *sqlx.DB
}

// NewVolunteerRepository creates a new volunteer repository
func NewVolunteerRepository(db *sqlx.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// Create inserts a new volunteer. A unique-constraint violation on email is
// returned as ErrDuplicateEmail.
func (r *VolunteerRepository) Create(ctx context.Context, volunteer *models.Volunteer) error {
	volunteer.ID = uuid.New()
	volunteer.CreatedAt = time.Now()
	volunteer.UpdatedAt = time.Now()
	if volunteer.Visibility == "" {
		volunteer.Visibility = models.VisibilityPublic
	}

	query := `
		INSERT INTO volunteers (id, name, email, password, birth_date, gender, description, cv_url, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		volunteer.ID,
		volunteer.Name,
		volunteer.Email,
		volunteer.Password,
		volunteer.BirthDate,
		volunteer.Gender,
		volunteer.Description,
		volunteer.CVURL,
		volunteer.Visibility,
		volunteer.CreatedAt,
		volunteer.UpdatedAt,
	)

	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

// GetByID retrieves a volunteer by ID
func (r *VolunteerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Volunteer, error) {
	query := `
		SELECT id, name, email, password, birth_date, gender, description, cv_url, visibility, created_at, updated_at
		FROM volunteers
		WHERE id = $1
	`

	var volunteer models.Volunteer
	err := r.db.GetContext(ctx, &volunteer, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}

	return &volunteer, nil
}

// GetByEmail retrieves a volunteer by normalized email
func (r *VolunteerRepository) GetByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	query := `
		SELECT id, name, email, password, birth_date, gender, description, cv_url, visibility, created_at, updated_at
		FROM volunteers
		WHERE email = $1
	`

	var volunteer models.Volunteer
	err := r.db.GetContext(ctx, &volunteer, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer by email: %w", err)
	}

	return &volunteer, nil
}

// GetSkills retrieves a volunteer's skills in the order they were entered
func (r *VolunteerRepository) GetSkills(ctx context.Context, volunteerID uuid.UUID) ([]string, error) {
	query := `
		SELECT skill
		FROM volunteer_skills
		WHERE volunteer_id = $1
		ORDER BY position ASC
	`

	skills := make([]string, 0)
	err := r.db.SelectContext(ctx, &skills, query, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer skills: %w", err)
	}

	return skills, nil
}

// UpdateProfile updates the profile fields and replaces the skill rows in a
// single transaction. Skills are stored in slice order; duplicates are kept.
func (r *VolunteerRepository) UpdateProfile(ctx context.Context, volunteerID uuid.UUID, description string, cvURL *string, visibility string, skills []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE volunteers
		SET description = $2, cv_url = $3, visibility = $4, updated_at = $5
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, updateQuery, volunteerID, description, cvURL, visibility, time.Now()); err != nil {
		return fmt.Errorf("failed to update volunteer profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM volunteer_skills WHERE volunteer_id = $1`, volunteerID); err != nil {
		return fmt.Errorf("failed to clear volunteer skills: %w", err)
	}

	insertQuery := `INSERT INTO volunteer_skills (volunteer_id, skill, position) VALUES ($1, $2, $3)`
	for i, skill := range skills {
		if _, err := tx.ExecContext(ctx, insertQuery, volunteerID, skill, i); err != nil {
			return fmt.Errorf("failed to insert volunteer skill: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}

	return nil
}
