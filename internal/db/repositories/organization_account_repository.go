// Package repositories implements the data access layer (repository pattern) for VolunteerHub.
// Each repository type encapsulates all database queries for a domain entity.
// Handlers never issue SQL directly — all database access goes through this layer, which makes query logic testable in isolation and prevents accidental cross-domain data access.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

// OrganizationAccountRepository handles organization account database operations
type OrganizationAccountRepository struct {
	db *sql.DB
}

// NewOrganizationAccountRepository creates a new OrganizationAccountRepository
func NewOrganizationAccountRepository(db *sql.DB) *OrganizationAccountRepository {
	return &OrganizationAccountRepository{db: db}
}

// Create inserts a new organization account. Unique-constraint violations on
// email, phone number, or URL are returned as the matching sentinel error.
func (r *OrganizationAccountRepository) Create(ctx context.Context, account *models.OrganizationAccount) error {
	account.ID = uuid.New().String()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	query := `
		INSERT INTO organization_accounts (id, name, email, phone_number, url, password, location_name, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PhoneNumber,
		account.URL,
		account.Password,
		account.LocationName,
		account.Latitude,
		account.Longitude,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return mapUniqueViolation(err)
}

// CreateTx inserts a new organization account within an existing transaction.
func (r *OrganizationAccountRepository) CreateTx(ctx context.Context, tx *sql.Tx, account *models.OrganizationAccount) error {
	account.ID = uuid.New().String()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	query := `
		INSERT INTO organization_accounts (id, name, email, phone_number, url, password, location_name, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PhoneNumber,
		account.URL,
		account.Password,
		account.LocationName,
		account.Latitude,
		account.Longitude,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return mapUniqueViolation(err)
}

// GetByEmail retrieves an account by normalized email. Callers must pass the
// email through validation.NormalizeEmail first.
func (r *OrganizationAccountRepository) GetByEmail(ctx context.Context, email string) (*models.OrganizationAccount, error) {
	query := `
		SELECT id, name, email, phone_number, url, password, location_name, latitude, longitude, created_at, updated_at
		FROM organization_accounts
		WHERE email = $1
	`

	account := &models.OrganizationAccount{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PhoneNumber,
		&account.URL,
		&account.Password,
		&account.LocationName,
		&account.Latitude,
		&account.Longitude,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetByID retrieves an account by ID
func (r *OrganizationAccountRepository) GetByID(ctx context.Context, accountID string) (*models.OrganizationAccount, error) {
	query := `
		SELECT id, name, email, phone_number, url, password, location_name, latitude, longitude, created_at, updated_at
		FROM organization_accounts
		WHERE id = $1
	`

	account := &models.OrganizationAccount{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PhoneNumber,
		&account.URL,
		&account.Password,
		&account.LocationName,
		&account.Latitude,
		&account.Longitude,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return account, nil
}

// List retrieves a paginated list of accounts ordered by creation time
func (r *OrganizationAccountRepository) List(ctx context.Context, limit, offset int) ([]*models.OrganizationAccount, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM organization_accounts`
	err := r.db.QueryRowContext(ctx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, email, phone_number, url, password, location_name, latitude, longitude, created_at, updated_at
		FROM organization_accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	accounts := make([]*models.OrganizationAccount, 0)
	for rows.Next() {
		account := &models.OrganizationAccount{}
		err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.PhoneNumber,
			&account.URL,
			&account.Password,
			&account.LocationName,
			&account.Latitude,
			&account.Longitude,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, account)
	}

	return accounts, total, rows.Err()
}

// Delete deletes an account
func (r *OrganizationAccountRepository) Delete(ctx context.Context, accountID string) error {
	query := `DELETE FROM organization_accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, accountID)
	return err
}
