// organization_request_repository.go implements OrganizationRequestRepository,
// providing database queries for pending organization signup requests.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

// OrganizationRequestRepository handles pending signup request database operations
type OrganizationRequestRepository struct {
	db *sql.DB
}

// NewOrganizationRequestRepository creates a new OrganizationRequestRepository
func NewOrganizationRequestRepository(db *sql.DB) *OrganizationRequestRepository {
	return &OrganizationRequestRepository{db: db}
}

// Create inserts a new pending request. The unique constraint on email is the
// authoritative guard against concurrent duplicate submissions; a violation is
// returned as ErrDuplicateEmail (or ErrDuplicateURL for the url constraint)
// regardless of what any earlier existence check saw.
func (r *OrganizationRequestRepository) Create(ctx context.Context, request *models.OrganizationRequest) error {
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now()

	query := `
		INSERT INTO organization_requests (id, name, email, phone_number, url, location_name, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.Name,
		request.Email,
		request.PhoneNumber,
		request.URL,
		request.LocationName,
		request.Latitude,
		request.Longitude,
		request.CreatedAt,
	)

	return mapUniqueViolation(err)
}

// GetByEmail retrieves a pending request by normalized email
func (r *OrganizationRequestRepository) GetByEmail(ctx context.Context, email string) (*models.OrganizationRequest, error) {
	query := `
		SELECT id, name, email, phone_number, url, location_name, latitude, longitude, created_at
		FROM organization_requests
		WHERE email = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a pending request by ID
func (r *OrganizationRequestRepository) GetByID(ctx context.Context, requestID string) (*models.OrganizationRequest, error) {
	query := `
		SELECT id, name, email, phone_number, url, location_name, latitude, longitude, created_at
		FROM organization_requests
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, requestID))
}

// List retrieves a paginated list of pending requests, oldest first so
// administrators review them in submission order
func (r *OrganizationRequestRepository) List(ctx context.Context, limit, offset int) ([]*models.OrganizationRequest, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM organization_requests`
	err := r.db.QueryRowContext(ctx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, email, phone_number, url, location_name, latitude, longitude, created_at
		FROM organization_requests
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]*models.OrganizationRequest, 0)
	for rows.Next() {
		request, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}

	return requests, total, rows.Err()
}

// ListOlderThan retrieves pending requests submitted before the cutoff,
// oldest first. Used by the reminder job.
func (r *OrganizationRequestRepository) ListOlderThan(ctx context.Context, cutoff time.Time) ([]*models.OrganizationRequest, error) {
	query := `
		SELECT id, name, email, phone_number, url, location_name, latitude, longitude, created_at
		FROM organization_requests
		WHERE created_at < $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*models.OrganizationRequest, 0)
	for rows.Next() {
		request, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// Delete deletes a pending request
func (r *OrganizationRequestRepository) Delete(ctx context.Context, requestID string) error {
	query := `DELETE FROM organization_requests WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, requestID)
	return err
}

// DeleteTx deletes a pending request within an existing transaction.
// Used by the approval flow, which creates the account and removes the
// request atomically.
func (r *OrganizationRequestRepository) DeleteTx(ctx context.Context, tx *sql.Tx, requestID string) error {
	query := `DELETE FROM organization_requests WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, requestID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *OrganizationRequestRepository) scanOne(row rowScanner) (*models.OrganizationRequest, error) {
	request, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *OrganizationRequestRepository) scanRow(row rowScanner) (*models.OrganizationRequest, error) {
	request := &models.OrganizationRequest{}
	err := row.Scan(
		&request.ID,
		&request.Name,
		&request.Email,
		&request.PhoneNumber,
		&request.URL,
		&request.LocationName,
		&request.Latitude,
		&request.Longitude,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return request, nil
}
