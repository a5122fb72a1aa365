// errors.go defines sentinel errors surfaced by the repository layer.
// Unique-constraint violations are mapped to these by constraint name so the
// database remains the authoritative guard against concurrent duplicates.
package repositories

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateEmail is returned when an insert violates a unique email constraint.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrDuplicateURL is returned when an insert violates a unique URL constraint.
	ErrDuplicateURL = errors.New("url already in use")
	// ErrDuplicatePhoneNumber is returned when an insert violates a unique phone number constraint.
	ErrDuplicatePhoneNumber = errors.New("phone number already in use")
)

// uniqueViolation is the PostgreSQL error code for a unique constraint violation.
const uniqueViolation = "23505"

// mapUniqueViolation translates a pq unique-violation error into the matching
// sentinel error based on the violated constraint's name. Any other error is
// returned unchanged.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolation {
		return err
	}
	switch pqErr.Constraint {
	case "organization_accounts_email_key", "organization_requests_email_key", "volunteers_email_key":
		return ErrDuplicateEmail
	case "organization_accounts_url_key", "organization_requests_url_key":
		return ErrDuplicateURL
	case "organization_accounts_phone_number_key":
		return ErrDuplicatePhoneNumber
	}
	return err
}
