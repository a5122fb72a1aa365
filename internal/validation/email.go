// email.go provides email normalization and format validation helpers used by the
// signup and volunteer registration flows.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

// NormalizeEmail canonicalizes an email address for storage and lookup:
// surrounding whitespace is removed and the address is lowercased.
// The function is idempotent; normalizing an already-normalized address
// returns it unchanged. Every store and every lookup must use the
// normalized form so that "Info@Helpers.org" and "info@helpers.org"
// refer to the same identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that the address parses as an RFC 5322 addr-spec.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	// Reject display-name forms like "Name <a@b.c>"; only bare addresses are accepted.
	if addr.Address != email {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}
