// Package services holds domain workflows that span repositories and
// out-of-band effects such as notification emails.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
	"github.com/volunteerhub/volunteerhub/internal/safego"
	"github.com/volunteerhub/volunteerhub/internal/validation"
)

// Admission check outcomes. Handlers translate these into the user-facing
// conflict messages.
var (
	// ErrAccountExists means an approved account already uses the email.
	ErrAccountExists = errors.New("account with this email already exists")
	// ErrRequestPending means a signup request with the email is already awaiting review.
	ErrRequestPending = errors.New("request with this email is already pending")
)

// SignupNotifier delivers the admin notification for a new signup request.
type SignupNotifier interface {
	SignupReceived(request *models.OrganizationRequest) error
}

// SignupService implements the organization signup admission check.
type SignupService struct {
	accounts *repositories.OrganizationAccountRepository
	requests *repositories.OrganizationRequestRepository
	notifier SignupNotifier
}

// NewSignupService creates a SignupService.
func NewSignupService(
	accounts *repositories.OrganizationAccountRepository,
	requests *repositories.OrganizationRequestRepository,
	notifier SignupNotifier,
) *SignupService {
	return &SignupService{accounts: accounts, requests: requests, notifier: notifier}
}

// SubmitRequest runs the admission check and stores the pending request.
//
// The email is normalized before every lookup and before the insert. The
// pre-checks give precise errors for the common cases; the unique constraint
// on organization_requests.email remains the authoritative guard, so a
// duplicate racing past the pre-checks still comes back as ErrRequestPending
// rather than a raw database error.
//
// On success the administrator is notified asynchronously; notification
// failures are logged and never affect the result.
func (s *SignupService) SubmitRequest(ctx context.Context, request *models.OrganizationRequest) error {
	request.Email = validation.NormalizeEmail(request.Email)

	account, err := s.accounts.GetByEmail(ctx, request.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if account != nil {
		return ErrAccountExists
	}

	pending, err := s.requests.GetByEmail(ctx, request.Email)
	if err != nil {
		return fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending != nil {
		return ErrRequestPending
	}

	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return ErrRequestPending
		}
		return fmt.Errorf("failed to store signup request: %w", err)
	}

	notifier := s.notifier
	notified := *request
	safego.Go(func() {
		if err := notifier.SignupReceived(&notified); err != nil {
			slog.Error("failed to send signup notification", "email", notified.Email, "error", err)
		}
	})

	return nil
}
