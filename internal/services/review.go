// review.go implements the administrator review workflow: approving a pending
// signup request into an organization account, or rejecting it.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
	"github.com/volunteerhub/volunteerhub/internal/safego"
)

// ErrRequestNotFound means the pending request does not exist (already
// reviewed, or never submitted).
var ErrRequestNotFound = errors.New("signup request not found")

// ReviewNotifier delivers the decision emails to the organization.
type ReviewNotifier interface {
	RequestApproved(toEmail, orgName, credential string) error
	RequestRejected(toEmail, orgName string) error
}

// ReviewService approves or rejects pending organization signup requests.
type ReviewService struct {
	db       *sql.DB
	accounts *repositories.OrganizationAccountRepository
	requests *repositories.OrganizationRequestRepository
	notifier ReviewNotifier
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	db *sql.DB,
	accounts *repositories.OrganizationAccountRepository,
	requests *repositories.OrganizationRequestRepository,
	notifier ReviewNotifier,
) *ReviewService {
	return &ReviewService{db: db, accounts: accounts, requests: requests, notifier: notifier}
}

// Approve creates the organization account and removes the pending request in
// a single transaction, then mails the organization its generated credential.
// Returns ErrAccountExists when an account with the email was created in the
// meantime.
func (s *ReviewService) Approve(ctx context.Context, requestID string) (*models.OrganizationAccount, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load signup request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	credential, err := generateCredential()
	if err != nil {
		return nil, fmt.Errorf("failed to generate credential: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}

	account := &models.OrganizationAccount{
		Name:         request.Name,
		Email:        request.Email,
		PhoneNumber:  request.PhoneNumber,
		URL:          request.URL,
		Password:     string(hash),
		LocationName: request.LocationName,
		Latitude:     request.Latitude,
		Longitude:    request.Longitude,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := s.accounts.CreateTx(ctx, tx, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if err := s.requests.DeleteTx(ctx, tx, requestID); err != nil {
		return nil, fmt.Errorf("failed to remove signup request: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	notifier := s.notifier
	toEmail, orgName := account.Email, account.Name
	safego.Go(func() {
		if err := notifier.RequestApproved(toEmail, orgName, credential); err != nil {
			slog.Error("failed to send approval email", "email", toEmail, "error", err)
		}
	})

	return account, nil
}

// Reject deletes the pending request and sends a courtesy email.
func (s *ReviewService) Reject(ctx context.Context, requestID string) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to load signup request: %w", err)
	}
	if request == nil {
		return ErrRequestNotFound
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("failed to delete signup request: %w", err)
	}

	notifier := s.notifier
	toEmail, orgName := request.Email, request.Name
	safego.Go(func() {
		if err := notifier.RequestRejected(toEmail, orgName); err != nil {
			slog.Error("failed to send rejection email", "email", toEmail, "error", err)
		}
	})

	return nil
}

// generateCredential returns a random URL-safe credential for a newly
// approved organization account.
func generateCredential() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
