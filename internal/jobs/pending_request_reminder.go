// pending_request_reminder.go implements the PendingRequestReminder background
// job, which periodically emails the administrator a digest of organization
// signup requests that have been waiting for review longer than the configured
// number of days. The job is a no-op when notifications.enabled is false or
// when the SMTP host is not configured, so it is always safe to start
// regardless of deployment environment.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/db/repositories"
)

// ReminderMailer delivers the pending-request digest email.
type ReminderMailer interface {
	PendingReminder(requests []*models.OrganizationRequest) error
}

// PendingRequestReminder periodically emails the administrator about signup
// requests still awaiting review.
type PendingRequestReminder struct {
	requestRepo *repositories.OrganizationRequestRepository
	mailer      ReminderMailer
	cfg         *config.NotificationsConfig
	interval    time.Duration
	stopChan    chan struct{}
}

// NewPendingRequestReminder creates a new PendingRequestReminder.
// The check interval comes from notifications.pending_reminder_check_interval_hours
// (default 24h).
func NewPendingRequestReminder(
	requestRepo *repositories.OrganizationRequestRepository,
	mailer ReminderMailer,
	cfg *config.NotificationsConfig,
) *PendingRequestReminder {
	hours := cfg.PendingReminderCheckIntervalHours
	if hours <= 0 {
		hours = 24
	}
	return &PendingRequestReminder{
		requestRepo: requestRepo,
		mailer:      mailer,
		cfg:         cfg,
		interval:    time.Duration(hours) * time.Hour,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the background reminder loop.
// It runs an initial check immediately, then repeats on the configured interval.
// The loop exits when ctx is cancelled or Stop() is called.
func (r *PendingRequestReminder) Start(ctx context.Context) {
	if !r.cfg.Enabled {
		log.Println("Pending request reminder: disabled (notifications.enabled=false)")
		return
	}
	if r.cfg.SMTP.Host == "" {
		log.Println("Pending request reminder: disabled (notifications.smtp.host not set)")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("Pending request reminder started (check interval: %v, reminder after: %d days)",
		r.interval, r.reminderAfterDays())

	// Run once immediately on startup
	r.runCheck(ctx)

	for {
		select {
		case <-ticker.C:
			r.runCheck(ctx)
		case <-r.stopChan:
			log.Println("Pending request reminder stopped")
			return
		case <-ctx.Done():
			log.Println("Pending request reminder context cancelled")
			return
		}
	}
}

// Stop signals the background loop to exit.
func (r *PendingRequestReminder) Stop() {
	close(r.stopChan)
}

func (r *PendingRequestReminder) reminderAfterDays() int {
	days := r.cfg.PendingReminderAfterDays
	if days <= 0 {
		days = 3
	}
	return days
}

// runCheck queries for stale pending requests and sends the digest email.
func (r *PendingRequestReminder) runCheck(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -r.reminderAfterDays())

	requests, err := r.requestRepo.ListOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Pending request reminder: failed to query pending requests: %v", err)
		return
	}

	if len(requests) == 0 {
		return
	}

	log.Printf("Pending request reminder: %d request(s) waiting for review", len(requests))

	if err := r.mailer.PendingReminder(requests); err != nil {
		log.Printf("Pending request reminder: failed to send digest to %s: %v",
			r.cfg.AdminEmail, err)
	}
}
