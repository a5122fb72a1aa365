package notify

import (
	"testing"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

func TestMailer_DisabledIsNoOp(t *testing.T) {
	cfg := &config.NotificationsConfig{Enabled: false}
	m := NewMailer(cfg)

	if m.Enabled() {
		t.Error("Enabled() = true, want false")
	}

	// None of these may attempt a network connection when disabled.
	request := &models.OrganizationRequest{
		Name: "Helping Hands", Email: "info@helpers.org", CreatedAt: time.Now(),
	}
	if err := m.SignupReceived(request); err != nil {
		t.Errorf("SignupReceived() error = %v, want nil", err)
	}
	if err := m.RequestApproved("info@helpers.org", "Helping Hands", "secret"); err != nil {
		t.Errorf("RequestApproved() error = %v, want nil", err)
	}
	if err := m.RequestRejected("info@helpers.org", "Helping Hands"); err != nil {
		t.Errorf("RequestRejected() error = %v, want nil", err)
	}
	if err := m.PendingReminder([]*models.OrganizationRequest{request}); err != nil {
		t.Errorf("PendingReminder() error = %v, want nil", err)
	}
}

func TestMailer_EnabledRequiresSMTPHost(t *testing.T) {
	cfg := &config.NotificationsConfig{Enabled: true}
	m := NewMailer(cfg)
	if m.Enabled() {
		t.Error("Enabled() = true without smtp host, want false")
	}

	cfg.SMTP.Host = "smtp.example.com"
	if !m.Enabled() {
		t.Error("Enabled() = false with smtp host, want true")
	}
}
