// Package notify delivers plain-text notification emails over SMTP.
// All sends are best-effort: callers run them through safego.Go and treat
// failures as log-only events, never as request failures.
package notify

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/telemetry"
)

// Mailer sends notification emails using the configured SMTP server.
type Mailer struct {
	cfg *config.NotificationsConfig
}

// NewMailer creates a Mailer. The returned Mailer is safe to use even when
// notifications are disabled; every send becomes a no-op.
func NewMailer(cfg *config.NotificationsConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether the mailer will actually deliver anything.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled && m.cfg.SMTP.Host != ""
}

// SignupReceived notifies the administrator that a new organization signup
// request is waiting for review.
func (m *Mailer) SignupReceived(request *models.OrganizationRequest) error {
	subject := fmt.Sprintf("New organization signup request: %s", request.Name)
	body := strings.Join([]string{
		"A new organization has requested to join VolunteerHub.",
		"",
		fmt.Sprintf("Name:     %s", request.Name),
		fmt.Sprintf("Email:    %s", request.Email),
		fmt.Sprintf("URL:      %s", request.URL),
		fmt.Sprintf("Location: %s", request.LocationName),
		"",
		"Review the request in the admin area.",
		"",
		"— VolunteerHub",
	}, "\r\n")

	return m.send(m.cfg.AdminEmail, subject, body)
}

// RequestApproved mails the organization its generated credential after an
// administrator approves the signup request.
func (m *Mailer) RequestApproved(toEmail, orgName, credential string) error {
	subject := "Your VolunteerHub organization account has been approved"
	body := strings.Join([]string{
		fmt.Sprintf("Hello %s,", orgName),
		"",
		"Your signup request has been approved and your organization account is ready.",
		"",
		fmt.Sprintf("Login email: %s", toEmail),
		fmt.Sprintf("Password:    %s", credential),
		"",
		"Please change the password after your first login.",
		"",
		"— VolunteerHub",
	}, "\r\n")

	return m.send(toEmail, subject, body)
}

// RequestRejected sends a courtesy note when a signup request is rejected.
func (m *Mailer) RequestRejected(toEmail, orgName string) error {
	subject := "Your VolunteerHub signup request"
	body := strings.Join([]string{
		fmt.Sprintf("Hello %s,", orgName),
		"",
		"Unfortunately we were unable to approve your signup request at this time.",
		"You are welcome to reply to this email if you believe this is a mistake.",
		"",
		"— VolunteerHub",
	}, "\r\n")

	return m.send(toEmail, subject, body)
}

// PendingReminder mails the administrator a digest of requests that have been
// waiting longer than the configured number of days.
func (m *Mailer) PendingReminder(requests []*models.OrganizationRequest) error {
	subject := fmt.Sprintf("%d organization signup request(s) awaiting review", len(requests))

	lines := []string{
		"The following signup requests are still pending:",
		"",
	}
	for _, r := range requests {
		lines = append(lines, fmt.Sprintf("  - %s <%s> submitted %s",
			r.Name, r.Email, r.CreatedAt.UTC().Format(time.RFC1123)))
	}
	lines = append(lines, "", "— VolunteerHub")

	return m.send(m.cfg.AdminEmail, subject, strings.Join(lines, "\r\n"))
}

// send composes the message and delivers it via SMTP. No-op when disabled.
func (m *Mailer) send(toEmail, subject, body string) error {
	if !m.Enabled() {
		slog.Debug("mailer disabled, dropping email", "to", toEmail, "subject", subject)
		return nil
	}

	smtpCfg := &m.cfg.SMTP
	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n",
		smtpCfg.From, toEmail, subject,
	)
	msg := []byte(headers + body + "\r\n")

	addr := fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port)
	auth := smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)

	var err error
	if smtpCfg.UseTLS {
		err = sendMailTLS(addr, smtpCfg.Host, auth, smtpCfg.From, []string{toEmail}, msg)
	} else {
		err = smtp.SendMail(addr, auth, smtpCfg.From, []string{toEmail}, msg)
	}
	if err != nil {
		return err
	}

	telemetry.NotificationEmailsSentTotal.Inc()
	return nil
}

// sendMailTLS connects via implicit TLS (port 465 / SMTPS) and sends a message.
// Use this when UseTLS=true and the port is 465; for port 587 STARTTLS,
// smtp.SendMail handles the upgrade automatically — but we call this path for
// both so the config is unambiguous: UseTLS=true always means an encrypted connection.
func sendMailTLS(addr, host string, auth smtp.Auth, from string, to []string, msg []byte) error {
	tlsConfig := &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		// Fall back to STARTTLS via the standard smtp.SendMail path (port 587 pattern)
		return smtp.SendMail(addr, auth, from, to, msg)
	}
	defer conn.Close()

	hostname, _, _ := net.SplitHostPort(addr)
	c, err := smtp.NewClient(conn, hostname)
	if err != nil {
		return fmt.Errorf("smtp new client: %w", err)
	}
	defer c.Quit() //nolint:errcheck

	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, addr := range to {
		if err := c.Rcpt(addr); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", addr, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	return w.Close()
}
