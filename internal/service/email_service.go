package service

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	config "github.com/postpilothq/postpilot/configs"
	"github.com/postpilothq/postpilot/internal/notify"
	"github.com/postpilothq/postpilot/internal/transfer"
)

const (
	mailMaxAttempts = 3
	mailBaseDelay   = 500 * time.Millisecond
)

type EmailService interface {
	IsConfigured() bool
	SendFailedPostAlert(n *transfer.FailedPostNotification) error
	SendTokenExpirationAlert(n *transfer.TokenExpirationNotification) error
}

type emailService struct {
	cfg      config.SMTP
	notifier *notify.Notifier
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg config.Config, notifier *notify.Notifier) EmailService {
	return &emailService{
		cfg:      cfg.SMTP,
		notifier: notifier,
		send:     smtp.SendMail,
	}
}

// IsConfigured reports whether mail credentials are present. Missing
// credentials are a deliberate deployment choice, not an error.
func (s *emailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.User != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *emailService) SendFailedPostAlert(n *transfer.FailedPostNotification) error {
	subject := fmt.Sprintf("Post to %s failed", n.Platform)
	body := fmt.Sprintf(`<h2>A scheduled post could not be published</h2>
<p><strong>Platform:</strong> %s</p>
<p><strong>Scheduled for:</strong> %s</p>
<p><strong>Content:</strong> %s</p>
<p><strong>Error:</strong> %s</p>
<p>The post is still in your schedule. Fix the issue and reschedule it from your dashboard.</p>`,
		htmlEscape(n.Platform), htmlEscape(n.ScheduledAt), htmlEscape(excerpt(n.Content, 200)), htmlEscape(n.ErrorMessage))

	return s.deliver(n.UserEmail, subject, body)
}

func (s *emailService) SendTokenExpirationAlert(n *transfer.TokenExpirationNotification) error {
	subject := fmt.Sprintf("Your %s connection needs attention", n.Platform)
	body := fmt.Sprintf(`<h2>Reconnect your %s account</h2>
<p>The access token for your %s account has expired or is about to expire.
Scheduled posts to this platform will fail until the account is reconnected.</p>
<p>Open your dashboard and reconnect the account to keep your schedule running.</p>`,
		htmlEscape(n.Platform), htmlEscape(n.Platform))

	return s.deliver(n.UserEmail, subject, body)
}

// deliver retries transient transport failures with exponential backoff.
// After the final attempt the original transport error is returned, not
// a wrapped retry error.
func (s *emailService) deliver(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	fromHeader := s.cfg.From
	if s.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}

	msg := strings.Join([]string{
		"From: " + sanitizeHeader(fromHeader),
		"To: " + sanitizeHeader(to),
		"Subject: " + sanitizeHeader(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
	}, "\r\n")

	var lastErr error
	for attempt := 0; attempt < mailMaxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(mailBaseDelay * (1 << (attempt - 1)))
		}

		lastErr = s.send(addr, auth, s.cfg.From, []string{to}, []byte(msg))
		if lastErr == nil {
			return nil
		}
		slog.Info(fmt.Sprintf("mail delivery attempt %d failed: %v", attempt+1, lastErr))
	}

	if s.notifier != nil {
		s.notifier.Publish(notify.Event{
			Component: "email",
			Severity:  notify.SeverityError,
			Message:   "mail delivery failed after retries",
			Err:       lastErr,
		})
	}
	return lastErr
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
