package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"intranet/internal/domain/notifications"
	"intranet/internal/platform/config"
)

type noopDispatcher struct{}

func (noopDispatcher) Send(ctx context.Context, to, subject, htmlBody string) notifications.Result {
	return notifications.Result{Delivered: false, Detail: "email disabled"}
}

type smtpDispatcher struct {
	cfg config.Config
}

func New(cfg config.Config) notifications.Dispatcher {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopDispatcher{}
	}
	return &smtpDispatcher{cfg: cfg}
}

func (s *smtpDispatcher) Send(ctx context.Context, to, subject, htmlBody string) notifications.Result {
	if strings.TrimSpace(to) == "" {
		return notifications.Result{Delivered: false, Detail: "empty recipient"}
	}
	if err := s.deliver(ctx, to, subject, htmlBody); err != nil {
		return notifications.Result{Delivered: false, Detail: err.Error()}
	}
	return notifications.Result{Delivered: true, Detail: "ok"}
}

func (s *smtpDispatcher) deliver(ctx context.Context, to, subject, htmlBody string) error {
	client, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	from := s.cfg.EmailFrom
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := buildMessage(s.cfg.EmailFromName, from, to, subject, htmlBody)
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// connect opens either an implicit-TLS session (port 465 style) or a plain
// connection upgraded with STARTTLS, matching SMTP_USE_SSL.
func (s *smtpDispatcher) connect(ctx context.Context) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	dialer := net.Dialer{Timeout: 10 * time.Second}

	if s.cfg.SMTPUseSSL {
		tlsDialer := tls.Dialer{NetDialer: &dialer, Config: &tls.Config{ServerName: s.cfg.SMTPHost}}
		conn, err := tlsDialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return client, nil
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPHost}); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// TestConnection dials and authenticates without sending, for the admin
// SMTP diagnostics endpoint.
func TestConnection(ctx context.Context, cfg config.Config) notifications.Result {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return notifications.Result{Delivered: false, Detail: "email disabled"}
	}
	d := &smtpDispatcher{cfg: cfg}
	client, err := d.connect(ctx)
	if err != nil {
		return notifications.Result{Delivered: false, Detail: err.Error()}
	}
	defer client.Close()
	if cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return notifications.Result{Delivered: false, Detail: "auth failed: " + err.Error()}
		}
	}
	_ = client.Quit()
	return notifications.Result{Delivered: true, Detail: "ok"}
}

func buildMessage(fromName, from, to, subject, htmlBody string) []byte {
	sender := from
	if fromName != "" {
		sender = fmt.Sprintf("%s <%s>", fromName, from)
	}
	headers := []string{
		fmt.Sprintf("From: %s", sender),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + htmlBody)
}
