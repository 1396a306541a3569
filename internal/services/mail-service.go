package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var mailTemplates embed.FS

type Mail struct {
	To       string
	Subject  string
	Template string // file name under templates/
	Data     any
}

type MailService interface {
	Send(ctx context.Context, m Mail) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	FromName string
}

type smtpMailService struct {
	cfg  SMTPConfig
	tmpl *template.Template
	log  *zap.Logger
}

func NewMailService(cfg SMTPConfig, log *zap.Logger) (MailService, error) {
	tmpl, err := template.ParseFS(mailTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &smtpMailService{cfg: cfg, tmpl: tmpl, log: log}, nil
}

func (s *smtpMailService) Send(ctx context.Context, m Mail) error {
	body, err := renderMail(s.tmpl, m)
	if err != nil {
		return err
	}

	msg := buildMessage(s.cfg.FromName, s.cfg.From, m.To, m.Subject, body)

	s.log.Info("smtp sending", zap.String("to", m.To), zap.String("template", m.Template))
	if err := s.sendSMTPWithTimeout(ctx, m.To, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.To, err)
	}
	s.log.Info("mail sent", zap.String("to", m.To))
	return nil
}

func renderMail(tmpl *template.Template, m Mail) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, m.Template, m.Data); err != nil {
		return "", fmt.Errorf("render %s: %w", m.Template, err)
	}
	return buf.String(), nil
}

func buildMessage(fromName, from, to, subject, htmlBody string) []byte {
	fromHeader := from
	if fromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), from)
	}

	return []byte(strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", subject)),
		fmt.Sprintf("Date: %s", time.Now().Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n"))
}

func (s *smtpMailService) sendSMTPWithTimeout(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	dialer := net.Dialer{Timeout: 8 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	// bound the whole conversation
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}
	if s.cfg.User != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}

	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
