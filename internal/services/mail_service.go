// services/mail_service.go
package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
)

type IMailService interface {
	SendMailToResetPassword(email, token string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // e.g. 587 (STARTTLS)
	Username string
	Password string
	From     string // envelope from, e.g. "no-reply@viajaia.app"
	FromName string

	AppName    string
	AppBaseURL string // e.g. "https://viajaia.app"
}

type smtpMailService struct {
	cfg      SMTPConfig
	resetTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	resetTpl := template.Must(template.New("resetHTML").Parse(resetHTMLTemplate))
	return &smtpMailService{cfg: cfg, resetTpl: resetTpl}, nil
}

type resetEmailData struct {
	AppName  string
	ResetURL string
}

func (s *smtpMailService) SendMailToResetPassword(to, token string) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))

	var body bytes.Buffer
	if err := s.resetTpl.Execute(&body, resetEmailData{
		AppName:  s.cfg.AppName,
		ResetURL: link,
	}); err != nil {
		return err
	}

	return s.send(to, "Reset your password", body.String())
}

func (s *smtpMailService) send(to, subject, htmlBody string) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg.Bytes()); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const resetHTMLTemplate = `
<html>
  <body style="font-family:Arial,sans-serif;background:#f6f8fa;padding:24px">
    <div style="max-width:480px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px">
      <h2 style="color:#005A8D">{{.AppName}}</h2>
      <p>We received a request to reset your password.</p>
      <p>
        <a href="{{.ResetURL}}" style="background:#005A8D;color:#ffffff;padding:12px 20px;border-radius:6px;text-decoration:none">
          Reset password
        </a>
      </p>
      <p style="color:#6b7280;font-size:12px">If you did not ask for this, you can safely ignore this email. The link expires in 15 minutes.</p>
    </div>
  </body>
</html>`
