package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

// IMailService is the notification collaborator. Every call is a plain
// synchronous send; lifecycle code dispatches on a goroutine and only logs
// failures, so delivery never blocks or rolls back a transition.
type IMailService interface {
	SendVerificationEmail(to, name, code string) error
	SendPasswordResetEmail(to, name, token string) error
	SendWelcomeEmail(to, name string) error
	SendAdminNotification(name, email string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 for STARTTLS, 465 for SMTPS
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@yourapp.com"
	FromName   string
	UseSSL     bool // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool // if true, fail if STARTTLS not available

	AppName       string
	AdminPanelURL string // reset links point here
	AdminEmail    string // registration notifications go here
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("mailHTML").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("mailText").Parse(mailTextTemplate)),
	}
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendVerificationEmail(to, name, code string) error {
	html, text, err := s.renderEmail(mailData{
		Title:   "Email Verification",
		Intro:   fmt.Sprintf("Hello %s, your verification code is below. It expires in 15 minutes. If you didn't request this, please ignore this email.", name),
		Code:    code,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Verify your %s account", s.cfg.AppName), html, text)
}

func (s *smtpMailService) SendPasswordResetEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(s.cfg.AdminPanelURL, "/"), url.QueryEscape(token))

	html, text, err := s.renderEmail(mailData{
		Title:     "Password Reset Request",
		Intro:     fmt.Sprintf("Hello %s, we received a request to reset your password. The link below expires in 1 hour. If you didn't request this, you can safely ignore this email.", name),
		ButtonURL: link,
		ButtonTxt: "Reset Password",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Reset your %s password", s.cfg.AppName), html, text)
}

func (s *smtpMailService) SendWelcomeEmail(to, name string) error {
	html, text, err := s.renderEmail(mailData{
		Title:   "Email Verified",
		Intro:   fmt.Sprintf("Hello %s, your email has been verified. Your account is now awaiting admin approval; you will be able to log in once it is activated.", name),
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Welcome to %s", s.cfg.AppName), html, text)
}

func (s *smtpMailService) SendAdminNotification(name, email string) error {
	html, text, err := s.renderEmail(mailData{
		Title:   "New Registration",
		Intro:   fmt.Sprintf("%s (%s) has registered and is awaiting approval.", name, email),
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(s.cfg.AdminEmail, fmt.Sprintf("%s: new admin registration", s.cfg.AppName), html, text)
}

// ------------------- Rendering -------------------

type mailData struct {
	Title     string
	Intro     string
	Code      string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:24px;background:#f4f4f5;font-family:Arial,Helvetica,sans-serif;color:#1a1a2e;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">
    <h2 style="margin-top:0;">{{.Title}}</h2>
    <p style="line-height:1.6;">{{.Intro}}</p>
    {{if .Code}}
      <div style="background:#f4f4f4;padding:20px;text-align:center;margin:20px 0;">
        <span style="font-size:32px;font-weight:bold;letter-spacing:8px;color:#6366f1;">{{.Code}}</span>
      </div>
    {{end}}
    {{if .ButtonURL}}
      <div style="text-align:center;margin:30px 0;">
        <a href="{{.ButtonURL}}" style="background:#6366f1;color:#ffffff;padding:14px 28px;text-decoration:none;border-radius:6px;font-weight:bold;">{{.ButtonTxt}}</a>
      </div>
      <p style="word-break:break-all;"><a href="{{.ButtonURL}}" style="color:#6366f1;">{{.ButtonURL}}</a></p>
    {{end}}
    <hr style="border:none;border-top:1px solid #eee;margin:20px 0;">
    <p style="color:#666;font-size:12px;">&copy; {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Intro}}

{{if .Code}}Verification code: {{.Code}}
{{end}}{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}
— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data mailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.formatFromHeader()
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		return s.transmit(c, auth, to, msg.Bytes())
	}

	// STARTTLS path (typically port 587)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}

	return s.transmit(c, auth, to, msg.Bytes())
}

func (s *smtpMailService) transmit(c *smtp.Client, auth smtp.Auth, to string, msg []byte) error {
	if err := c.Auth(auth); err != nil {
		return err
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
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), s.cfg.From)
}
