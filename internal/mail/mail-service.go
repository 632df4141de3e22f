package mail

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

const smtpHost = "smtp.gmail.com"
const smtpAddr = "smtp.gmail.com:587"

type MailService struct {
	gmailUser        string
	gmailAppPass     string
	mailFrom         string
	mailFromName     string
	verifyBaseURL    string
	dashboardBaseURL string

	templates *template.Template
}

func NewMailService(
	gmailUser string,
	gmailAppPass string,
	mailFrom string,
	mailFromName string,
	verifyBaseURL string,
	dashboardBaseURL string,
) (*MailService, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &MailService{
		gmailUser:        gmailUser,
		gmailAppPass:     gmailAppPass,
		mailFrom:         mailFrom,
		mailFromName:     mailFromName,
		verifyBaseURL:    verifyBaseURL,
		dashboardBaseURL: dashboardBaseURL,
		templates:        tmpl,
	}, nil
}

// SendVerifyEmail mails the raw verification token as a link. The link
// expires with the token, 24 hours after issuance.
func (s *MailService) SendVerifyEmail(to, firstName, role, token string) error {
	link := fmt.Sprintf("%s?token=%s", s.verifyBaseURL, url.QueryEscape(token))

	htmlBody, err := s.render("verify-email.html", map[string]string{
		"FirstName": firstName,
		"Role":      role,
		"Link":      link,
	})
	if err != nil {
		return err
	}

	return s.send(to, "Verify Your Email", htmlBody)
}

// SendWelcomeEmail goes out once the account is verified.
func (s *MailService) SendWelcomeEmail(to, firstName, role string) error {
	link := fmt.Sprintf("%s/%s/dashboard", s.dashboardBaseURL, url.PathEscape(role))

	htmlBody, err := s.render("welcome-email.html", map[string]string{
		"FirstName": firstName,
		"Role":      role,
		"Link":      link,
	})
	if err != nil {
		return err
	}

	return s.send(to, "Welcome - Email Verified!", htmlBody)
}

func (s *MailService) render(name string, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) send(to, subject, htmlBody string) error {
	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s", to, smtpAddr)

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", smtpAddr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole exchange, not just the dial
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: smtpHost}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.gmailUser, s.gmailAppPass, smtpHost)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
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
