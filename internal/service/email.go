package service

import (
	"fmt"
	"log"
	"net/smtp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mealbook/backend/config"
	"github.com/mealbook/backend/internal/models"
)

// EmailService sends the welcome email after registration. Delivery is
// best effort; a missing SMTP configuration disables it silently.
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
	}
}

func (s *EmailService) configured() bool {
	return s.host != "" && s.port != "" && s.from != ""
}

// SendWelcomeEmail greets a newly registered user.
func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	if !s.configured() {
		log.Printf("[EmailService] SMTP not configured, skipping welcome email for %s", user.Email)
		return nil
	}

	displayName := cases.Title(language.English).String(user.Username)
	subject := "Welcome to Mealbook"
	body := fmt.Sprintf(
		"Hello %s!\n\nYour account is ready. Publish your first recipe and start following other cooks.\n",
		displayName,
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, user.Email, subject, body)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{user.Email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
