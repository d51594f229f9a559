package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) send(ctx context.Context, to string, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *smtpService) SendRegistrationConfirmation(ctx context.Context, to, doctorName string) error {
	return s.send(ctx, to, registrationConfirmation(doctorName))
}

func (s *smtpService) SendVerificationApproved(ctx context.Context, to, doctorName string) error {
	return s.send(ctx, to, verificationApproved(doctorName))
}

func (s *smtpService) SendVerificationRejected(ctx context.Context, to, doctorName, reason string) error {
	return s.send(ctx, to, verificationRejected(doctorName, reason))
}

func (s *smtpService) SendDocumentReminder(ctx context.Context, to, doctorName string, missingDocs []string) error {
	return s.send(ctx, to, documentReminder(doctorName, missingDocs))
}

func (s *smtpService) SendEmergencyAlert(ctx context.Context, to, doctorName, patientName, symptoms string) error {
	return s.send(ctx, to, emergencyAlert(doctorName, patientName, symptoms))
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, content string) error {
	return s.send(ctx, to, Message{Subject: subject, Body: content})
}
