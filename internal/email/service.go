package email

import (
	"context"
)

type Message struct {
	Subject string
	Body    string
}

type Service interface {
	SendRegistrationConfirmation(ctx context.Context, to, doctorName string) error
	SendVerificationApproved(ctx context.Context, to, doctorName string) error
	SendVerificationRejected(ctx context.Context, to, doctorName, reason string) error
	SendDocumentReminder(ctx context.Context, to, doctorName string, missingDocs []string) error
	SendEmergencyAlert(ctx context.Context, to, doctorName, patientName, symptoms string) error
	SendCustom(ctx context.Context, to, subject, content string) error
}
