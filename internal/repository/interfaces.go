package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/healthdost/kiosk-api/internal/model"
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByPhone(ctx context.Context, phone string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		UpdateVerification(ctx context.Context, id uuid.UUID, status model.VerificationStatus, reason *string, verifiedAt *time.Time) error
		UpdateAvailability(ctx context.Context, id uuid.UUID, accepting bool) error
		List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error)
		ListPendingVerification(ctx context.Context) ([]*model.Doctor, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	ConsultationRepository interface {
		Create(ctx context.Context, consultation *model.AIConsultation) error
		Get(ctx context.Context, id uuid.UUID) (*model.AIConsultation, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AIConsultation, error)
		AttachFeedback(ctx context.Context, id uuid.UUID, wasHelpful bool, feedback string) error
		MarkDoctorConsulted(ctx context.Context, id, doctorID uuid.UUID) error
	}

	AgentRepository interface {
		Create(ctx context.Context, agent *model.Agent) error
		GetByUsername(ctx context.Context, username string) (*model.Agent, error)
		List(ctx context.Context) ([]*model.Agent, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Update(ctx context.Context, notification *model.Notification) error
		ListPending(ctx context.Context, limit int) ([]*model.Notification, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		MarkForRetry(ctx context.Context, id uuid.UUID, errMsg string, retryAt time.Time) error
		BeginTx(ctx context.Context) (*sql.Tx, error)
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
