package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
)

type consultationRepository struct {
	db *sqlx.DB
}

func NewConsultationRepository(db *sqlx.DB) repository.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *model.AIConsultation) error {
	query := `
		INSERT INTO ai_consultations (
			id, patient_id, symptoms, duration, severity, existing_conditions,
			current_medications, result, patient_followed_up, doctor_consulted,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		consultation.ID,
		consultation.PatientID,
		consultation.Symptoms,
		consultation.Duration,
		consultation.Severity,
		consultation.ConditionsJSON,
		consultation.CurrentMedications,
		consultation.ResultJSON,
		consultation.PatientFollowedUp,
		consultation.DoctorConsulted,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) Get(ctx context.Context, id uuid.UUID) (*model.AIConsultation, error) {
	query := `SELECT * FROM ai_consultations WHERE id = $1 AND deleted_at IS NULL`
	var consultation model.AIConsultation
	if err := r.db.GetContext(ctx, &consultation, query, id); err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return &consultation, nil
}

func (r *consultationRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AIConsultation, error) {
	query := `
		SELECT * FROM ai_consultations
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	var consultations []*model.AIConsultation
	err := r.db.SelectContext(ctx, &consultations, query, patientID)
	return consultations, err
}

// AttachFeedback is a one-time transition: it refuses to overwrite
// feedback that has already been recorded.
func (r *consultationRepository) AttachFeedback(ctx context.Context, id uuid.UUID, wasHelpful bool, feedback string) error {
	query := `
		UPDATE ai_consultations
		SET was_helpful = $1, patient_feedback = $2, patient_followed_up = true, updated_at = $3
		WHERE id = $4 AND was_helpful IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, wasHelpful, feedback, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to attach feedback: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("feedback already recorded for consultation %s", id)
	}
	return nil
}

func (r *consultationRepository) MarkDoctorConsulted(ctx context.Context, id, doctorID uuid.UUID) error {
	query := `
		UPDATE ai_consultations
		SET doctor_consulted = true, consulted_doctor_id = $1, updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, doctorID, time.Now(), id)
	return err
}
