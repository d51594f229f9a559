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

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, full_name, email, phone, gender, password_hash,
			registration_number, qualification, specialization, years_of_experience, medical_council,
			verification_status, documents, clinic_name, city, consultation_fee, bio,
			latitude, longitude, is_active, accepting_new_patients, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23
		)
	`
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.FullName,
		doctor.Email,
		doctor.Phone,
		doctor.Gender,
		doctor.PasswordHash,
		doctor.RegistrationNumber,
		doctor.Qualification,
		doctor.Specialization,
		doctor.YearsOfExperience,
		doctor.MedicalCouncil,
		doctor.VerificationStatus,
		doctor.DocumentsJSON,
		doctor.ClinicName,
		doctor.City,
		doctor.ConsultationFee,
		doctor.Bio,
		doctor.Latitude,
		doctor.Longitude,
		doctor.IsActive,
		doctor.AcceptingNewPatients,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1 AND deleted_at IS NULL`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE email = $1 AND deleted_at IS NULL`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, email); err != nil {
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET full_name = $1, phone = $2, clinic_name = $3, city = $4, consultation_fee = $5,
		    bio = $6, latitude = $7, longitude = $8, documents = $9, updated_at = $10
		WHERE id = $11
	`
	_, err := r.db.ExecContext(ctx, query,
		doctor.FullName,
		doctor.Phone,
		doctor.ClinicName,
		doctor.City,
		doctor.ConsultationFee,
		doctor.Bio,
		doctor.Latitude,
		doctor.Longitude,
		doctor.DocumentsJSON,
		time.Now(),
		doctor.ID,
	)
	return err
}

func (r *doctorRepository) UpdateVerification(ctx context.Context, id uuid.UUID, status model.VerificationStatus, reason *string, verifiedAt *time.Time) error {
	query := `
		UPDATE doctors
		SET verification_status = $1, rejection_reason = $2, verified_at = $3, updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, status, reason, verifiedAt, time.Now(), id)
	return err
}

func (r *doctorRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, accepting bool) error {
	query := `UPDATE doctors SET accepting_new_patients = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, accepting, time.Now(), id)
	return err
}

func (r *doctorRepository) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE deleted_at IS NULL`
	args := []interface{}{}
	idx := 1

	if filters != nil {
		if filters.Specialization != "" {
			query += fmt.Sprintf(" AND specialization = $%d", idx)
			args = append(args, filters.Specialization)
			idx++
		}
		if filters.City != "" {
			query += fmt.Sprintf(" AND city = $%d", idx)
			args = append(args, filters.City)
			idx++
		}
		if filters.OnlyVerified {
			query += " AND is_active = true AND verification_status = 'verified'"
		}
	}
	query += " ORDER BY created_at ASC"

	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, args...)
	return doctors, err
}

func (r *doctorRepository) ListPendingVerification(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT * FROM doctors
		WHERE verification_status != 'verified' AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query)
	return doctors, err
}
