package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
	"github.com/healthdost/kiosk-api/pkg/security"
)

var ErrPhoneTaken = errors.New("a patient with this phone number already exists")

type Service struct {
	repo   repository.PatientRepository
	outbox repository.OutboxRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.PatientRepository, outbox repository.OutboxRepository, hasher security.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		outbox: outbox,
		hasher: hasher,
	}
}

// Register creates a patient record. Phone numbers are unique; they
// double as the login identifier at the kiosk.
func (s *Service) Register(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	if existing, err := s.repo.GetByPhone(ctx, req.Phone); err == nil && existing != nil {
		return nil, ErrPhoneTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	patient := &model.Patient{
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		Village:      req.Village,
		Phone:        req.Phone,
		PasswordHash: hash,
		Symptoms:     req.Symptoms,
		Status:       string(model.PatientStatusActive),
	}
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.publishRegistered(ctx, patient)
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Update applies the non-nil fields of the request.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Village != nil {
		patient.Village = *req.Village
	}
	if req.Phone != nil && *req.Phone != patient.Phone {
		if existing, err := s.repo.GetByPhone(ctx, *req.Phone); err == nil && existing != nil {
			return nil, ErrPhoneTaken
		}
		patient.Phone = *req.Phone
	}
	if req.Latitude != nil {
		patient.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		patient.Longitude = req.Longitude
	}
	patient.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// Deactivate soft-deletes the patient record.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate patient: %w", err)
	}
	return nil
}

func (s *Service) publishRegistered(ctx context.Context, patient *model.Patient) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"patient_id": patient.ID,
		"village":    patient.Village,
	})
	if err != nil {
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: model.EventPatientRegistered, Payload: payload}); err != nil {
		log.Warn().Err(err).Msg("failed to create outbox event")
	}
}
