package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/healthdost/kiosk-api/internal/email"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
	"github.com/healthdost/kiosk-api/pkg/security"
)

var (
	ErrEmailTaken  = errors.New("a doctor with this email already exists")
	ErrNotVerified = errors.New("doctor is not verified")
)

const (
	directoryCacheTTL     = 5 * time.Minute
	directoryCacheCleanup = 10 * time.Minute
)

type Service struct {
	repo     repository.DoctorRepository
	outbox   repository.OutboxRepository
	emailSvc email.Service
	hasher   security.PasswordHasher
	cache    *gocache.Cache
}

func NewService(
	repo repository.DoctorRepository,
	outbox repository.OutboxRepository,
	emailSvc email.Service,
	hasher security.PasswordHasher,
) *Service {
	return &Service{
		repo:     repo,
		outbox:   outbox,
		emailSvc: emailSvc,
		hasher:   hasher,
		cache:    gocache.New(directoryCacheTTL, directoryCacheCleanup),
	}
}

// Register creates a doctor in pending verification state and sends a
// registration confirmation email.
func (s *Service) Register(ctx context.Context, req *model.RegisterDoctorRequest) (*model.Doctor, error) {
	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &model.Doctor{
		FullName:           req.FullName,
		Email:              req.Email,
		Phone:              req.Phone,
		Gender:             req.Gender,
		PasswordHash:       hash,
		RegistrationNumber: req.RegistrationNumber,
		Qualification:      req.Qualification,
		Specialization:     req.Specialization,
		YearsOfExperience:  req.YearsOfExperience,
		MedicalCouncil:     req.MedicalCouncil,
		ClinicName:         req.ClinicName,
		City:               req.City,
		ConsultationFee:    req.ConsultationFee,
		Bio:                req.Bio,
		VerificationStatus: model.VerificationStatusPending,
		IsActive:           false,
	}
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt
	if doctor.DocumentsJSON, err = json.Marshal([]model.DoctorDocument{}); err != nil {
		return nil, fmt.Errorf("failed to marshal documents: %w", err)
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	if err := s.emailSvc.SendRegistrationConfirmation(ctx, doctor.Email, doctor.FullName); err != nil {
		log.Warn().Err(err).Str("doctor_id", doctor.ID.String()).Msg("failed to send registration email")
	}

	return doctor, nil
}

// Get returns one doctor with documents decoded.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if err := decodeDocuments(doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// GetRegistrationStatus reports where a doctor stands in the
// verification pipeline.
func (s *Service) GetRegistrationStatus(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.Get(ctx, id)
}

// List returns doctors matching the filters, documents decoded.
func (s *Service) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	for _, d := range doctors {
		if err := decodeDocuments(d); err != nil {
			return nil, err
		}
	}
	return doctors, nil
}

// MatchSpecialists returns up to limit active verified doctors whose
// specialization matches exactly, in directory order. Results are
// cached briefly; the directory changes far less often than triage
// runs.
func (s *Service) MatchSpecialists(ctx context.Context, specialization string, limit int) ([]*model.Doctor, error) {
	if specialization == "" {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("specialists:%s", specialization)
	if cached, found := s.cache.Get(cacheKey); found {
		return capDoctors(cached.([]*model.Doctor), limit), nil
	}

	doctors, err := s.repo.List(ctx, &model.DoctorFilters{
		Specialization: model.Specialization(specialization),
		OnlyVerified:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to match specialists: %w", err)
	}

	s.cache.Set(cacheKey, doctors, gocache.DefaultExpiration)
	return capDoctors(doctors, limit), nil
}

// ListPendingVerification lists doctors awaiting an admin decision.
func (s *Service) ListPendingVerification(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.ListPendingVerification(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending doctors: %w", err)
	}
	for _, d := range doctors {
		if err := decodeDocuments(d); err != nil {
			return nil, err
		}
	}
	return doctors, nil
}

// Verify moves a doctor through the verification pipeline. Approval
// activates the doctor and opens their calendar; rejection records the
// reason. Either outcome is emailed and published to the outbox.
func (s *Service) Verify(ctx context.Context, id uuid.UUID, req *model.VerifyDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	var verifiedAt *time.Time
	var reason *string
	switch req.Status {
	case model.VerificationStatusVerified:
		now := time.Now()
		verifiedAt = &now
	case model.VerificationStatusRejected:
		if req.RejectionReason == "" {
			return nil, fmt.Errorf("rejection reason is required")
		}
		reason = &req.RejectionReason
	case model.VerificationStatusUnderReview:
	default:
		return nil, fmt.Errorf("unsupported verification status: %s", req.Status)
	}

	if err := s.repo.UpdateVerification(ctx, id, req.Status, reason, verifiedAt); err != nil {
		return nil, fmt.Errorf("failed to update verification: %w", err)
	}

	doctor.VerificationStatus = req.Status
	doctor.VerifiedAt = verifiedAt
	doctor.RejectionReason = reason

	switch req.Status {
	case model.VerificationStatusVerified:
		doctor.IsActive = true
		doctor.AcceptingNewPatients = true
		if err := s.repo.UpdateAvailability(ctx, id, true); err != nil {
			log.Warn().Err(err).Str("doctor_id", id.String()).Msg("failed to activate doctor")
		}
		s.flushDirectoryCache(doctor.Specialization)
		if err := s.emailSvc.SendVerificationApproved(ctx, doctor.Email, doctor.FullName); err != nil {
			log.Warn().Err(err).Str("doctor_id", id.String()).Msg("failed to send approval email")
		}
		s.publishEvent(ctx, model.EventDoctorVerified, doctor)
	case model.VerificationStatusRejected:
		if err := s.emailSvc.SendVerificationRejected(ctx, doctor.Email, doctor.FullName, req.RejectionReason); err != nil {
			log.Warn().Err(err).Str("doctor_id", id.String()).Msg("failed to send rejection email")
		}
		s.publishEvent(ctx, model.EventDoctorRejected, doctor)
	}

	return doctor, nil
}

// SetAvailability toggles whether a verified doctor accepts new
// patients.
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, accepting bool) error {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get doctor: %w", err)
	}
	if doctor.VerificationStatus != model.VerificationStatusVerified {
		return ErrNotVerified
	}
	if err := s.repo.UpdateAvailability(ctx, id, accepting); err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	s.flushDirectoryCache(doctor.Specialization)
	return nil
}

// Documents required before verification can proceed.
var requiredDocuments = []string{
	"registration_certificate",
	"degree_certificate",
	"identity_proof",
}

// SendDocumentReminders emails every doctor still pending who is
// missing at least one required document. Returns how many reminders
// went out.
func (s *Service) SendDocumentReminders(ctx context.Context) (int, error) {
	doctors, err := s.repo.ListPendingVerification(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending doctors: %w", err)
	}

	sent := 0
	for _, d := range doctors {
		if err := decodeDocuments(d); err != nil {
			return sent, err
		}
		missing := missingDocuments(d.Documents)
		if len(missing) == 0 {
			continue
		}
		if err := s.emailSvc.SendDocumentReminder(ctx, d.Email, d.FullName, missing); err != nil {
			log.Warn().Err(err).Str("doctor_id", d.ID.String()).Msg("failed to send document reminder")
			continue
		}
		sent++
	}
	return sent, nil
}

func missingDocuments(uploaded []model.DoctorDocument) []string {
	have := make(map[string]bool, len(uploaded))
	for _, doc := range uploaded {
		have[doc.Kind] = true
	}
	var missing []string
	for _, kind := range requiredDocuments {
		if !have[kind] {
			missing = append(missing, kind)
		}
	}
	return missing
}

func (s *Service) flushDirectoryCache(specialization model.Specialization) {
	s.cache.Delete(fmt.Sprintf("specialists:%s", specialization))
}

func (s *Service) publishEvent(ctx context.Context, eventType string, doctor *model.Doctor) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"doctor_id":      doctor.ID,
		"full_name":      doctor.FullName,
		"specialization": doctor.Specialization,
		"status":         doctor.VerificationStatus,
	})
	if err != nil {
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: eventType, Payload: payload}); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}

func capDoctors(doctors []*model.Doctor, limit int) []*model.Doctor {
	if limit > 0 && len(doctors) > limit {
		return doctors[:limit]
	}
	return doctors
}

func decodeDocuments(d *model.Doctor) error {
	if len(d.DocumentsJSON) == 0 {
		return nil
	}
	if err := json.Unmarshal(d.DocumentsJSON, &d.Documents); err != nil {
		return fmt.Errorf("failed to decode documents for doctor %s: %w", d.ID, err)
	}
	return nil
}
