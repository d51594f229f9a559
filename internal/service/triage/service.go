package triage

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
)

// ErrEmptySymptoms is returned for requests with no symptom text. No
// collaborator is contacted in that case.
var ErrEmptySymptoms = errors.New("please describe your symptoms")

const specialistLimit = 3

// Diagnoser is the external generative diagnosis collaborator.
type Diagnoser interface {
	Diagnose(ctx context.Context, req model.TriageRequest) (*model.TriageResult, error)
}

// DoctorDirectory looks up active, verified specialists for a
// recommended specialization.
type DoctorDirectory interface {
	MatchSpecialists(ctx context.Context, specialization string, limit int) ([]*model.Doctor, error)
}

// Analysis is the full outcome of one triage run: the result itself,
// which tier it landed in, and the follow-on data that tier authorizes.
type Analysis struct {
	Result         *model.TriageResult `json:"result"`
	Tier           Tier                `json:"tier"`
	Override       bool                `json:"override"`
	Fallback       bool                `json:"fallback"`
	ConsultationID *uuid.UUID          `json:"consultation_id,omitempty"`
	Specialists    []*model.Doctor     `json:"specialists,omitempty"`
}

type Service struct {
	patientRepo repository.PatientRepository
	consultRepo repository.ConsultationRepository
	outboxRepo  repository.OutboxRepository
	directory   DoctorDirectory
	diagnoser   Diagnoser
}

func NewService(
	patientRepo repository.PatientRepository,
	consultRepo repository.ConsultationRepository,
	outboxRepo repository.OutboxRepository,
	directory DoctorDirectory,
	diagnoser Diagnoser,
) *Service {
	return &Service{
		patientRepo: patientRepo,
		consultRepo: consultRepo,
		outboxRepo:  outboxRepo,
		directory:   directory,
		diagnoser:   diagnoser,
	}
}

// Analyze runs one triage request end to end: validation, safety
// overrides, model-based diagnosis with fallback, tier classification,
// specialist matching and a best-effort consultation save. Every
// well-formed request gets some result back; the only caller-visible
// failure is empty symptom text.
func (s *Service) Analyze(ctx context.Context, patientID uuid.UUID, input *model.AnalyzeRequest) (*Analysis, error) {
	if input == nil || input.Symptoms == "" {
		return nil, ErrEmptySymptoms
	}

	req := s.buildRequest(ctx, patientID, input)

	if override := CheckOverrides(req); override != nil {
		analysis := &Analysis{
			Result:   override,
			Tier:     ClassifyConfidence(override.Confidence),
			Override: true,
		}
		analysis.Specialists = s.matchSpecialists(ctx, override.RecommendedSpecialization)
		s.publishEvent(ctx, model.EventTriageEmergency, patientID, override)
		return analysis, nil
	}

	result, usedFallback := s.diagnose(ctx, req)
	result.Confidence = ClampConfidence(result.Confidence)
	result.IsEmergency = result.UrgencyLevel == model.UrgencyEmergency || result.Confidence < 60

	tier := ClassifyConfidence(result.Confidence)
	if tier == TierLow {
		// No medication may be presented below the moderate threshold,
		// whatever the model returned.
		result.Prescription.Medicines = []model.Medicine{}
	}

	analysis := &Analysis{
		Result:   result,
		Tier:     tier,
		Fallback: usedFallback,
	}
	if tier == TierModerate {
		analysis.Specialists = s.matchSpecialists(ctx, result.RecommendedSpecialization)
	}

	if id := s.saveConsultation(ctx, patientID, req, result); id != nil {
		analysis.ConsultationID = id
	}

	eventType := model.EventTriageCompleted
	if result.IsEmergency {
		eventType = model.EventTriageEmergency
	}
	s.publishEvent(ctx, eventType, patientID, result)

	return analysis, nil
}

// GetConsultations lists a patient's saved triage runs, newest first.
func (s *Service) GetConsultations(ctx context.Context, patientID uuid.UUID) ([]*model.AIConsultation, error) {
	consultations, err := s.consultRepo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	for _, c := range consultations {
		if err := unmarshalConsultation(c); err != nil {
			return nil, fmt.Errorf("failed to decode consultation %s: %w", c.ID, err)
		}
	}
	return consultations, nil
}

// AttachFeedback records patient feedback on a consultation. This is a
// one-time transition; repeated calls fail.
func (s *Service) AttachFeedback(ctx context.Context, id uuid.UUID, wasHelpful bool, feedback string) error {
	if err := s.consultRepo.AttachFeedback(ctx, id, wasHelpful, feedback); err != nil {
		return fmt.Errorf("failed to attach feedback: %w", err)
	}
	return nil
}

func (s *Service) buildRequest(ctx context.Context, patientID uuid.UUID, input *model.AnalyzeRequest) model.TriageRequest {
	req := model.TriageRequest{
		Symptoms:           input.Symptoms,
		Duration:           input.Duration,
		Severity:           input.Severity,
		ExistingConditions: input.ExistingConditions,
		CurrentMedications: input.CurrentMedications,
	}
	if req.Severity == "" {
		req.Severity = model.SeverityModerate
	}
	if len(req.ExistingConditions) == 0 {
		req.ExistingConditions = []string{"none"}
	}
	if req.CurrentMedications == "" {
		req.CurrentMedications = "none"
	}

	// Age and gender come from the patient record; triage proceeds
	// without them if the lookup fails.
	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", patientID.String()).Msg("patient lookup failed, triaging without demographics")
		return req
	}
	age := patient.Age
	req.Age = &age
	req.Gender = patient.Gender
	return req
}

func (s *Service) diagnose(ctx context.Context, req model.TriageRequest) (*model.TriageResult, bool) {
	result, err := s.diagnoser.Diagnose(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("diagnosis model unavailable, using fallback result")
		return fallbackResult(), true
	}
	return result, false
}

func (s *Service) matchSpecialists(ctx context.Context, specialization string) []*model.Doctor {
	if specialization == "" {
		return nil
	}
	doctors, err := s.directory.MatchSpecialists(ctx, specialization, specialistLimit)
	if err != nil {
		log.Warn().Err(err).Str("specialization", specialization).Msg("specialist lookup failed")
		return nil
	}
	return doctors
}

// saveConsultation persists the run. The save is best-effort: a failure
// is logged and the computed result is still returned to the caller.
func (s *Service) saveConsultation(ctx context.Context, patientID uuid.UUID, req model.TriageRequest, result *model.TriageResult) *uuid.UUID {
	consultation := &model.AIConsultation{
		PatientID:          patientID,
		Symptoms:           req.Symptoms,
		Duration:           req.Duration,
		Severity:           req.Severity,
		ExistingConditions: req.ExistingConditions,
		CurrentMedications: req.CurrentMedications,
		Result:             *result,
	}
	consultation.ID = uuid.New()
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = consultation.CreatedAt

	var err error
	if consultation.ConditionsJSON, err = json.Marshal(consultation.ExistingConditions); err != nil {
		log.Error().Err(err).Msg("failed to marshal consultation conditions")
		return nil
	}
	if consultation.ResultJSON, err = json.Marshal(consultation.Result); err != nil {
		log.Error().Err(err).Msg("failed to marshal consultation result")
		return nil
	}

	if err := s.consultRepo.Create(ctx, consultation); err != nil {
		log.Error().Err(err).Str("patient_id", patientID.String()).Msg("failed to save consultation")
		return nil
	}
	return &consultation.ID
}

func (s *Service) publishEvent(ctx context.Context, eventType string, patientID uuid.UUID, result *model.TriageResult) {
	if s.outboxRepo == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"patient_id":     patientID,
		"diagnosis":      result.Diagnosis.Primary,
		"confidence":     result.Confidence,
		"urgency_level":  result.UrgencyLevel,
		"is_emergency":   result.IsEmergency,
		"specialization": result.RecommendedSpecialization,
	})
	if err != nil {
		return
	}
	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{EventType: eventType, Payload: payload}); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}

func unmarshalConsultation(c *model.AIConsultation) error {
	if len(c.ConditionsJSON) > 0 {
		if err := json.Unmarshal(c.ConditionsJSON, &c.ExistingConditions); err != nil {
			return err
		}
	}
	if len(c.ResultJSON) > 0 {
		if err := json.Unmarshal(c.ResultJSON, &c.Result); err != nil {
			return err
		}
	}
	return nil
}
