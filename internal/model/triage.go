package model

import (
	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

type UrgencyLevel string

const (
	UrgencyRoutine   UrgencyLevel = "routine"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyEmergency UrgencyLevel = "emergency"
)

// TriageRequest carries everything the triage engine needs for one
// analysis. It is built fresh per submission; the engine holds no
// state between requests.
type TriageRequest struct {
	Age                *int     `json:"age,omitempty"`
	Gender             Gender   `json:"gender,omitempty"`
	Symptoms           string   `json:"symptoms"`
	Duration           string   `json:"duration"`
	Severity           Severity `json:"severity"`
	ExistingConditions []string `json:"existing_conditions"`
	CurrentMedications string   `json:"current_medications"`
}

type DifferentialDiagnosis struct {
	Condition   string  `json:"condition"`
	Probability float64 `json:"probability"`
}

type Diagnosis struct {
	Primary      string                  `json:"primary"`
	Differential []DifferentialDiagnosis `json:"differential"`
}

type Medicine struct {
	Name              string   `json:"name"`
	GenericName       string   `json:"generic_name,omitempty"`
	Dosage            string   `json:"dosage"`
	Frequency         string   `json:"frequency,omitempty"`
	Duration          string   `json:"duration"`
	Timing            string   `json:"timing,omitempty"`
	Purpose           string   `json:"purpose"`
	Precautions       string   `json:"precautions"`
	SideEffects       string   `json:"side_effects,omitempty"`
	Contraindications string   `json:"contraindications,omitempty"`
	Alternatives      []string `json:"alternatives,omitempty"`
}

type Prescription struct {
	Medicines    []Medicine `json:"medicines"`
	HomeRemedies []string   `json:"home_remedies"`
}

// TriageResult is the outcome of one triage request, produced either by
// a safety override, the diagnosis model, or the builtin fallback. It
// is never mutated after creation; feedback attaches to the persisted
// AIConsultation instead.
type TriageResult struct {
	Confidence           int          `json:"confidence"`
	Diagnosis            Diagnosis    `json:"diagnosis"`
	Analysis             string       `json:"analysis"`
	Prescription         Prescription `json:"prescription"`
	Precautions          []string     `json:"precautions"`
	WhenToSeekDoctor     []string     `json:"when_to_seek_doctor"`
	DietaryAdvice        []string     `json:"dietary_advice,omitempty"`
	LifestyleChanges     []string     `json:"lifestyle_changes,omitempty"`
	FollowUpAdvice       []string     `json:"follow_up_advice,omitempty"`
	ExpectedRecoveryTime string       `json:"expected_recovery_time,omitempty"`
	RedFlagSymptoms      []string     `json:"red_flag_symptoms,omitempty"`

	RecommendedSpecialization string       `json:"recommended_specialization"`
	UrgencyLevel              UrgencyLevel `json:"urgency_level"`
	IsEmergency               bool         `json:"is_emergency"`
}

// AIConsultation is the persisted record of a model-based triage run:
// the request fields, the result, and follow-up bookkeeping.
type AIConsultation struct {
	Base
	PatientID          uuid.UUID    `db:"patient_id" json:"patient_id"`
	Symptoms           string       `db:"symptoms" json:"symptoms"`
	Duration           string       `db:"duration" json:"duration"`
	Severity           Severity     `db:"severity" json:"severity"`
	ExistingConditions []string     `db:"-" json:"existing_conditions"`
	CurrentMedications string       `db:"current_medications" json:"current_medications"`
	Result             TriageResult `db:"-" json:"result"`

	PatientFollowedUp bool       `db:"patient_followed_up" json:"patient_followed_up"`
	DoctorConsulted   bool       `db:"doctor_consulted" json:"doctor_consulted"`
	ConsultedDoctorID *uuid.UUID `db:"consulted_doctor_id" json:"consulted_doctor_id,omitempty"`
	WasHelpful        *bool      `db:"was_helpful" json:"was_helpful,omitempty"`
	PatientFeedback   *string    `db:"patient_feedback" json:"patient_feedback,omitempty"`

	// Serialized columns backing the slice/struct fields above.
	ConditionsJSON []byte `db:"existing_conditions" json:"-"`
	ResultJSON     []byte `db:"result" json:"-"`
}

type ConsultationFeedbackRequest struct {
	WasHelpful      bool   `json:"was_helpful"`
	PatientFeedback string `json:"patient_feedback" binding:"max=2000"`
}

type AnalyzeRequest struct {
	Symptoms           string   `json:"symptoms" binding:"required"`
	Duration           string   `json:"duration"`
	Severity           Severity `json:"severity" binding:"omitempty,oneof=mild moderate severe"`
	ExistingConditions []string `json:"existing_conditions"`
	CurrentMedications string   `json:"current_medications"`
}
