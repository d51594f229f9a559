package triage

import (
	"strings"

	"github.com/healthdost/kiosk-api/internal/model"
)

// Safety overrides intercept known high-risk presentations before any
// model call. Each rule is a pure predicate over the request; rules are
// evaluated in a fixed order and the first match wins. Override results
// carry confidence 0 and never contain prescribable medicines.

const pediatricAgeLimit = 12

var emergencyKeywords = []string{
	"chest pain",
	"can't breathe",
	"difficulty breathing",
	"bleeding heavily",
	"unconscious",
	"seizure",
}

// CheckOverrides returns a fully formed result when a safety rule
// matches, or nil when the request may proceed to model analysis.
// Precedence is pediatric, then pregnancy, then emergency keywords.
func CheckOverrides(req model.TriageRequest) *model.TriageResult {
	if req.Age != nil && *req.Age < pediatricAgeLimit {
		return pediatricOverride()
	}

	symptoms := strings.ToLower(req.Symptoms)

	if containsCondition(req.ExistingConditions, "pregnant") || strings.Contains(symptoms, "pregnant") {
		return pregnancyOverride()
	}

	for _, keyword := range emergencyKeywords {
		if strings.Contains(symptoms, keyword) {
			return emergencyOverride()
		}
	}

	return nil
}

func containsCondition(conditions []string, target string) bool {
	for _, c := range conditions {
		if strings.EqualFold(strings.TrimSpace(c), target) {
			return true
		}
	}
	return false
}

func pediatricOverride() *model.TriageResult {
	return &model.TriageResult{
		Confidence: 0,
		Diagnosis:  model.Diagnosis{Primary: "Pediatric Evaluation Required", Differential: []model.DifferentialDiagnosis{}},
		Analysis:   "HealthDost AI is designed for adult preliminary screening. Children require high-fidelity manual examination by a qualified pediatrician.",
		Prescription: model.Prescription{
			Medicines:    []model.Medicine{},
			HomeRemedies: []string{"Maintain hydration", "Monitor temperature"},
		},
		Precautions:               []string{"Do not administer OTC drugs without pediatric consent"},
		WhenToSeekDoctor:          []string{"Fever > 102°F", "Difficulty breathing", "Lethargy"},
		RecommendedSpecialization: string(model.SpecializationPediatrician),
		UrgencyLevel:              model.UrgencyUrgent,
		IsEmergency:               true,
	}
}

func pregnancyOverride() *model.TriageResult {
	return &model.TriageResult{
		Confidence: 0,
		Diagnosis:  model.Diagnosis{Primary: "Maternal Health Screening Required", Differential: []model.DifferentialDiagnosis{}},
		Analysis:   "Safety Protocol: Any symptoms during pregnancy require immediate verification by your obstetrician to ensure fetal safety.",
		Prescription: model.Prescription{
			Medicines:    []model.Medicine{},
			HomeRemedies: []string{"Rest", "Fluid intake"},
		},
		Precautions:               []string{"Strictly avoid self-medication during pregnancy"},
		WhenToSeekDoctor:          []string{"Any vaginal bleeding", "Severe abdominal pain", "High fever"},
		RecommendedSpecialization: string(model.SpecializationGynecologist),
		UrgencyLevel:              model.UrgencyUrgent,
		IsEmergency:               true,
	}
}

func emergencyOverride() *model.TriageResult {
	return &model.TriageResult{
		Confidence: 0,
		Diagnosis:  model.Diagnosis{Primary: "Critical Clinical Emergency", Differential: []model.DifferentialDiagnosis{}},
		Analysis:   "EMERGENCY: Your symptoms indicate life-threatening risk. Proceed to the nearest hospital immediately or call emergency services.",
		Prescription: model.Prescription{
			Medicines:    []model.Medicine{},
			HomeRemedies: []string{},
		},
		Precautions:               []string{"DO NOT DELAY TREATMENT", "Call 108 immediately"},
		WhenToSeekDoctor:          []string{"Immediate Emergency Help Required"},
		RecommendedSpecialization: string(model.SpecializationEmergency),
		UrgencyLevel:              model.UrgencyEmergency,
		IsEmergency:               true,
	}
}
