package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/healthdost/kiosk-api/internal/model"
)

// responseSchema is the strict output contract sent with every
// diagnosis call. Field names match the wire payload, not the internal
// model.
var responseSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "confidence": {"type": "NUMBER"},
    "diagnosis": {
      "type": "OBJECT",
      "properties": {
        "primary": {"type": "STRING"},
        "differential": {
          "type": "ARRAY",
          "items": {
            "type": "OBJECT",
            "properties": {
              "condition": {"type": "STRING"},
              "probability": {"type": "NUMBER"}
            },
            "required": ["condition", "probability"]
          }
        }
      },
      "required": ["primary", "differential"]
    },
    "analysis": {"type": "STRING"},
    "prescription": {
      "type": "OBJECT",
      "properties": {
        "medicines": {
          "type": "ARRAY",
          "items": {
            "type": "OBJECT",
            "properties": {
              "name": {"type": "STRING"},
              "genericName": {"type": "STRING"},
              "dosage": {"type": "STRING"},
              "frequency": {"type": "STRING"},
              "duration": {"type": "STRING"},
              "timing": {"type": "STRING"},
              "purpose": {"type": "STRING"},
              "precautions": {"type": "STRING"},
              "sideEffects": {"type": "STRING"},
              "contraindications": {"type": "STRING"}
            },
            "required": ["name", "dosage", "duration", "purpose", "precautions"]
          }
        },
        "homeRemedies": {"type": "ARRAY", "items": {"type": "STRING"}},
        "dietaryAdvice": {"type": "ARRAY", "items": {"type": "STRING"}},
        "lifestyleModifications": {"type": "ARRAY", "items": {"type": "STRING"}}
      },
      "required": ["medicines", "homeRemedies"]
    },
    "precautions": {"type": "ARRAY", "items": {"type": "STRING"}},
    "whenToSeekDoctor": {"type": "ARRAY", "items": {"type": "STRING"}},
    "followUpAdvice": {"type": "ARRAY", "items": {"type": "STRING"}},
    "recommendedSpecialization": {"type": "STRING"},
    "urgencyLevel": {"type": "STRING"},
    "expectedRecoveryTime": {"type": "STRING"},
    "redFlagSymptoms": {"type": "ARRAY", "items": {"type": "STRING"}}
  },
  "required": ["confidence", "diagnosis", "analysis", "prescription", "precautions", "whenToSeekDoctor", "recommendedSpecialization", "urgencyLevel"]
}`)

type diagnosisPayload struct {
	Confidence *float64 `json:"confidence"`
	Diagnosis  struct {
		Primary      string `json:"primary"`
		Differential []struct {
			Condition   string  `json:"condition"`
			Probability float64 `json:"probability"`
		} `json:"differential"`
	} `json:"diagnosis"`
	Analysis     string `json:"analysis"`
	Prescription struct {
		Medicines []struct {
			Name              string `json:"name"`
			GenericName       string `json:"genericName"`
			Dosage            string `json:"dosage"`
			Frequency         string `json:"frequency"`
			Duration          string `json:"duration"`
			Timing            string `json:"timing"`
			Purpose           string `json:"purpose"`
			Precautions       string `json:"precautions"`
			SideEffects       string `json:"sideEffects"`
			Contraindications string `json:"contraindications"`
		} `json:"medicines"`
		HomeRemedies           []string `json:"homeRemedies"`
		DietaryAdvice          []string `json:"dietaryAdvice"`
		LifestyleModifications []string `json:"lifestyleModifications"`
	} `json:"prescription"`
	Precautions               []string `json:"precautions"`
	WhenToSeekDoctor          []string `json:"whenToSeekDoctor"`
	FollowUpAdvice            []string `json:"followUpAdvice"`
	RecommendedSpecialization string   `json:"recommendedSpecialization"`
	UrgencyLevel              string   `json:"urgencyLevel"`
	ExpectedRecoveryTime      string   `json:"expectedRecoveryTime"`
	RedFlagSymptoms           []string `json:"redFlagSymptoms"`
}

// Diagnose runs one model-based consultation. Any transport error or
// schema violation comes back as an error; the caller decides how to
// degrade.
func (c *Client) Diagnose(ctx context.Context, req model.TriageRequest) (*model.TriageResult, error) {
	raw, err := c.GenerateJSON(ctx, systemInstruction, buildDiagnosisPrompt(req), responseSchema)
	if err != nil {
		return nil, err
	}

	var payload diagnosisPayload
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}

	return payload.toResult(), nil
}

func validatePayload(p *diagnosisPayload) error {
	switch {
	case p.Confidence == nil:
		return fmt.Errorf("%w: missing confidence", ErrMalformedResponse)
	case p.Diagnosis.Primary == "":
		return fmt.Errorf("%w: missing primary diagnosis", ErrMalformedResponse)
	case p.Analysis == "":
		return fmt.Errorf("%w: missing analysis", ErrMalformedResponse)
	case p.RecommendedSpecialization == "":
		return fmt.Errorf("%w: missing recommended specialization", ErrMalformedResponse)
	}

	switch model.UrgencyLevel(p.UrgencyLevel) {
	case model.UrgencyRoutine, model.UrgencyUrgent, model.UrgencyEmergency:
	default:
		return fmt.Errorf("%w: invalid urgency level %q", ErrMalformedResponse, p.UrgencyLevel)
	}
	return nil
}

func (p *diagnosisPayload) toResult() *model.TriageResult {
	confidence := int(*p.Confidence)
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	result := &model.TriageResult{
		Confidence: confidence,
		Diagnosis: model.Diagnosis{
			Primary:      p.Diagnosis.Primary,
			Differential: make([]model.DifferentialDiagnosis, 0, len(p.Diagnosis.Differential)),
		},
		Analysis: p.Analysis,
		Prescription: model.Prescription{
			Medicines:    make([]model.Medicine, 0, len(p.Prescription.Medicines)),
			HomeRemedies: p.Prescription.HomeRemedies,
		},
		Precautions:               p.Precautions,
		WhenToSeekDoctor:          p.WhenToSeekDoctor,
		DietaryAdvice:             p.Prescription.DietaryAdvice,
		LifestyleChanges:          p.Prescription.LifestyleModifications,
		FollowUpAdvice:            p.FollowUpAdvice,
		ExpectedRecoveryTime:      p.ExpectedRecoveryTime,
		RedFlagSymptoms:           p.RedFlagSymptoms,
		RecommendedSpecialization: p.RecommendedSpecialization,
		UrgencyLevel:              model.UrgencyLevel(p.UrgencyLevel),
	}

	for _, d := range p.Diagnosis.Differential {
		result.Diagnosis.Differential = append(result.Diagnosis.Differential, model.DifferentialDiagnosis{
			Condition:   d.Condition,
			Probability: d.Probability,
		})
	}
	for _, m := range p.Prescription.Medicines {
		result.Prescription.Medicines = append(result.Prescription.Medicines, model.Medicine{
			Name:              m.Name,
			GenericName:       m.GenericName,
			Dosage:            m.Dosage,
			Frequency:         m.Frequency,
			Duration:          m.Duration,
			Timing:            m.Timing,
			Purpose:           m.Purpose,
			Precautions:       m.Precautions,
			SideEffects:       m.SideEffects,
			Contraindications: m.Contraindications,
		})
	}
	return result
}
