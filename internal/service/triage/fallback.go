package triage

import (
	"github.com/healthdost/kiosk-api/internal/model"
)

// fallbackResult is returned whenever the diagnosis model is
// unreachable or replies with something unusable. It is deliberately
// conservative: confidence 70 lands in the moderate tier and nothing
// in the prescription is anything but over-the-counter.
func fallbackResult() *model.TriageResult {
	return &model.TriageResult{
		Confidence: 70,
		Diagnosis: model.Diagnosis{
			Primary: "Symptomatic Treatment Required - AI Consultation Unavailable",
			Differential: []model.DifferentialDiagnosis{
				{Condition: "Viral Upper Respiratory Infection", Probability: 60},
				{Condition: "Stress-related Symptoms", Probability: 25},
			},
		},
		Analysis: "The AI consultation service is temporarily unavailable, so a complete analysis cannot be provided. Based on common symptom patterns, here is a basic supportive approach. Please consult a healthcare professional for proper evaluation.",
		Prescription: model.Prescription{
			Medicines: []model.Medicine{
				{
					Name:              "Paracetamol (Crocin/Dolo)",
					GenericName:       "Acetaminophen",
					Dosage:            "500mg",
					Frequency:         "Every 6-8 hours",
					Duration:          "3-5 days",
					Timing:            "After meals",
					Purpose:           "Fever reduction and pain relief",
					Precautions:       "Do not exceed 4 doses per day. Consult a doctor if symptoms persist.",
					SideEffects:       "Rare: nausea, skin rash",
					Contraindications: "Severe liver disease, alcohol dependency",
				},
				{
					Name:              "Cetirizine (Zyrtec)",
					GenericName:       "Cetirizine Hydrochloride",
					Dosage:            "10mg",
					Frequency:         "Once daily",
					Duration:          "5-7 days",
					Timing:            "At bedtime",
					Purpose:           "Reduce allergic symptoms, runny nose",
					Precautions:       "May cause drowsiness. Avoid driving.",
					SideEffects:       "Drowsiness, dry mouth, fatigue",
					Contraindications: "Severe kidney disease",
				},
			},
			HomeRemedies: []string{
				"Drink warm water with honey and ginger 3-4 times daily",
				"Steam inhalation for 10-15 minutes twice daily",
				"Adequate rest for 7-8 hours daily",
			},
		},
		Precautions: []string{
			"Monitor temperature every 4-6 hours",
			"Watch for signs of dehydration",
			"Keep emergency contact numbers handy",
		},
		WhenToSeekDoctor: []string{
			"Fever above 102°F for more than 3 days",
			"Difficulty breathing or chest pain",
			"No improvement after 5 days",
		},
		DietaryAdvice: []string{
			"Increase fluid intake to 3-4 liters per day",
			"Consume warm soups and broths",
		},
		FollowUpAdvice: []string{
			"Schedule a follow-up if symptoms persist beyond 5 days",
		},
		ExpectedRecoveryTime:      "5-7 days with rest",
		RecommendedSpecialization: string(model.SpecializationGeneralPhysician),
		UrgencyLevel:              model.UrgencyRoutine,
		IsEmergency:               false,
	}
}
