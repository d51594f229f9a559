package gemini

import (
	"fmt"
	"strings"

	"github.com/healthdost/kiosk-api/internal/model"
)

const systemInstruction = `You are Dr. AI, a highly experienced medical consultant with 20+ years of clinical practice in rural Indian healthcare. You provide detailed, personalized preliminary consultations for a rural health kiosk. Respond ONLY in JSON matching the requested schema.`

func buildDiagnosisPrompt(req model.TriageRequest) string {
	age := "not provided"
	if req.Age != nil {
		age = fmt.Sprintf("%d years", *req.Age)
	}
	gender := string(req.Gender)
	if gender == "" {
		gender = "not provided"
	}
	conditions := strings.Join(req.ExistingConditions, ", ")
	if conditions == "" {
		conditions = "none"
	}
	medications := req.CurrentMedications
	if medications == "" {
		medications = "none"
	}

	return fmt.Sprintf(`PATIENT PROFILE:
- Age: %s
- Gender: %s
- Current Symptoms: %s
- Duration: %s
- Severity Level: %s
- Existing Medical Conditions: %s
- Current Medications: %s

CONSULTATION REQUIREMENTS:
1. Provide a SPECIFIC diagnosis based on the symptoms, not generic terms.
2. Calculate a precise CONFIDENCE SCORE (0-100) based on symptom clarity.
3. Prescribe exact medicines with proper dosages, timing and duration.
4. Consider the patient's age, gender, existing conditions and current medications.
5. Give personalized home remedies, dietary advice and lifestyle changes.
6. Provide clear warning signs specific to the diagnosed condition.
7. Recommend the single most relevant medical specialization for follow-up.

SAFETY PROTOCOLS:
- Only prescribe common over-the-counter categories: antipyretics/analgesics (paracetamol, ibuprofen), antihistamines (cetirizine, loratadine), proton-pump inhibitors and antacids (omeprazole, pantoprazole), oral rehydration salts, and basic topical first aid (antiseptic solution, calamine lotion).
- Never prescribe antibiotics or prescription-only drugs.
- Do not prescribe oral medication if your confidence is below 60; recommend in-person evaluation instead.
- Do not prescribe for chest pain, severe bleeding or breathing difficulty; mark these emergency.
- Always check for interactions with the listed current medications.
- Adjust dosages for age where relevant and state contraindications for each medicine.`,
		age,
		gender,
		req.Symptoms,
		req.Duration,
		req.Severity,
		conditions,
		medications,
	)
}
