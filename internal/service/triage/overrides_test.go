package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdost/kiosk-api/internal/model"
)

func intPtr(v int) *int { return &v }

func TestCheckOverridesPediatric(t *testing.T) {
	result := CheckOverrides(model.TriageRequest{
		Age:      intPtr(8),
		Symptoms: "mild cough",
	})

	require.NotNil(t, result)
	assert.Equal(t, "Pediatric Evaluation Required", result.Diagnosis.Primary)
	assert.Equal(t, 0, result.Confidence)
	assert.Empty(t, result.Prescription.Medicines)
	assert.Equal(t, string(model.SpecializationPediatrician), result.RecommendedSpecialization)
	assert.Equal(t, model.UrgencyUrgent, result.UrgencyLevel)
	assert.True(t, result.IsEmergency)
}

func TestCheckOverridesPediatricBoundary(t *testing.T) {
	assert.NotNil(t, CheckOverrides(model.TriageRequest{Age: intPtr(11), Symptoms: "cough"}))
	assert.Nil(t, CheckOverrides(model.TriageRequest{Age: intPtr(12), Symptoms: "cough"}))
	assert.Nil(t, CheckOverrides(model.TriageRequest{Symptoms: "cough"}), "unknown age is not pediatric")
}

func TestCheckOverridesPregnancy(t *testing.T) {
	byCondition := CheckOverrides(model.TriageRequest{
		Age:                intPtr(28),
		Symptoms:           "nausea in the morning",
		ExistingConditions: []string{" Pregnant "},
	})
	require.NotNil(t, byCondition)
	assert.Equal(t, "Maternal Health Screening Required", byCondition.Diagnosis.Primary)
	assert.Equal(t, string(model.SpecializationGynecologist), byCondition.RecommendedSpecialization)

	bySymptom := CheckOverrides(model.TriageRequest{
		Age:      intPtr(28),
		Symptoms: "I am pregnant and have back pain",
	})
	require.NotNil(t, bySymptom)
	assert.Equal(t, "Maternal Health Screening Required", bySymptom.Diagnosis.Primary)
}

func TestCheckOverridesEmergencyKeywords(t *testing.T) {
	for _, symptoms := range []string{
		"sudden CHEST PAIN since morning",
		"my father can't breathe properly",
		"difficulty breathing while climbing stairs",
		"cut my hand, bleeding heavily",
		"found unconscious near the well",
		"had a seizure an hour ago",
	} {
		result := CheckOverrides(model.TriageRequest{Age: intPtr(40), Symptoms: symptoms})
		require.NotNil(t, result, "expected override for %q", symptoms)
		assert.Equal(t, "Critical Clinical Emergency", result.Diagnosis.Primary)
		assert.Equal(t, model.UrgencyEmergency, result.UrgencyLevel)
		assert.True(t, result.IsEmergency)
		assert.Empty(t, result.Prescription.Medicines)
		assert.Contains(t, result.Precautions, "Call 108 immediately")
	}
}

func TestCheckOverridesPrecedence(t *testing.T) {
	// A pregnant child with emergency wording is still handled as
	// pediatric; pediatric outranks pregnancy outranks keywords.
	result := CheckOverrides(model.TriageRequest{
		Age:                intPtr(10),
		Symptoms:           "chest pain",
		ExistingConditions: []string{"pregnant"},
	})
	require.NotNil(t, result)
	assert.Equal(t, "Pediatric Evaluation Required", result.Diagnosis.Primary)

	result = CheckOverrides(model.TriageRequest{
		Age:                intPtr(25),
		Symptoms:           "chest pain",
		ExistingConditions: []string{"pregnant"},
	})
	require.NotNil(t, result)
	assert.Equal(t, "Maternal Health Screening Required", result.Diagnosis.Primary)
}

func TestCheckOverridesNoMatch(t *testing.T) {
	result := CheckOverrides(model.TriageRequest{
		Age:                intPtr(35),
		Symptoms:           "runny nose and sore throat",
		ExistingConditions: []string{"diabetes"},
	})
	assert.Nil(t, result)
}

func TestCheckOverridesIdempotent(t *testing.T) {
	req := model.TriageRequest{Age: intPtr(45), Symptoms: "seizure"}
	first := CheckOverrides(req)
	second := CheckOverrides(req)
	assert.Equal(t, first, second)
}
