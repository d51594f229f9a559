package triage

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthdost/kiosk-api/internal/model"
)

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		confidence int
		want       Tier
	}{
		{100, TierHigh},
		{99, TierModerate},
		{60, TierModerate},
		{59, TierLow},
		{0, TierLow},
		{-5, TierLow},
		{150, TierHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyConfidence(tt.confidence), "confidence %d", tt.confidence)
	}
}

func TestClassifyConfidenceTotal(t *testing.T) {
	// Every integer lands in exactly one tier.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		c := rng.Intn(400) - 150
		tier := ClassifyConfidence(c)
		switch tier {
		case TierHigh, TierModerate, TierLow:
		default:
			t.Fatalf("confidence %d produced unknown tier %q", c, tier)
		}
	}
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, ClampConfidence(-1))
	assert.Equal(t, 0, ClampConfidence(0))
	assert.Equal(t, 55, ClampConfidence(55))
	assert.Equal(t, 100, ClampConfidence(100))
	assert.Equal(t, 100, ClampConfidence(101))
}

func TestFallbackResult(t *testing.T) {
	result := fallbackResult()

	assert.Equal(t, 70, result.Confidence)
	assert.Equal(t, TierModerate, ClassifyConfidence(result.Confidence))
	assert.Equal(t, model.UrgencyRoutine, result.UrgencyLevel)
	assert.False(t, result.IsEmergency)
	assert.Len(t, result.Prescription.Medicines, 2)
	assert.Equal(t, "Acetaminophen", result.Prescription.Medicines[0].GenericName)
	assert.Equal(t, "Cetirizine Hydrochloride", result.Prescription.Medicines[1].GenericName)
}
