package triage

// Tier selects the presentation and follow-on actions for a triage
// result based on its final confidence value.
type Tier string

const (
	// TierHigh treats the diagnosis as definitive; the full
	// prescription is actionable and no specialist routing is forced.
	TierHigh Tier = "high"
	// TierModerate treats medicines as relief-only and mandates a
	// specialist lookup for the recommended specialization.
	TierModerate Tier = "moderate"
	// TierLow presents no medication at all and surfaces emergency
	// escalation actions instead.
	TierLow Tier = "low"
)

// ClassifyConfidence partitions [0,100] into the three tiers. Exactly
// 100 is high, [60,100) is moderate, everything below 60 is low.
// Values outside the range are clamped first, so the partition is
// total.
func ClassifyConfidence(confidence int) Tier {
	confidence = ClampConfidence(confidence)
	switch {
	case confidence == 100:
		return TierHigh
	case confidence >= 60:
		return TierModerate
	default:
		return TierLow
	}
}

// ClampConfidence forces a model-reported score into [0,100].
func ClampConfidence(confidence int) int {
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
