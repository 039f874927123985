package scoring

// Outcome classifies a graded pick against the spread.
type Outcome string

const (
	OutcomeCovered Outcome = "COVERED"
	OutcomeFailed  Outcome = "FAILED"
	OutcomePushed  Outcome = "PUSHED"
	// OutcomePending marks picks on games without a final score. They
	// are never graded and contribute no points.
	OutcomePending Outcome = "PENDING"
)

// Classify grades one pick. The stored spread is added to the picked
// team's final score; the adjusted total is compared to the opponent's.
func Classify(pickedScore int, spreadValue float64, opponentScore int) Outcome {
	adjusted := float64(pickedScore) + spreadValue
	switch {
	case adjusted > float64(opponentScore):
		return OutcomeCovered
	case adjusted < float64(opponentScore):
		return OutcomeFailed
	default:
		return OutcomePushed
	}
}

// Multiplier maps an outcome to its scoring weight. A push pays half.
func (o Outcome) Multiplier() float64 {
	switch o {
	case OutcomeCovered:
		return 1
	case OutcomePushed:
		return 0.5
	default:
		return 0
	}
}

// Correct reports whether the outcome counts toward the correct-pick tally.
func (o Outcome) Correct() bool {
	return o == OutcomeCovered
}

// Points is the value of a graded pick: confidence weight times the
// outcome multiplier. Confidence zero always yields zero.
func Points(confidence int, outcome Outcome) float64 {
	if confidence <= 0 {
		return 0
	}

	return float64(confidence) * outcome.Multiplier()
}
