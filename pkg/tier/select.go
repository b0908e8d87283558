package tier

// Tier thresholds. Boundaries resolve upward: a score of exactly
// Tier3Threshold is TIER_3, exactly Tier2Threshold is TIER_2.
const (
	Tier2Threshold = 3
	Tier3Threshold = 7
)

// Select maps a score to a tier. Total over all non-negative scores.
func Select(score int) Tier {
	switch {
	case score >= Tier3Threshold:
		return Tier3
	case score >= Tier2Threshold:
		return Tier2
	default:
		return Tier1
	}
}

// Compute scores in and selects its tier. Inputs are assumed valid.
func Compute(in Inputs) Tier {
	return Select(Score(in))
}

// Classification is the full result of classifying one set of inputs.
type Classification struct {
	Tier      Tier           `json:"tier"`
	Score     int            `json:"score"`
	Breakdown []Contribution `json:"breakdown,omitempty"`
}

// Classify validates in and returns its classification with the score
// breakdown. This is the boundary entry point: invalid inputs are rejected
// here with an error naming the offending field.
func Classify(in Inputs) (Classification, error) {
	if err := in.Validate(); err != nil {
		return Classification{}, err
	}

	score, breakdown := Breakdown(in)
	return Classification{
		Tier:      Select(score),
		Score:     score,
		Breakdown: breakdown,
	}, nil
}
