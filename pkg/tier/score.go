package tier

import "fmt"

// Scoring brackets. Brackets within a dimension are mutually exclusive step
// functions: only the highest matching bracket contributes. Comparisons are
// strictly greater-than, so an entity count of exactly 10 lands in the >5
// bracket, not the >10 one.
const (
	entityHighMin      = 10 // entity_count > 10
	entityMidMin       = 5  // entity_count > 5
	integrationHighMin = 5  // integration_count > 5
	integrationMidMin  = 2  // integration_count > 2

	pointsEntityHigh      = 3
	pointsEntityMid       = 1
	pointsIntegrationHigh = 3
	pointsIntegrationMid  = 1
	pointsScaleEnterprise = 2
	pointsScaleMedium     = 1
	pointsCompliance      = 2
	pointsMultiRegion     = 1
	pointsRealTime        = 1
)

// Contribution records one dimension's matched bracket.
type Contribution struct {
	Dimension string `json:"dimension"`
	Reason    string `json:"reason"`
	Points    int    `json:"points"`
}

// Score computes the additive complexity score for in. Inputs are assumed
// valid; Score itself cannot fail.
func Score(in Inputs) int {
	score, _ := Breakdown(in)
	return score
}

// Breakdown computes the score along with the per-dimension contributions
// that produced it. Dimensions that contribute nothing are omitted.
func Breakdown(in Inputs) (int, []Contribution) {
	var contribs []Contribution

	add := func(dimension, reason string, points int) {
		contribs = append(contribs, Contribution{
			Dimension: dimension,
			Reason:    reason,
			Points:    points,
		})
	}

	switch {
	case in.EntityCount > entityHighMin:
		add("entity_count", fmt.Sprintf("%d entities (>%d)", in.EntityCount, entityHighMin), pointsEntityHigh)
	case in.EntityCount > entityMidMin:
		add("entity_count", fmt.Sprintf("%d entities (>%d)", in.EntityCount, entityMidMin), pointsEntityMid)
	}

	switch {
	case in.IntegrationCount > integrationHighMin:
		add("integration_count", fmt.Sprintf("%d integrations (>%d)", in.IntegrationCount, integrationHighMin), pointsIntegrationHigh)
	case in.IntegrationCount > integrationMidMin:
		add("integration_count", fmt.Sprintf("%d integrations (>%d)", in.IntegrationCount, integrationMidMin), pointsIntegrationMid)
	}

	switch in.Scale {
	case ScaleEnterprise:
		add("scale", "ENTERPRISE scale", pointsScaleEnterprise)
	case ScaleMedium:
		add("scale", "MEDIUM scale", pointsScaleMedium)
	}

	if in.HasCompliance {
		add("compliance", "regulatory requirements", pointsCompliance)
	}
	if in.IsMultiRegion {
		add("multi_region", "multi-region deployment", pointsMultiRegion)
	}
	if in.HasRealTime {
		add("real_time", "real-time features", pointsRealTime)
	}

	total := 0
	for _, c := range contribs {
		total += c.Points
	}
	return total, contribs
}
