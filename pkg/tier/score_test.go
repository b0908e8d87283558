package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		inputs    Inputs
		wantScore int
		wantTier  Tier
	}{
		{
			name:      "minimal small app",
			inputs:    Inputs{EntityCount: 3, IntegrationCount: 0, Scale: ScaleSmall},
			wantScore: 0,
			wantTier:  Tier1,
		},
		{
			name:      "mid brackets land exactly on tier 2 threshold",
			inputs:    Inputs{EntityCount: 6, IntegrationCount: 3, Scale: ScaleMedium},
			wantScore: 3,
			wantTier:  Tier2,
		},
		{
			name: "everything maxed",
			inputs: Inputs{
				EntityCount:      12,
				IntegrationCount: 6,
				Scale:            ScaleEnterprise,
				HasCompliance:    true,
				IsMultiRegion:    true,
				HasRealTime:      true,
			},
			wantScore: 12,
			wantTier:  Tier3,
		},
		{
			name:      "bracket minimums excluded by strict comparison",
			inputs:    Inputs{EntityCount: 5, IntegrationCount: 2, Scale: ScaleSmall},
			wantScore: 0,
			wantTier:  Tier1,
		},
		{
			name:      "compliance alone stays tier 1",
			inputs:    Inputs{Scale: ScaleSmall, HasCompliance: true},
			wantScore: 2,
			wantTier:  Tier1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantScore, Score(tt.inputs))
			assert.Equal(t, tt.wantTier, Compute(tt.inputs))
		})
	}
}

func TestScore_EntityBrackets(t *testing.T) {
	tests := []struct {
		entities int
		want     int
	}{
		{0, 0},
		{5, 0},  // not >5
		{6, 1},
		{10, 1}, // not >10, stays in the >5 bracket
		{11, 3},
		{100, 3}, // contribution is capped per dimension
	}

	for _, tt := range tests {
		in := Inputs{EntityCount: tt.entities, Scale: ScaleSmall}
		assert.Equal(t, tt.want, Score(in), "entities=%d", tt.entities)
	}
}

func TestScore_IntegrationBrackets(t *testing.T) {
	tests := []struct {
		integrations int
		want         int
	}{
		{0, 0},
		{2, 0}, // not >2
		{3, 1},
		{5, 1}, // not >5
		{6, 3},
		{50, 3},
	}

	for _, tt := range tests {
		in := Inputs{IntegrationCount: tt.integrations, Scale: ScaleSmall}
		assert.Equal(t, tt.want, Score(in), "integrations=%d", tt.integrations)
	}
}

func TestScore_ScaleContributions(t *testing.T) {
	assert.Equal(t, 0, Score(Inputs{Scale: ScaleSmall}))
	assert.Equal(t, 1, Score(Inputs{Scale: ScaleMedium}))
	assert.Equal(t, 2, Score(Inputs{Scale: ScaleEnterprise}))
}

func TestScore_BracketsMutuallyExclusive(t *testing.T) {
	// A dimension never contributes from two brackets at once.
	in := Inputs{EntityCount: 11, IntegrationCount: 6, Scale: ScaleEnterprise}

	_, contribs := Breakdown(in)

	seen := make(map[string]int)
	for _, c := range contribs {
		seen[c.Dimension]++
	}
	for dim, count := range seen {
		assert.Equal(t, 1, count, "dimension %s contributed %d times", dim, count)
	}
}

func TestScore_Deterministic(t *testing.T) {
	in := Inputs{
		EntityCount:      7,
		IntegrationCount: 4,
		Scale:            ScaleMedium,
		HasCompliance:    true,
		HasRealTime:      true,
	}

	first := Compute(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(in))
	}
}

func TestScore_Monotonic(t *testing.T) {
	base := Inputs{
		EntityCount:      4,
		IntegrationCount: 1,
		Scale:            ScaleSmall,
	}
	baseScore := Score(base)

	bump := []struct {
		name string
		in   Inputs
	}{
		{"more entities", func() Inputs { in := base; in.EntityCount = 20; return in }()},
		{"more integrations", func() Inputs { in := base; in.IntegrationCount = 10; return in }()},
		{"bigger scale", func() Inputs { in := base; in.Scale = ScaleEnterprise; return in }()},
		{"compliance", func() Inputs { in := base; in.HasCompliance = true; return in }()},
		{"multi-region", func() Inputs { in := base; in.IsMultiRegion = true; return in }()},
		{"real-time", func() Inputs { in := base; in.HasRealTime = true; return in }()},
	}

	for _, tt := range bump {
		t.Run(tt.name, func(t *testing.T) {
			assert.GreaterOrEqual(t, Score(tt.in), baseScore)
			assert.GreaterOrEqual(t, Compute(tt.in), Compute(base))
		})
	}
}

func TestBreakdown_SumsToScore(t *testing.T) {
	in := Inputs{
		EntityCount:      12,
		IntegrationCount: 3,
		Scale:            ScaleMedium,
		HasCompliance:    true,
	}

	score, contribs := Breakdown(in)
	require.NotEmpty(t, contribs)

	sum := 0
	for _, c := range contribs {
		assert.NotEmpty(t, c.Dimension)
		assert.NotEmpty(t, c.Reason)
		assert.Positive(t, c.Points)
		sum += c.Points
	}
	assert.Equal(t, score, sum)
}

func TestBreakdown_EmptyForZeroScore(t *testing.T) {
	score, contribs := Breakdown(Inputs{Scale: ScaleSmall})
	assert.Zero(t, score)
	assert.Empty(t, contribs)
}
