package tier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTier_String(t *testing.T) {
	assert.Equal(t, "TIER_1", Tier1.String())
	assert.Equal(t, "TIER_2", Tier2.String())
	assert.Equal(t, "TIER_3", Tier3.String())
	assert.Contains(t, Tier(9).String(), "UNKNOWN")
}

func TestTier_Ordering(t *testing.T) {
	assert.Less(t, Tier1, Tier2)
	assert.Less(t, Tier2, Tier3)
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input string
		want  Tier
	}{
		{"TIER_1", Tier1},
		{"tier_2", Tier2},
		{"TIER3", Tier3},
		{"3", Tier3},
		{" tier_1 ", Tier1},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.input)
		require.NoError(t, err, "input=%q", tt.input)
		assert.Equal(t, tt.want, got, "input=%q", tt.input)
	}

	_, err := ParseTier("TIER_4")
	assert.Error(t, err)
	_, err = ParseTier("")
	assert.Error(t, err)
}

func TestTier_JSONRoundTrip(t *testing.T) {
	for _, tr := range Tiers() {
		data, err := json.Marshal(tr)
		require.NoError(t, err)

		var got Tier
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, tr, got)
	}
}

func TestTier_UnmarshalOrdinal(t *testing.T) {
	var got Tier
	require.NoError(t, json.Unmarshal([]byte(`2`), &got))
	assert.Equal(t, Tier2, got)

	assert.Error(t, json.Unmarshal([]byte(`7`), &got))
	assert.Error(t, json.Unmarshal([]byte(`"TIER_9"`), &got))
}

func TestScale_Parse(t *testing.T) {
	tests := []struct {
		input string
		want  Scale
	}{
		{"SMALL", ScaleSmall},
		{"small", ScaleSmall},
		{"Medium", ScaleMedium},
		{"ENTERPRISE", ScaleEnterprise},
	}

	for _, tt := range tests {
		got, err := ParseScale(tt.input)
		require.NoError(t, err, "input=%q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseScale("huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "huge")
}

func TestScale_JSONRoundTrip(t *testing.T) {
	for _, sc := range []Scale{ScaleSmall, ScaleMedium, ScaleEnterprise} {
		data, err := json.Marshal(sc)
		require.NoError(t, err)

		var got Scale
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, sc, got)
	}
}

func TestInputs_JSONDecode(t *testing.T) {
	var in Inputs
	err := json.Unmarshal([]byte(`{
		"entity_count": 6,
		"integration_count": 3,
		"scale": "MEDIUM",
		"has_compliance": false,
		"is_multi_region": false,
		"has_real_time": false
	}`), &in)
	require.NoError(t, err)
	require.NoError(t, in.Validate())

	assert.Equal(t, 6, in.EntityCount)
	assert.Equal(t, ScaleMedium, in.Scale)
}

func TestNewInputs_RejectsInvalid(t *testing.T) {
	_, err := NewInputs(-1, 0, ScaleSmall, false, false, false)
	assert.ErrorContains(t, err, "entity_count")

	_, err = NewInputs(0, -1, ScaleSmall, false, false, false)
	assert.ErrorContains(t, err, "integration_count")

	_, err = NewInputs(0, 0, Scale(42), false, false, false)
	assert.ErrorContains(t, err, "scale")
}
