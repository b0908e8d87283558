// Package tier classifies a planned application into an ordinal complexity
// tier. A weighted score is computed from project answers, mapped to a tier
// through fixed thresholds, and used downstream to decide how much context
// documentation an AI coding session should load.
package tier

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tier is the ordinal complexity classification.
type Tier int

const (
	Tier1 Tier = 1 + iota // simple CRUD
	Tier2                 // standard application
	Tier3                 // enterprise
)

var tierNames = map[Tier]string{
	Tier1: "TIER_1",
	Tier2: "TIER_2",
	Tier3: "TIER_3",
}

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	return []Tier{Tier1, Tier2, Tier3}
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TIER_UNKNOWN(%d)", int(t))
}

// ParseTier parses a tier from its name ("TIER_2"), short form ("tier2"),
// or ordinal ("2"). Unknown values are an error, never defaulted.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TIER_1", "TIER1", "1":
		return Tier1, nil
	case "TIER_2", "TIER2", "2":
		return Tier2, nil
	case "TIER_3", "TIER3", "3":
		return Tier3, nil
	}
	return 0, fmt.Errorf("unknown tier %q (expected TIER_1, TIER_2, or TIER_3)", s)
}

// MarshalJSON implements json.Marshaler.
func (t Tier) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid tier %d", int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. Accepts the string name or the
// ordinal as an integer.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var i int
		if err2 := json.Unmarshal(data, &i); err2 != nil {
			return err
		}
		if parsed := Tier(i); parsed.Valid() {
			*t = parsed
			return nil
		}
		return fmt.Errorf("unknown tier %d", i)
	}

	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
