package tier

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Scale is the declared deployment size of the planned application.
type Scale int

const (
	ScaleSmall Scale = iota
	ScaleMedium
	ScaleEnterprise
)

var scaleNames = map[Scale]string{
	ScaleSmall:      "SMALL",
	ScaleMedium:     "MEDIUM",
	ScaleEnterprise: "ENTERPRISE",
}

// Valid reports whether s is one of the defined scales.
func (s Scale) Valid() bool {
	_, ok := scaleNames[s]
	return ok
}

func (s Scale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SCALE_UNKNOWN(%d)", int(s))
}

// ParseScale parses a scale name, case-insensitively. Unknown values are an
// error, never defaulted.
func ParseScale(s string) (Scale, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMALL":
		return ScaleSmall, nil
	case "MEDIUM":
		return ScaleMedium, nil
	case "ENTERPRISE":
		return ScaleEnterprise, nil
	}
	return 0, fmt.Errorf("unknown scale %q (expected SMALL, MEDIUM, or ENTERPRISE)", s)
}

// MarshalJSON implements json.Marshaler.
func (s Scale) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid scale %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scale) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseScale(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Inputs holds the answers that drive classification. Construct through
// NewInputs (or call Validate) before scoring; scoring itself has no failure
// path.
type Inputs struct {
	// EntityCount is the number of domain entities the application will have.
	EntityCount int `json:"entity_count"`

	// IntegrationCount is the number of external systems to integrate.
	IntegrationCount int `json:"integration_count"`

	// Scale is the declared deployment size.
	Scale Scale `json:"scale"`

	// HasCompliance is set when regulatory requirements apply.
	HasCompliance bool `json:"has_compliance"`

	// IsMultiRegion is set when deployment spans more than one region.
	IsMultiRegion bool `json:"is_multi_region"`

	// HasRealTime is set when push or streaming features are required.
	HasRealTime bool `json:"has_real_time"`
}

// NewInputs constructs a validated Inputs value.
func NewInputs(entities, integrations int, scale Scale, compliance, multiRegion, realTime bool) (Inputs, error) {
	in := Inputs{
		EntityCount:      entities,
		IntegrationCount: integrations,
		Scale:            scale,
		HasCompliance:    compliance,
		IsMultiRegion:    multiRegion,
		HasRealTime:      realTime,
	}
	if err := in.Validate(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

// Validate rejects out-of-range values with a message naming the field.
// Values are never coerced.
func (in Inputs) Validate() error {
	if in.EntityCount < 0 {
		return fmt.Errorf("entity_count must be non-negative, got %d", in.EntityCount)
	}
	if in.IntegrationCount < 0 {
		return fmt.Errorf("integration_count must be non-negative, got %d", in.IntegrationCount)
	}
	if !in.Scale.Valid() {
		return fmt.Errorf("scale must be SMALL, MEDIUM, or ENTERPRISE, got %d", int(in.Scale))
	}
	return nil
}
