package catalog

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ctxtier/ctxtier/pkg/tier"
)

// overrideFile is the TOML shape of a catalog override:
//
//	[tiers]
//	tier_1 = ["core-principles", "tier1-simple-crud"]
//	tier_2 = ["core-principles", "tier2-standard-app", "api-patterns"]
//	tier_3 = ["core-principles", "tier3-enterprise", "api-patterns"]
//
//	[modules.api-patterns]
//	description = "REST API design patterns"
type overrideFile struct {
	Tiers   map[string][]string       `toml:"tiers"`
	Modules map[string]moduleOverride `toml:"modules"`
}

type moduleOverride struct {
	Description string `toml:"description"`
}

// LoadFile replaces the catalog's table with the contents of a TOML override
// file. The file must define all three tiers, each starting with CoreModule;
// a rejected file leaves the current table untouched.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	var file overrideFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}

	plans := make(map[tier.Tier][]string, len(file.Tiers))
	for key, modules := range file.Tiers {
		t, err := tier.ParseTier(key)
		if err != nil {
			return fmt.Errorf("catalog file: %w", err)
		}
		plan := make([]string, len(modules))
		copy(plan, modules)
		plans[t] = plan
	}

	if err := validatePlans(plans); err != nil {
		return fmt.Errorf("catalog file: %w", err)
	}

	descriptions := make(map[string]string, len(file.Modules))
	for id, m := range file.Modules {
		descriptions[id] = m.Description
	}

	c.replace(plans, descriptions)
	return nil
}
