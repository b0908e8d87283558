// Package catalog maps complexity tiers to ordered lists of context modules.
// A context module is a named unit of reference documentation that a
// downstream AI coding session loads before generating code. The list order
// is load precedence; every plan starts with the universal core-principles
// module.
package catalog

import (
	"fmt"
	"sync"

	"github.com/ctxtier/ctxtier/pkg/tier"
)

// CoreModule is the universal module every plan starts with.
const CoreModule = "core-principles"

// Module describes one context module.
type Module struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// defaultPlans is the built-in tier-to-modules table.
func defaultPlans() map[tier.Tier][]string {
	return map[tier.Tier][]string{
		tier.Tier1: {
			CoreModule,
			"tier1-simple-crud",
			"database-patterns",
			"tech-stack-specific",
		},
		tier.Tier2: {
			CoreModule,
			"tier2-standard-app",
			"database-patterns",
			"api-patterns",
			"security-patterns",
			"testing-patterns",
			"tech-stack-specific",
		},
		tier.Tier3: {
			CoreModule,
			"tier3-enterprise",
			"database-patterns",
			"api-patterns",
			"security-patterns",
			"testing-patterns",
			"deployment-patterns",
			"tech-stack-specific",
		},
	}
}

func defaultDescriptions() map[string]string {
	return map[string]string{
		CoreModule:            "Universal engineering principles loaded for every tier",
		"tier1-simple-crud":   "Guidance for small CRUD applications",
		"tier2-standard-app":  "Guidance for standard multi-entity applications",
		"tier3-enterprise":    "Guidance for enterprise-grade platforms",
		"database-patterns":   "Schema design and data access patterns",
		"api-patterns":        "REST API design and versioning patterns",
		"security-patterns":   "Authentication, authorization, and hardening patterns",
		"testing-patterns":    "Unit, integration, and end-to-end testing patterns",
		"deployment-patterns": "CI/CD, infrastructure, and release patterns",
		"tech-stack-specific": "Conventions for the selected technology stack",
	}
}

// Catalog holds the current tier-to-modules table. The built-in table is
// fixed; an override file may replace it, and a watcher may reload it, so
// reads and reloads are guarded.
type Catalog struct {
	mu           sync.RWMutex
	plans        map[tier.Tier][]string
	descriptions map[string]string
}

// Default returns a catalog with the built-in table.
func Default() *Catalog {
	return &Catalog{
		plans:        defaultPlans(),
		descriptions: defaultDescriptions(),
	}
}

// ModulesFor returns the ordered module identifiers for t. The returned
// slice is a copy. Unknown tiers return nil; the tier enum is closed, so
// callers holding a valid Tier always get a non-empty plan.
func (c *Catalog) ModulesFor(t tier.Tier) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	plan, ok := c.plans[t]
	if !ok {
		return nil
	}

	out := make([]string, len(plan))
	copy(out, plan)
	return out
}

// Modules returns the plan for t with module descriptions attached.
func (c *Catalog) Modules(t tier.Tier) []Module {
	c.mu.RLock()
	defer c.mu.RUnlock()

	plan, ok := c.plans[t]
	if !ok {
		return nil
	}

	out := make([]Module, 0, len(plan))
	for _, id := range plan {
		out = append(out, Module{ID: id, Description: c.descriptions[id]})
	}
	return out
}

// Describe returns the description for a module identifier.
func (c *Catalog) Describe(id string) (Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	desc, ok := c.descriptions[id]
	if !ok {
		return Module{}, false
	}
	return Module{ID: id, Description: desc}, true
}

// replace swaps in a validated table. Called by the loader.
func (c *Catalog) replace(plans map[tier.Tier][]string, descriptions map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.plans = plans
	for id, desc := range descriptions {
		c.descriptions[id] = desc
	}
}

// validatePlans checks an override table before it is applied: every tier
// must have a non-empty list starting with CoreModule.
func validatePlans(plans map[tier.Tier][]string) error {
	for _, t := range tier.Tiers() {
		plan, ok := plans[t]
		if !ok || len(plan) == 0 {
			return fmt.Errorf("tier %s has no context modules", t)
		}
		if plan[0] != CoreModule {
			return fmt.Errorf("tier %s must start with %q, got %q", t, CoreModule, plan[0])
		}
	}
	return nil
}
