package mcp

import (
	"fmt"
	"strings"

	"github.com/ctxtier/ctxtier/pkg/catalog"
	"github.com/ctxtier/ctxtier/pkg/tier"
)

// formatClassification renders a classification as text for an LLM consumer.
func formatClassification(result tier.Classification, modules []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tier: %s (score %d)\n", result.Tier, result.Score)

	if len(result.Breakdown) > 0 {
		b.WriteString("\nScore breakdown:\n")
		for _, c := range result.Breakdown {
			fmt.Fprintf(&b, "  +%d  %s: %s\n", c.Points, c.Dimension, c.Reason)
		}
	} else {
		b.WriteString("\nNo dimension contributed to the score.\n")
	}

	b.WriteString("\nContext modules to load, in order:\n")
	for i, id := range modules {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, id)
	}

	return b.String()
}

// formatModules renders a tier's load plan with descriptions.
func formatModules(t tier.Tier, modules []catalog.Module) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Context modules for %s, in load order:\n", t)
	for i, m := range modules {
		if m.Description != "" {
			fmt.Fprintf(&b, "  %d. %s - %s\n", i+1, m.ID, m.Description)
		} else {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, m.ID)
		}
	}

	return b.String()
}

// formatThresholds renders the tier boundaries and scoring rubric.
func formatThresholds() string {
	var b strings.Builder

	b.WriteString("Tier thresholds (boundaries resolve upward):\n")
	fmt.Fprintf(&b, "  score >= %d -> %s\n", tier.Tier3Threshold, tier.Tier3)
	fmt.Fprintf(&b, "  score >= %d -> %s\n", tier.Tier2Threshold, tier.Tier2)
	fmt.Fprintf(&b, "  otherwise  -> %s\n", tier.Tier1)

	b.WriteString("\nScoring rubric (additive, strict comparisons):\n")
	b.WriteString("  entity_count > 10: +3, > 5: +1\n")
	b.WriteString("  integration_count > 5: +3, > 2: +1\n")
	b.WriteString("  scale ENTERPRISE: +2, MEDIUM: +1\n")
	b.WriteString("  compliance: +2, multi-region: +1, real-time: +1\n")

	return b.String()
}
