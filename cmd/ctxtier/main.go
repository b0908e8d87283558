// Package main provides the ctxtier CLI.
//
// ctxtier classifies a planned application into a complexity tier from a
// handful of answers and prints the context modules an AI coding session
// should load, in order.
//
// Usage:
//
//	ctxtier classify --entities N --integrations N --scale SCALE [flags]
//	ctxtier modules <tier>       - Show the load plan for a tier
//	ctxtier thresholds           - Show the scoring rubric and thresholds
//	ctxtier version              - Show version
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctxtier/ctxtier/pkg/catalog"
	"github.com/ctxtier/ctxtier/pkg/tier"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "classify":
		err = cmdClassify(args)
	case "modules":
		err = cmdModules(args)
	case "thresholds":
		err = cmdThresholds(args)
	case "version", "-v", "--version":
		fmt.Printf("ctxtier version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ctxtier - Complexity tier classification for AI coding sessions

Usage:
  ctxtier <command> [flags]

Commands:
  classify      Classify a planned application into a tier
  modules       Show the context-module load plan for a tier
  thresholds    Show the scoring rubric and tier thresholds
  version       Show version
  help          Show this help

Classify flags:
  --entities N        Number of domain entities (default 0)
  --integrations N    Number of external integrations (default 0)
  --scale SCALE       Deployment scale: small, medium, enterprise (required)
  --compliance        Regulatory requirements apply
  --multi-region      Deployment spans more than one region
  --real-time         Push or streaming features required
  --catalog PATH      TOML catalog override file
  --json              Output JSON

Examples:
  ctxtier classify --entities 6 --integrations 3 --scale medium
  ctxtier modules tier_2
  ctxtier classify --scale enterprise --compliance --json`)
}

// classifyOptions holds parsed classify flags.
type classifyOptions struct {
	inputs      tier.Inputs
	catalogPath string
	jsonOut     bool
}

// parseClassifyArgs parses classify command flags.
func parseClassifyArgs(args []string) (classifyOptions, error) {
	opts := classifyOptions{}
	scaleSet := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--entities":
			i++
			n, err := intArg(args, i, "--entities")
			if err != nil {
				return opts, err
			}
			opts.inputs.EntityCount = n
		case "--integrations":
			i++
			n, err := intArg(args, i, "--integrations")
			if err != nil {
				return opts, err
			}
			opts.inputs.IntegrationCount = n
		case "--scale":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("--scale requires a value")
			}
			scale, err := tier.ParseScale(args[i])
			if err != nil {
				return opts, err
			}
			opts.inputs.Scale = scale
			scaleSet = true
		case "--compliance":
			opts.inputs.HasCompliance = true
		case "--multi-region":
			opts.inputs.IsMultiRegion = true
		case "--real-time":
			opts.inputs.HasRealTime = true
		case "--catalog":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("--catalog requires a value")
			}
			opts.catalogPath = args[i]
		case "--json":
			opts.jsonOut = true
		default:
			return opts, fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if !scaleSet {
		return opts, fmt.Errorf("--scale is required (small, medium, or enterprise)")
	}
	if err := opts.inputs.Validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

func intArg(args []string, i int, flag string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s requires a value", flag)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", flag, args[i])
	}
	return n, nil
}

// loadCatalog returns the default catalog, with the override applied when a
// path is given.
func loadCatalog(path string) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if path != "" {
		if err := cat.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func cmdClassify(args []string) error {
	opts, err := parseClassifyArgs(args)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}

	result, err := tier.Classify(opts.inputs)
	if err != nil {
		return err
	}
	modules := cat.ModulesFor(result.Tier)

	if opts.jsonOut {
		return printJSON(struct {
			Tier      tier.Tier           `json:"tier"`
			Score     int                 `json:"score"`
			Breakdown []tier.Contribution `json:"breakdown"`
			Modules   []string            `json:"modules"`
		}{result.Tier, result.Score, result.Breakdown, modules})
	}

	fmt.Printf("Tier:  %s\n", result.Tier)
	fmt.Printf("Score: %d\n", result.Score)
	if len(result.Breakdown) > 0 {
		fmt.Println("\nBreakdown:")
		for _, c := range result.Breakdown {
			fmt.Printf("  +%d  %s\n", c.Points, c.Reason)
		}
	}
	fmt.Println("\nContext modules to load:")
	for i, id := range modules {
		fmt.Printf("  %d. %s\n", i+1, id)
	}

	return nil
}

func cmdModules(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "--") {
		return fmt.Errorf("usage: ctxtier modules <tier> [--catalog PATH] [--json]")
	}

	t, err := tier.ParseTier(args[0])
	if err != nil {
		return err
	}

	catalogPath := ""
	jsonOut := false
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--catalog":
			i++
			if i >= len(args) {
				return fmt.Errorf("--catalog requires a value")
			}
			catalogPath = args[i]
		case "--json":
			jsonOut = true
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	modules := cat.Modules(t)

	if jsonOut {
		return printJSON(struct {
			Tier    tier.Tier        `json:"tier"`
			Modules []catalog.Module `json:"modules"`
		}{t, modules})
	}

	fmt.Printf("Context modules for %s:\n", t)
	for i, m := range modules {
		if m.Description != "" {
			fmt.Printf("  %d. %-22s %s\n", i+1, m.ID, m.Description)
		} else {
			fmt.Printf("  %d. %s\n", i+1, m.ID)
		}
	}

	return nil
}

func cmdThresholds(args []string) error {
	fmt.Println("Tier thresholds (boundaries resolve upward):")
	fmt.Printf("  score >= %d  ->  %s\n", tier.Tier3Threshold, tier.Tier3)
	fmt.Printf("  score >= %d  ->  %s\n", tier.Tier2Threshold, tier.Tier2)
	fmt.Printf("  otherwise   ->  %s\n", tier.Tier1)
	fmt.Println()
	fmt.Println("Scoring rubric (additive, strict comparisons):")
	fmt.Println("  entities      > 10: +3   > 5: +1")
	fmt.Println("  integrations  >  5: +3   > 2: +1")
	fmt.Println("  scale         enterprise: +2   medium: +1")
	fmt.Println("  compliance: +2   multi-region: +1   real-time: +1")
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
