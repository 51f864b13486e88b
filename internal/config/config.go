// Package config parses command-line arguments for the rulecheck tool.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jacoelho/rulecheck/internal/exit"
)

var (
	ErrNoArguments = errors.New("no arguments provided")
	ErrNoInputs    = errors.New("no files or directories specified")
	ErrNoRules     = errors.New("no rules specified, use --rules or --rule")
)

// Config represents the complete configuration for the rulecheck tool.
type Config struct {
	// Rule sources
	RuleFiles []string // rule set files, merged in order
	Rules     []string // rules given directly on the command line
	Flags     []string // behavior flags
	Ignores   []string // ignored field names

	// Document selection
	Selector string // optional JSONPath applied to each file

	// Execution
	Workers   int
	RateLimit float64 // file starts per second (0 = unlimited)
	Stats     bool
	Verbose   bool

	// Positional arguments: files or directories to validate
	Inputs []string
}

// stringListFlag implements flag.Value for repeatable string flags.
type stringListFlag []string

func (s *stringListFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringListFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and an
// exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		ruleFiles stringListFlag
		rules     stringListFlag
		flags     stringListFlag
		ignores   stringListFlag
		selector  = fs.String("select", "", "JSONPath selecting the value(s) to validate in each file")
		workers   = fs.Int("workers", 0, "Number of parallel workers (0 for number of CPUs)")
		rateLimit = fs.Float64("rate-limit", 0, "Rate limit in files per second (0 for unlimited)")
		stats     = fs.Bool("stats", false, "Print summary statistics")
		verbose   = fs.Bool("verbose", false, "Print every checked file, not only failures")
	)

	fs.Var(&ruleFiles, "rules", "Rule set file, plain text or YAML (can be used multiple times)")
	fs.Var(&rules, "rule", "Rule expression such as TL==1 (can be used multiple times)")
	fs.Var(&flags, "flag", "Behavior flag (can be used multiple times)")
	fs.Var(&ignores, "ignore", "Field name to ignore (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	config := &Config{
		RuleFiles: ruleFiles,
		Rules:     rules,
		Flags:     flags,
		Ignores:   ignores,
		Selector:  *selector,
		Workers:   *workers,
		RateLimit: *rateLimit,
		Stats:     *stats,
		Verbose:   *verbose,
		Inputs:    fs.Args(),
	}

	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(c.RuleFiles) == 0 && len(c.Rules) == 0 {
		return ErrNoRules
	}

	paths := make([]string, 0, len(c.RuleFiles)+len(c.Inputs))
	paths = append(paths, c.RuleFiles...)
	paths = append(paths, c.Inputs...)
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s not found: %w", path, err)
		}
	}

	return nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `rulecheck - JSON rule validation tool

Usage: rulecheck [options] <file-or-dir> [file-or-dir] ...

Options:
  --rules FILE       Rule set file, plain text or YAML (can be used multiple times)
  --rule EXPR        Rule expression such as TL==1 (can be used multiple times)
  --flag NAME        Behavior flag: allow-missing, missing-is-false, case-insensitive
  --ignore NAME      Field name to ignore (can be used multiple times)
  --select PATH      JSONPath selecting the value(s) to validate in each file
  --workers N        Number of parallel workers (default: number of CPUs)
  --rate-limit N     Rate limit in files per second (0 for unlimited)
  --stats            Print summary statistics
  --verbose          Print every checked file, not only failures
  -h, --help         Show this help message

Examples:
  rulecheck --rule 'TL==1' --rule 'TL>0' annotations/
  rulecheck --rules checks.yaml --stats annotations/
  rulecheck --rules rules.txt --ignore f1 file.json
  rulecheck --rule 'status==ok' --select '$.items[*]' report.json`
}
