// Package runner walks the requested files and directories and
// validates every JSON document against the configured rule set.
package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jacoelho/rulecheck"
	"github.com/jacoelho/rulecheck/internal/config"
	"github.com/jacoelho/rulecheck/internal/document"
	"github.com/jacoelho/rulecheck/internal/exit"
	"github.com/jacoelho/rulecheck/internal/ruleset"
)

type status int

const (
	statusPassed status = iota
	statusFailed
	statusSkipped
	statusError
)

type fileResult struct {
	path   string
	status status
	detail string
}

// Runner validates a set of files with a bounded worker pool.
type Runner struct {
	validator *rulecheck.Validator
	cfg       *config.Config
	limiter   *rate.Limiter
	output    io.Writer
	errOutput io.Writer
}

// New loads the configured rule sources and builds a Runner.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	set, err := ruleset.Load(cfg.RuleFiles)
	if err != nil {
		return nil, exit.Errorf("Error loading rules: %v\n", err)
	}
	set.Merge(ruleset.Set{Rules: cfg.Rules, Flags: cfg.Flags, Ignores: cfg.Ignores})

	validator, err := rulecheck.New(set.Rules, set.Flags, set.Ignores)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	return &Runner{
		validator: validator,
		cfg:       cfg,
		limiter:   newRateLimiter(cfg.RateLimit),
		output:    os.Stdout,
		errOutput: os.Stderr,
	}, nil
}

func newRateLimiter(filesPerSecond float64) *rate.Limiter {
	if filesPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(filesPerSecond), 1)
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

// Run validates every collected file and returns the process exit
// code: 0 iff all checked documents are valid.
func (r *Runner) Run(ctx context.Context) int {
	files, err := collectFiles(r.cfg.Inputs)
	if err != nil {
		fmt.Fprintf(r.errOutput, "Error: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(r.errOutput, "Error: no JSON files found")
		return 1
	}

	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, path := range files {
		g.Go(func() error {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
			results[i] = r.checkFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(r.errOutput, "Error: %v\n", err)
		return 1
	}

	return r.report(results)
}

// checkFile never fails the whole run: acquisition and evaluation
// errors become per-file results.
func (r *Runner) checkFile(path string) fileResult {
	doc, err := document.FromFile(path)
	if err != nil {
		return fileResult{path: path, status: statusError, detail: err.Error()}
	}

	if r.cfg.Selector != "" {
		doc, err = document.Select(doc, r.cfg.Selector)
		if err != nil {
			return fileResult{path: path, status: statusError, detail: err.Error()}
		}
	}

	outcome, err := r.validator.Check(doc)
	if err != nil {
		return fileResult{path: path, status: statusError, detail: err.Error()}
	}

	switch outcome.Result {
	case rulecheck.Passed:
		return fileResult{path: path, status: statusPassed}
	case rulecheck.Skipped:
		return fileResult{path: path, status: statusSkipped}
	default:
		return fileResult{path: path, status: statusFailed, detail: outcome.Reason()}
	}
}

// collectFiles expands directories into the .json files beneath them.
// Files named directly are taken as-is, in argument order; walked
// directories contribute files in lexical order.
func collectFiles(inputs []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, input)
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
