package runner

import (
	"fmt"

	"github.com/google/uuid"
)

// report prints per-file outcomes and optional summary statistics.
// Skipped documents are surfaced in verbose mode but are not counted,
// matching the annotation-validation convention the tool grew out of.
func (r *Runner) report(results []fileResult) int {
	checked, valid := 0, 0

	for _, result := range results {
		switch result.status {
		case statusPassed:
			checked++
			valid++
			if r.cfg.Verbose {
				fmt.Fprintf(r.output, "%s\n", result.path)
			}
		case statusSkipped:
			if r.cfg.Verbose {
				fmt.Fprintf(r.output, "%s,skipped\n", result.path)
			}
		default:
			checked++
			fmt.Fprintf(r.output, "%s,%s\n", result.path, result.detail)
		}
	}

	if r.cfg.Stats {
		fmt.Fprintf(r.output, "run %s: %d / %d documents are valid.\n", uuid.NewString(), valid, checked)
	}

	if valid == checked {
		return 0
	}
	return 1
}
