package preflight

import (
	"context"
	"fmt"
	"strings"

	"subforge/internal/config"
	"subforge/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Hint is a suggested fix for a failed check.
	Hint string
}

// RunAll executes the checks a transcription run needs: the working
// directory is usable and the decoder and engine binaries are installed.
func RunAll(ctx context.Context, cfg *config.Config, workDir string) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{CheckDirectoryAccess("Working directory", workDir)}
	for _, status := range CheckSystemDeps(ctx, cfg) {
		results = append(results, resultFromStatus(status))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Summarize joins failed results into one error message line per check.
func Summarize(failed []Result) string {
	lines := make([]string, 0, len(failed))
	for _, r := range failed {
		line := fmt.Sprintf("%s: %s", r.Name, r.Detail)
		if r.Hint != "" {
			line += fmt.Sprintf(" (install: %s)", r.Hint)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func resultFromStatus(status deps.Status) Result {
	if status.Available {
		detail := status.Path
		if status.Detail != "" {
			detail = status.Detail
		}
		return Result{Name: status.Name, Passed: true, Detail: detail}
	}
	if status.Optional {
		return Result{Name: status.Name, Passed: true, Detail: status.Detail + " (optional)"}
	}
	return Result{Name: status.Name, Detail: status.Detail, Hint: status.Hint}
}
