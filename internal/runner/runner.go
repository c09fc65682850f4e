// Package runner is the facade that orchestrates a single validation pass:
// resolve the configured check set, execute it against the shared data cache,
// and render the resulting reports.
package runner

import (
	"context"

	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/config"
	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/datacache"
	"github.com/vk/assetcheck/internal/executor"
	"github.com/vk/assetcheck/internal/registry"
	"github.com/vk/assetcheck/internal/report"
	"github.com/vk/assetcheck/internal/resolve"
)

// Runner executes validation passes for one registry/profile/data triple.
// Spec and Data are supplied per runner instance; everything derived from
// them (resolved checks, cache entries, findings) is created fresh for each
// RunAll invocation.
type Runner struct {
	Registry *registry.Registry
	Spec     *config.Model
	Data     map[string]any
	Workers  int
}

// New creates a runner. spec and data may be nil: a nil spec keeps every
// registry default, and a nil data map forces all datasets through providers.
func New(reg *registry.Registry, spec *config.Model, data map[string]any) *Runner {
	return &Runner{
		Registry: reg,
		Spec:     spec,
		Data:     data,
	}
}

// RunResult is the outcome of one RunAll invocation: raw per-check results in
// execution order plus any configuration warnings from resolution. It is an
// immutable snapshot owned by the caller.
type RunResult struct {
	Results  []report.RawResult
	Warnings []resolve.Warning
}

// Passed reports whether every executed check passed.
func (r *RunResult) Passed() bool {
	for i := range r.Results {
		if !r.Results[i].Passed() {
			return false
		}
	}
	return true
}

// HasErrors reports whether any error-severity check failed.
func (r *RunResult) HasErrors() bool {
	for i := range r.Results {
		if !r.Results[i].Passed() && r.Results[i].Severity == check.SeverityError {
			return true
		}
	}
	return false
}

// RunAll resolves the check set, executes every enabled check and collects
// raw findings. Partial results are returned alongside the error when the
// context is cancelled mid-run.
func (r *Runner) RunAll(ctx context.Context) (*RunResult, error) {
	logger := ctxlog.FromContext(ctx)

	resolved, warnings := resolve.Resolve(ctx, r.Registry, r.Spec)
	logger.Debug("Check set resolved.", "checks", len(resolved), "warnings", len(warnings))

	cache := datacache.New(r.Registry, r.Data)
	results, err := executor.New(r.Workers).Run(ctx, resolved, cache)

	res := &RunResult{Results: results, Warnings: warnings}
	if err != nil {
		return res, err
	}
	logger.Debug("Run complete.", "executed", len(results), "passed", res.Passed())
	return res, nil
}

// FormatReports renders the run's reports: one per executed check, items
// rendered through each check's message template. If severities are given,
// only failed reports of those severities are returned, mirroring
// pipeline-facing filtering; with no filter every executed check's report is
// included, passes too.
func (r *Runner) FormatReports(res *RunResult, severities ...check.Severity) []report.Report {
	reports := report.Build(res.Results)
	if len(severities) == 0 {
		return reports
	}

	allowed := make(map[string]struct{}, len(severities))
	for _, s := range severities {
		allowed[string(s)] = struct{}{}
	}
	filtered := make([]report.Report, 0, len(reports))
	for _, rep := range reports {
		if rep.Passed() {
			continue
		}
		if _, ok := allowed[rep.MsgType]; ok {
			filtered = append(filtered, rep)
		}
	}
	return filtered
}

// ErrorMessages returns the rendered failure message of every failed
// error-severity check.
func (r *Runner) ErrorMessages(res *RunResult) []string {
	return r.failMessages(res, check.SeverityError)
}

// WarningMessages returns the rendered failure message of every failed
// warning-severity check.
func (r *Runner) WarningMessages(res *RunResult) []string {
	return r.failMessages(res, check.SeverityWarning)
}

func (r *Runner) failMessages(res *RunResult, severity check.Severity) []string {
	var msgs []string
	for _, rep := range r.FormatReports(res, severity) {
		msgs = append(msgs, report.FailMessage(rep, "  "))
	}
	return msgs
}
