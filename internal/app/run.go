package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/report"
	"github.com/vk/assetcheck/internal/runner"
	"github.com/vk/assetcheck/internal/scene"
)

// ErrChecksFailed is returned by Run when at least one error-severity check
// failed. The entrypoint maps it to a non-zero exit code.
var ErrChecksFailed = errors.New("one or more checks failed")

// Run executes a full validation pass: load the scene snapshot, run every
// enabled check against it and write the rendered reports to the output
// writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	doc, err := scene.Load(a.config.ScenePath)
	if err != nil {
		return fmt.Errorf("failed to load scene snapshot: %w", err)
	}
	a.logger.Debug("Scene snapshot loaded.", "scene", doc.Name, "objects", len(doc.Objects))

	run := runner.New(a.registry, a.profile, map[string]any{"scene": doc})
	run.Workers = a.config.WorkerCount

	res, err := run.RunAll(ctx)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	for _, w := range res.Warnings {
		a.logger.Warn("Profile refers to an unknown check.", "identifier", w.Identifier, "detail", w.Detail)
	}

	reports := run.FormatReports(res)
	if err := a.render(reports); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.", "passed", res.Passed())
	if res.HasErrors() {
		return ErrChecksFailed
	}
	return nil
}

func (a *App) render(reports []report.Report) error {
	switch a.config.OutputFormat {
	case "json":
		raw, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot encode reports: %w", err)
		}
		fmt.Fprintln(a.outW, string(raw))
	default:
		for _, rep := range reports {
			if rep.Passed() {
				fmt.Fprintf(a.outW, "PASS [%s] %s\n", rep.MsgType, rep.Identifier)
				continue
			}
			fmt.Fprintf(a.outW, "FAIL [%s] %s\n%s\n", rep.MsgType, rep.Identifier, report.FailMessage(rep, "  "))
		}
	}
	return nil
}
