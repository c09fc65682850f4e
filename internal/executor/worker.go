package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/datacache"
	"github.com/vk/assetcheck/internal/report"
	"github.com/vk/assetcheck/internal/resolve"
)

// worker is the processing loop for a single concurrent worker. Each node
// writes only to its own result slot, so no locking is needed on results.
func (e *Executor) worker(
	ctx context.Context,
	readyChan chan *node,
	cache *datacache.Cache,
	results []report.RawResult,
	executed []bool,
	wg *sync.WaitGroup,
) {
	logger := ctxlog.FromContext(ctx)

	for n := range readyChan {
		n.doneOnce.Do(func() {
			defer wg.Done()

			// Cooperative cancellation checkpoint: checks not yet started are
			// skipped, but dependents are still released so the pool drains.
			if ctx.Err() == nil {
				rc := n.rc
				checkLogger := logger.With("check", rc.Def.ID)
				checkLogger.Debug("Running check.")

				findings, err := e.runCheck(ctx, rc, cache)
				results[n.slot] = report.RawResult{
					ID:       rc.Def.ID,
					Severity: rc.Severity,
					Msg:      rc.Def.Msg,
					ItemMsg:  rc.Def.ItemMsg,
					Findings: findings,
					Err:      err,
				}
				executed[n.slot] = true

				switch {
				case err != nil:
					checkLogger.Error("Check execution failed.", "error", err)
				case len(findings) > 0:
					checkLogger.Debug("Check found issues.", "count", len(findings))
				default:
					checkLogger.Debug("Check passed.")
				}
			}

			for _, dependent := range n.dependents {
				if dependent.depCount.Add(-1) == 0 {
					readyChan <- dependent
				}
			}
		})
	}
}

// runCheck invokes a single predicate, converting a panic into an error so a
// broken check is contained to its own result.
func (e *Executor) runCheck(ctx context.Context, rc resolve.ResolvedCheck, cache *datacache.Cache) (findings []check.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check %q panicked: %v", rc.Def.ID, r)
			findings = nil
		}
	}()

	ec := &check.Context{Params: rc.Params, Data: cache}
	return rc.Def.Fn(ctx, ec)
}
