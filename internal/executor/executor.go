// Package executor runs the enabled checks of a resolved check set against
// the shared data cache. Failures are isolated per check: a predicate that
// errors or panics yields a synthetic execution-error result and the run
// continues, so one broken check cannot prevent reporting on the others.
package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/dag"
	"github.com/vk/assetcheck/internal/datacache"
	"github.com/vk/assetcheck/internal/report"
	"github.com/vk/assetcheck/internal/resolve"
)

// DefaultWorkers is the executor pool size used when none is configured.
const DefaultWorkers = 4

// Executor schedules check execution over a bounded worker pool.
type Executor struct {
	workers int
}

// New creates an executor with the given pool size.
func New(workers int) *Executor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Executor{workers: workers}
}

// node is one enabled check in the execution graph.
type node struct {
	slot       int // position in the deterministic execution order
	rc         resolve.ResolvedCheck
	depCount   atomic.Int32
	dependents []*node
	doneOnce   sync.Once
}

// Run executes every enabled check and returns one raw result per executed
// check, in deterministic order: sorted identifiers, with declared After
// dependencies honored through a stable topological sort. Disabled checks are
// skipped entirely. If ctx is cancelled, checks not yet started are skipped
// (in-flight predicates complete) and the partial results are returned along
// with the context error.
func (e *Executor) Run(ctx context.Context, checks []resolve.ResolvedCheck, cache *datacache.Cache) ([]report.RawResult, error) {
	logger := ctxlog.FromContext(ctx)

	enabled := make(map[string]resolve.ResolvedCheck)
	graph := dag.New()
	for _, rc := range checks {
		if !rc.Enabled {
			continue
		}
		enabled[rc.Def.ID] = rc
		graph.AddNode(rc.Def.ID)
	}
	for id, rc := range enabled {
		for _, after := range rc.Def.After {
			// A disabled or unknown dependency imposes no ordering constraint.
			if _, ok := enabled[after]; !ok {
				continue
			}
			if err := graph.AddEdge(after, id); err != nil {
				return nil, fmt.Errorf("invalid check ordering: %w", err)
			}
		}
	}

	order, err := graph.Sort()
	if err != nil {
		return nil, fmt.Errorf("cannot order checks: %w", err)
	}
	logger.Debug("Execution order determined.", "count", len(order))

	nodes := make(map[string]*node, len(order))
	for slot, id := range order {
		nodes[id] = &node{slot: slot, rc: enabled[id]}
	}
	for id, n := range nodes {
		deps, _ := graph.Dependencies(id)
		n.depCount.Store(int32(len(deps)))
		for _, depID := range deps {
			dep := nodes[depID]
			dep.dependents = append(dep.dependents, n)
		}
	}

	results := make([]report.RawResult, len(order))
	executed := make([]bool, len(order))

	readyChan := make(chan *node, len(nodes))
	for _, id := range order {
		if n := nodes[id]; n.depCount.Load() == 0 {
			readyChan <- n
		}
	}

	var wg sync.WaitGroup
	wg.Add(len(nodes))

	logger.Debug("Starting check worker pool.", "workers", e.workers)
	for i := 0; i < e.workers; i++ {
		go e.worker(ctx, readyChan, cache, results, executed, &wg)
	}

	wg.Wait()
	close(readyChan)

	// Compact to the checks that actually ran, preserving execution order.
	out := make([]report.RawResult, 0, len(results))
	for i, r := range results {
		if executed[i] {
			out = append(out, r)
		}
	}

	if err := ctx.Err(); err != nil {
		logger.Warn("Run cancelled; returning partial results.", "executed", len(out), "total", len(order))
		return out, err
	}
	return out, nil
}
