// Package datacache lazily computes and memoizes the named shared datasets
// that checks declare as data dependencies. A value is computed at most once
// per run no matter how many checks request it; concurrent requests for the
// same uncomputed key coalesce into a single computation.
package datacache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/registry"
)

// ErrUnknownDataKey is returned when a key has neither a seed value nor a
// registered provider.
var ErrUnknownDataKey = errors.New("unknown data key")

// ErrCyclicData is returned when providers form a dependency cycle.
var ErrCyclicData = errors.New("cyclic data dependency")

// pathKey carries the chain of keys currently being resolved, for cycle
// detection across nested Require calls.
type pathKey struct{}

// Cache is the per-run read-through store for shared derived data. Memoized
// values are treated as immutable; callers must not mutate what Require
// returns.
type Cache struct {
	reg   *registry.Registry
	seeds map[string]any

	mu     sync.RWMutex
	values map[string]any
	group  singleflight.Group

	wmu   sync.Mutex
	waits map[string]string
}

// New creates a cache for one run. seeds short-circuits computation for keys
// the caller has already materialized (host-extracted data, or synthetic data
// in tests); it may be nil.
func New(reg *registry.Registry, seeds map[string]any) *Cache {
	return &Cache{
		reg:    reg,
		seeds:  seeds,
		values: make(map[string]any),
		waits:  make(map[string]string),
	}
}

// Require returns the value for key: the caller-supplied seed if present,
// else the memoized value, else the result of invoking the registered
// provider (memoized for the rest of the run). Providers may Require other
// keys; a cycle fails with ErrCyclicData naming the cycle.
func (c *Cache) Require(ctx context.Context, key string) (any, error) {
	if v, ok := c.seeds[key]; ok {
		return v, nil
	}

	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	path, _ := ctx.Value(pathKey{}).([]string)
	for _, seen := range path {
		if seen == key {
			cycle := append(path, key)
			return nil, fmt.Errorf("%w: %s", ErrCyclicData, strings.Join(cycle, " -> "))
		}
	}

	provider, ok := c.reg.Provider(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataKey, key)
	}

	providerCtx := context.WithValue(ctx, pathKey{}, append(path[:len(path):len(path)], key))

	if err := c.beginWait(path, key); err != nil {
		return nil, err
	}
	defer c.endWait(path)

	v, err, _ := c.group.Do(key, func() (any, error) {
		logger := ctxlog.FromContext(ctx)
		logger.Debug("Computing shared dataset.", "key", key)
		value, err := provider(providerCtx, c)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.values[key] = value
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, fmt.Errorf("data provider for %q failed: %w", key, err)
	}
	return v, nil
}

// beginWait records that the innermost in-flight key of path is now blocked
// on key. The path check above only sees cycles within a single call chain;
// this catches a cycle entered concurrently from two ends, where each chain
// holds one key's computation and would block forever joining the other's.
func (c *Cache) beginWait(path []string, key string) error {
	if len(path) == 0 {
		return nil
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()

	inPath := make(map[string]bool, len(path))
	for _, k := range path {
		inPath[k] = true
	}
	chain := []string{key}
	for cur := key; ; {
		if inPath[cur] {
			cycle := append(path[:len(path):len(path)], chain...)
			return fmt.Errorf("%w: %s", ErrCyclicData, strings.Join(cycle, " -> "))
		}
		next, ok := c.waits[cur]
		if !ok {
			break
		}
		cur = next
		chain = append(chain, cur)
	}
	c.waits[path[len(path)-1]] = key
	return nil
}

func (c *Cache) endWait(path []string) {
	if len(path) == 0 {
		return
	}
	c.wmu.Lock()
	delete(c.waits, path[len(path)-1])
	c.wmu.Unlock()
}
