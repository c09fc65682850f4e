// Package testutil holds shared fixtures for engine tests: mock check
// modules, counting data providers and a canonical scene snapshot.
package testutil

import (
	"context"
	"sync/atomic"

	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/registry"
	"github.com/vk/assetcheck/internal/scene"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers any mix of check definitions and data providers.
type SimpleModule struct {
	Checks    []check.Definition
	Providers map[string]registry.Provider
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for _, def := range m.Checks {
		r.RegisterCheck(def)
	}
	for key, fn := range m.Providers {
		r.RegisterProvider(key, fn)
	}
}

// PassingCheck returns a definition that always produces zero findings.
func PassingCheck(id string) check.Definition {
	return check.Definition{
		ID:       id,
		Enabled:  true,
		Severity: check.SeverityError,
		Msg:      "always passes",
		Fn: func(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
			return nil, nil
		},
	}
}

// FailingCheck returns a definition that always produces one finding for the
// given item.
func FailingCheck(id, item string) check.Definition {
	return check.Definition{
		ID:       id,
		Enabled:  true,
		Severity: check.SeverityError,
		Msg:      "always fails",
		ItemMsg:  "{item} failed",
		Fn: func(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
			return []check.Finding{{Item: item}}, nil
		},
	}
}

// CountingProvider wraps a provider function with an atomic invocation
// counter, used to assert that a dataset is computed at most once per run.
type CountingProvider struct {
	calls atomic.Int64
	fn    registry.Provider
}

// NewCountingProvider creates a counting wrapper around fn.
func NewCountingProvider(fn registry.Provider) *CountingProvider {
	return &CountingProvider{fn: fn}
}

// Provide is the registry.Provider that increments the counter and
// delegates to the wrapped function.
func (p *CountingProvider) Provide(ctx context.Context, data check.DataSource) (any, error) {
	p.calls.Add(1)
	return p.fn(ctx, data)
}

// Calls returns the number of times Provide has been invoked.
func (p *CountingProvider) Calls() int {
	return int(p.calls.Load())
}

// SceneFixture returns a small snapshot with one clean object and one object
// carrying degenerate geometry, enough to exercise the built-in checks.
func SceneFixture() *scene.Document {
	return &scene.Document{
		Name: "fixture",
		Objects: []scene.Object{
			{
				Name:      "clean_mesh",
				Triangles: 8,
				UVLayers:  []scene.UVLayer{{Name: "UVMap", MaxU: 1, MaxV: 1}},
				Materials: []string{"clean_mat"},
			},
			{
				Name:            "dirty_mesh",
				Triangles:       4,
				Ngons:           2,
				ZeroAreaFaces:   1,
				ZeroLengthEdges: 3,
				Position:        []float64{0.5, 0, 0},
			},
		},
		Materials: []scene.Material{{Name: "clean_mat", Textures: []string{"fixture_diffuse"}}},
		Textures:  []scene.Texture{{Name: "fixture_diffuse", Width: 1024, Height: 1024}},
		Settings:  scene.Settings{Unit: "m", DisplayUnit: "cm"},
	}
}
