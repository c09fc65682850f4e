// Package geometry registers the polygon-budget and degenerate-geometry
// checks.
package geometry

import (
	"context"

	"github.com/vk/assetcheck/checks/scenedata"
	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every geometry check with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheck(check.Definition{
		ID:       "triangleMaxCount",
		Enabled:  false,
		Severity: check.SeverityWarning,
		Params:   map[string]any{"triMaxCount": 90000},
		DataKeys: []string{scenedata.KeySceneTriangleTotal, scenedata.KeySceneName},
		Msg:      "Scene triangle count exceeded",
		ItemMsg:  "{item} triangle count of {found} exceeds the maximum allowed: {expected}",
		Fn:       triangleMaxCount,
	})

	r.RegisterCheck(check.Definition{
		ID:       "noNgons",
		Enabled:  true,
		Severity: check.SeverityWarning,
		DataKeys: []string{scenedata.KeyObjects},
		Msg:      "Objects containing N-gons",
		ItemMsg:  `Object "{item}" contains N-gons`,
		Fn:       noNgons,
	})

	r.RegisterCheck(check.Definition{
		ID:       "zeroFaceArea",
		Enabled:  true,
		Severity: check.SeverityWarning,
		DataKeys: []string{scenedata.KeyObjects},
		Msg:      "Objects containing zero-area faces",
		ItemMsg:  `Object "{item}" has {found} faces with zero area`,
		Fn:       zeroFaceArea,
	})

	r.RegisterCheck(check.Definition{
		ID:       "zeroLengthEdge",
		Enabled:  true,
		Severity: check.SeverityWarning,
		DataKeys: []string{scenedata.KeyObjects},
		Msg:      "Objects containing zero-length edges",
		ItemMsg:  `Object "{item}" has {found} zero-length edges`,
		Fn:       zeroLengthEdge,
	})
}

type triangleMaxParams struct {
	TriMaxCount int `mapstructure:"triMaxCount"`
}

// triangleMaxCount compares the scene's total triangle count against the
// configured budget. The finding's item is the scene name, since the budget
// applies to the model as a whole.
func triangleMaxCount(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	var params triangleMaxParams
	if err := check.DecodeParams(ec.Params, &params); err != nil {
		return nil, err
	}

	total, err := scenedata.SceneTriangleTotal(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	if total <= params.TriMaxCount {
		return nil, nil
	}

	name, err := scenedata.SceneName(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	return []check.Finding{{
		Item:     name,
		Expected: params.TriMaxCount,
		Found:    total,
	}}, nil
}

func noNgons(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		if obj.Ngons > 0 {
			findings = append(findings, check.Finding{
				Item:  obj.Name,
				Found: obj.Ngons,
			})
		}
	}
	return findings, nil
}

func zeroFaceArea(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		if obj.ZeroAreaFaces > 0 {
			findings = append(findings, check.Finding{
				Item:     obj.Name,
				Expected: 0,
				Found:    obj.ZeroAreaFaces,
			})
		}
	}
	return findings, nil
}

func zeroLengthEdge(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		if obj.ZeroLengthEdges > 0 {
			findings = append(findings, check.Finding{
				Item:     obj.Name,
				Expected: 0,
				Found:    obj.ZeroLengthEdges,
			})
		}
	}
	return findings, nil
}
