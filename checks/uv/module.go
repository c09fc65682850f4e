// Package uv registers the UV-layout checks.
package uv

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/assetcheck/checks/scenedata"
	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every UV check with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheck(check.Definition{
		ID:       "singleUVChannel",
		Enabled:  true,
		Severity: check.SeverityError,
		DataKeys: []string{scenedata.KeyUVChannelCounts},
		Msg:      "Multiple or none UV channels found in objects",
		ItemMsg:  `Object "{item}" has {found} UV channels`,
		Fn:       singleUVChannel,
	})

	r.RegisterCheck(check.Definition{
		ID:       "uvUnwrappedObjects",
		Enabled:  false,
		Severity: check.SeverityError,
		DataKeys: []string{scenedata.KeyUVChannelCounts},
		Msg:      "None UV channels found in objects",
		ItemMsg:  `Object "{item}" has 0 UV channels`,
		Fn:       uvUnwrappedObjects,
	})

	r.RegisterCheck(check.Definition{
		ID:       "noUvTiling",
		Enabled:  false,
		Severity: check.SeverityError,
		DataKeys: []string{scenedata.KeyObjects},
		Msg:      "UV tiling found in objects",
		ItemMsg:  `Object "{item}" has UVs outside of 0 to 1 range in UV layer(s): {uv_layers}`,
		Fn:       noUvTiling,
	})
}

// singleUVChannel flags every object whose UV channel count differs from
// exactly one.
func singleUVChannel(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	counts, err := uvChannelCounts(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		if n := counts[obj.Name]; n != 1 {
			findings = append(findings, check.Finding{
				Item:     obj.Name,
				Expected: 1,
				Found:    n,
			})
		}
	}
	return findings, nil
}

// uvUnwrappedObjects flags only objects with no UV channels at all, for
// pipelines that allow multi-channel assets.
func uvUnwrappedObjects(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	counts, err := uvChannelCounts(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		if counts[obj.Name] == 0 {
			findings = append(findings, check.Finding{
				Item:     obj.Name,
				Expected: 1,
				Found:    0,
			})
		}
	}
	return findings, nil
}

func noUvTiling(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		var outside []string
		for _, layer := range obj.UVLayers {
			if layer.MinU < 0 || layer.MinV < 0 || layer.MaxU > 1 || layer.MaxV > 1 {
				outside = append(outside, layer.Name)
			}
		}
		if len(outside) > 0 {
			findings = append(findings, check.Finding{
				Item:     obj.Name,
				Expected: "0 to 1",
				Fields:   map[string]any{"uv_layers": strings.Join(outside, ", ")},
			})
		}
	}
	return findings, nil
}

func uvChannelCounts(ctx context.Context, data check.DataSource) (map[string]int, error) {
	v, err := data.Require(ctx, scenedata.KeyUVChannelCounts)
	if err != nil {
		return nil, err
	}
	counts, ok := v.(map[string]int)
	if !ok {
		return nil, fmt.Errorf("data key %q holds %T, expected map[string]int", scenedata.KeyUVChannelCounts, v)
	}
	return counts, nil
}
