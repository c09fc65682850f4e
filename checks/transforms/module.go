// Package transforms registers the placement and unit checks.
package transforms

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/assetcheck/checks/scenedata"
	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every transform check with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheck(check.Definition{
		ID:       "topLevelZeroPosition",
		Enabled:  false,
		Severity: check.SeverityError,
		Params:   map[string]any{"positionDeviation": 0.001},
		DataKeys: []string{scenedata.KeyObjects},
		Msg:      "Pivot point location not at world origin (0, 0, 0) for top-level objects",
		ItemMsg:  `Object's "{item}" pivot {found} is not at origin ({expected})`,
		Fn:       topLevelZeroPosition,
	})

	r.RegisterCheck(check.Definition{
		ID:       "displayedUnits",
		Enabled:  false,
		Severity: check.SeverityWarning,
		Params:   map[string]any{"desiredUnit": "cm"},
		DataKeys: []string{scenedata.KeyDisplayUnit},
		Msg:      "Unit in scene settings used to display length values is different from required unit",
		ItemMsg:  "Expected: {expected}, found: {found}",
		Fn:       displayedUnits,
	})
}

type zeroPositionParams struct {
	PositionDeviation float64 `mapstructure:"positionDeviation"`
}

type displayedUnitsParams struct {
	DesiredUnit string `mapstructure:"desiredUnit"`
}

// topLevelZeroPosition flags top-level objects whose pivot sits further from
// the world origin than the allowed deviation on any axis.
func topLevelZeroPosition(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	var params zeroPositionParams
	if err := check.DecodeParams(ec.Params, &params); err != nil {
		return nil, err
	}

	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		if obj.Parent != "" {
			continue
		}
		if withinDeviation(obj.Position, params.PositionDeviation) {
			continue
		}
		findings = append(findings, check.Finding{
			Item:     obj.Name,
			Expected: "0, 0, 0",
			Found:    formatPosition(obj.Position),
		})
	}
	return findings, nil
}

func displayedUnits(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	var params displayedUnitsParams
	if err := check.DecodeParams(ec.Params, &params); err != nil {
		return nil, err
	}

	v, err := ec.Data.Require(ctx, scenedata.KeyDisplayUnit)
	if err != nil {
		return nil, err
	}
	unit, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("data key %q holds %T, expected string", scenedata.KeyDisplayUnit, v)
	}

	if unit == params.DesiredUnit {
		return nil, nil
	}
	return []check.Finding{{
		Item:     unit,
		Expected: params.DesiredUnit,
		Found:    unit,
	}}, nil
}

func withinDeviation(position []float64, deviation float64) bool {
	for _, axis := range position {
		if math.Abs(axis) > deviation {
			return false
		}
	}
	return true
}

func formatPosition(position []float64) string {
	out := ""
	for i, axis := range position {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%g", axis)
	}
	return out
}
