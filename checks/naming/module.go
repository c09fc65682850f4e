// Package naming registers the object and material naming convention checks.
// Both checks take their pattern from a regex parameter so pipelines can
// enforce project-specific conventions through profile overrides.
package naming

import (
	"context"
	"fmt"
	"regexp"

	"github.com/vk/assetcheck/checks/scenedata"
	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every naming check with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheck(check.Definition{
		ID:       "objectNames",
		Enabled:  false,
		Severity: check.SeverityError,
		Params:   map[string]any{"regex": ".+"},
		DataKeys: []string{scenedata.KeyObjects},
		Msg:      "Objects found which do not meet naming requirements",
		ItemMsg:  "Expected: {expected}, found: {found}",
		Fn:       objectNames,
	})

	r.RegisterCheck(check.Definition{
		ID:       "materialNames",
		Enabled:  false,
		Severity: check.SeverityError,
		Params:   map[string]any{"regex": ".+"},
		DataKeys: []string{scenedata.KeyMaterials},
		Msg:      "Materials found which do not meet naming requirements",
		ItemMsg:  "Expected: {expected}, found: {found}",
		Fn:       materialNames,
	})
}

type namingParams struct {
	Regex string `mapstructure:"regex"`
}

func (p namingParams) compile() (*regexp.Regexp, error) {
	re, err := regexp.Compile(p.Regex)
	if err != nil {
		return nil, fmt.Errorf("invalid naming regex %q: %w", p.Regex, err)
	}
	return re, nil
}

func objectNames(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	var params namingParams
	if err := check.DecodeParams(ec.Params, &params); err != nil {
		return nil, err
	}
	re, err := params.compile()
	if err != nil {
		return nil, err
	}

	objects, err := scenedata.Objects(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, obj := range objects {
		if !matchesWhole(re, obj.Name) {
			findings = append(findings, check.Finding{
				Item:     obj.Name,
				Expected: params.Regex,
				Found:    obj.Name,
			})
		}
	}
	return findings, nil
}

func materialNames(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	var params namingParams
	if err := check.DecodeParams(ec.Params, &params); err != nil {
		return nil, err
	}
	re, err := params.compile()
	if err != nil {
		return nil, err
	}

	materials, err := scenedata.Materials(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, mat := range materials {
		if !matchesWhole(re, mat.Name) {
			findings = append(findings, check.Finding{
				Item:     mat.Name,
				Expected: params.Regex,
				Found:    mat.Name,
			})
		}
	}
	return findings, nil
}

// matchesWhole requires the pattern to cover the entire name, so a partial
// match does not pass a convention like "^mat_" accidentally.
func matchesWhole(re *regexp.Regexp, name string) bool {
	loc := re.FindStringIndex(name)
	return loc != nil && loc[0] == 0 && loc[1] == len(name)
}
