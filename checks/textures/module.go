// Package textures registers the texture resolution and usage checks.
package textures

import (
	"context"
	"fmt"

	"github.com/vk/assetcheck/checks/scenedata"
	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every texture check with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheck(check.Definition{
		ID:       "textureMinResolution",
		Enabled:  true,
		Severity: check.SeverityError,
		Params:   map[string]any{"minSize": []int{512, 512}},
		DataKeys: []string{scenedata.KeyTextures},
		Msg:      "Texture resolution is too low",
		ItemMsg:  `For texture "{item}" resolution "{found}" is lower than required minimum "{expected}"`,
		Fn:       minResolution,
	})

	r.RegisterCheck(check.Definition{
		ID:       "textureMaxResolution",
		Enabled:  true,
		Severity: check.SeverityError,
		Params:   map[string]any{"maxSize": []int{4096, 4096}},
		DataKeys: []string{scenedata.KeyTextures},
		Msg:      "Texture resolution is too high",
		ItemMsg:  `For texture "{item}" resolution "{found}" is higher than acceptable maximum "{expected}"`,
		Fn:       maxResolution,
	})

	r.RegisterCheck(check.Definition{
		ID:       "textureResolutionNotPowerOf2",
		Enabled:  false,
		Severity: check.SeverityError,
		DataKeys: []string{scenedata.KeyTextures},
		Msg:      "Texture resolution is not a power of 2",
		ItemMsg:  `Texture "{item}" resolution {found} is not a power of 2, expected a resolution like: {expected}, etc.`,
		Fn:       resolutionPowerOf2,
	})

	r.RegisterCheck(check.Definition{
		ID:       "unusedTextures",
		Enabled:  false,
		Severity: check.SeverityError,
		DataKeys: []string{scenedata.KeyTextures, scenedata.KeyMaterials},
		Msg:      "Some texture files are not used",
		ItemMsg:  `Texture "{item}" could not be attached to any material`,
		Fn:       unusedTextures,
	})
}

type minResolutionParams struct {
	MinSize []int `mapstructure:"minSize"`
}

type maxResolutionParams struct {
	MaxSize []int `mapstructure:"maxSize"`
}

func minResolution(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	var params minResolutionParams
	if err := check.DecodeParams(ec.Params, &params); err != nil {
		return nil, err
	}
	if len(params.MinSize) != 2 {
		return nil, fmt.Errorf("minSize must hold [width, height], got %v", params.MinSize)
	}

	texs, err := scenedata.Textures(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, tex := range texs {
		if tex.Width < params.MinSize[0] || tex.Height < params.MinSize[1] {
			findings = append(findings, check.Finding{
				Item:     tex.Name,
				Expected: resolution(params.MinSize[0], params.MinSize[1]),
				Found:    resolution(tex.Width, tex.Height),
			})
		}
	}
	return findings, nil
}

func maxResolution(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	var params maxResolutionParams
	if err := check.DecodeParams(ec.Params, &params); err != nil {
		return nil, err
	}
	if len(params.MaxSize) != 2 {
		return nil, fmt.Errorf("maxSize must hold [width, height], got %v", params.MaxSize)
	}

	texs, err := scenedata.Textures(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, tex := range texs {
		if tex.Width > params.MaxSize[0] || tex.Height > params.MaxSize[1] {
			findings = append(findings, check.Finding{
				Item:     tex.Name,
				Expected: resolution(params.MaxSize[0], params.MaxSize[1]),
				Found:    resolution(tex.Width, tex.Height),
			})
		}
	}
	return findings, nil
}

func resolutionPowerOf2(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	texs, err := scenedata.Textures(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	var findings []check.Finding
	for _, tex := range texs {
		if isPowerOf2(tex.Width) && isPowerOf2(tex.Height) {
			continue
		}
		findings = append(findings, check.Finding{
			Item:     tex.Name,
			Expected: resolution(nearestPowerOf2(tex.Width), nearestPowerOf2(tex.Height)),
			Found:    resolution(tex.Width, tex.Height),
		})
	}
	return findings, nil
}

func unusedTextures(ctx context.Context, ec *check.Context) ([]check.Finding, error) {
	texs, err := scenedata.Textures(ctx, ec.Data)
	if err != nil {
		return nil, err
	}
	mats, err := scenedata.Materials(ctx, ec.Data)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool)
	for _, mat := range mats {
		for _, tex := range mat.Textures {
			used[tex] = true
		}
	}

	var findings []check.Finding
	for _, tex := range texs {
		if !used[tex.Name] {
			findings = append(findings, check.Finding{Item: tex.Name})
		}
	}
	return findings, nil
}

func resolution(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nearestPowerOf2 rounds up to the next power of two, used only to suggest a
// valid resolution in the report.
func nearestPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
