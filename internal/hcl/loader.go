package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/assetcheck/internal/config"
	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/fsutil"
	"github.com/vk/assetcheck/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges their check
// blocks into a single profile model. Later files win per identifier.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	logger.Debug("Discovered HCL profile files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var profile schema.Profile
		diags = gohcl.DecodeBody(hclFile.Body, nil, &profile)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel := config.NewModel()
		for _, block := range profile.Checks {
			override, err := l.translateCheck(block)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			fileModel.Overrides[block.ID] = override
		}
		model.Merge(fileModel)
	}

	logger.Debug("HCL loading complete.", "overrides", len(model.Overrides))
	return model, nil
}

// translateCheck converts one HCL check block into the agnostic override
// record, evaluating every parameter attribute into a plain Go value.
func (l *Loader) translateCheck(block *schema.Check) (config.Override, error) {
	override := config.Override{
		Enabled:  block.Enabled,
		Severity: block.Severity,
	}

	if block.Parameters == nil {
		return override, nil
	}

	attrs, diags := block.Parameters.Body.JustAttributes()
	if diags.HasErrors() {
		return override, fmt.Errorf("check %q: invalid parameters block: %w", block.ID, diags)
	}

	override.Params = make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return override, fmt.Errorf("check %q: parameter %q: %w", block.ID, name, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return override, fmt.Errorf("check %q: parameter %q: %w", block.ID, name, err)
		}
		override.Params[name] = goVal
	}
	return override, nil
}
