// Package yamlcfg provides the YAML implementation of the profile loading
// interface. The file format is the engine's flexible wire mapping: check
// identifier to an override record with optional enabled/type/parameters
// fields, kept loosely typed for compatibility with existing pipeline
// configs.
package yamlcfg

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vk/assetcheck/internal/config"
	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/fsutil"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// override mirrors the wire shape of one check's override record. The
// severity field is called "type" on the wire for compatibility with report
// consumers, which see the same word as msg_type.
type override struct {
	Enabled    *bool          `yaml:"enabled"`
	Type       *string        `yaml:"type"`
	Parameters map[string]any `yaml:"parameters"`
}

// Load parses every .yaml/.yml file under the given paths and merges their
// mappings into a single profile model. Later files win per identifier.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".yaml")
	if err != nil {
		return nil, err
	}
	ymlFiles, err := fsutil.FindFiles(paths, ".yml")
	if err != nil {
		return nil, err
	}
	files = append(files, ymlFiles...)
	sort.Strings(files)
	logger.Debug("Discovered YAML profile files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("cannot read profile %s: %w", file, err)
		}

		var overrides map[string]override
		if err := yaml.Unmarshal(raw, &overrides); err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		fileModel := config.NewModel()
		for id, ov := range overrides {
			fileModel.Overrides[id] = config.Override{
				Enabled:  ov.Enabled,
				Severity: ov.Type,
				Params:   ov.Parameters,
			}
		}
		model.Merge(fileModel)
	}

	logger.Debug("YAML loading complete.", "overrides", len(model.Overrides))
	return model, nil
}
