package naming

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/assetcheck/checks/scenedata"
	"github.com/vk/assetcheck/internal/config"
	"github.com/vk/assetcheck/internal/registry"
	"github.com/vk/assetcheck/internal/report"
	"github.com/vk/assetcheck/internal/runner"
	"github.com/vk/assetcheck/internal/scene"
	"github.com/vk/assetcheck/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }

func runChecks(t *testing.T, doc *scene.Document, spec *config.Model) map[string]report.Report {
	t.Helper()

	reg := registry.New()
	(&scenedata.Module{}).Register(reg)
	(&Module{}).Register(reg)

	run := runner.New(reg, spec, map[string]any{"scene": doc})
	res, err := run.RunAll(context.Background())
	require.NoError(t, err)

	out := make(map[string]report.Report)
	for _, rep := range run.FormatReports(res) {
		out[rep.Identifier] = rep
	}
	return out
}

func TestObjectNames(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["objectNames"] = config.Override{
		Enabled: boolPtr(true),
		Params:  map[string]any{"regex": `clean_.+`},
	}

	reports := runChecks(t, testutil.SceneFixture(), spec)

	rep, ok := reports["objectNames"]
	require.True(t, ok)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "dirty_mesh", rep.Items[0].Item)
	assert.Equal(t, "Expected: clean_.+, found: dirty_mesh", rep.Items[0].Message)
}

func TestObjectNames_PartialMatchFails(t *testing.T) {
	// "mesh" matches inside both names; the convention requires a full match.
	spec := config.NewModel()
	spec.Overrides["objectNames"] = config.Override{
		Enabled: boolPtr(true),
		Params:  map[string]any{"regex": "mesh"},
	}

	reports := runChecks(t, testutil.SceneFixture(), spec)
	assert.Len(t, reports["objectNames"].Items, 2)
}

func TestObjectNames_InvalidRegexSurfacesAsExecutionError(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["objectNames"] = config.Override{
		Enabled: boolPtr(true),
		Params:  map[string]any{"regex": "("},
	}

	reports := runChecks(t, testutil.SceneFixture(), spec)

	rep := reports["objectNames"]
	require.Len(t, rep.Items, 1)
	assert.Contains(t, rep.Items[0].Message, "Check execution failed")
	assert.Contains(t, rep.Items[0].Message, "invalid naming regex")
}

func TestMaterialNames(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["materialNames"] = config.Override{
		Enabled: boolPtr(true),
		Params:  map[string]any{"regex": `mat_.+`},
	}

	reports := runChecks(t, testutil.SceneFixture(), spec)

	rep, ok := reports["materialNames"]
	require.True(t, ok)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "clean_mat", rep.Items[0].Item)
}

func TestNamingChecks_DefaultRegexAcceptsEverything(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["objectNames"] = config.Override{Enabled: boolPtr(true)}
	spec.Overrides["materialNames"] = config.Override{Enabled: boolPtr(true)}

	reports := runChecks(t, testutil.SceneFixture(), spec)

	assert.Empty(t, reports["objectNames"].Items)
	assert.Empty(t, reports["materialNames"].Items)
}
