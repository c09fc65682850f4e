package geometry

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

func TestTriangleMaxCount(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["triangleMaxCount"] = config.Override{
		Enabled: boolPtr(true),
		Params:  map[string]any{"triMaxCount": 10},
	}

	t.Run("over budget", func(t *testing.T) {
		reports := runChecks(t, testutil.SceneFixture(), spec)

		rep, ok := reports["triangleMaxCount"]
		require.True(t, ok)
		require.Len(t, rep.Items, 1)
		assert.Equal(t, "fixture", rep.Items[0].Item, "the finding names the scene, not an object")
		assert.Equal(t, 10, rep.Items[0].Expected)
		assert.Equal(t, 12, rep.Items[0].Found)
		assert.Equal(t, "fixture triangle count of 12 exceeds the maximum allowed: 10", rep.Items[0].Message)
	})

	t.Run("within budget", func(t *testing.T) {
		doc := testutil.SceneFixture()
		doc.Objects = doc.Objects[:1] // 8 triangles
		reports := runChecks(t, doc, spec)

		rep := reports["triangleMaxCount"]
		assert.Empty(t, rep.Items)
	})

	t.Run("disabled by default", func(t *testing.T) {
		reports := runChecks(t, testutil.SceneFixture(), nil)
		_, ok := reports["triangleMaxCount"]
		assert.False(t, ok)
	})

	t.Run("wrongly typed total surfaces as execution error", func(t *testing.T) {
		reg := registry.New()
		(&scenedata.Module{}).Register(reg)
		(&Module{}).Register(reg)

		// A float64 total (e.g. decoded from YAML) must not pass as zero.
		run := runner.New(reg, spec, map[string]any{
			"scene":                         testutil.SceneFixture(),
			scenedata.KeySceneTriangleTotal: float64(12),
		})
		res, err := run.RunAll(context.Background())
		require.NoError(t, err)

		var rep report.Report
		for _, r := range run.FormatReports(res) {
			if r.Identifier == "triangleMaxCount" {
				rep = r
			}
		}
		require.Len(t, rep.Items, 1)
		assert.Contains(t, rep.Items[0].Message, "Check execution failed")
		assert.Contains(t, rep.Items[0].Message, "expected int")
	})
}

func TestNoNgons(t *testing.T) {
	reports := runChecks(t, testutil.SceneFixture(), nil)

	rep, ok := reports["noNgons"]
	require.True(t, ok)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "dirty_mesh", rep.Items[0].Item)
	assert.Equal(t, `Object "dirty_mesh" contains N-gons`, rep.Items[0].Message)
	assert.Equal(t, "warning", rep.MsgType)
}

func TestZeroFaceArea(t *testing.T) {
	reports := runChecks(t, testutil.SceneFixture(), nil)

	rep, ok := reports["zeroFaceArea"]
	require.True(t, ok)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "dirty_mesh", rep.Items[0].Item)
	assert.Equal(t, 1, rep.Items[0].Found)
}

func TestZeroLengthEdge(t *testing.T) {
	reports := runChecks(t, testutil.SceneFixture(), nil)

	rep, ok := reports["zeroLengthEdge"]
	require.True(t, ok)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, 3, rep.Items[0].Found)
	assert.Equal(t, `Object "dirty_mesh" has 3 zero-length edges`, rep.Items[0].Message)
}
