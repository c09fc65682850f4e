package textures

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

func TestTextureMinResolution(t *testing.T) {
	doc := testutil.SceneFixture()
	doc.Textures = append(doc.Textures, scene.Texture{Name: "tiny", Width: 256, Height: 256})

	reports := runChecks(t, doc, nil)

	rep, ok := reports["textureMinResolution"]
	require.True(t, ok)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "tiny", rep.Items[0].Item)
	assert.Equal(t, "512x512", rep.Items[0].Expected)
	assert.Equal(t, "256x256", rep.Items[0].Found)
	assert.Equal(t, `For texture "tiny" resolution "256x256" is lower than required minimum "512x512"`, rep.Items[0].Message)
}

func TestTextureMaxResolution(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["textureMaxResolution"] = config.Override{
		Params: map[string]any{"maxSize": []any{1024, 1024}},
	}

	doc := testutil.SceneFixture()
	doc.Textures = append(doc.Textures, scene.Texture{Name: "huge", Width: 8192, Height: 8192})

	reports := runChecks(t, doc, spec)

	rep := reports["textureMaxResolution"]
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "huge", rep.Items[0].Item)
	assert.Equal(t, "8192x8192", rep.Items[0].Found)
}

func TestTextureResolutionNotPowerOf2(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["textureResolutionNotPowerOf2"] = config.Override{Enabled: boolPtr(true)}

	doc := testutil.SceneFixture()
	doc.Textures = append(doc.Textures, scene.Texture{Name: "odd", Width: 1000, Height: 1024})

	reports := runChecks(t, doc, spec)

	rep := reports["textureResolutionNotPowerOf2"]
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "odd", rep.Items[0].Item)
	assert.Equal(t, "1024x1024", rep.Items[0].Expected, "the report suggests the next power of two")
	assert.Equal(t, "1000x1024", rep.Items[0].Found)
}

func TestUnusedTextures(t *testing.T) {
	spec := config.NewModel()
	spec.Overrides["unusedTextures"] = config.Override{Enabled: boolPtr(true)}

	t.Run("all textures referenced", func(t *testing.T) {
		reports := runChecks(t, testutil.SceneFixture(), spec)
		assert.Empty(t, reports["unusedTextures"].Items)
	})

	t.Run("orphan texture flagged", func(t *testing.T) {
		doc := testutil.SceneFixture()
		doc.Textures = append(doc.Textures, scene.Texture{Name: "orphan", Width: 512, Height: 512})

		reports := runChecks(t, doc, spec)
		rep := reports["unusedTextures"]
		require.Len(t, rep.Items, 1)
		assert.Equal(t, `Texture "orphan" could not be attached to any material`, rep.Items[0].Message)
	})
}

func TestPowerOf2Helpers(t *testing.T) {
	assert.True(t, isPowerOf2(1))
	assert.True(t, isPowerOf2(1024))
	assert.False(t, isPowerOf2(0))
	assert.False(t, isPowerOf2(1000))

	assert.Equal(t, 1, nearestPowerOf2(0))
	assert.Equal(t, 1024, nearestPowerOf2(1000))
	assert.Equal(t, 1024, nearestPowerOf2(1024))
}
