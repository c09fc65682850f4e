package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/assetcheck/internal/hcl"
	"github.com/vk/assetcheck/internal/report"
	"github.com/vk/assetcheck/internal/scene"
	"github.com/vk/assetcheck/internal/testutil"
)

func writeSceneFile(t *testing.T, doc *scene.Document) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, raw, 0600))
	return path
}

func TestNewApp_RegistersCoreCatalog(t *testing.T) {
	cfg := &Config{ScenePath: "unused.json", OutputFormat: "json"}
	testApp, _ := SetupAppTest(t, cfg, hcl.NewLoader())

	ids := make([]string, 0)
	for _, def := range testApp.Registry().Checks() {
		ids = append(ids, def.ID)
	}
	assert.Contains(t, ids, "triangleMaxCount")
	assert.Contains(t, ids, "singleUVChannel")
	assert.Contains(t, ids, "textureMinResolution")
	assert.Contains(t, ids, "objectNames")
	assert.Contains(t, ids, "topLevelZeroPosition")
}

func TestNewApp_PanicsOnBrokenProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.hcl"), []byte(`check "x" {`), 0600))

	cfg := &Config{ScenePath: "unused.json", ProfilePath: dir, OutputFormat: "json"}
	assert.Panics(t, func() {
		NewApp(&SafeBuffer{}, cfg, hcl.NewLoader())
	})
}

func TestRun_CleanSceneRendersReports(t *testing.T) {
	doc := testutil.SceneFixture()
	doc.Objects = doc.Objects[:1] // drop the degenerate object so everything passes

	cfg := &Config{
		ScenePath:    writeSceneFile(t, doc),
		OutputFormat: "json",
		LogLevel:     "error",
	}
	out := &SafeBuffer{}
	testApp := NewApp(out, cfg, hcl.NewLoader())

	err := testApp.Run(context.Background())
	require.NoError(t, err)

	// The log handler and the report renderer share the writer; reports are
	// the final JSON array in the output.
	output := out.String()
	start := 0
	for i := 0; i < len(output); i++ {
		if output[i] == '[' {
			start = i
			break
		}
	}
	var reports []report.Report
	require.NoError(t, json.Unmarshal([]byte(output[start:]), &reports))
	require.NotEmpty(t, reports)
	for _, rep := range reports {
		assert.Empty(t, rep.Items, "check %s should pass on the clean scene", rep.Identifier)
	}
}

func TestRun_ErrorSeverityFailureReturnsErrChecksFailed(t *testing.T) {
	// The fixture's dirty_mesh has no UV channels; singleUVChannel defaults to
	// enabled with error severity.
	cfg := &Config{
		ScenePath:    writeSceneFile(t, testutil.SceneFixture()),
		OutputFormat: "text",
		LogLevel:     "error",
	}
	out := &SafeBuffer{}
	testApp := NewApp(out, cfg, hcl.NewLoader())

	err := testApp.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksFailed))
	assert.Contains(t, out.String(), "FAIL [error] singleUVChannel")
}

func TestRun_MissingSceneFile(t *testing.T) {
	cfg := &Config{
		ScenePath:    filepath.Join(t.TempDir(), "ghost.json"),
		OutputFormat: "json",
		LogLevel:     "error",
	}
	out := &SafeBuffer{}
	testApp := NewApp(out, cfg, hcl.NewLoader())

	err := testApp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load scene snapshot")
}
