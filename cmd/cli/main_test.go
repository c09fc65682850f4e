package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// cleanScene is a snapshot that passes every default-enabled check: one UV
// channel per object, no degenerate geometry, textures within resolution
// limits.
const cleanScene = `{
	"name": "crate",
	"objects": [
		{
			"name": "crate_mesh",
			"triangles": 12,
			"uv_layers": [{"name": "UVMap", "min_u": 0, "min_v": 0, "max_u": 1, "max_v": 1}],
			"materials": ["crate_mat"]
		}
	],
	"materials": [{"name": "crate_mat", "textures": ["crate_diffuse"]}],
	"textures": [{"name": "crate_diffuse", "width": 1024, "height": 1024}]
}`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// A profile with a syntax error is guaranteed to panic during the loading
	// phase inside app.NewApp().
	invalidHCL := `
		check "noNgons" {
			enabled =
	`
	tempDir := t.TempDir()
	profilePath := filepath.Join(tempDir, "profile.hcl")
	require.NoError(t, os.WriteFile(profilePath, []byte(invalidHCL), 0600))

	args := []string{"-profile", profilePath, writeScene(t, cleanScene)}
	out := &bytes.Buffer{}

	runErr := run(out, args)

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to load profile")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return shouldExit=true.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"-log-level", "loud", writeScene(t, cleanScene)}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log-level")
}

func TestRun_CleanScenePasses(t *testing.T) {
	t.Parallel()

	args := []string{"-log-level", "error", writeScene(t, cleanScene)}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "a clean scene should pass every default-enabled check")
	require.Contains(t, out.String(), `"identifier": "noNgons"`)
}

func TestRun_FailingSceneExitsWithError(t *testing.T) {
	t.Parallel()

	// Zero UV layers trips singleUVChannel, which defaults to error severity.
	badScene := `{
		"name": "crate",
		"objects": [{"name": "crate_mesh", "triangles": 12}]
	}`
	args := []string{"-log-level", "error", "-output", "text", writeScene(t, badScene)}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err)
	require.Contains(t, err.Error(), "checks failed")
	require.True(t, strings.Contains(out.String(), "FAIL [error] singleUVChannel"), "text output should name the failed check")
}

func TestRun_YAMLProfileDisablesCheck(t *testing.T) {
	t.Parallel()

	// Same failing scene as above, but the profile downgrades the check so the
	// process exits cleanly.
	badScene := `{
		"name": "crate",
		"objects": [{"name": "crate_mesh", "triangles": 12}]
	}`
	profile := "singleUVChannel:\n  enabled: false\n"
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(profile), 0600))

	args := []string{"-log-level", "error", "-profile", profilePath, writeScene(t, badScene)}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "disabling the failing check via profile should yield a clean exit")
}
