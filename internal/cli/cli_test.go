package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/shadowcast/internal/core/obstacles"
	"chosenoffset.com/shadowcast/internal/observability"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shadowcast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const quiet = "logger:\n  level: error\n"

func TestTraceEndpoint(t *testing.T) {
	cfg := writeConfig(t, quiet)
	out, err := run(t, "trace", "--config", cfg, "--x", "400", "--y", "300")
	require.NoError(t, err)

	assert.Contains(t, out, `"filled-endpoint"`)
	assert.Contains(t, out, "Segments: (int) 44")
	assert.Contains(t, out, "Rays: (int) 264")
	assert.Contains(t, out, "Headings: ([]float64) (len=264")
	assert.Contains(t, out, "Vertices: ([]geom.Point) (len=264")
	assert.Contains(t, out, "W: (float64) 780")
	assert.Contains(t, out, "H: (float64) 580")
	assert.Contains(t, out, "Simple: (bool) true")
	assert.Contains(t, out, "ContainsApex: (bool) true")
}

func TestTraceAngle(t *testing.T) {
	cfg := writeConfig(t, quiet+"caster:\n  angle_rays: 16\n")
	out, err := run(t, "trace", "--config", cfg, "--mode", "line-angle")
	require.NoError(t, err)

	assert.Contains(t, out, `"line-angle"`)
	assert.Contains(t, out, "Rays: (int) 16")
	assert.Contains(t, out, "X: (float64) 400")
}

func TestSnapshotWritesPNG(t *testing.T) {
	cfg := writeConfig(t, quiet)
	path := filepath.Join(t.TempDir(), "frame.png")

	_, err := run(t, "snapshot", "--config", cfg, "--out", path, "--x", "380")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestSceneFile(t *testing.T) {
	dir := t.TempDir()
	sc := filepath.Join(dir, "box.yaml")
	require.NoError(t, os.WriteFile(sc, []byte(`
width: 100
height: 100
segments:
  - [10, 10, 90, 10]
  - [90, 10, 90, 90]
  - [90, 90, 10, 90]
  - [10, 90, 10, 10]
`), 0o644))

	cfg := writeConfig(t, quiet)
	out, err := run(t, "trace", "--config", cfg, "--scene", sc)
	require.NoError(t, err)
	assert.Contains(t, out, `"box.yaml"`)
	assert.Contains(t, out, "Rays: (int) 24")
}

func TestCapacityExceeded(t *testing.T) {
	cfg := writeConfig(t, quiet+"scene:\n  max_obstacles: 10\n")
	_, err := run(t, "snapshot", "--config", cfg, "--out", filepath.Join(t.TempDir(), "x.png"))
	assert.ErrorIs(t, err, obstacles.ErrCapacityExceeded)
}

func TestConfigErrors(t *testing.T) {
	_, err := run(t, "trace", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cfg := writeConfig(t, quiet)
	_, err = run(t, "trace", "--config", cfg, "--mode", "sideways")
	assert.ErrorContains(t, err, "invalid config")
}

func TestSnapshotLogsPolygonCheck(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "shadowcast.log")
	cfg := writeConfig(t, "logger:\n  level: debug\n  log_file: "+logFile+"\n")

	_, err := run(t, "snapshot", "--config", cfg, "--out", filepath.Join(dir, "frame.png"))
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"visibility polygon"`)
	assert.Contains(t, string(data), `"simple":true`)
	assert.Contains(t, string(data), `"contains_apex":true`)
}
