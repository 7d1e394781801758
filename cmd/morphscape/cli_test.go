package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vektorsolutions/morphscape"
	"github.com/vektorsolutions/morphscape/shapes"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		particles = 0
		configPath = ""
		shapesList = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseTier(t *testing.T) {
	tier, err := parseTier("auto")
	require.NoError(t, err)
	assert.Nil(t, tier)

	tier, err = parseTier("HIGH")
	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, morphscape.QualityHigh, *tier)

	_, err = parseTier("ultra")
	assert.Error(t, err)
}

func TestShapesList(t *testing.T) {
	out, err := execute(t, "shapes", "--list")
	require.NoError(t, err)
	for _, k := range shapes.Kinds() {
		assert.Contains(t, out, k)
	}
}

func TestShapesTable(t *testing.T) {
	out, err := execute(t, "shapes", "--particles", "120", "sphere", "gear")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CENTROID")
	assert.Contains(t, lines[1], "sphere")
	assert.Contains(t, lines[2], "gear")
	assert.Contains(t, lines[2], "120")
}

func TestShapesUnknownKind(t *testing.T) {
	_, err := execute(t, "shapes", "--particles", "50", "teapot")
	assert.Error(t, err)
}

func TestRenderWritesFramesAndManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "render",
		"--out", dir,
		"--frames", "3",
		"--width", "64",
		"--height", "48",
		"--particles", "120",
		"--quality", "low",
	)
	require.NoError(t, err)

	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png", "manifest.yaml"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)
	var m morphscape.RunManifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, 64, m.Width)
	assert.Equal(t, 48, m.Height)
	assert.Equal(t, "low", m.Tier)
	require.Len(t, m.Frames, 3)
	assert.InDelta(t, 0, m.Frames[0].Scroll, 1e-4)
	assert.InDelta(t, 1, m.Frames[2].Scroll, 1e-3)
}

func TestRenderRejectsBadScroll(t *testing.T) {
	_, err := execute(t, "render", "--out", t.TempDir(), "--scroll-to", "1.5")
	assert.Error(t, err)
	renderScrollTo = 1
}
