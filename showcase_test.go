package morphscape

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const threeSections = `
particles: 300
sections:
  - id: hero
    shape: sphere
  - id: gear
    shape: gear
    tint: "#00ffcc"
  - id: rack
    shape: rack
`

func showcaseApp(t *testing.T, renderer Module) *App {
	t.Helper()
	c, err := ParseContent([]byte(threeSections))
	require.NoError(t, err)
	low := QualityLow
	return NewAppBuilder().
		UseStates(StateLoading, StateDone).
		UseModule(
			TimeModule{FixedStep: time.Second / 60},
			ContentModule{Content: c},
			ScrollModule{},
			ShapesModule{},
			MorphModule{},
			LightingModule{},
			BackdropModule{Grid: true},
			QualityModule{Tier: &low},
			renderer,
		).
		Build()
}

func TestShowcase_HeadlessSweep(t *testing.T) {
	dir := t.TempDir()
	app := showcaseApp(t, HeadlessRendererModule{
		Width:  96,
		Height: 64,
		OutDir: dir,
		Frames: 4,
		Sweep:  &ScrollSweep{From: 0.4, To: 0.6},
	})

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, StateDone, app.State())

	state, _ := resource[HeadlessState](app)
	assert.Equal(t, 4, state.Rendered)
	require.NotNil(t, state.Last)
	assert.Equal(t, 96, state.Last.Bounds().Dx())

	// Section two is on screen, so some points are drawn over the backdrop.
	bright := 0
	for i := 0; i < len(state.Last.Pix); i += 4 {
		if state.Last.Pix[i+1] > 60 {
			bright++
		}
	}
	assert.Greater(t, bright, 10)

	data, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)
	var m RunManifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, state.RunID.String(), m.RunID)
	assert.Equal(t, "low", m.Tier)
	require.Len(t, m.Frames, 4)
	assert.Equal(t, "frame_0000.png", m.Frames[0].File)
	assert.InDelta(t, 0.4, m.Frames[0].Scroll, 1e-4)
	assert.InDelta(t, 0.6, m.Frames[3].Scroll, 1e-4)
	for _, f := range m.Frames {
		assert.Equal(t, "gear", f.Section)
		assert.FileExists(t, filepath.Join(dir, f.File))
	}

	morph, _ := resource[MorphState](app)
	assert.Equal(t, 1, morph.Frame.Current)
	assert.False(t, morph.Frame.Hero)
}

func TestShowcase_HeroHidesCloud(t *testing.T) {
	app := showcaseApp(t, HeadlessRendererModule{Width: 64, Height: 48, Frames: 2, Sweep: &ScrollSweep{}})
	require.NoError(t, app.Run(context.Background()))

	frame, _ := resource[RenderFrame](app)
	assert.Empty(t, frame.Instances, "no points in the hero section")
	assert.NotEmpty(t, frame.Grid)
}

func TestShowcase_DebugHUDLines(t *testing.T) {
	app := showcaseApp(t, HeadlessRendererModule{Width: 64, Height: 48, Frames: 1, HUD: true, Sweep: &ScrollSweep{From: 0.5, To: 0.5}})
	require.NoError(t, app.Run(context.Background()))

	frame, _ := resource[RenderFrame](app)
	require.Len(t, frame.HUD, 3)
	assert.Contains(t, frame.HUD[0], "section 2/3 gear")
	assert.Contains(t, frame.HUD[2], "tier low")
}

func TestShowcase_StatelessHeadless(t *testing.T) {
	dir := t.TempDir()
	c, err := ParseContent([]byte(threeSections))
	require.NoError(t, err)
	low := QualityLow
	app := NewApp().UseModules(
		TimeModule{},
		ContentModule{Content: c},
		ScrollModule{},
		ShapesModule{},
		MorphModule{},
		LightingModule{},
		BackdropModule{},
		QualityModule{Tier: &low},
		HeadlessRendererModule{Width: 32, Height: 32, OutDir: dir, Frames: 2},
	)
	require.NoError(t, app.Run(context.Background()))
	assert.FileExists(t, filepath.Join(dir, "frame_0001.png"))
	assert.FileExists(t, filepath.Join(dir, "manifest.yaml"))
}

func TestUseRenderer_OnlyOne(t *testing.T) {
	app := NewApp()
	app.UseHeadless(32, 32, "")
	assert.NotPanics(t, func() { ensureSingleRenderer(app, RendererHeadless) })
	assert.Panics(t, func() { app.UseWGPU(32, 32, "second") })
}
