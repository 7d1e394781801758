package morphscape

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackdropSystem_CrossfadesAndFogFollows(t *testing.T) {
	c, err := ParseContent([]byte(`
fog: {near: 4, far: 12}
sections:
  - id: a
    background: "#000000"
    mobile_background: "#ffffff"
  - id: b
    background: "#ffffff"
`))
	require.NoError(t, err)
	content := &ContentState{Current: c}
	state := &BackdropState{}
	vp := NewViewport(1280, 720)

	backdropSystem(state, content, &Scroll{Normalized: 0}, vp)
	assert.True(t, state.Background.AlmostEqualRgb(colorful.Color{}))

	backdropSystem(state, content, &Scroll{Normalized: 0.25}, vp)
	assert.InDelta(t, 0.5, state.Background.R, 0.02)
	assert.Equal(t, float32(state.Background.R), state.Fog.Color[0])
	assert.Equal(t, float32(4), state.Fog.Near)
	assert.Equal(t, float32(12), state.Fog.Far)

	vp.Resize(390, 844)
	backdropSystem(state, content, &Scroll{Normalized: 0}, vp)
	assert.InDelta(t, 1, state.Background.R, 1e-9, "mobile palette")
}

func TestBackdropModule_Grid(t *testing.T) {
	app := NewApp().UseModules(BackdropModule{Grid: true})
	app.FlushCommands()

	var grids int
	MakeQuery1[GridComponent](app.Commands()).Map(func(_ EntityId, g *GridComponent) bool {
		grids++
		assert.Len(t, g.Grid.Lines(), 2*(50+1))
		return true
	})
	assert.Equal(t, 1, grids)

	g := DefaultGrid()
	assert.Equal(t, float32(-5), g.Y)
	assert.Greater(t, g.CenterColor[1], g.LineColor[1])
}
