package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraScreen(t *testing.T) {
	cam := DefaultCamera()

	x, y, depth, ok := cam.Screen(mgl32.Vec3{}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-3)
	assert.InDelta(t, 300, y, 1e-3)
	assert.InDelta(t, 5, depth, 1e-5)

	// Up in world is up on screen.
	_, yUp, _, ok := cam.Screen(mgl32.Vec3{0, 1, 0}, 800, 600)
	require.True(t, ok)
	assert.Less(t, yUp, y)

	_, _, _, ok = cam.Screen(mgl32.Vec3{0, 0, 10}, 800, 600)
	assert.False(t, ok, "points behind the camera are rejected")
}

func TestPointPixels(t *testing.T) {
	assert.InDelta(t, 4.32, PointPixels(0.06, 5, 720), 1e-5)
	assert.Zero(t, PointPixels(0.06, 0, 720))
	assert.Greater(t, PointPixels(0.06, 2, 720), PointPixels(0.06, 8, 720))
}

func TestFogFactor(t *testing.T) {
	assert.Zero(t, FogFactor(5, 10, 30))
	assert.InDelta(t, 0.5, FogFactor(20, 10, 30), 1e-6)
	assert.Equal(t, float32(1), FogFactor(50, 10, 30))
	assert.Zero(t, FogFactor(50, 30, 30))
}

func TestLightingShade(t *testing.T) {
	unlit := Lighting{}
	assert.Equal(t, [3]float32{1, 1, 1}, unlit.Shade(mgl32.Vec3{1, 0, 0}))

	l := Lighting{
		Ambient: [3]float32{0.3, 0.3, 0.3},
		Directional: []DirectionalLight{
			{Position: mgl32.Vec3{10, 10, 5}, Color: [3]float32{1, 1, 1}, Intensity: 0.8},
		},
		Strength: 1,
	}
	toward := l.Shade(mgl32.Vec3{10, 10, 5})
	away := l.Shade(mgl32.Vec3{-10, -10, -5})
	assert.InDelta(t, 1, toward[0], 1e-6, "lit side saturates")
	assert.InDelta(t, 0.3, away[0], 1e-6, "back side keeps ambient")

	l.Strength = 0.25
	assert.InDelta(t, 1+(0.3-1)*0.25, l.Shade(mgl32.Vec3{-10, -10, -5})[1], 1e-6)
}

func TestPackInstances(t *testing.T) {
	b := PointBatch{
		Points: []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}},
		Model:  mgl32.Translate3D(0, 2, 0),
		Size:   0.06,
		Color:  [4]float32{0.5, 0.25, 1, 1},
	}
	out := PackInstances(nil, b, Lighting{})
	require.Len(t, out, 2)
	assert.Equal(t, [3]float32{1, 2, 0}, out[0].Pos)
	assert.Equal(t, [3]float32{0, 3, 0}, out[1].Pos)
	assert.Equal(t, b.Color, out[0].Color)
	assert.Equal(t, float32(0.06), out[1].Size)

	b.Size = 0
	assert.Len(t, PackInstances(out, b, Lighting{}), 2, "invisible batches add nothing")
}

func TestSpriteMask(t *testing.T) {
	m := SpriteMask(SpriteSize)
	require.Equal(t, SpriteSize, m.Bounds().Dx())

	centre := m.AlphaAt(SpriteSize/2, SpriteSize/2).A
	assert.Greater(t, centre, uint8(230))
	assert.Zero(t, m.AlphaAt(0, 0).A)
	assert.Zero(t, m.AlphaAt(SpriteSize-1, SpriteSize/2).A)

	assert.Equal(t, uint8(77), AlphaCut)
	for _, a := range m.Pix {
		if a != 0 {
			assert.GreaterOrEqual(t, a, AlphaCut, "texels under the alpha test are cleared")
		}
	}
}

func TestGridLines(t *testing.T) {
	g := Grid{
		Size:        100,
		Divisions:   50,
		Y:           -5,
		CenterColor: [3]float32{0, 0.2, 0.125},
		LineColor:   [3]float32{0, 0.1, 0.06},
	}
	lines := g.Lines()
	require.Len(t, lines, 102)

	centre := 0
	for _, l := range lines {
		assert.Equal(t, float32(-5), l.A.Y())
		if l.Color == g.CenterColor {
			centre++
		}
	}
	assert.Equal(t, 2, centre)
	assert.Nil(t, Grid{}.Lines())
}

func TestPostFX(t *testing.T) {
	b := Bloom{Threshold: 0.85, Smoothing: 0.9}
	assert.Zero(t, b.BrightPass(0.5))
	assert.Equal(t, float32(1), b.BrightPass(2))

	v := Vignette{Offset: 0.4, Darkness: 0.6}
	c := [3]float32{1, 0, 0}
	assert.Equal(t, c, v.Mix(c, 0.5, 0.5))
	corner := v.Mix(c, 0, 0)
	assert.Less(t, corner[0], float32(1))
	assert.Greater(t, corner[1], float32(0))

	assert.InDelta(t, 1, Luminance([3]float32{1, 1, 1}), 1e-6)
}

func TestHUD(t *testing.T) {
	hud, err := NewHUD(12)
	require.NoError(t, err)
	assert.Positive(t, hud.LineHeight())
}
