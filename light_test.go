package morphscape

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLightingModule_CollectsLights(t *testing.T) {
	app := NewApp().UseModules(LightingModule{})
	app.FlushCommands()
	app.Step()

	scene, ok := resource[SceneLighting](app)
	require.True(t, ok)
	l := scene.Lighting
	assert.Equal(t, float32(0.25), l.Strength)
	assert.InDelta(t, 0.3, l.Ambient[0], 1e-6)
	require.Len(t, l.Directional, 1)
	assert.Equal(t, mgl32.Vec3{10, 10, 5}, l.Directional[0].Position)
	assert.Equal(t, float32(0.8), l.Directional[0].Intensity)
}

func TestCollectLighting_SumsAmbient(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	cmd.AddEntity(&LightComponent{Type: LightTypeAmbient, Color: [3]float32{1, 0, 0}, Intensity: 0.5})
	cmd.AddEntity(&LightComponent{Type: LightTypeAmbient, Color: [3]float32{0, 1, 0}, Intensity: 0.25})
	app.FlushCommands()

	l := collectLighting(cmd, 1)
	assert.Equal(t, [3]float32{0.5, 0.25, 0}, l.Ambient)
	assert.Empty(t, l.Directional)
}

func TestTransform_Model(t *testing.T) {
	tr := NewTransform()
	assert.True(t, tr.Model().ApproxEqual(mgl32.Ident4()))

	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	p := tr.Model().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, p.Vec3().ApproxEqual(mgl32.Vec3{3, 2, 3}), "got %v", p)

	tr.SetPitchYaw(0, mgl32.DegToRad(90))
	p = tr.Model().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, p.Vec3().ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-5), "got %v", p)
}
