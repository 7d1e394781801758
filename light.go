package morphscape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vektorsolutions/morphscape/render/core"
)

type LightType uint32

const (
	LightTypeAmbient LightType = iota
	LightTypeDirectional
)

// LightComponent is the ECS component for lights. Directional lights shine
// from Position toward the origin.
type LightComponent struct {
	Type      LightType
	Color     [3]float32
	Intensity float32
	Position  mgl32.Vec3
}

// LightingModule spawns the scene lights. Strength is how much they shade
// the otherwise unlit points.
type LightingModule struct {
	Strength float32
}

// SceneLighting is rebuilt from LightComponents every frame.
type SceneLighting struct {
	Lighting core.Lighting
	strength float32
}

func (mod LightingModule) Install(app *App, cmd *Commands) {
	if mod.Strength == 0 {
		mod.Strength = 0.25
	}
	white := [3]float32{1, 1, 1}
	cmd.AddEntity(&LightComponent{Type: LightTypeAmbient, Color: white, Intensity: 0.3})
	cmd.AddEntity(&LightComponent{
		Type:      LightTypeDirectional,
		Color:     white,
		Intensity: 0.8,
		Position:  mgl32.Vec3{10, 10, 5},
	})
	cmd.AddResources(&SceneLighting{strength: mod.Strength})

	app.UseSystem(
		System(lightingSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

func lightingSystem(scene *SceneLighting, cmd *Commands) {
	scene.Lighting = collectLighting(cmd, scene.strength)
}

func collectLighting(cmd *Commands, strength float32) core.Lighting {
	l := core.Lighting{Strength: strength}
	MakeQuery1[LightComponent](cmd).Map(func(eid EntityId, lc *LightComponent) bool {
		switch lc.Type {
		case LightTypeAmbient:
			for i := range l.Ambient {
				l.Ambient[i] += lc.Color[i] * lc.Intensity
			}
		case LightTypeDirectional:
			l.Directional = append(l.Directional, core.DirectionalLight{
				Position:  lc.Position,
				Color:     lc.Color,
				Intensity: lc.Intensity,
			})
		}
		return true
	})
	return l
}
