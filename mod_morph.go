package morphscape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vektorsolutions/morphscape/morphing"
	"github.com/vektorsolutions/morphscape/shapes"
)

// PointCloudComponent is a cloud of points in local space. The morph system
// owns Points and rewrites it in place.
type PointCloudComponent struct {
	Points  shapes.ParticleSet
	Visible bool
}

// PointMaterialComponent is the shared look of a cloud's points. Color is
// straight sRGB with opacity in alpha; Size is in world units.
type PointMaterialComponent struct {
	Color [4]float32
	Size  float32
}

// MorphState exposes the last computed frame.
type MorphState struct {
	Frame morphing.FrameState
	Cloud EntityId

	driver         *morphing.Driver
	params         morphing.Params
	libVersion     int
	contentVersion int
}

type MorphModule struct {
	// Params overrides morphing.DefaultParams.
	Params *morphing.Params
}

func (mod MorphModule) Install(app *App, cmd *Commands) {
	params := morphing.DefaultParams()
	if mod.Params != nil {
		params = *mod.Params
	}
	transform := NewTransform()
	cloud := cmd.AddEntity(
		&transform,
		&PointCloudComponent{},
		&PointMaterialComponent{},
	)
	cmd.AddResources(&MorphState{Cloud: cloud, params: params})

	app.UseSystem(
		System(morphSystem).
			InStage(Update).
			RunAlways(),
	)
}

func morphSystem(state *MorphState, lib *ShapeLibrary, content *ContentState, scroll *Scroll, vp *Viewport, t *Time, cmd *Commands, log Logger) {
	if !lib.Ready() {
		return
	}
	if !state.sync(lib, content, log) {
		return
	}

	in := morphing.Input{
		Scroll:  scroll.Normalized,
		Elapsed: t.Elapsed.Seconds(),
		Mobile:  vp.Mobile,
	}
	active := state.driver.Library()

	MakeQuery3[TransformComponent, PointCloudComponent, PointMaterialComponent](cmd).Map(
		func(eid EntityId, tr *TransformComponent, pc *PointCloudComponent, mat *PointMaterialComponent) bool {
			if eid != state.Cloud {
				return true
			}
			if len(pc.Points) != active.Budget {
				pc.Points = active.Shape(0).Clone()
			}
			frame := state.driver.Update(in, pc.Points)
			state.Frame = frame

			tr.Position = frame.Offset
			tr.SetPitchYaw(frame.Rotation.X(), frame.Rotation.Y())
			tr.Scale = mgl32.Vec3{frame.Scale, frame.Scale, frame.Scale}

			mat.Color = morphing.RGBA(frame.Color, frame.Opacity)
			mat.Size = frame.Size
			pc.Visible = !frame.Hero && frame.Opacity > 0
			return false
		})
}

// sync keeps the driver in step with the library and content versions. It
// reports whether the driver is usable this frame.
func (state *MorphState) sync(lib *ShapeLibrary, content *ContentState, log Logger) bool {
	if state.driver == nil || state.libVersion != lib.Version {
		d, err := morphing.NewDriver(lib.Library, content.Current.Styles(), state.params)
		if err != nil {
			// Content changed shape count and its library is still building.
			log.Debugf("Morph driver waiting: %v", err)
			return state.driver != nil
		}
		state.driver = d
		state.libVersion = lib.Version
		state.contentVersion = content.Version
		return true
	}
	if state.contentVersion != content.Version {
		if err := state.driver.SetStyles(content.Current.Styles()); err != nil {
			log.Debugf("Morph styles waiting: %v", err)
			return true
		}
		state.contentVersion = content.Version
	}
	return true
}
