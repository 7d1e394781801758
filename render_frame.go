package morphscape

import (
	"fmt"

	"github.com/vektorsolutions/morphscape/render/core"
)

// RenderFrame is the frame handed to the active renderer, rebuilt every
// frame in PreRender from the scene's components and resources.
type RenderFrame struct {
	core.Frame
	// Debug adds HUD lines describing the morph state.
	Debug bool
}

// Camera is the scene camera resource.
type Camera struct {
	core.Camera
}

// useRenderFrame installs the frame resources shared by every renderer.
func useRenderFrame(app *App, cmd *Commands, debug bool) {
	if _, ok := resource[Camera](app); !ok {
		cmd.AddResources(&Camera{Camera: core.DefaultCamera()})
	}
	cmd.AddResources(&RenderFrame{Debug: debug})
	app.UseSystem(
		System(collectFrameSystem).
			InStage(PreRender).
			RunAlways(),
	)
}

func collectFrameSystem(
	frame *RenderFrame,
	cam *Camera,
	vp *Viewport,
	backdrop *BackdropState,
	scene *SceneLighting,
	quality *QualitySettings,
	morph *MorphState,
	scroll *Scroll,
	content *ContentState,
	cmd *Commands,
) {
	f := &frame.Frame
	f.Width, f.Height = vp.Width, vp.Height
	f.Camera = cam.Camera
	bg := backdrop.Background
	f.Clear = [3]float32{float32(bg.R), float32(bg.G), float32(bg.B)}
	f.Fog = backdrop.Fog
	f.PostFX = quality.PostFX
	f.Multisample = quality.Multisample
	f.Instances = collectPointClouds(f.Instances[:0], scene.Lighting, cmd)
	f.Grid = collectGrids(f.Grid[:0], cmd)

	f.HUD = f.HUD[:0]
	if frame.Debug {
		st := morph.Frame
		f.HUD = append(f.HUD,
			fmt.Sprintf("section %d/%d %s", st.Current+1, len(content.Current.Sections), sectionID(content.Current, st.Current)),
			fmt.Sprintf("scroll %.4f local %.3f morph %.3f", scroll.Normalized, st.Local, st.Eased),
			fmt.Sprintf("points %d tier %s", len(f.Instances), quality.Tier),
		)
	}
}

func sectionID(c *Content, i int) string {
	if i < 0 || i >= len(c.Sections) {
		return ""
	}
	return c.Sections[i].ID
}

// collectPointClouds packs every visible cloud in world space.
func collectPointClouds(dst []core.ParticleInstance, lighting core.Lighting, cmd *Commands) []core.ParticleInstance {
	MakeQuery3[TransformComponent, PointCloudComponent, PointMaterialComponent](cmd).Map(
		func(eid EntityId, tr *TransformComponent, pc *PointCloudComponent, mat *PointMaterialComponent) bool {
			if !pc.Visible {
				return true
			}
			dst = core.PackInstances(dst, core.PointBatch{
				Points: pc.Points,
				Model:  tr.Model(),
				Size:   mat.Size,
				Color:  mat.Color,
			}, lighting)
			return true
		})
	return dst
}

func collectGrids(dst []core.GridLine, cmd *Commands) []core.GridLine {
	MakeQuery1[GridComponent](cmd).Map(func(eid EntityId, g *GridComponent) bool {
		dst = append(dst, g.Grid.Lines()...)
		return true
	})
	return dst
}
