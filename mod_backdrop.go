package morphscape

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vektorsolutions/morphscape/render/core"
)

// GridComponent places a line grid in the scene.
type GridComponent struct {
	Grid core.Grid
}

// BackdropState is the clear color and fog for the current frame.
type BackdropState struct {
	Background colorful.Color
	Fog        core.Fog
}

// BackdropModule cross-fades the background through the section palette as
// the page scrolls. Fog takes the background color. Grid adds the floor.
type BackdropModule struct {
	Grid bool
}

func DefaultGrid() core.Grid {
	center, _ := colorful.Hex("#003320")
	line, _ := colorful.Hex("#001a10")
	return core.Grid{
		Size:        100,
		Divisions:   50,
		Y:           -5,
		CenterColor: [3]float32{float32(center.R), float32(center.G), float32(center.B)},
		LineColor:   [3]float32{float32(line.R), float32(line.G), float32(line.B)},
	}
}

func (mod BackdropModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&BackdropState{})
	if mod.Grid {
		cmd.AddEntity(&GridComponent{Grid: DefaultGrid()})
	}
	app.UseSystem(
		System(backdropSystem).
			InStage(Update).
			RunAlways(),
	)
}

func backdropSystem(state *BackdropState, content *ContentState, scroll *Scroll, vp *Viewport) {
	c := content.Current
	palette := c.Backgrounds(vp.Mobile)
	state.Background = palette.Crossfade(scroll.Normalized, len(palette))

	bg := state.Background
	state.Fog = core.Fog{
		Color: [3]float32{float32(bg.R), float32(bg.G), float32(bg.B)},
		Near:  c.Fog.Near,
		Far:   c.Fog.Far,
	}
}
