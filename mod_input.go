package morphscape

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyUp int = iota
	KeyDown
	KeyPageUp
	KeyPageDown
	KeySpace
	KeyHome
	KeyEnd
	KeyEscape
	KeyShift
	KeyF3
	keyCount
)

// InputModule turns window events into ScrollInput and Viewport changes.
// It needs a WindowState, so install it after PlatformWindowModule.
type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	// wheel collects scroll callback offsets between frames.
	wheel float32
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ws, ok := resource[WindowState](app)
	if !ok {
		panic("InputModule requires a WindowState; install PlatformWindowModule first")
	}
	input := &Input{}
	cmd.AddResources(input)

	// GLFW reports positive y when scrolling up; the page moves the other way.
	ws.windowGlfw.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		input.wheel -= float32(yoff)
	})

	app.UseSystem(
		System(inputSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input, scroll *ScrollInput, vp *Viewport, frame *RenderFrame, cmd *Commands) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.JustPressed[key] = false
		input.JustReleased[key] = false

		switch s.windowGlfw.GetKey(glfwKey) {
		case glfw.Press, glfw.Repeat:
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		case glfw.Release:
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	applyScrollKeys(input, scroll)

	if input.JustPressed[KeyF3] {
		frame.Debug = !frame.Debug
	}

	w, h := s.windowGlfw.GetSize()
	if w > 0 && h > 0 && (w != vp.Width || h != vp.Height) {
		vp.Resize(w, h)
	}
	s.Width, s.Height = s.windowGlfw.GetFramebufferSize()

	if input.JustPressed[KeyEscape] || s.windowGlfw.ShouldClose() {
		cmd.Exit(nil)
	}
}

// applyScrollKeys maps this frame's wheel delta and key presses onto
// ScrollInput.
func applyScrollKeys(input *Input, scroll *ScrollInput) {
	scroll.Wheel += input.wheel
	input.wheel = 0

	if input.JustPressed[KeyDown] {
		scroll.Lines++
	}
	if input.JustPressed[KeyUp] {
		scroll.Lines--
	}
	if input.JustPressed[KeyPageDown] {
		scroll.Pages++
	}
	if input.JustPressed[KeyPageUp] {
		scroll.Pages--
	}
	if input.JustPressed[KeySpace] {
		if input.Pressed[KeyShift] {
			scroll.Pages--
		} else {
			scroll.Pages++
		}
	}
	if input.JustPressed[KeyHome] {
		scroll.Home = true
	}
	if input.JustPressed[KeyEnd] {
		scroll.End = true
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyUp:       glfw.KeyUp,
	KeyDown:     glfw.KeyDown,
	KeyPageUp:   glfw.KeyPageUp,
	KeyPageDown: glfw.KeyPageDown,
	KeySpace:    glfw.KeySpace,
	KeyHome:     glfw.KeyHome,
	KeyEnd:      glfw.KeyEnd,
	KeyEscape:   glfw.KeyEscape,
	KeyShift:    glfw.KeyLeftShift,
	KeyF3:       glfw.KeyF3,
}
