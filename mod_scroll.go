package morphscape

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/vektorsolutions/morphscape/morphing"
)

// MobileBreakpoint is the viewport width below which the mobile layout is used.
const MobileBreakpoint = 768

// Viewport is the drawable area in logical pixels.
type Viewport struct {
	Width  int
	Height int
	Mobile bool
}

func NewViewport(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

func (v *Viewport) Resize(width, height int) {
	v.Width, v.Height = width, height
	v.Mobile = width < MobileBreakpoint
}

// ScrollInput collects one frame of scroll requests from the platform layer.
// It is cleared after the scroll system consumes it.
type ScrollInput struct {
	Wheel float32 // notches, positive scrolls down
	Lines int     // arrow keys
	Pages int     // page up/down, space
	Home  bool
	End   bool
	// JumpTo, when set, moves straight to a normalized position.
	JumpTo *float32
}

// Scroll is the virtual page position. Target is where input wants to be,
// Offset trails it through a spring, and Normalized is derived from Offset.
type Scroll struct {
	Layout     morphing.Layout
	Target     float32
	Offset     float32
	Normalized float32

	velocity  float64
	spring    harmonica.Spring
	step      time.Duration
	frequency float64
	damping   float64
	smooth    bool
}

type ScrollModule struct {
	// Smooth enables spring smoothing; otherwise Offset snaps to Target.
	Smooth    bool
	Frequency float64
	Damping   float64
	WheelStep float32 // pixels per wheel notch
	LineStep  float32 // pixels per arrow key
}

func (mod ScrollModule) Install(app *App, cmd *Commands) {
	if mod.Frequency == 0 {
		mod.Frequency = 6
	}
	if mod.Damping == 0 {
		mod.Damping = 1
	}
	if mod.WheelStep == 0 {
		mod.WheelStep = 100
	}
	if mod.LineStep == 0 {
		mod.LineStep = 40
	}
	ensureViewport(app, cmd, 0, 0)
	cmd.AddResources(
		&ScrollInput{},
		&Scroll{
			frequency: mod.Frequency,
			damping:   mod.Damping,
			smooth:    mod.Smooth,
		},
	)

	wheel, line := mod.WheelStep, mod.LineStep
	app.UseSystem(
		System(func(s *Scroll, in *ScrollInput, vp *Viewport, content *ContentState, t *Time) {
			scrollSystem(s, in, vp, content, t.Dt, wheel, line)
		}).
			InStage(PreUpdate).
			RunAlways(),
	)
}

// scrollSystem applies one frame of input. The spring is advanced by dt, so
// the animation takes the same wall time at any frame rate.
func scrollSystem(s *Scroll, in *ScrollInput, vp *Viewport, content *ContentState, dt time.Duration, wheelStep, lineStep float32) {
	s.Layout = morphing.NewLayout(float32(vp.Height), len(content.Current.Sections))

	switch {
	case in.JumpTo != nil:
		s.Target = *in.JumpTo * s.Layout.Scrollable()
		s.Offset = s.Target
		s.velocity = 0
	case in.Home:
		s.Target = 0
	case in.End:
		s.Target = s.Layout.Scrollable()
	default:
		s.Target += in.Wheel*wheelStep +
			float32(in.Lines)*lineStep +
			float32(in.Pages)*0.9*float32(vp.Height)
	}
	*in = ScrollInput{}

	s.Target = s.Layout.ClampOffset(s.Target)
	if s.smooth {
		if dt > 0 {
			s.advance(dt)
		}
	} else {
		s.Offset = s.Target
	}
	s.Offset = s.Layout.ClampOffset(s.Offset)
	s.Normalized = s.Layout.Normalize(s.Offset)
}

func (s *Scroll) advance(dt time.Duration) {
	if dt != s.step {
		s.spring = harmonica.NewSpring(dt.Seconds(), s.frequency, s.damping)
		s.step = dt
	}
	pos, vel := s.spring.Update(float64(s.Offset), s.velocity, float64(s.Target))
	s.Offset, s.velocity = float32(pos), vel
}
