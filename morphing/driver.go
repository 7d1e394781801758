package morphing

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vektorsolutions/morphscape/shapes"
)

// Style is the per-section presentation the driver blends between.
type Style struct {
	Offset mgl32.Vec3 // desktop screen-space offset
	Tint   colorful.Color
}

type Params struct {
	HoldDesktop  float32
	HoldMobile   float32
	LiftDesktop  float32
	LiftMobile   float32
	ScaleDesktop float32
	ScaleMobile  float32
	BaseSize     float32
	PulseFloor   float32
	PulseAmp     float32
	SpinRate     float32
	WobbleRate   float32
	WobbleAmp    float32
}

func DefaultParams() Params {
	return Params{
		HoldDesktop:  0.75,
		HoldMobile:   0.8,
		LiftDesktop:  0.2,
		LiftMobile:   1.3,
		ScaleDesktop: 1,
		ScaleMobile:  0.5,
		BaseSize:     0.06,
		PulseFloor:   0.9,
		PulseAmp:     0.2,
		SpinRate:     0.6,
		WobbleRate:   0.9,
		WobbleAmp:    0.08,
	}
}

// Input is everything a frame depends on besides the library.
type Input struct {
	Scroll  float32 // normalized, see Layout.Normalize
	Elapsed float64 // seconds since start
	Mobile  bool
}

type FrameState struct {
	Current int
	Next    int
	Local   float32
	Morph   float32
	Eased   float32

	Offset  mgl32.Vec3
	Color   colorful.Color
	Size    float32
	Scale   float32
	Opacity float32
	// Pitch and yaw in radians.
	Rotation mgl32.Vec2
	Hero     bool
}

// Model builds the cloud's model matrix: translate, then pitch, then yaw,
// then uniform scale.
func (s FrameState) Model() mgl32.Mat4 {
	return mgl32.Translate3D(s.Offset.X(), s.Offset.Y(), s.Offset.Z()).
		Mul4(mgl32.HomogRotate3DX(s.Rotation.X())).
		Mul4(mgl32.HomogRotate3DY(s.Rotation.Y())).
		Mul4(mgl32.Scale3D(s.Scale, s.Scale, s.Scale))
}

// Driver maps scroll to a frame state and writes the live particle buffer.
type Driver struct {
	lib    *shapes.Library
	styles []Style
	params Params
}

func NewDriver(lib *shapes.Library, styles []Style, params Params) (*Driver, error) {
	if lib == nil || lib.Len() == 0 {
		return nil, fmt.Errorf("morphing: empty shape library")
	}
	d := &Driver{lib: lib, params: params}
	if err := d.SetStyles(styles); err != nil {
		return nil, err
	}
	return d, nil
}

// SetStyles swaps section styles, e.g. after a content reload.
func (d *Driver) SetStyles(styles []Style) error {
	if len(styles) != d.lib.Len() {
		return fmt.Errorf("morphing: %d styles for %d shapes", len(styles), d.lib.Len())
	}
	d.styles = append(d.styles[:0], styles...)
	return nil
}

func (d *Driver) Library() *shapes.Library { return d.lib }
func (d *Driver) Params() Params           { return d.params }

// Update computes the frame for in and writes the blended shape into dst.
// dst must hold lib.Budget points. In the hero section dst is not touched.
func (d *Driver) Update(in Input, dst shapes.ParticleSet) FrameState {
	p := d.params
	sections := d.lib.Len()

	var st FrameState
	st.Current, st.Next, st.Local = Locate(in.Scroll, sections)

	hold := p.HoldDesktop
	if in.Mobile {
		hold = p.HoldMobile
	}
	st.Morph = HoldProgress(st.Local, hold)
	st.Eased = Smoothstep(st.Morph)

	t := float32(in.Elapsed)
	st.Rotation = mgl32.Vec2{
		float32(math.Sin(float64(t*p.WobbleRate))) * p.WobbleAmp,
		t * p.SpinRate,
	}

	cur, nxt := d.styles[st.Current], d.styles[st.Next]
	st.Color = cur.Tint.BlendRgb(nxt.Tint, float64(st.Eased))

	if in.Mobile {
		st.Offset = mgl32.Vec3{0, p.LiftMobile, 0}
		st.Scale = p.ScaleMobile
	} else {
		st.Offset = lerpVec(cur.Offset, nxt.Offset, st.Eased).Add(mgl32.Vec3{0, p.LiftDesktop, 0})
		st.Scale = p.ScaleDesktop
	}

	if st.Current == 0 {
		st.Hero = true
		return st
	}

	shapes.LerpInto(dst, d.lib.Shape(st.Current), d.lib.Shape(st.Next), st.Eased)
	pulse := float32(math.Sin(float64(st.Eased) * math.Pi))
	st.Size = p.BaseSize * (p.PulseFloor + p.PulseAmp*pulse)
	st.Opacity = 1
	return st
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
