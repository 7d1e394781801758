package morphing

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vektorsolutions/morphscape/shapes"
)

const testBudget = 200

var testKinds = []string{"sphere", "gear", "cloud", "shield", "sphere:1.6"}

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	lib, err := shapes.Build(context.Background(), testBudget, testKinds)
	require.NoError(t, err)

	tints, err := ParseHex("#ffffff", "#9bd7ff", "#9ffcf0", "#ff9b9b", "#ffffff")
	require.NoError(t, err)
	offsets := []mgl32.Vec3{{-2.4, 0, 0}, {-2.2, 0, 0}, {2.2, 0, 0}, {-2.2, 0, 0}, {0, 0, 0}}
	styles := make([]Style, len(tints))
	for i := range styles {
		styles[i] = Style{Offset: offsets[i], Tint: tints[i]}
	}
	d, err := NewDriver(lib, styles, DefaultParams())
	require.NoError(t, err)
	return d
}

func TestLayout_Heights(t *testing.T) {
	l := NewLayout(900, 13)
	assert.Equal(t, float32(13*900), l.PageHeight())
	assert.Equal(t, float32(12*900), l.Scrollable())

	assert.Equal(t, float32(0), NewLayout(900, 0).PageHeight())
	assert.Equal(t, float32(900), NewLayout(900, 1).PageHeight())
	assert.Equal(t, float32(0), NewLayout(900, 1).Scrollable())
}

func TestNormalize_GuardAndClamp(t *testing.T) {
	short := NewLayout(900, 1)
	assert.Equal(t, float32(0), short.Normalize(500))

	l := NewLayout(1000, 5)
	assert.Equal(t, float32(0), l.Normalize(-50))
	assert.Equal(t, float32(MaxNormalized), l.Normalize(l.Scrollable()))
	assert.Equal(t, float32(MaxNormalized), l.Normalize(1e9))
	assert.InDelta(t, 0.5, l.Normalize(2000), 1e-6)
}

func TestNormalize_Monotone(t *testing.T) {
	l := NewLayout(777, 13)
	prev := float32(-1)
	for y := float32(-100); y < l.Scrollable()+100; y += 13.7 {
		n := l.Normalize(y)
		assert.GreaterOrEqual(t, n, prev, "y=%v", y)
		assert.GreaterOrEqual(t, n, float32(0))
		assert.LessOrEqual(t, n, float32(MaxNormalized))
		prev = n
	}
}

func TestSectionOffset(t *testing.T) {
	l := NewLayout(1000, 5)
	assert.Equal(t, float32(0), l.SectionOffset(0))
	assert.InDelta(t, 1600, l.SectionOffset(2), 1e-3)
	assert.Equal(t, l.Scrollable(), l.SectionOffset(9))
}

func TestLocate(t *testing.T) {
	tests := []struct {
		scroll   float32
		sections int
		cur      int
		next     int
		local    float32
	}{
		{0, 13, 0, 1, 0},
		{0.5, 4, 2, 3, 0},
		{0.6, 5, 3, 4, 0},
		{MaxNormalized, 13, 12, 12, 0.9987},
		{1, 4, 3, 3, 1},
		{0.3, 0, 0, 0, 0},
		{0.7, 1, 0, 0, 0.7},
	}
	for _, tt := range tests {
		cur, next, local := Locate(tt.scroll, tt.sections)
		assert.Equal(t, tt.cur, cur, "scroll %v/%d", tt.scroll, tt.sections)
		assert.Equal(t, tt.next, next, "scroll %v/%d", tt.scroll, tt.sections)
		assert.InDelta(t, tt.local, local, 1e-3, "scroll %v/%d", tt.scroll, tt.sections)
		assert.LessOrEqual(t, next, max(tt.sections-1, 0))
	}
}

func TestHoldProgress(t *testing.T) {
	assert.Equal(t, float32(0), HoldProgress(0.5, 0.75))
	assert.Equal(t, float32(0), HoldProgress(0.75, 0.75))
	assert.InDelta(t, 0.5, HoldProgress(0.875, 0.75), 1e-6)
	assert.InDelta(t, 1, HoldProgress(1, 0.8), 1e-6)
	assert.Equal(t, float32(0), HoldProgress(1, 1))
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), Smoothstep(0))
	assert.Equal(t, float32(1), Smoothstep(1))
	assert.InDelta(t, 0.5, Smoothstep(0.5), 1e-6)
	assert.Equal(t, float32(0), Smoothstep(-3))
	assert.Equal(t, float32(1), Smoothstep(7))
	prev := float32(0)
	for p := float32(0); p <= 1; p += 0.01 {
		v := Smoothstep(p)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestDriver_HeroLeavesBufferUntouched(t *testing.T) {
	d := newTestDriver(t)
	dst := shapes.NewParticleSet(testBudget)
	for i := range dst {
		dst[i] = mgl32.Vec3{9, 9, 9}
	}
	st := d.Update(Input{Scroll: 0.05, Elapsed: 1}, dst)

	assert.True(t, st.Hero)
	assert.Equal(t, 0, st.Current)
	assert.Equal(t, float32(0), st.Opacity)
	assert.Equal(t, float32(0), st.Size)
	for i := range dst {
		require.Equal(t, mgl32.Vec3{9, 9, 9}, dst[i])
	}
}

func TestDriver_HoldsCurrentShape(t *testing.T) {
	d := newTestDriver(t)
	dst := shapes.NewParticleSet(testBudget)

	// section 1 of 5, local 0.5: inside the hold window
	st := d.Update(Input{Scroll: 0.3}, dst)
	require.Equal(t, 1, st.Current)
	assert.Equal(t, float32(0), st.Morph)
	assert.Equal(t, float32(1), st.Opacity)
	assert.InDelta(t, 0.054, st.Size, 1e-6)
	assert.Equal(t, d.Library().Shape(1), dst)
}

func TestDriver_BoundaryReachesNextShape(t *testing.T) {
	d := newTestDriver(t)
	dst := shapes.NewParticleSet(testBudget)
	sections := float32(len(testKinds))

	for k := 2; k < len(testKinds); k++ {
		st := d.Update(Input{Scroll: float32(k)/sections - 1e-4}, dst)
		require.Equal(t, k-1, st.Current)
		assert.InDelta(t, 1, st.Eased, 1e-3)
		if diff := cmp.Diff(d.Library().Shape(k), dst, cmpopts.EquateApprox(0, 1e-2)); diff != "" {
			t.Errorf("boundary into %d (-want +got):\n%s", k, diff)
		}
	}
}

func TestDriver_MidMorphPulse(t *testing.T) {
	d := newTestDriver(t)
	dst := shapes.NewParticleSet(testBudget)

	// section 2 of 5, local 0.875 -> morph 0.5 -> eased 0.5
	st := d.Update(Input{Scroll: (2 + 0.875) / 5}, dst)
	require.Equal(t, 2, st.Current)
	assert.InDelta(t, 0.5, st.Eased, 1e-4)
	assert.InDelta(t, 0.066, st.Size, 1e-5)

	a, b := d.Library().Shape(2), d.Library().Shape(3)
	want := a[17].Add(b[17]).Mul(0.5)
	assert.InDelta(t, want.X(), dst[17].X(), 1e-3)
	assert.InDelta(t, want.Y(), dst[17].Y(), 1e-3)
	assert.InDelta(t, 0, st.Offset.X(), 1e-3) // halfway between +2.2 and -2.2
	assert.InDelta(t, 0.2, st.Offset.Y(), 1e-6)
}

func TestDriver_MobileOffsetsAndScale(t *testing.T) {
	d := newTestDriver(t)
	dst := shapes.NewParticleSet(testBudget)
	st := d.Update(Input{Scroll: 0.45, Mobile: true}, dst)
	assert.Equal(t, mgl32.Vec3{0, 1.3, 0}, st.Offset)
	assert.Equal(t, float32(0.5), st.Scale)

	// mobile holds longer: local 0.78 still locked
	st = d.Update(Input{Scroll: (2 + 0.78) / 5, Mobile: true}, dst)
	assert.Equal(t, float32(0), st.Morph)
	st = d.Update(Input{Scroll: (2 + 0.78) / 5}, dst)
	assert.Greater(t, st.Morph, float32(0))
}

func TestDriver_RotationFromElapsed(t *testing.T) {
	d := newTestDriver(t)
	dst := shapes.NewParticleSet(testBudget)
	st := d.Update(Input{Scroll: 0.5, Elapsed: 2}, dst)
	assert.InDelta(t, 1.2, st.Rotation.Y(), 1e-5)
	assert.InDelta(t, 0.08*0.97384763, st.Rotation.X(), 1e-4)
}

func TestDriver_TintBlend(t *testing.T) {
	d := newTestDriver(t)
	dst := shapes.NewParticleSet(testBudget)
	st := d.Update(Input{Scroll: 0.3}, dst)
	want, _ := colorful.Hex("#9bd7ff")
	assert.True(t, st.Color.AlmostEqualRgb(want))
}

func TestDriver_SameShapeIdentity(t *testing.T) {
	lib, err := shapes.Build(context.Background(), 64, []string{"gear", "gear", "gear"})
	require.NoError(t, err)
	styles := make([]Style, 3)
	d, err := NewDriver(lib, styles, DefaultParams())
	require.NoError(t, err)

	dst := shapes.NewParticleSet(64)
	for s := float32(0.34); s < 0.66; s += 0.01 {
		d.Update(Input{Scroll: s}, dst)
		if diff := cmp.Diff(lib.Shape(1), dst, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
			t.Fatalf("scroll %v drifted:\n%s", s, diff)
		}
	}
}

func TestNewDriver_Errors(t *testing.T) {
	_, err := NewDriver(nil, nil, DefaultParams())
	assert.Error(t, err)

	lib, err := shapes.Build(context.Background(), 8, []string{"gear", "cloud"})
	require.NoError(t, err)
	_, err = NewDriver(lib, make([]Style, 3), DefaultParams())
	assert.Error(t, err)
}

func TestFrameState_Model(t *testing.T) {
	st := FrameState{Offset: mgl32.Vec3{1, 2, 3}, Scale: 0.5}
	p := st.Model().Mul4x1(mgl32.Vec4{2, 0, 0, 1})
	assert.InDelta(t, 2, p.X(), 1e-6)
	assert.InDelta(t, 2, p.Y(), 1e-6)
	assert.InDelta(t, 3, p.Z(), 1e-6)
}

func TestPalette_Crossfade(t *testing.T) {
	pal, err := ParseHex("#000000", "#ffffff", "#ff0000")
	require.NoError(t, err)

	c := pal.Crossfade(0.5, 3) // section 1, local 0.5
	assert.InDelta(t, 1.0, c.R, 1e-6)
	assert.InDelta(t, 0.5, c.G, 1e-6)

	assert.Equal(t, colorful.Color{}, Palette(nil).At(3))
	assert.Equal(t, pal[2], pal.At(10))

	_, err = ParseHex("#zzz")
	assert.Error(t, err)

	assert.Equal(t, [4]float32{1, 0, 0, 0.5}, RGBA(pal[2], 0.5))
}
