package shapes

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_AllKindsFillBudget(t *testing.T) {
	for _, n := range []int{1, 7, 99, 800, 1201} {
		for _, kind := range Kinds() {
			set, err := Generate(kind, n)
			require.NoError(t, err, "kind %s n=%d", kind, n)
			assert.Len(t, set, n, "kind %s", kind)
			assert.NoError(t, set.Validate(n), "kind %s", kind)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, kind := range Kinds() {
		a, err := Generate(kind, 800)
		require.NoError(t, err)
		b, err := Generate(kind, 800)
		require.NoError(t, err)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%s not deterministic (-a +b):\n%s", kind, diff)
		}
	}
}

func TestGenerate_UnknownKind(t *testing.T) {
	_, err := Generate("teapot", 100)
	assert.True(t, errors.Is(err, ErrUnknownShape))

	_, err = Generate("gear:2", 100)
	assert.True(t, errors.Is(err, ErrUnknownShape))

	for _, kind := range []string{"sphere:-1", "sphere:0", "sphere:NaN", "sphere:+Inf", "sphere:inf"} {
		_, err = Generate(kind, 100)
		assert.True(t, errors.Is(err, ErrUnknownShape), kind)
	}

	_, err = Generate("sphere", 0)
	assert.True(t, errors.Is(err, ErrBudget))
}

func TestFibonacciSphere_OnSurface(t *testing.T) {
	const n = 800
	set, err := Generate("sphere:1.6", n)
	require.NoError(t, err)

	for i, p := range set {
		assert.InDelta(t, 1.6, p.Len(), 1e-4, "point %d", i)
	}

	// y_i = i*(2/N) - 1 + 1/N
	assert.InDelta(t, (-1+1.0/n)*1.6, set[0].Y(), 1e-5)
	assert.InDelta(t, (1-1.0/n)*1.6, set[n-1].Y(), 1e-4)
	for i := 1; i < n; i++ {
		assert.Greater(t, set[i].Y(), set[i-1].Y())
	}
}

func TestAllocate_FillsTailWithOrigin(t *testing.T) {
	marker := mgl32.Vec3{1, 2, 3}
	regions := []Region{
		{Kind: RegionFill, Percent: 30, Groups: 4, Sample: func(s Slot) mgl32.Vec3 { return marker }},
		{Kind: RegionFill, Percent: 33, Sample: func(s Slot) mgl32.Vec3 { return marker }},
	}

	// 10*30/100 = 3 -> 4 groups of 0; 10*33/100 = 3 -> 3 slots
	set := Allocate(10, regions)
	require.Len(t, set, 10)
	assert.Equal(t, 3, Filled(10, regions))
	for i := 0; i < 3; i++ {
		assert.Equal(t, marker, set[i])
	}
	for i := 3; i < 10; i++ {
		assert.Equal(t, mgl32.Vec3{}, set[i], "tail slot %d", i)
	}
}

func TestAllocate_GroupsAndParameter(t *testing.T) {
	var seen []Slot
	regions := []Region{{
		Kind:    RegionRadial,
		Percent: 100,
		Groups:  3,
		Sample: func(s Slot) mgl32.Vec3 {
			seen = append(seen, s)
			return mgl32.Vec3{float32(s.Group), s.T, 0}
		},
	}}
	set := Allocate(10, regions)
	require.Len(t, seen, 9)
	assert.Equal(t, Slot{Group: 0, Index: 0, Count: 3, T: 0}, seen[0])
	assert.Equal(t, 2, seen[8].Group)
	assert.InDelta(t, 2.0/3.0, seen[8].T, 1e-6)
	assert.Equal(t, mgl32.Vec3{}, set[9])
}

func TestAllocate_OverflowTruncated(t *testing.T) {
	regions := []Region{
		{Percent: 80, Sample: func(Slot) mgl32.Vec3 { return mgl32.Vec3{1, 0, 0} }},
		{Percent: 80, Sample: func(Slot) mgl32.Vec3 { return mgl32.Vec3{2, 0, 0} }},
	}
	set := Allocate(10, regions)
	require.Len(t, set, 10)
	assert.Equal(t, float32(1), set[7].X())
	assert.Equal(t, float32(2), set[9].X())
	assert.Equal(t, 10, Filled(10, regions))
}

func TestRegionPercents_SumToWholeBudget(t *testing.T) {
	for kind, build := range registry {
		total := 0
		for _, r := range build() {
			total += r.Percent
		}
		assert.Equal(t, 100, total, kind)
	}
}

func TestLerpInto_IdentityAndEndpoints(t *testing.T) {
	a, err := Generate("gear", 500)
	require.NoError(t, err)
	b, err := Generate("helix", 500)
	require.NoError(t, err)

	dst := NewParticleSet(500)
	for _, p := range []float32{0, 0.25, 0.5, 0.999, 1} {
		LerpInto(dst, a, a, p)
		assert.Equal(t, a, dst, "identity at %v", p)
	}

	LerpInto(dst, a, b, 0)
	assert.Equal(t, a, dst)

	LerpInto(dst, a, b, 1)
	if diff := cmp.Diff(b, dst, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("lerp(1) != b:\n%s", diff)
	}

	LerpInto(dst, a, b, 0.5)
	mid := a[42].Add(b[42]).Mul(0.5)
	assert.InDelta(t, mid.X(), dst[42].X(), 1e-5)
}

func TestLerpInto_LengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		LerpInto(NewParticleSet(3), NewParticleSet(3), NewParticleSet(4), 0.5)
	})
}

func TestValidate_RejectsNaN(t *testing.T) {
	set := NewParticleSet(3)
	set[1] = mgl32.Vec3{float32(math.NaN()), 0, 0}
	assert.Error(t, set.Validate(3))
	assert.ErrorIs(t, NewParticleSet(2).Validate(3), ErrBudget)
}

func TestBounds(t *testing.T) {
	set, err := Generate("laptop", 800)
	require.NoError(t, err)
	minB, maxB := set.Bounds()
	assert.InDelta(t, -1.6, minB.X(), 1e-4)
	// t never reaches 1, so the base line stops one step short of +1.6
	assert.Greater(t, maxB.X(), float32(1.5))
	assert.Less(t, maxB.X(), float32(1.6))
	assert.Equal(t, float32(0), minB.Z())
	assert.Equal(t, float32(0), maxB.Z())
}

func TestLaptopRegions_Layout(t *testing.T) {
	set, err := Generate("laptop", 800)
	require.NoError(t, err)

	// screen 320, code 8 lines of 35, base 120, trackpad 80
	for line := range 8 {
		first, last := set[320+line*35], set[320+line*35+34]
		assert.InDelta(t, -1.2, first.X(), 1e-5)
		assert.InDelta(t, -1.2+34.0/35*2.4, last.X(), 1e-5, "every code line spans the screen")
		assert.Equal(t, first.Y(), last.Y())
	}
	for _, p := range set[720:] {
		assert.InDelta(t, -1.0, p.Y(), 1e-5, "trackpad ring is flat")
	}
}

func TestRectPerimeter_Corners(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{-1, 0.5, 0}, RectPerimeter(0, 0, 2, 1, 0))
	p := RectPerimeter(0, 0, 2, 1, 2.0/6.0)
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 0.5, p.Y(), 1e-5)
}

func TestPolyline_WalksByLength(t *testing.T) {
	square := NewClosedPolyline(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{0, 1, 0},
	)
	assert.InDelta(t, 4, square.Length(), 1e-6)
	p := square.At(0.375)
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 0.5, p.Y(), 1e-5)
}

func TestBuild_EqualLengths(t *testing.T) {
	kinds := []string{"sphere", "rack", "helix", "sphere:1.6"}
	lib, err := Build(context.Background(), 333, kinds)
	require.NoError(t, err)
	require.Equal(t, 4, lib.Len())
	for i, set := range lib.Sets {
		assert.Len(t, set, 333, "set %d", i)
	}
	assert.Equal(t, lib.Sets[0], lib.Shape(-5))
	assert.Equal(t, lib.Sets[3], lib.Shape(99))
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(context.Background(), 100, []string{"gear", "nope"})
	assert.ErrorIs(t, err, ErrUnknownShape)

	_, err = Build(context.Background(), -1, []string{"gear"})
	assert.ErrorIs(t, err, ErrBudget)

	_, err = Build(context.Background(), 10, nil)
	assert.Error(t, err)
}

func TestCached_Memoizes(t *testing.T) {
	kinds := []string{"gear", "cloud"}
	a, err := Cached(context.Background(), 64, kinds)
	require.NoError(t, err)
	b, err := Cached(context.Background(), 64, []string{"gear", "cloud"})
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := Cached(context.Background(), 65, kinds)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}
