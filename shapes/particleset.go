package shapes

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleSet is a fixed-length point cloud. Index i in two sets of the same
// library refers to the same particle.
type ParticleSet []mgl32.Vec3

func NewParticleSet(n int) ParticleSet {
	if n < 0 {
		n = 0
	}
	return make(ParticleSet, n)
}

func (s ParticleSet) Clone() ParticleSet {
	out := make(ParticleSet, len(s))
	copy(out, s)
	return out
}

// LerpInto writes a + (b-a)*t into dst for every index. All three sets must
// share the same length; dst may alias a or b.
func LerpInto(dst, a, b ParticleSet, t float32) {
	if len(dst) != len(a) || len(a) != len(b) {
		panic(fmt.Sprintf("shapes: lerp length mismatch dst=%d a=%d b=%d", len(dst), len(a), len(b)))
	}
	for i := range dst {
		pa, pb := a[i], b[i]
		dst[i] = mgl32.Vec3{
			pa[0] + (pb[0]-pa[0])*t,
			pa[1] + (pb[1]-pa[1])*t,
			pa[2] + (pb[2]-pa[2])*t,
		}
	}
}

// Validate checks the length against the budget and rejects NaN or infinite
// coordinates.
func (s ParticleSet) Validate(budget int) error {
	if len(s) != budget {
		return fmt.Errorf("%w: have %d points, want %d", ErrBudget, len(s), budget)
	}
	for i, p := range s {
		for axis := 0; axis < 3; axis++ {
			v := float64(p[axis])
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("shapes: point %d axis %d is not finite (%v)", i, axis, v)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the set.
func (s ParticleSet) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(s) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	minB, maxB := s[0], s[0]
	for _, p := range s[1:] {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < minB[axis] {
				minB[axis] = p[axis]
			}
			if p[axis] > maxB[axis] {
				maxB[axis] = p[axis]
			}
		}
	}
	return minB, maxB
}

// Centroid is the mean of all points.
func (s ParticleSet) Centroid() mgl32.Vec3 {
	var c mgl32.Vec3
	if len(s) == 0 {
		return c
	}
	for _, p := range s {
		c = c.Add(p)
	}
	return c.Mul(1 / float32(len(s)))
}
