package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed perspective camera. FovY is in degrees.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32
	Near     float32
	Far      float32
}

func DefaultCamera() Camera {
	return Camera{
		Position: mgl32.Vec3{0, 0, 5},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     50,
		Near:     0.1,
		Far:      1000,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Screen projects a world point to pixel coordinates with y down. Depth is
// the view-space distance along the camera axis; ok is false behind the
// near plane.
func (c Camera) Screen(p mgl32.Vec3, width, height int) (x, y, depth float32, ok bool) {
	view := c.View().Mul4x1(p.Vec4(1))
	depth = -view.Z()
	if depth < c.Near {
		return 0, 0, depth, false
	}
	clip := c.Projection(float32(width) / float32(height)).Mul4x1(view)
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X()*0.5 + 0.5) * float32(width)
	y = (1 - (ndc.Y()*0.5 + 0.5)) * float32(height)
	return x, y, depth, true
}

// PointPixels is the on-screen diameter of an attenuated point of world
// size at depth, for a target height pixels tall.
func PointPixels(size, depth float32, height int) float32 {
	if depth <= 0 {
		return 0
	}
	return size * float32(height) * 0.5 / depth
}

// FogFactor is the linear fog amount at depth: 0 before near, 1 past far.
func FogFactor(depth, near, far float32) float32 {
	if far <= near {
		return 0
	}
	f := (depth - near) / (far - near)
	return float32(math.Max(0, math.Min(1, float64(f))))
}
