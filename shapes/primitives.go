package shapes

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const twoPi = 2 * math.Pi

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// RectPerimeter walks the outline of a w*h rectangle centred on (cx, cy),
// clockwise from the top-left corner, at perimeter fraction t.
func RectPerimeter(cx, cy, w, h, t float32) mgl32.Vec3 {
	dist := t * 2 * (w + h)
	var x, y float32
	switch {
	case dist < w:
		x, y = -w/2+dist, h/2
	case dist < w+h:
		x, y = w/2, h/2-(dist-w)
	case dist < 2*w+h:
		x, y = w/2-(dist-w-h), -h/2
	default:
		x, y = -w/2, -h/2+(dist-2*w-h)
	}
	return mgl32.Vec3{cx + x, cy + y, 0}
}

// Circle returns the point at angle t*2pi on a circle of radius r in the XY plane.
func Circle(cx, cy, r, t float32) mgl32.Vec3 {
	s, c := sincos(t * twoPi)
	return mgl32.Vec3{cx + c*r, cy + s*r, 0}
}

// Arc sweeps from angle a0 to a1 (radians) on a circle in the XY plane.
func Arc(cx, cy, r, a0, a1, t float32) mgl32.Vec3 {
	s, c := sincos(a0 + (a1-a0)*t)
	return mgl32.Vec3{cx + c*r, cy + s*r, 0}
}

// Segment interpolates between a and b.
func Segment(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Polyline walks a closed polygon by arc length.
type Polyline struct {
	points  []mgl32.Vec3
	lengths []float32
	total   float32
}

func NewClosedPolyline(points ...mgl32.Vec3) Polyline {
	pl := Polyline{points: points, lengths: make([]float32, len(points))}
	for i := range points {
		l := points[(i+1)%len(points)].Sub(points[i]).Len()
		pl.lengths[i] = l
		pl.total += l
	}
	return pl
}

func (pl Polyline) At(t float32) mgl32.Vec3 {
	if len(pl.points) == 0 {
		return mgl32.Vec3{}
	}
	if pl.total == 0 {
		return pl.points[0]
	}
	dist := t * pl.total
	for i, l := range pl.lengths {
		if dist < l || i == len(pl.lengths)-1 {
			local := float32(0)
			if l > 0 {
				local = dist / l
			}
			return Segment(pl.points[i], pl.points[(i+1)%len(pl.points)], local)
		}
		dist -= l
	}
	return pl.points[0]
}

// Length is the full perimeter.
func (pl Polyline) Length() float32 { return pl.total }
