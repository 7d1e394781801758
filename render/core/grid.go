package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Grid is a square floor of lines on the XZ plane at height Y.
type Grid struct {
	Size        float32
	Divisions   int
	Y           float32
	CenterColor [3]float32
	LineColor   [3]float32
}

type GridLine struct {
	A, B  mgl32.Vec3
	Color [3]float32
}

// Lines returns Divisions+1 lines along each axis. The two lines through
// the origin use CenterColor.
func (g Grid) Lines() []GridLine {
	if g.Divisions <= 0 || g.Size <= 0 {
		return nil
	}
	half := g.Size / 2
	step := g.Size / float32(g.Divisions)
	center := g.Divisions / 2
	out := make([]GridLine, 0, 2*(g.Divisions+1))
	for i := 0; i <= g.Divisions; i++ {
		k := -half + float32(i)*step
		col := g.LineColor
		if i == center && g.Divisions%2 == 0 {
			col = g.CenterColor
		}
		out = append(out,
			GridLine{A: mgl32.Vec3{-half, g.Y, k}, B: mgl32.Vec3{half, g.Y, k}, Color: col},
			GridLine{A: mgl32.Vec3{k, g.Y, -half}, B: mgl32.Vec3{k, g.Y, half}, Color: col},
		)
	}
	return out
}
