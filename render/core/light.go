package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type DirectionalLight struct {
	// Position of the light; it shines toward the origin.
	Position  mgl32.Vec3
	Color     [3]float32
	Intensity float32
}

// Lighting is the scene's ambient term plus directional lights. Strength
// blends between unlit (0) and fully lambert-shaded (1) points.
type Lighting struct {
	Ambient     [3]float32
	Directional []DirectionalLight
	Strength    float32
}

// Shade returns the per-channel multiplier for a surface with normal n. A
// zero normal counts as facing every light.
func (l Lighting) Shade(n mgl32.Vec3) [3]float32 {
	if l.Strength <= 0 {
		return [3]float32{1, 1, 1}
	}
	lit := l.Ambient
	var unit mgl32.Vec3
	if n.Len() > 1e-6 {
		unit = n.Normalize()
	}
	for _, d := range l.Directional {
		if d.Position.Len() < 1e-6 {
			continue
		}
		lambert := float32(1)
		if unit != (mgl32.Vec3{}) {
			lambert = max(unit.Dot(d.Position.Normalize()), 0)
		}
		for i := range lit {
			lit[i] += d.Color[i] * d.Intensity * lambert
		}
	}
	var out [3]float32
	for i := range out {
		out[i] = 1 + (min(lit[i], 1)-1)*l.Strength
	}
	return out
}
