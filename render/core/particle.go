package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ParticleInstance matches the instance layout in points.wgsl:
// struct Particle { pos: vec3<f32>, size: f32, color: vec4<f32> }
type ParticleInstance struct {
	Pos   [3]float32 `gpu:"layout" format:"float3" location:"0"`
	Size  float32    `gpu:"layout" format:"float" location:"1"`
	Color [4]float32 `gpu:"layout" format:"float4" location:"2"`
}

// PointBatch is one point cloud ready for packing: local points, the model
// matrix placing them in the world, and a shared size and color.
type PointBatch struct {
	Points []mgl32.Vec3
	Model  mgl32.Mat4
	Size   float32
	Color  [4]float32
}

// PackInstances appends the batch in world space. Each point's color is
// shaded by lighting, using its direction from the cloud centre as normal.
func PackInstances(dst []ParticleInstance, b PointBatch, lighting Lighting) []ParticleInstance {
	if b.Size <= 0 || b.Color[3] <= 0 {
		return dst
	}
	normalMat := b.Model.Mat3()
	for _, p := range b.Points {
		w := b.Model.Mul4x1(p.Vec4(1))
		n := normalMat.Mul3x1(p)
		shade := lighting.Shade(n)
		dst = append(dst, ParticleInstance{
			Pos:  [3]float32{w.X(), w.Y(), w.Z()},
			Size: b.Size,
			Color: [4]float32{
				b.Color[0] * shade[0],
				b.Color[1] * shade[1],
				b.Color[2] * shade[2],
				b.Color[3],
			},
		})
	}
	return dst
}
