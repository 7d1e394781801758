package morphscape

import (
	"github.com/go-gl/mathgl/mgl32"
)

type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() TransformComponent {
	return TransformComponent{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Model is M = T * R * S.
func (t TransformComponent) Model() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}

// SetPitchYaw applies pitch about X, then yaw about Y.
func (t *TransformComponent) SetPitchYaw(pitch, yaw float32) {
	t.Rotation = mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}).
		Mul(mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}))
}
