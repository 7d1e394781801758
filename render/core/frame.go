package core

// Frame is everything a renderer needs to draw one image. Colors are sRGB.
type Frame struct {
	Width, Height int
	Camera        Camera
	Clear         [3]float32
	Fog           Fog
	Instances     []ParticleInstance
	Grid          []GridLine
	PostFX        PostFX
	Multisample   int
	// HUD lines are drawn top-left when the renderer has a HUD.
	HUD []string
}

// Aspect is width over height, 1 for an empty frame.
func (f *Frame) Aspect() float32 {
	if f.Width <= 0 || f.Height <= 0 {
		return 1
	}
	return float32(f.Width) / float32(f.Height)
}
