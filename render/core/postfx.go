package core

// Bloom mirrors the threshold/smoothing luminance pass followed by a blur.
type Bloom struct {
	Enabled   bool
	Intensity float32
	// Resolution is the height in pixels of the blur target.
	Resolution int
	MipBlur    bool
	Threshold  float32
	Smoothing  float32
}

type Vignette struct {
	Offset   float32
	Darkness float32
}

// PostFX is the composite chain applied after the points are drawn.
type PostFX struct {
	Enabled             bool
	Bloom               Bloom
	ChromaticAberration float32
	Vignette            Vignette
}

// Fog is linear fog between Near and Far toward Color (sRGB).
type Fog struct {
	Color [3]float32
	Near  float32
	Far   float32
}

// BrightPass returns the bloom contribution of a color with luminance lum.
func (b Bloom) BrightPass(lum float32) float32 {
	return smoothstep(b.Threshold, b.Threshold+b.Smoothing, lum)
}

// Mix pulls c toward the flat 1-Darkness grey by the squared distance of the
// offset-scaled uv from the centre.
func (v Vignette) Mix(c [3]float32, u, w float32) [3]float32 {
	du := (u - 0.5) * v.Offset
	dw := (w - 0.5) * v.Offset
	t := du*du + dw*dw
	edge := 1 - v.Darkness
	for i := range c {
		c[i] += (edge - c[i]) * t
	}
	return c
}

// Luminance uses Rec. 709 weights.
func Luminance(c [3]float32) float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

func smoothstep(e0, e1, x float32) float32 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := min(max((x-e0)/(e1-e0), 0), 1)
	return t * t * (3 - 2*t)
}
