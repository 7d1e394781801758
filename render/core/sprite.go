package core

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

const (
	// SpriteSize is the edge of the particle sprite texture in pixels.
	SpriteSize = 64
	// AlphaTest discards sprite texels below this alpha.
	AlphaTest = 0.3
	// AlphaCut is AlphaTest as an 8-bit mask value.
	AlphaCut = uint8(AlphaTest*255 + 0.5)
)

// SpriteMask rasterizes the particle sprite: a disc of radius 0.45·size whose
// alpha falls off radially from 1 at the centre to 0 at the rim. Texels under
// AlphaTest are cleared.
func SpriteMask(size int) *image.Alpha {
	if size <= 0 {
		size = SpriteSize
	}
	disc := image.NewAlpha(image.Rect(0, 0, size, size))
	c := float32(size) / 2
	r := 0.45 * float32(size)

	z := vector.NewRasterizer(size, size)
	// Four cubic quarter arcs.
	const k = 0.5522847498
	z.MoveTo(c+r, c)
	z.CubeTo(c+r, c+k*r, c+k*r, c+r, c, c+r)
	z.CubeTo(c-k*r, c+r, c-r, c+k*r, c-r, c)
	z.CubeTo(c-r, c-k*r, c-k*r, c-r, c, c-r)
	z.CubeTo(c+k*r, c-r, c+r, c-k*r, c+r, c)
	z.ClosePath()
	z.Draw(disc, disc.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := disc.PixOffset(x, y)
			cov := float64(disc.Pix[i]) / 255
			if cov == 0 {
				continue
			}
			dx := float64(x) + 0.5 - float64(c)
			dy := float64(y) + 0.5 - float64(c)
			falloff := 1 - math.Hypot(dx, dy)/float64(r)
			a := cov * math.Max(0, falloff)
			if a < AlphaTest {
				a = 0
			}
			disc.Pix[i] = uint8(math.Round(a * 255))
		}
	}
	return disc
}
