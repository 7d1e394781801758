// Package cpu draws frames in software. It backs the headless renderer and
// the render command, and matches the wgpu passes closely enough for
// previews and tests.
package cpu

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/vektorsolutions/morphscape/render/core"
)

const (
	gridSegments = 16
	fogBands     = 8
)

// Renderer accumulates a frame in a float RGB buffer before resolving it to
// an image. It is not safe for concurrent use.
type Renderer struct {
	width, height int
	accum         []float32

	sprite  *image.Alpha
	sprites map[int]*image.Alpha
	hud     *core.HUD
}

func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		sprite:  core.SpriteMask(core.SpriteSize),
		sprites: make(map[int]*image.Alpha),
	}
	r.Resize(width, height)
	return r
}

// SetHUD enables drawing Frame.HUD lines. nil disables it.
func (r *Renderer) SetHUD(h *core.HUD) { r.hud = h }

func (r *Renderer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.accum = make([]float32, width*height*3)
}

func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Render draws f and returns a new image. The frame's size wins over the
// renderer's.
func (r *Renderer) Render(f *core.Frame) *image.RGBA {
	if f.Width > 0 && f.Height > 0 {
		r.Resize(f.Width, f.Height)
	}
	r.clear(f.Clear)
	r.drawGrid(f)
	r.drawPoints(f)
	if f.PostFX.Enabled {
		r.postProcess(f.PostFX)
	}
	img := r.resolve()
	if r.hud != nil {
		y := 8
		for _, line := range f.HUD {
			r.hud.Label(img, 8, y, line, color.RGBA{0xd0, 0xff, 0xe0, 0xff})
			y += r.hud.LineHeight()
		}
	}
	return img
}

func (r *Renderer) clear(c [3]float32) {
	for i := 0; i < len(r.accum); i += 3 {
		r.accum[i], r.accum[i+1], r.accum[i+2] = c[0], c[1], c[2]
	}
}

type bandKey struct {
	color [3]float32
	band  int
}

// drawGrid rasterizes grid lines as one pixel wide quads. Lines are split
// into segments and grouped by color and fog band so each group is one
// rasterizer pass.
func (r *Renderer) drawGrid(f *core.Frame) {
	if len(f.Grid) == 0 {
		return
	}
	groups := make(map[bandKey]*vector.Rasterizer)
	var order []bandKey
	cam := f.Camera

	for _, line := range f.Grid {
		for s := 0; s < gridSegments; s++ {
			a := lerp3(line.A, line.B, float32(s)/gridSegments)
			b := lerp3(line.A, line.B, float32(s+1)/gridSegments)
			ax, ay, ad, aok := cam.Screen(a, r.width, r.height)
			bx, by, bd, bok := cam.Screen(b, r.width, r.height)
			if !aok || !bok {
				continue
			}
			fog := core.FogFactor((ad+bd)/2, f.Fog.Near, f.Fog.Far)
			key := bandKey{color: line.Color, band: int(fog * (fogBands - 1))}
			z, ok := groups[key]
			if !ok {
				z = vector.NewRasterizer(r.width, r.height)
				groups[key] = z
				order = append(order, key)
			}
			segmentQuad(z, ax, ay, bx, by)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, r.width, r.height))
	for _, key := range order {
		clear(mask.Pix)
		groups[key].Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
		fog := float32(key.band) / (fogBands - 1)
		c := mix3(key.color, f.Fog.Color, fog)
		for i, m := range mask.Pix {
			if m == 0 {
				continue
			}
			a := float32(m) / 255
			p := r.accum[i*3 : i*3+3]
			for k := range 3 {
				p[k] += (c[k] - p[k]) * a
			}
		}
	}
}

func segmentQuad(z *vector.Rasterizer, ax, ay, bx, by float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l < 1e-3 {
		return
	}
	nx, ny := -dy/l*0.5, dx/l*0.5
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

// drawPoints splats every instance additively with the sprite mask scaled
// to its attenuated size.
func (r *Renderer) drawPoints(f *core.Frame) {
	cam := f.Camera
	for _, p := range f.Instances {
		if p.Color[3] <= 0 || p.Size <= 0 {
			continue
		}
		x, y, depth, ok := cam.Screen(mgl32.Vec3(p.Pos), r.width, r.height)
		if !ok {
			continue
		}
		d := int(math.Ceil(float64(core.PointPixels(p.Size, depth, r.height))))
		if d < 1 {
			d = 1
		}
		mask := r.spriteFor(d)
		x0 := int(math.Round(float64(x) - float64(d)/2))
		y0 := int(math.Round(float64(y) - float64(d)/2))
		if x0 >= r.width || y0 >= r.height || x0+d <= 0 || y0+d <= 0 {
			continue
		}

		fog := core.FogFactor(depth, f.Fog.Near, f.Fog.Far)
		c := mix3([3]float32{p.Color[0], p.Color[1], p.Color[2]}, f.Fog.Color, fog)
		opacity := p.Color[3]

		for sy := 0; sy < d; sy++ {
			py := y0 + sy
			if py < 0 || py >= r.height {
				continue
			}
			for sx := 0; sx < d; sx++ {
				px := x0 + sx
				if px < 0 || px >= r.width {
					continue
				}
				m := mask.Pix[mask.PixOffset(sx, sy)]
				if m < core.AlphaCut {
					continue
				}
				a := float32(m) / 255 * opacity
				i := (py*r.width + px) * 3
				r.accum[i] += c[0] * a
				r.accum[i+1] += c[1] * a
				r.accum[i+2] += c[2] * a
			}
		}
	}
}

func (r *Renderer) spriteFor(d int) *image.Alpha {
	if m, ok := r.sprites[d]; ok {
		return m
	}
	m := image.NewAlpha(image.Rect(0, 0, d, d))
	if d <= 2 {
		// Too small to resample; a solid texel keeps distant points visible.
		for i := range m.Pix {
			m.Pix[i] = 0xff
		}
	} else {
		draw.ApproxBiLinear.Scale(m, m.Bounds(), r.sprite, r.sprite.Bounds(), draw.Src, nil)
	}
	r.sprites[d] = m
	return m
}

func (r *Renderer) resolve() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i, j := 0, 0; i < len(r.accum); i, j = i+3, j+4 {
		img.Pix[j] = to8(r.accum[i])
		img.Pix[j+1] = to8(r.accum[i+1])
		img.Pix[j+2] = to8(r.accum[i+2])
		img.Pix[j+3] = 0xff
	}
	return img
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

func lerp3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func mix3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
