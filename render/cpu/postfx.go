package cpu

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/vektorsolutions/morphscape/render/core"
)

func (r *Renderer) postProcess(fx core.PostFX) {
	if fx.Bloom.Enabled && fx.Bloom.Intensity > 0 {
		r.bloom(fx.Bloom)
	}
	if fx.ChromaticAberration > 0 {
		r.chromaticAberration(fx.ChromaticAberration)
	}
	if fx.Vignette.Darkness > 0 {
		r.vignette(fx.Vignette)
	}
}

// bloom extracts bright texels, blurs them at the bloom resolution and adds
// them back scaled by intensity. MipBlur adds a second, half resolution
// level for a wider falloff.
func (r *Renderer) bloom(b core.Bloom) {
	bright := image.NewRGBA64(image.Rect(0, 0, r.width, r.height))
	for i, j := 0, 0; i < len(r.accum); i, j = i+3, j+8 {
		c := [3]float32{r.accum[i], r.accum[i+1], r.accum[i+2]}
		k := b.BrightPass(core.Luminance(c))
		if k == 0 {
			continue
		}
		putRGBA64(bright.Pix[j:j+8], c[0]*k, c[1]*k, c[2]*k)
	}

	h := b.Resolution
	if h <= 0 || h > r.height {
		h = r.height
	}
	levels := []int{h}
	if b.MipBlur && h >= 4 {
		levels = append(levels, h/2)
	}

	full := image.NewRGBA64(bright.Bounds())
	weight := b.Intensity / float32(len(levels))
	for _, lh := range levels {
		lw := max(1, r.width*lh/r.height)
		small := image.NewRGBA64(image.Rect(0, 0, lw, lh))
		draw.ApproxBiLinear.Scale(small, small.Bounds(), bright, bright.Bounds(), draw.Src, nil)
		blur(small, 2)
		draw.BiLinear.Scale(full, full.Bounds(), small, small.Bounds(), draw.Src, nil)

		for i, j := 0, 0; i < len(r.accum); i, j = i+3, j+8 {
			cr, cg, cb := getRGBA64(full.Pix[j : j+8])
			r.accum[i] += cr * weight
			r.accum[i+1] += cg * weight
			r.accum[i+2] += cb * weight
		}
	}
}

// blur is a separable box blur run three times, close to a gaussian.
func blur(img *image.RGBA64, radius int) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	buf := make([]float32, w*h*3)
	for i := range w * h {
		buf[i*3], buf[i*3+1], buf[i*3+2] = getRGBA64(img.Pix[i*8 : i*8+8])
	}
	tmp := make([]float32, len(buf))
	for range 3 {
		boxPass(tmp, buf, w, h, radius, 1, w)
		boxPass(buf, tmp, h, w, radius, w, 1)
	}
	for i := range w * h {
		putRGBA64(img.Pix[i*8:i*8+8], buf[i*3], buf[i*3+1], buf[i*3+2])
	}
}

// boxPass averages along lines of n texels spaced step apart; lines start
// stride apart.
func boxPass(dst, src []float32, n, lines, radius, step, stride int) {
	norm := 1 / float32(2*radius+1)
	for l := range lines {
		base := l * stride
		for i := range n {
			var s [3]float32
			for k := -radius; k <= radius; k++ {
				j := min(max(i+k, 0), n-1)
				o := (base + j*step) * 3
				s[0] += src[o]
				s[1] += src[o+1]
				s[2] += src[o+2]
			}
			o := (base + i*step) * 3
			dst[o], dst[o+1], dst[o+2] = s[0]*norm, s[1]*norm, s[2]*norm
		}
	}
}

// chromaticAberration shifts red and blue apart horizontally by offset in
// uv units.
func (r *Renderer) chromaticAberration(offset float32) {
	shift := int(math.Round(float64(offset * float32(r.width))))
	if shift == 0 {
		shift = 1
	}
	src := append([]float32(nil), r.accum...)
	for y := range r.height {
		row := y * r.width
		for x := range r.width {
			xr := min(max(x+shift, 0), r.width-1)
			xb := min(max(x-shift, 0), r.width-1)
			i := (row + x) * 3
			r.accum[i] = src[(row+xr)*3]
			r.accum[i+2] = src[(row+xb)*3+2]
		}
	}
}

func (r *Renderer) vignette(v core.Vignette) {
	for y := range r.height {
		w := (float32(y) + 0.5) / float32(r.height)
		for x := range r.width {
			u := (float32(x) + 0.5) / float32(r.width)
			i := (y*r.width + x) * 3
			c := v.Mix([3]float32{r.accum[i], r.accum[i+1], r.accum[i+2]}, u, w)
			r.accum[i], r.accum[i+1], r.accum[i+2] = c[0], c[1], c[2]
		}
	}
}

// putRGBA64 stores a color clamped to [0,1] as big-endian 16-bit channels
// with full alpha.
func putRGBA64(p []uint8, cr, cg, cb float32) {
	for k, v := range [3]float32{cr, cg, cb} {
		u := uint16(min(max(v, 0), 1) * 0xffff)
		p[k*2], p[k*2+1] = uint8(u>>8), uint8(u)
	}
	p[6], p[7] = 0xff, 0xff
}

func getRGBA64(p []uint8) (float32, float32, float32) {
	ch := func(k int) float32 {
		return float32(uint16(p[k*2])<<8|uint16(p[k*2+1])) / 0xffff
	}
	return ch(0), ch(1), ch(2)
}
