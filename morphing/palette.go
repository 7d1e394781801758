package morphing

import "github.com/lucasb-eyer/go-colorful"

// Palette is an ordered list of colors indexed by section.
type Palette []colorful.Color

// At clamps i into range. An empty palette yields black.
func (p Palette) At(i int) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p) {
		i = len(p) - 1
	}
	return p[i]
}

// Crossfade blends section current toward next by the raw local progress,
// without the hold window the particles use.
func (p Palette) Crossfade(scroll float32, sections int) colorful.Color {
	cur, next, local := Locate(scroll, sections)
	return p.At(cur).BlendRgb(p.At(next), float64(local))
}

// ParseHex parses "#rrggbb" colors in order.
func ParseHex(hexes ...string) (Palette, error) {
	out := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// RGBA returns the clamped sRGB components of c with the given alpha.
func RGBA(c colorful.Color, alpha float32) [4]float32 {
	c = c.Clamped()
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), alpha}
}
