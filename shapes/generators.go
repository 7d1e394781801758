package shapes

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Every generator below is a declarative region list; Allocate does the
// partitioning. Region order is the particle order, so keep it stable: the
// morph pairs index i of one shape with index i of the next.

// SphereRegions distributes the whole budget over a Fibonacci lattice.
func SphereRegions(radius float32) []Region {
	golden := float32(math.Pi * (3 - math.Sqrt(5)))
	return []Region{{
		Name:    "lattice",
		Kind:    RegionCustom,
		Percent: 100,
		Sample: func(s Slot) mgl32.Vec3 {
			offset := 2 / float32(s.Count)
			y := float32(s.Index)*offset - 1 + offset/2
			r := float32(math.Sqrt(math.Max(0, float64(1-y*y))))
			sn, cs := sincos(float32(s.Index) * golden)
			return mgl32.Vec3{cs * r * radius, y * radius, sn * r * radius}
		},
	}}
}

func RackRegions() []Region {
	const w, h, servers = 2.8, 3.8, 5
	serverH := float32(h) / servers
	serverY := func(s int) float32 { return h/2 - (float32(s)+0.5)*serverH }
	return []Region{
		{Name: "frame", Kind: RegionOutline, Percent: 25, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, 0, w, h, s.T)
		}},
		{Name: "servers", Kind: RegionFill, Percent: 50, Groups: servers, Sample: func(s Slot) mgl32.Vec3 {
			serverW := float32(w - 0.3)
			return mgl32.Vec3{-serverW/2 + s.T*serverW, serverY(s.Group), 0}
		}},
		{Name: "leds", Kind: RegionCustom, Percent: 15, Groups: servers, Sample: func(s Slot) mgl32.Vec3 {
			return mgl32.Vec3{w/2 - 0.2, serverY(s.Group) + float32(s.Index%3-1)*0.15, 0}
		}},
		{Name: "cable", Kind: RegionOutline, Percent: 10, Sample: func(s Slot) mgl32.Vec3 {
			return mgl32.Vec3{-w/2 - 0.3, h/2 - s.T*h, 0}
		}},
	}
}

func BriefcaseRegions() []Region {
	const w, h = 3.2, 2.2
	corners := [4][2]float32{
		{-w/2 + 0.2, h/2 - 0.2},
		{w/2 - 0.2, h/2 - 0.2},
		{-w/2 + 0.2, -h/2 + 0.2},
		{w/2 - 0.2, -h/2 + 0.2},
	}
	return []Region{
		{Name: "body", Kind: RegionOutline, Percent: 50, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, 0, w, h, s.T)
		}},
		{Name: "handle", Kind: RegionFill, Percent: 15, Sample: func(s Slot) mgl32.Vec3 {
			return mgl32.Vec3{-w/3 + s.T*(2*w/3), h/2 + 0.4, 0}
		}},
		{Name: "locks", Kind: RegionRadial, Percent: 20, Groups: 2, Sample: func(s Slot) mgl32.Vec3 {
			side := float32(2*s.Group - 1)
			return Circle(side*w/4, h/2-0.4, 0.15, s.T)
		}},
		{Name: "corners", Kind: RegionRadial, Percent: 15, Groups: 4, Sample: func(s Slot) mgl32.Vec3 {
			c := corners[s.Group]
			return Circle(c[0], c[1], 0.1, s.T)
		}},
	}
}

func LaptopRegions() []Region {
	const screenW, screenH = 3.0, 2.0
	const baseW, baseH = 3.2, 0.3
	const lift = 0.5
	return []Region{
		{Name: "screen", Kind: RegionOutline, Percent: 40, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, lift, screenW, screenH, s.T)
		}},
		{Name: "code", Kind: RegionFill, Percent: 35, Groups: 8, Sample: func(s Slot) mgl32.Vec3 {
			lineY := float32(screenH/2+lift-0.2) - float32(s.Group)*0.2
			return mgl32.Vec3{-screenW/2 + 0.3 + s.T*(screenW-0.6), lineY, 0}
		}},
		{Name: "base", Kind: RegionFill, Percent: 15, Sample: func(s Slot) mgl32.Vec3 {
			return mgl32.Vec3{-baseW/2 + s.T*baseW, -screenH/2 + lift - baseH/2, 0}
		}},
		{Name: "trackpad", Kind: RegionRadial, Percent: 10, Sample: func(s Slot) mgl32.Vec3 {
			_, cs := sincos(s.T * twoPi)
			return mgl32.Vec3{cs * 0.3, -screenH/2 + lift - baseH - 0.2, 0}
		}},
	}
}

func GearRegions() []Region {
	const outer, inner, teeth, toothLen = 1.8, 0.8, 16, 0.5
	return []Region{
		{Name: "teeth", Kind: RegionRadial, Percent: 40, Groups: teeth, Sample: func(s Slot) mgl32.Vec3 {
			angle := float32(s.Group) / teeth * twoPi
			// Alternate between the two flanks of the tooth.
			flank := float32(2*(s.Index%2) - 1)
			sn, cs := sincos(angle + flank*0.07)
			r := float32(outer) + s.T*toothLen
			return mgl32.Vec3{cs * r, sn * r, 0}
		}},
		{Name: "body", Kind: RegionOutline, Percent: 35, Sample: func(s Slot) mgl32.Vec3 {
			return Circle(0, 0, outer, s.T)
		}},
		{Name: "hub", Kind: RegionRadial, Percent: 15, Sample: func(s Slot) mgl32.Vec3 {
			return Circle(0, 0, inner, s.T)
		}},
		{Name: "hole", Kind: RegionRadial, Percent: 10, Sample: func(s Slot) mgl32.Vec3 {
			return Circle(0, 0, 0.3, s.T)
		}},
	}
}

func CloudRegions() []Region {
	puffs := [5][3]float32{
		{-1.2, 0.3, 0.9},
		{-0.4, 0.2, 1.1},
		{0, 0, 1.4},
		{0.4, 0.2, 1.1},
		{1.2, 0.3, 0.9},
	}
	return []Region{
		{Name: "body", Kind: RegionOutline, Percent: 50, Groups: len(puffs), Sample: func(s Slot) mgl32.Vec3 {
			p := puffs[s.Group]
			return Arc(p[0], p[1], p[2], 0, math.Pi, s.T)
		}},
		{Name: "lock", Kind: RegionRadial, Percent: 25, Sample: func(s Slot) mgl32.Vec3 {
			return Circle(0, 0, 0.4, s.T)
		}},
		{Name: "indicators", Kind: RegionRadial, Percent: 15, Groups: 6, Sample: func(s Slot) mgl32.Vec3 {
			c := Circle(0, 0, 1.8, float32(s.Group)/6)
			return Circle(c[0], c[1], 0.15, s.T)
		}},
		{Name: "links", Kind: RegionCustom, Percent: 10, Sample: func(s Slot) mgl32.Vec3 {
			sn, _ := sincos(s.T * 3 * math.Pi)
			return mgl32.Vec3{-1.8 + s.T*3.6, -1.0 + sn*0.2, 0}
		}},
	}
}

func PaletteRegions() []Region {
	const w, h = 3.5, 3.0
	return []Region{
		{Name: "frame", Kind: RegionOutline, Percent: 25, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, 0, w, h, s.T)
		}},
		{Name: "mask", Kind: RegionRadial, Percent: 30, Sample: func(s Slot) mgl32.Vec3 {
			return Circle(0, 0, 0.6, s.T)
		}},
		{Name: "canvas", Kind: RegionOutline, Percent: 25, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, 0, w-0.8, h-0.8, s.T)
		}},
		{Name: "privacy", Kind: RegionRadial, Percent: 20, Groups: 4, Sample: func(s Slot) mgl32.Vec3 {
			sx := float32(2*(s.Group%2) - 1)
			sy := float32(1 - 2*(s.Group/2))
			return Circle(sx*(w/2-0.3), sy*(h/2-0.3), 0.12, s.T)
		}},
	}
}

func ChartRegions() []Region {
	const w, h, bars, kpis = 3.5, 3.0, 6, 4
	return []Region{
		{Name: "frame", Kind: RegionOutline, Percent: 25, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, 0, w, h, s.T)
		}},
		{Name: "axes", Kind: RegionOutline, Percent: 20, Sample: func(s Slot) mgl32.Vec3 {
			if s.T < 0.5 {
				return mgl32.Vec3{-w/2 + 0.3 + s.T*2*(w-0.6), -h/2 + 0.3, 0}
			}
			return mgl32.Vec3{-w/2 + 0.3, -h/2 + 0.3 + (s.T-0.5)*2*(h-0.6), 0}
		}},
		{Name: "bars", Kind: RegionFill, Percent: 35, Groups: bars, Sample: func(s Slot) mgl32.Vec3 {
			x := float32(-w/2+0.4) + float32(s.Group)*(w-0.8)/(bars-1)
			barHeight := 0.2 + float32(s.Group)*0.3
			return mgl32.Vec3{x, -h/2 + 0.3 + s.T*barHeight, 0}
		}},
		{Name: "kpis", Kind: RegionRadial, Percent: 20, Groups: kpis, Sample: func(s Slot) mgl32.Vec3 {
			x := float32(-w/2+0.3) + float32(s.Group)*(w-0.6)/(kpis-1)
			return Circle(x, h/2-0.3, 0.2, s.T)
		}},
	}
}

func BoardRegions() []Region {
	const w, h, columns, cards = 4.0, 3.0, 4, 4
	colX := func(c int) float32 { return -w/2 + (float32(c)+0.5)*(w/columns) }
	return []Region{
		{Name: "frame", Kind: RegionOutline, Percent: 20, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, 0, w, h, s.T)
		}},
		{Name: "headers", Kind: RegionFill, Percent: 15, Groups: columns, Sample: func(s Slot) mgl32.Vec3 {
			return mgl32.Vec3{colX(s.Group) + (s.T-0.5)*0.6, h/2 - 0.25, 0}
		}},
		{Name: "dividers", Kind: RegionFill, Percent: 10, Groups: columns - 1, Sample: func(s Slot) mgl32.Vec3 {
			x := float32(-w/2) + float32(s.Group+1)*w/columns
			return mgl32.Vec3{x, -h/2 + 0.3 + s.T*(h-0.6), 0}
		}},
		{Name: "cards", Kind: RegionOutline, Percent: 55, Groups: columns * cards, Sample: func(s Slot) mgl32.Vec3 {
			col, card := s.Group/cards, s.Group%cards
			return RectPerimeter(colX(col), h/2-0.6-float32(card)*0.6, 0.6, 0.3, s.T)
		}},
	}
}

func ShieldRegions() []Region {
	const w, h, indicators = 3.0, 3.5, 8
	outline := NewClosedPolyline(
		mgl32.Vec3{-w / 2, h / 2, 0},
		mgl32.Vec3{w / 2, h / 2, 0},
		mgl32.Vec3{w / 2, 0.3, 0},
		mgl32.Vec3{0, -h / 2, 0},
		mgl32.Vec3{-w / 2, 0.3, 0},
	)
	return []Region{
		{Name: "frame", Kind: RegionOutline, Percent: 30, Sample: func(s Slot) mgl32.Vec3 {
			return outline.At(s.T)
		}},
		{Name: "eye", Kind: RegionRadial, Percent: 25, Sample: func(s Slot) mgl32.Vec3 {
			return Circle(0, 0.2, 0.5, s.T)
		}},
		{Name: "indicators", Kind: RegionRadial, Percent: 25, Groups: indicators, Sample: func(s Slot) mgl32.Vec3 {
			c := Circle(0, 0.2, 1.0, float32(s.Group)/indicators)
			return Circle(c[0], c[1], 0.12, s.T)
		}},
		{Name: "cipher", Kind: RegionCustom, Percent: 20, Sample: func(s Slot) mgl32.Vec3 {
			sn, _ := sincos(s.T * 6 * math.Pi)
			return mgl32.Vec3{-0.9 + s.T*1.8, -0.9 + sn*0.15, 0}
		}},
	}
}

func NetworkRegions() []Region {
	const nodes, outer = 8, 2.0
	node := func(n int) mgl32.Vec3 { return Circle(0, 0, outer, float32(n%nodes)/nodes) }
	return []Region{
		{Name: "nodes", Kind: RegionRadial, Percent: 40, Groups: nodes, Sample: func(s Slot) mgl32.Vec3 {
			c := node(s.Group)
			return Circle(c[0], c[1], 0.25, s.T)
		}},
		{Name: "hub", Kind: RegionRadial, Percent: 20, Sample: func(s Slot) mgl32.Vec3 {
			return Circle(0, 0, 0.3, s.T)
		}},
		{Name: "spokes", Kind: RegionFill, Percent: 25, Groups: nodes, Sample: func(s Slot) mgl32.Vec3 {
			return Segment(node(s.Group), mgl32.Vec3{}, s.T)
		}},
		{Name: "links", Kind: RegionFill, Percent: 15, Groups: nodes / 2, Sample: func(s Slot) mgl32.Vec3 {
			return Segment(node(2*s.Group), node(2*s.Group+2), s.T)
		}},
	}
}

func NewsfeedRegions() []Region {
	const w, h, posts, ads, platforms = 3.5, 3.5, 5, 3, 4
	return []Region{
		{Name: "frame", Kind: RegionOutline, Percent: 20, Sample: func(s Slot) mgl32.Vec3 {
			return RectPerimeter(0, 0, w, h, s.T)
		}},
		{Name: "posts", Kind: RegionFill, Percent: 40, Groups: posts, Sample: func(s Slot) mgl32.Vec3 {
			postW := float32(w - 0.6)
			return mgl32.Vec3{-postW/2 + s.T*postW, h/2 - 0.4 - float32(s.Group)*0.6, 0}
		}},
		{Name: "ads", Kind: RegionCustom, Percent: 25, Groups: ads, Sample: func(s Slot) mgl32.Vec3 {
			adW := float32(w - 0.8)
			sn, _ := sincos(s.T * 8 * math.Pi)
			return mgl32.Vec3{-adW/2 + s.T*adW, h/2 - 0.7 - float32(s.Group)*0.6 + sn*0.05, 0}
		}},
		{Name: "social", Kind: RegionRadial, Percent: 15, Groups: platforms, Sample: func(s Slot) mgl32.Vec3 {
			x := float32(-w/2+0.3) + float32(s.Group)*(w-0.6)/(platforms-1)
			return Circle(x, -h/2+0.3, 0.15, s.T)
		}},
	}
}

// HelixRegions builds a DNA double helix around the Y axis; the rungs join the
// two strands at evenly spaced heights.
func HelixRegions() []Region {
	const radius, height, turns, rungs = 0.9, 3.6, 2.0, 12
	strand := func(phase, t float32) mgl32.Vec3 {
		sn, cs := sincos(t*turns*twoPi + phase)
		return mgl32.Vec3{cs * radius, -height/2 + t*height, sn * radius}
	}
	return []Region{
		{Name: "strand-a", Kind: RegionCustom, Percent: 35, Sample: func(s Slot) mgl32.Vec3 {
			return strand(0, s.T)
		}},
		{Name: "strand-b", Kind: RegionCustom, Percent: 35, Sample: func(s Slot) mgl32.Vec3 {
			return strand(math.Pi, s.T)
		}},
		{Name: "rungs", Kind: RegionFill, Percent: 30, Groups: rungs, Sample: func(s Slot) mgl32.Vec3 {
			at := (float32(s.Group) + 0.5) / rungs
			return Segment(strand(0, at), strand(math.Pi, at), s.T)
		}},
	}
}
