package morphing

// MaxNormalized keeps the scroll fraction strictly below 1 so the section
// index never runs past the last section.
const MaxNormalized = 0.9999

// Layout describes the virtual page: a hero block, one block per middle
// section and an outro block, all scrolled through a fixed viewport.
type Layout struct {
	ViewportHeight float32
	HeroHeight     float32
	SectionHeight  float32
	Sections       int
}

// NewLayout sizes every block to one viewport height.
func NewLayout(viewportHeight float32, sections int) Layout {
	return Layout{
		ViewportHeight: viewportHeight,
		HeroHeight:     viewportHeight,
		SectionHeight:  viewportHeight,
		Sections:       sections,
	}
}

func (l Layout) PageHeight() float32 {
	switch {
	case l.Sections <= 0:
		return 0
	case l.Sections == 1:
		return l.HeroHeight
	default:
		return 2*l.HeroHeight + l.SectionHeight*float32(l.Sections-2)
	}
}

// Scrollable is how far the page can scroll; never negative.
func (l Layout) Scrollable() float32 {
	s := l.PageHeight() - l.ViewportHeight
	if s < 0 {
		return 0
	}
	return s
}

// ClampOffset keeps a scroll offset inside the page.
func (l Layout) ClampOffset(offset float32) float32 {
	return clamp(offset, 0, l.Scrollable())
}

// Normalize maps a scroll offset in pixels to [0, MaxNormalized]. A page too
// short to scroll yields 0.
func (l Layout) Normalize(scrollTop float32) float32 {
	scrollable := l.Scrollable()
	if scrollable <= 0 {
		return 0
	}
	return clamp(scrollTop/scrollable, 0, MaxNormalized)
}

// SectionOffset is the scroll offset at which section i starts.
func (l Layout) SectionOffset(i int) float32 {
	if l.Sections <= 0 {
		return 0
	}
	return l.ClampOffset(float32(i) / float32(l.Sections) * l.Scrollable())
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
