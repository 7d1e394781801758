package core

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// HUD draws single-line debug labels onto frames.
type HUD struct {
	Face font.Face
}

func NewHUD(size float64) (*HUD, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return &HUD{Face: face}, nil
}

// Label draws text with its top-left corner at (x, y).
func (h *HUD) Label(dst *image.RGBA, x, y int, text string, c color.Color) {
	ascent := h.Face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: h.Face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + ascent)},
	}
	d.DrawString(text)
}

// LineHeight is the advance between stacked labels.
func (h *HUD) LineHeight() int {
	return h.Face.Metrics().Height.Ceil()
}
