package morphscape

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/vektorsolutions/morphscape/morphing"
	"github.com/vektorsolutions/morphscape/shapes"
)

//go:embed assets/content.yaml
var defaultContentYAML []byte

var ErrNoSections = errors.New("content: no sections")

const (
	DefaultParticles = 800
	MaxParticles     = 200_000

	defaultTint       = "#ffffff"
	defaultBackground = "#0a0a0a"
)

// sectionNamespace seeds name-based ids for sections without one.
var sectionNamespace = uuid.MustParse("5d0c3e8a-7a4f-4b1e-9f3c-2b6d8e1a4c70")

type Section struct {
	ID               string    `yaml:"id"`
	Title            string    `yaml:"title"`
	Text             string    `yaml:"text"`
	AccentColor      string    `yaml:"accent_color"`
	TextColor        string    `yaml:"text_color"`
	Shape            string    `yaml:"shape"`
	Offset           []float32 `yaml:"offset"`
	Tint             string    `yaml:"tint"`
	Background       string    `yaml:"background"`
	MobileBackground string    `yaml:"mobile_background"`

	tint             colorful.Color
	background       colorful.Color
	mobileBackground colorful.Color
}

type FogRange struct {
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// Content is the ordered section list plus scene-wide settings.
type Content struct {
	Particles int       `yaml:"particles"`
	Fog       FogRange  `yaml:"fog"`
	Sections  []Section `yaml:"sections"`
}

// DefaultContent returns the embedded showcase content.
func DefaultContent() *Content {
	c, err := ParseContent(defaultContentYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err))
	}
	return c
}

// LoadContent reads path, or the embedded content when path is empty.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return DefaultContent(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	c, err := ParseContent(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseContent decodes YAML, rejecting unknown keys, then fills defaults and
// validates.
func ParseContent(data []byte) (*Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) normalize() error {
	if c.Particles == 0 {
		c.Particles = DefaultParticles
	}
	if c.Particles < 0 || c.Particles > MaxParticles {
		return fmt.Errorf("%w: %d particles (max %d)", shapes.ErrBudget, c.Particles, MaxParticles)
	}
	if c.Fog == (FogRange{}) {
		c.Fog = FogRange{Near: 10, Far: 30}
	}
	if c.Fog.Near < 0 || c.Fog.Far <= c.Fog.Near {
		return fmt.Errorf("content: fog range %v..%v is empty", c.Fog.Near, c.Fog.Far)
	}
	if len(c.Sections) == 0 {
		return ErrNoSections
	}

	seen := make(map[string]int, len(c.Sections))
	for i := range c.Sections {
		s := &c.Sections[i]
		if err := s.normalize(); err != nil {
			return fmt.Errorf("section %d (%s): %w", i, s.ID, err)
		}
		if prev, dup := seen[s.ID]; dup {
			return fmt.Errorf("section %d: id %q already used by section %d", i, s.ID, prev)
		}
		seen[s.ID] = i
	}
	return nil
}

func (s *Section) normalize() error {
	if s.ID == "" {
		if s.Title == "" {
			return errors.New("section needs an id or a title")
		}
		s.ID = uuid.NewSHA1(sectionNamespace, []byte(s.Title)).String()
	}
	if s.Shape == "" {
		s.Shape = "sphere"
	}
	s.Shape = strings.TrimSpace(s.Shape)
	if _, err := shapes.Regions(s.Shape); err != nil {
		return err
	}
	if len(s.Offset) > 3 {
		return fmt.Errorf("offset has %d components", len(s.Offset))
	}
	if s.Tint == "" {
		s.Tint = defaultTint
	}
	if s.Background == "" {
		s.Background = defaultBackground
	}
	if s.MobileBackground == "" {
		s.MobileBackground = s.Background
	}

	var err error
	if s.tint, err = parseColor("tint", s.Tint); err != nil {
		return err
	}
	if s.background, err = parseColor("background", s.Background); err != nil {
		return err
	}
	if s.mobileBackground, err = parseColor("mobile_background", s.MobileBackground); err != nil {
		return err
	}
	for _, field := range []struct{ name, value string }{
		{"accent_color", s.AccentColor},
		{"text_color", s.TextColor},
	} {
		if field.value == "" {
			continue
		}
		if _, err := parseColor(field.name, field.value); err != nil {
			return err
		}
	}
	return nil
}

func parseColor(field, hex string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.ToLower(strings.TrimSpace(hex)))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%s %q: %w", field, hex, err)
	}
	return c, nil
}

// OffsetVec pads the configured offset to three components.
func (s Section) OffsetVec() mgl32.Vec3 {
	var v mgl32.Vec3
	copy(v[:], s.Offset)
	return v
}

func (s Section) TintColor() colorful.Color { return s.tint }

// Kinds lists the shape kind of every section, in order.
func (c *Content) Kinds() []string {
	kinds := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		kinds[i] = s.Shape
	}
	return kinds
}

func (c *Content) Styles() []morphing.Style {
	styles := make([]morphing.Style, len(c.Sections))
	for i, s := range c.Sections {
		styles[i] = morphing.Style{Offset: s.OffsetVec(), Tint: s.tint}
	}
	return styles
}

// Backgrounds returns the backdrop palette for the given layout.
func (c *Content) Backgrounds(mobile bool) morphing.Palette {
	p := make(morphing.Palette, len(c.Sections))
	for i, s := range c.Sections {
		if mobile {
			p[i] = s.mobileBackground
		} else {
			p[i] = s.background
		}
	}
	return p
}
