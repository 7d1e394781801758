package morphscape

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/vektorsolutions/morphscape/render/core"
)

type QualityTier int

const (
	QualityLow QualityTier = iota
	QualityMedium
	QualityHigh
)

func (t QualityTier) String() string {
	switch t {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}
	return fmt.Sprintf("QualityTier(%d)", int(t))
}

func ParseQualityTier(s string) (QualityTier, error) {
	switch strings.ToLower(s) {
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	}
	return 0, fmt.Errorf("unknown quality tier %q", s)
}

// DeviceHints are the inputs of the quality ladder. MemoryGB of 0 means
// unknown and is treated as 4.
type DeviceHints struct {
	Cores         int
	MemoryGB      float64
	ViewportWidth int
}

// QualitySettings is resolved once at startup.
type QualitySettings struct {
	Tier          QualityTier
	PixelRatioCap float32
	Multisample   int
	PostFX        core.PostFX
}

// ResolveQuality maps device hints to a tier and its settings.
func ResolveQuality(h DeviceHints) QualitySettings {
	mem := h.MemoryGB
	if mem <= 0 {
		mem = 4
	}
	tier := QualityHigh
	switch {
	case h.Cores <= 4 || mem <= 4 || h.ViewportWidth < MobileBreakpoint:
		tier = QualityLow
	case h.Cores <= 8 || mem <= 8:
		tier = QualityMedium
	}
	return QualityFor(tier)
}

// QualityFor returns the fixed settings of a tier.
func QualityFor(tier QualityTier) QualitySettings {
	vignette := core.Vignette{Offset: 0.4, Darkness: 0.6}
	bloom := core.Bloom{Threshold: 0.85, Smoothing: 0.9}

	switch tier {
	case QualityHigh:
		bloom.Enabled, bloom.Intensity, bloom.Resolution, bloom.MipBlur = true, 1.2, 300, true
		return QualitySettings{
			Tier:          tier,
			PixelRatioCap: 2,
			Multisample:   8,
			PostFX: core.PostFX{
				Enabled:             true,
				Bloom:               bloom,
				ChromaticAberration: 0.0005,
				Vignette:            vignette,
			},
		}
	case QualityMedium:
		bloom.Enabled, bloom.Intensity, bloom.Resolution = true, 0.8, 200
		return QualitySettings{
			Tier:          tier,
			PixelRatioCap: 1.5,
			Multisample:   4,
			PostFX: core.PostFX{
				Enabled:  true,
				Bloom:    bloom,
				Vignette: vignette,
			},
		}
	default:
		return QualitySettings{
			Tier:          QualityLow,
			PixelRatioCap: 1,
			Multisample:   0,
		}
	}
}

// DetectDeviceHints reads the core count and, on Linux, total memory.
func DetectDeviceHints(viewportWidth int) DeviceHints {
	return DeviceHints{
		Cores:         runtime.NumCPU(),
		MemoryGB:      readMemInfoGB("/proc/meminfo"),
		ViewportWidth: viewportWidth,
	}
}

func readMemInfoGB(path string) float64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / (1024 * 1024)
	}
	return 0
}

// QualityModule resolves QualitySettings. Tier forces a tier; otherwise
// Hints (or detected hints when nil) pick one.
type QualityModule struct {
	Tier  *QualityTier
	Hints *DeviceHints
}

func (mod QualityModule) Install(app *App, cmd *Commands) {
	var q QualitySettings
	switch {
	case mod.Tier != nil:
		q = QualityFor(*mod.Tier)
	case mod.Hints != nil:
		q = ResolveQuality(*mod.Hints)
	default:
		width := 1280
		if vp, ok := resource[Viewport](app); ok {
			width = vp.Width
		}
		q = ResolveQuality(DetectDeviceHints(width))
	}
	app.Logger().Infof("Quality tier %s (msaa %d, postfx %t)", q.Tier, q.Multisample, q.PostFX.Enabled)
	cmd.AddResources(&q)
}
