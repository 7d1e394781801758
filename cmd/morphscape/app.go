package main

import (
	"fmt"
	"time"

	"github.com/vektorsolutions/morphscape"
)

// appOptions is everything a subcommand decides about the app it runs.
type appOptions struct {
	Renderer morphscape.Module
	Quality  *morphscape.QualityTier
	Width    int
	Height   int
	// FixedStep makes offline renders independent of wall time.
	FixedStep time.Duration
	Smooth    bool
}

// loadContent reads the content file and applies the particle override.
func loadContent() (*morphscape.Content, error) {
	content, err := morphscape.LoadContent(configPath)
	if err != nil {
		return nil, err
	}
	if particles != 0 {
		if particles < 0 || particles > morphscape.MaxParticles {
			return nil, fmt.Errorf("--particles must be in 1..%d", morphscape.MaxParticles)
		}
		content.Particles = particles
	}
	return content, nil
}

func buildApp(opts appOptions) (*morphscape.App, error) {
	content, err := loadContent()
	if err != nil {
		return nil, err
	}

	var hints *morphscape.DeviceHints
	if opts.Quality == nil {
		h := morphscape.DetectDeviceHints(opts.Width)
		hints = &h
	}

	app := morphscape.NewAppBuilder().
		UseStates(morphscape.StateLoading, morphscape.StateDone).
		UseModule(
			morphscape.LoggingModule{Logger: logger},
			morphscape.TimeModule{FixedStep: opts.FixedStep},
			morphscape.ContentModule{Path: configPath, Content: content, Watch: watch},
			morphscape.ScrollModule{Smooth: opts.Smooth},
			morphscape.ShapesModule{},
			morphscape.MorphModule{},
			morphscape.LightingModule{},
			morphscape.BackdropModule{Grid: true},
			morphscape.QualityModule{Tier: opts.Quality, Hints: hints},
			opts.Renderer,
		).
		Build()
	return app, nil
}

func parseTier(s string) (*morphscape.QualityTier, error) {
	if s == "" || s == "auto" {
		return nil, nil
	}
	t, err := morphscape.ParseQualityTier(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
