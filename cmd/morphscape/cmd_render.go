package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vektorsolutions/morphscape"
)

var (
	renderOut        string
	renderFrames     int
	renderScrollFrom float32
	renderScrollTo   float32
	renderMobile     bool
	renderHUD        bool
	renderQuality    string
)

// renderCmd draws frames offline with the software renderer
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render frames to PNG without a window",
	Long: `Sweeps the page from --scroll-from to --scroll-to over --frames frames
and writes each one as a PNG, plus a manifest.yaml describing the run.

Example:
  morphscape render --out frames --frames 120 --quality high`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "out", "o", "frames", "output directory")
	f.IntVarP(&renderFrames, "frames", "f", 60, "number of frames")
	f.Float32Var(&renderScrollFrom, "scroll-from", 0, "normalized scroll of the first frame")
	f.Float32Var(&renderScrollTo, "scroll-to", 1, "normalized scroll of the last frame")
	f.BoolVar(&renderMobile, "mobile", false, "use a 390x844 mobile viewport")
	f.BoolVar(&renderHUD, "hud", false, "draw the debug HUD into frames")
	f.StringVarP(&renderQuality, "quality", "q", "high", "quality tier: auto, low, medium, high")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFrames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}
	for _, v := range []float32{renderScrollFrom, renderScrollTo} {
		if v < 0 || v > 1 {
			return fmt.Errorf("scroll positions must be in [0,1], got %v", v)
		}
	}
	tier, err := parseTier(renderQuality)
	if err != nil {
		return err
	}

	w, h := width, height
	if renderMobile {
		w, h = 390, 844
	}
	app, err := buildApp(appOptions{
		Renderer: morphscape.HeadlessRendererModule{
			Width:  w,
			Height: h,
			OutDir: renderOut,
			Frames: renderFrames,
			Sweep:  &morphscape.ScrollSweep{From: renderScrollFrom, To: renderScrollTo},
			HUD:    renderHUD || debug,
		},
		Quality:   tier,
		Width:     w,
		Height:    h,
		FixedStep: time.Second / 60,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	if err := app.Run(cmd.Context()); err != nil {
		return err
	}
	logger.Infof("Wrote %d frames to %s in %s", renderFrames, filepath.Clean(renderOut), time.Since(start).Round(time.Millisecond))
	return nil
}
