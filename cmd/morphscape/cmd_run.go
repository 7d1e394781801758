package main

import (
	"github.com/spf13/cobra"

	"github.com/vektorsolutions/morphscape"
)

var (
	runQuality string
	runSmooth  bool
)

// runCmd opens the showcase window
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the showcase window (wgpu)",
	Long: `Opens a window and draws the showcase with wgpu.

Keys:
  wheel, arrows    scroll
  space, pgup/dn   page
  home, end        jump to the first or last section
  F3               toggle the debug HUD
  esc              quit`,
	RunE: runWindow,
}

func init() {
	runCmd.Flags().StringVarP(&runQuality, "quality", "q", "auto", "quality tier: auto, low, medium, high")
	runCmd.Flags().BoolVar(&runSmooth, "smooth", true, "spring-smoothed scrolling")
}

func runWindow(cmd *cobra.Command, args []string) error {
	tier, err := parseTier(runQuality)
	if err != nil {
		return err
	}
	app, err := buildApp(appOptions{
		Renderer: morphscape.PointCloudRendererModule{
			WindowWidth:  width,
			WindowHeight: height,
			WindowTitle:  "Morphscape",
			Debug:        debug,
		},
		Quality: tier,
		Width:   width,
		Height:  height,
		Smooth:  runSmooth,
	})
	if err != nil {
		return err
	}
	return app.Run(cmd.Context())
}
