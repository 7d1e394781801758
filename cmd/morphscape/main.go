// Command morphscape plays the scroll-driven particle showcase in a window
// or renders it offline to PNG frames.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vektorsolutions/morphscape"
)

var (
	// Global flags
	configPath string
	particles  int
	debug      bool
	devLog     bool
	width      int
	height     int
	watch      bool

	logger *morphscape.ZapLogger
)

var rootCmd = &cobra.Command{
	Use:   "morphscape",
	Short: "Scroll-driven particle morph showcase",
	Long: `morphscape morphs a particle cloud between procedural shapes as the
page scrolls. Each section of the content file names a shape, a tint and a
background; scrolling crossfades between them.

Run without a subcommand to open the showcase window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = morphscape.NewZapLogger("morphscape", debug, devLog)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "content YAML (embedded showcase when empty)")
	pf.IntVarP(&particles, "particles", "n", 0, "override the particle budget")
	pf.BoolVarP(&debug, "debug", "d", false, "debug logging and HUD")
	pf.BoolVar(&devLog, "dev-log", false, "human readable console logs")
	pf.IntVar(&width, "width", 1280, "viewport width")
	pf.IntVar(&height, "height", 720, "viewport height")
	pf.BoolVarP(&watch, "watch", "w", false, "reload the content file when it changes")

	rootCmd.AddCommand(runCmd, renderCmd, shapesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
