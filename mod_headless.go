package morphscape

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vektorsolutions/morphscape/render/cpu"
	"github.com/vektorsolutions/morphscape/render/core"
)

// ScrollSweep moves the page linearly from From to To (normalized) over the
// rendered frames.
type ScrollSweep struct {
	From float32
	To   float32
}

// HeadlessRendererModule draws frames in software. With OutDir set every
// frame is written as a PNG next to a manifest.yaml describing the run.
// A positive Frames stops the app after that many showcase frames.
type HeadlessRendererModule struct {
	Width  int
	Height int
	OutDir string
	Frames int
	Sweep  *ScrollSweep
	HUD    bool
}

// HeadlessState is the software renderer's resource.
type HeadlessState struct {
	RunID    uuid.UUID
	Rendered int
	Last     *image.RGBA
	Manifest RunManifest

	renderer *cpu.Renderer
	outDir   string
	frames   int
	sweep    *ScrollSweep
}

// RunManifest is written to OutDir/manifest.yaml when the run ends.
type RunManifest struct {
	RunID  string          `yaml:"run_id"`
	Width  int             `yaml:"width"`
	Height int             `yaml:"height"`
	Tier   string          `yaml:"tier"`
	Frames []FrameManifest `yaml:"frames"`
}

type FrameManifest struct {
	File    string  `yaml:"file"`
	Scroll  float32 `yaml:"scroll"`
	Section string  `yaml:"section"`
	Morph   float32 `yaml:"morph"`
}

func (mod HeadlessRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererHeadless)
	vp := ensureViewport(app, cmd, mod.Width, mod.Height)

	if mod.OutDir != "" {
		if err := os.MkdirAll(mod.OutDir, 0o755); err != nil {
			panic(err)
		}
	}

	r := cpu.NewRenderer(vp.Width, vp.Height)
	if mod.HUD {
		hud, err := core.NewHUD(14)
		if err != nil {
			panic(err)
		}
		r.SetHUD(hud)
	}

	runID := uuid.New()
	state := &HeadlessState{
		RunID:    runID,
		renderer: r,
		outDir:   mod.OutDir,
		frames:   mod.Frames,
		sweep:    mod.Sweep,
		Manifest: RunManifest{RunID: runID.String(), Width: vp.Width, Height: vp.Height},
	}
	cmd.AddResources(state)
	useRenderFrame(app, cmd, mod.HUD)

	sweep := System(sweepSystem).InStage(Prelude)
	render := System(headlessRenderSystem).InStage(Render)
	if app.stateful {
		sweep = sweep.InState(OnExecute(StateShowcase))
		render = render.InState(OnExecute(StateShowcase))
		app.UseSystem(
			System(headlessManifestSystem).
				InStage(Finale).
				InState(OnEnter(StateDone)),
		)
	} else {
		sweep = sweep.RunAlways()
		render = render.RunAlways()
	}
	app.UseSystem(sweep)
	app.UseSystem(render)

	app.Logger().Infof("Headless renderer %dx%d, run %s", vp.Width, vp.Height, runID)
}

// sweepSystem positions the page for the frame about to be drawn.
func sweepSystem(state *HeadlessState, in *ScrollInput) {
	if state.sweep == nil {
		return
	}
	t := float32(0)
	if state.frames > 1 {
		t = float32(state.Rendered) / float32(state.frames-1)
	}
	to := state.sweep.From + (state.sweep.To-state.sweep.From)*t
	in.JumpTo = &to
}

func headlessRenderSystem(state *HeadlessState, frame *RenderFrame, quality *QualitySettings, morph *MorphState, scroll *Scroll, content *ContentState, cmd *Commands, log Logger) {
	if state.frames > 0 && state.Rendered >= state.frames {
		return
	}
	state.Last = state.renderer.Render(&frame.Frame)
	state.Manifest.Tier = quality.Tier.String()

	entry := FrameManifest{
		Scroll:  scroll.Normalized,
		Section: sectionID(content.Current, morph.Frame.Current),
		Morph:   morph.Frame.Eased,
	}
	if state.outDir != "" {
		entry.File = fmt.Sprintf("frame_%04d.png", state.Rendered)
		path := filepath.Join(state.outDir, entry.File)
		if err := cpu.WritePNG(path, state.Last); err != nil {
			log.Errorf("Failed to write frame: %v", err)
			cmd.Exit(err)
			return
		}
		log.Debugf("Wrote %s (scroll %.4f)", path, entry.Scroll)
	}
	state.Manifest.Frames = append(state.Manifest.Frames, entry)
	state.Rendered++

	if state.frames > 0 && state.Rendered >= state.frames {
		log.Infof("Rendered %d frames", state.Rendered)
		if cmd.app.stateful {
			cmd.ChangeState(StateDone)
		} else {
			if err := state.WriteManifest(); err != nil {
				log.Errorf("%v", err)
			}
			cmd.Exit(nil)
		}
	}
}

func headlessManifestSystem(state *HeadlessState, log Logger) {
	if err := state.WriteManifest(); err != nil {
		log.Errorf("%v", err)
	}
}

// WriteManifest writes manifest.yaml into the output directory, if any.
func (s *HeadlessState) WriteManifest() error {
	if s.outDir == "" {
		return nil
	}
	data, err := yaml.Marshal(&s.Manifest)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(s.outDir, "manifest.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
