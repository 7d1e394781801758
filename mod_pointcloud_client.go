package morphscape

import (
	"fmt"

	"github.com/vektorsolutions/morphscape/render/core"
	"github.com/vektorsolutions/morphscape/render/gpu"
)

// PointCloudRendererModule opens a window and draws the scene with wgpu.
// QualityModule should be installed first; medium settings are assumed
// otherwise.
type PointCloudRendererModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	Debug        bool
}

// PointCloudClient is the windowed renderer's resource.
type PointCloudClient struct {
	Frames int

	gpuState *GpuState
	renderer *gpu.Renderer
	failures int
}

// maxFrameFailures stops the app after this many consecutive failed frames.
const maxFrameFailures = 30

func (mod PointCloudRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererWGPU)
	app.UseModules(
		PlatformWindowModule{Width: mod.WindowWidth, Height: mod.WindowHeight, Title: mod.WindowTitle},
		InputModule{},
	)
	ws, _ := resource[WindowState](app)

	quality, ok := resource[QualitySettings](app)
	if !ok {
		q := QualityFor(QualityMedium)
		quality = &q
		cmd.AddResources(quality)
	}

	gs, err := createGpuState(ws)
	if err != nil {
		panic(err)
	}
	w, h := renderSize(ws, quality.PixelRatioCap)
	r, err := gpu.NewRenderer(gs.device, gs.queue, gs.surfaceConfig.Format, w, h, rendererOptions(quality))
	if err != nil {
		gs.release()
		panic(err)
	}
	cmd.AddResources(&PointCloudClient{gpuState: gs, renderer: r})
	useRenderFrame(app, cmd, mod.Debug)

	app.UseSystem(
		System(pointCloudRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(releaseClientSystem).
				InStage(Finale).
				InState(OnEnter(StateDone)),
		)
	}
	app.Logger().Infof("wgpu renderer %dx%d, surface %s", w, h, gs.surfaceConfig.Format)
}

func rendererOptions(q *QualitySettings) gpu.Options {
	opts := gpu.Options{Samples: q.Multisample}
	if q.PostFX.Enabled && q.PostFX.Bloom.Enabled {
		opts.BloomHeight = q.PostFX.Bloom.Resolution
		opts.MipBlur = q.PostFX.Bloom.MipBlur
	}
	return opts
}

// renderSize is the framebuffer size limited to the tier's pixel ratio.
func renderSize(ws *WindowState, pixelRatioCap float32) (int, int) {
	w, h := ws.Width, ws.Height
	if scale := ws.ContentScale(); pixelRatioCap > 0 && scale > pixelRatioCap {
		k := pixelRatioCap / scale
		w, h = int(float32(w)*k), int(float32(h)*k)
	}
	return max(w, 1), max(h, 1)
}

func pointCloudRenderSystem(client *PointCloudClient, ws *WindowState, frame *RenderFrame, quality *QualitySettings, cmd *Commands, log Logger) {
	if client.renderer == nil {
		return
	}
	if client.gpuState.resize(ws.Width, ws.Height) {
		log.Debugf("Surface resized to %dx%d", ws.Width, ws.Height)
	}
	if ws.Width <= 0 || ws.Height <= 0 {
		return
	}

	// The renderer draws at the capped size; the composite pass scales to
	// the surface.
	f := frame.Frame
	f.Width, f.Height = renderSize(ws, quality.PixelRatioCap)

	if err := client.present(&f); err != nil {
		client.failures++
		log.Warnf("Frame skipped: %v", err)
		if client.failures >= maxFrameFailures {
			cmd.Exit(fmt.Errorf("wgpu renderer: %d consecutive failures: %w", client.failures, err))
		}
		return
	}
	client.failures = 0
	client.Frames++
}

func (c *PointCloudClient) present(f *core.Frame) error {
	surface := c.gpuState.surface
	tex, err := surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("GetCurrentTexture failed: %w", err)
	}
	defer tex.Release()
	view, err := tex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("CreateView failed: %w", err)
	}
	defer view.Release()

	if err := c.renderer.Render(f, view); err != nil {
		return err
	}
	surface.Present()
	return nil
}

func releaseClientSystem(client *PointCloudClient, ws *WindowState, log Logger) {
	client.Close()
	ws.destroy()
	log.Debugf("wgpu renderer released after %d frames", client.Frames)
}

// Close releases GPU resources. It is safe to call more than once.
func (c *PointCloudClient) Close() {
	if c.renderer != nil {
		c.renderer.Release()
		c.renderer = nil
	}
	if c.gpuState != nil {
		c.gpuState.release()
	}
}
