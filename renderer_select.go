package morphscape

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererHeadless RendererName = "headless"
)

// Renderer is an alias to Module for semantic clarity in APIs.
type Renderer interface {
	Module
}

// UseRenderer installs exactly one renderer module.
// Usage:
//
//	app.UseRenderer(RendererHeadless, HeadlessRendererModule{Frames: 30})
func (app *App) UseRenderer(name RendererName, mod Renderer) *App {
	ensureSingleRenderer(app, name)
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UseHeadless selects the software renderer at the given size.
func (app *App) UseHeadless(width, height int, outDir string) *App {
	return app.UseRenderer(RendererHeadless, HeadlessRendererModule{
		Width:  width,
		Height: height,
		OutDir: outDir,
	})
}

// UseWGPU selects the windowed GPU renderer.
func (app *App) UseWGPU(width, height int, title string) *App {
	return app.UseRenderer(RendererWGPU, PointCloudRendererModule{
		WindowWidth:  width,
		WindowHeight: height,
		WindowTitle:  title,
	})
}

// ensureViewport returns the Viewport resource, creating or resizing it to
// width x height when those are positive.
func ensureViewport(app *App, cmd *Commands, width, height int) *Viewport {
	vp, ok := resource[Viewport](app)
	if !ok {
		if width <= 0 {
			width = 1280
		}
		if height <= 0 {
			height = 720
		}
		vp = NewViewport(width, height)
		cmd.AddResources(vp)
		return vp
	}
	if width > 0 && height > 0 {
		vp.Resize(width, height)
	}
	return vp
}
