package morphscape

// PlatformWindowModule provides the shared WindowState resource. Install is
// a no-op when a window already exists.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := resource[WindowState](app); ok {
		return
	}
	if m.Width <= 0 {
		m.Width = 1280
	}
	if m.Height <= 0 {
		m.Height = 720
	}
	if m.Title == "" {
		m.Title = "Morphscape"
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		panic(err)
	}
	app.addResources(ws)
	ensureViewport(app, cmd, m.Width, m.Height)
}
