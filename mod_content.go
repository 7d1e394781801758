package morphscape

import (
	"context"
)

// ContentState holds the live content. Version increases on every accepted
// reload so dependent systems can notice changes.
type ContentState struct {
	Current *Content
	Version int

	watcher *ContentWatcher
	cancel  context.CancelFunc
}

// Close stops the file watcher, if any. Safe to call more than once.
func (s *ContentState) Close() {
	if s.watcher == nil {
		return
	}
	s.cancel()
	s.watcher.Stop()
	s.watcher = nil
}

// ContentModule provides ContentState. Content wins over Path; with neither
// set the embedded showcase is used. Watch enables hot reload of Path.
type ContentModule struct {
	Path    string
	Content *Content
	Watch   bool
}

func (m ContentModule) Install(app *App, cmd *Commands) {
	content := m.Content
	if content == nil {
		var err error
		content, err = LoadContent(m.Path)
		if err != nil {
			panic(err)
		}
	}

	state := &ContentState{Current: content}
	if m.Watch && m.Path != "" {
		w, err := NewContentWatcher(m.Path, app.Logger())
		if err != nil {
			panic(err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		if err := w.Start(ctx); err != nil {
			cancel()
			w.Stop()
			app.Logger().Warnf("Hot reload disabled: %v", err)
		} else {
			state.watcher = w
			state.cancel = cancel
		}
	}
	cmd.AddResources(state)

	app.UseSystem(
		System(contentReloadSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(contentCloseSystem).
				InStage(Finale).
				InState(OnEnter(StateDone)),
		)
	}
}

func contentReloadSystem(state *ContentState, log Logger) {
	if state.watcher == nil {
		return
	}
	select {
	case u := <-state.watcher.Updates():
		if u.Err != nil {
			log.Warnf("Content reload rejected, keeping previous: %v", u.Err)
			return
		}
		state.Current = u.Content
		state.Version++
		log.Infof("Content reloaded: %d sections, %d particles (v%d)",
			len(u.Content.Sections), u.Content.Particles, state.Version)
	default:
	}
}

func contentCloseSystem(state *ContentState) {
	state.Close()
}
