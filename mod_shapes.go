package morphscape

import (
	"context"
	"time"

	"github.com/vektorsolutions/morphscape/shapes"
)

// ShapeLibrary is the live shape library. Version increases each time a new
// library is installed, which happens at startup and whenever a content
// reload changes the particle budget or the shape list.
type ShapeLibrary struct {
	Library *shapes.Library
	Version int
	Built   time.Duration

	contentVersion int
	pending        chan shapeBuild
	cancel         context.CancelFunc
}

type shapeBuild struct {
	lib     *shapes.Library
	err     error
	elapsed time.Duration
}

// Ready reports whether a library is available.
func (l *ShapeLibrary) Ready() bool { return l.Library != nil }

// Close cancels an in-flight build.
func (l *ShapeLibrary) Close() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// ShapesModule builds the shape library off the frame loop. The first build
// is joined before any frame runs past PreUpdate; later rebuilds swap in when
// they finish and the previous library stays live until then.
type ShapesModule struct{}

func (mod ShapesModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&ShapeLibrary{contentVersion: -1})

	app.UseSystem(
		System(shapeLibrarySystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(loadingSystem).
				InStage(PostUpdate).
				InState(OnExecute(StateLoading)),
		)
		app.UseSystem(
			System(func(l *ShapeLibrary) { l.Close() }).
				InStage(Finale).
				InState(OnEnter(StateDone)),
		)
	}
}

func shapeLibrarySystem(lib *ShapeLibrary, content *ContentState, cmd *Commands, log Logger) {
	if lib.pending == nil && lib.contentVersion != content.Version {
		lib.contentVersion = content.Version
		lib.start(content.Current)
		log.Debugf("Building shape library: %d shapes x %d particles",
			len(content.Current.Sections), content.Current.Particles)
	}
	if lib.pending == nil {
		return
	}

	var b shapeBuild
	if lib.Library == nil {
		b = <-lib.pending
	} else {
		select {
		case b = <-lib.pending:
		default:
			return
		}
	}
	lib.pending = nil
	lib.cancel = nil

	if b.err != nil {
		if lib.Library == nil {
			log.Errorf("Shape library build failed: %v", b.err)
			cmd.Exit(b.err)
			return
		}
		log.Warnf("Shape library rebuild failed, keeping previous: %v", b.err)
		return
	}
	lib.Library = b.lib
	lib.Built = b.elapsed
	lib.Version++
	log.Infof("Shape library ready: %d shapes x %d particles in %s (v%d)",
		b.lib.Len(), b.lib.Budget, b.elapsed, lib.Version)
}

func (l *ShapeLibrary) start(content *Content) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan shapeBuild, 1)
	l.pending = ch
	l.cancel = cancel

	budget, kinds := content.Particles, content.Kinds()
	go func() {
		defer cancel()
		start := time.Now()
		lib, err := shapes.Cached(ctx, budget, kinds)
		ch <- shapeBuild{lib: lib, err: err, elapsed: time.Since(start)}
	}()
}

func loadingSystem(lib *ShapeLibrary, cmd *Commands) {
	if lib.Ready() {
		cmd.ChangeState(StateShowcase)
	}
}
