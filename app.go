package morphscape

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any
	ecs                *Ecs

	// Command buffering
	pendingAdditions    []pendingAdd
	pendingRemovals     []EntityId
	pendingCompAdds     []pendingCompChange
	pendingCompRemovals []pendingCompChange

	started       bool
	finished      bool
	exitRequested bool
	exitErr       error
	frame         uint64
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompChange struct {
	eid        EntityId
	components []any
}

// NewApp returns a stateless app with the default stage list.
func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		systems:          make(map[string]map[State]map[statePhase][]systemFn),
		systemsStateless: make(map[string][]systemFn),
		resources:        make(map[reflect.Type]any),
		ecs:              &ecs,
	}
	for _, s := range defaultStages() {
		app.stages = append(app.stages, s)
		app.initStage(s)
	}
	return app
}

// UseStates switches the app to stateful mode. It must be called before any
// stateful system is scheduled.
func (app *App) UseStates(initialState State, finalState State) *App {
	app.stateful = true
	app.initialState = initialState
	app.finalState = finalState
	for _, s := range app.stages {
		stateless := app.systemsStateless[s.Name]
		app.initStage(s)
		app.systemsStateless[s.Name] = stateless
	}
	return app
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, m := range modules {
		m.Install(app, cmd)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

func (app *App) State() State   { return app.state }
func (app *App) Frame() uint64  { return app.frame }
func (app *App) Finished() bool { return app.finished }

// Run steps frames until the final state is reached, an exit is requested or
// ctx is cancelled. It returns the error passed to Commands.Exit, if any.
func (app *App) Run(ctx context.Context) error {
	for app.Step() {
		if ctx.Err() != nil {
			app.Logger().Infof("Shutdown requested: %v", context.Cause(ctx))
			app.requestExit(nil)
		}
	}
	return app.exitErr
}

// Step runs one frame through every stage. It returns false once the app has
// finished.
func (app *App) Step() bool {
	if app.finished {
		return false
	}
	if !app.started {
		app.started = true
		if app.stateful {
			app.Logger().Debugf("Running in stateful mode")
			app.state = app.initialState
			app.callSystems(app.state, enter)
		} else {
			app.Logger().Debugf("Running in stateless mode")
		}
	}

	app.callSystems(app.state, execute)
	app.frame++

	if app.stateful {
		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}
		if app.state == app.finalState {
			app.callSystems(app.state, exit)
			app.finished = true
		}
	} else if app.exitRequested {
		app.finished = true
	}
	return !app.finished
}

func (app *App) requestExit(err error) {
	if err != nil && app.exitErr == nil {
		app.exitErr = err
	}
	app.exitRequested = true
	if app.stateful {
		app.changeState(app.finalState)
	}
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		if phase == execute {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}
		if app.stateful {
			for _, system := range app.systems[stage.Name][state][phase] {
				app.callSystem(system)
			}
		}
		app.FlushCommands()
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.Logger().Debugf("State %d -> %d", app.state, newState)
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// resource looks up the resource of type *T.
func resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var (
	typeOfCommands = reflect.TypeOf(Commands{})
	typeOfLogger   = reflect.TypeOf((*Logger)(nil)).Elem()
)

// callSystem resolves each argument of system: *Commands, the Logger
// interface, or a pointer to a registered resource.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := range args {
		argType := systemType.In(i)
		switch {
		case argType == typeOfLogger:
			args[i] = reflect.ValueOf(app.Logger())
		case argType.Kind() == reflect.Pointer && argType.Elem() == typeOfCommands:
			args[i] = reflect.ValueOf(&Commands{app: app})
		case argType.Kind() == reflect.Pointer && app.resources[argType.Elem()] != nil:
			args[i] = reflect.ValueOf(app.resources[argType.Elem()])
		default:
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				systemType,
				argType,
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 &&
		len(app.pendingCompAdds) == 0 && len(app.pendingCompRemovals) == 0 {
		return
	}

	// Removals first so nothing is added to a dead entity.
	for _, eid := range app.pendingRemovals {
		app.Logger().Debugf("Removing entity %v", eid)
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]

	for _, rm := range app.pendingCompRemovals {
		app.ecs.removeComponents(rm.eid, rm.components...)
	}
	app.pendingCompRemovals = app.pendingCompRemovals[:0]
}
