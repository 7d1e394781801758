package morphscape

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	if app.nextState != State(2) {
		t.Errorf("The nextState should be set correctly.")
	}
	if !app.stateTransitioning {
		t.Errorf("The stateTransitioning flag should be true.")
	}

	app.executeChangeState(2)
	if app.state != State(2) {
		t.Errorf("The app state should change correctly.")
	}
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
}

func TestApp_SystemInjection(t *testing.T) {
	app := NewApp()
	res := NewMockResource1("injected")
	app.addResources(res)

	var seen *MockResource1
	var cmdSeen, logSeen bool
	app.UseSystem(System(func(r *MockResource1, cmd *Commands, log Logger) {
		seen = r
		cmdSeen = cmd != nil
		logSeen = log != nil
		cmd.Exit(nil)
	}).InStage(Update).RunAlways())

	require.NoError(t, app.Run(context.Background()))
	assert.Same(t, res, seen)
	assert.True(t, cmdSeen)
	assert.True(t, logSeen)
	assert.Equal(t, uint64(1), app.Frame())
}

func TestApp_MissingResourcePanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(*MockResource2) {}).InStage(Update).RunAlways())
	assert.Panics(t, func() { app.Step() })
}

func TestApp_StageOrder(t *testing.T) {
	app := NewApp()
	var order []string
	for _, s := range []Stage{Finale, Render, Prelude, Update} {
		name := s.Name
		app.UseSystem(System(func() { order = append(order, name) }).InStage(s).RunAlways())
	}
	app.Step()
	assert.Equal(t, []string{"Prelude", "Update", "Render", "Finale"}, order)
}

func TestApp_StatefulLifecycle(t *testing.T) {
	app := NewApp().UseStates(StateLoading, StateDone)

	var trace []string
	rec := func(s string) func() { return func() { trace = append(trace, s) } }

	app.UseSystem(System(rec("enter loading")).InStage(Update).InState(OnEnter(StateLoading)))
	app.UseSystem(System(func(cmd *Commands) {
		trace = append(trace, "loading")
		cmd.ChangeState(StateShowcase)
	}).InStage(Update).InState(OnExecute(StateLoading)))
	app.UseSystem(System(rec("exit loading")).InStage(Update).InState(OnExit(StateLoading)))
	app.UseSystem(System(func(cmd *Commands) {
		trace = append(trace, "showcase")
		cmd.ChangeState(StateDone)
	}).InStage(Update).InState(OnExecute(StateShowcase)))
	app.UseSystem(System(rec("enter done")).InStage(Finale).InState(OnEnter(StateDone)))

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, []string{"enter loading", "loading", "exit loading", "showcase", "enter done"}, trace)
	assert.Equal(t, StateDone, app.State())
	assert.True(t, app.Finished())
	assert.False(t, app.Step())
}

func TestApp_ExitError(t *testing.T) {
	boom := errors.New("boom")
	app := NewApp().UseStates(StateLoading, StateDone)
	app.UseSystem(System(func(cmd *Commands) { cmd.Exit(boom) }).InStage(PreUpdate).InState(OnExecute(StateLoading)))

	err := app.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateDone, app.State())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app := NewApp()
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	app.UseSystem(System(func() {
		frames++
		if frames == 3 {
			cancel()
		}
	}).InStage(Update).RunAlways())

	require.NoError(t, app.Run(ctx))
	// One more frame runs to let the exit settle.
	assert.Equal(t, 4, frames)
}

func TestApp_CommandsAreFlushedPerStage(t *testing.T) {
	type marker struct{ n int }
	app := NewApp()
	var seen int
	app.UseSystem(System(func(cmd *Commands) {
		if app.Frame() == 0 {
			cmd.AddEntity(marker{n: 7})
		}
	}).InStage(PreUpdate).RunAlways())
	app.UseSystem(System(func(cmd *Commands) {
		MakeQuery1[marker](cmd).Map(func(_ EntityId, m *marker) bool {
			seen = m.n
			return true
		})
		cmd.Exit(nil)
	}).InStage(Update).RunAlways())

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, 7, seen)
}
