package morphscape

import (
	"time"
)

type Time struct {
	Start   time.Time
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
}

// TimeModule advances Time once per frame. A non-zero FixedStep replaces the
// wall clock, which makes offline renders repeatable.
type TimeModule struct {
	FixedStep time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{Start: now, Time: now})

	system := timeSystem
	if mod.FixedStep > 0 {
		step := mod.FixedStep
		system = func(t *Time) { advanceTime(t, t.Time.Add(step)) }
	}
	app.UseSystem(
		System(system).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(t *Time) {
	advanceTime(t, time.Now())
}

func advanceTime(t *Time, now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Elapsed = now.Sub(t.Start)
}
