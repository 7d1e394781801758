package morphscape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	atom := zap.NewAtomicLevelAt(level)
	core, logs := observer.New(atom)
	return WrapZap(zap.New(core), atom), logs
}

func TestZapLogger_LevelSwitch(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	assert.False(t, l.DebugEnabled())

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("now shown %d", 3)
	l.SetDebug(false)
	l.Debugf("hidden again")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "shown 2", entries[0].Message)
	assert.Equal(t, "now shown 3", entries[1].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestLoggingModule_UsesGivenLogger(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	app := NewApp().UseModules(LoggingModule{Logger: l})

	app.Logger().Warnf("careful")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)

	var got Logger
	app.UseSystem(System(func(log Logger, cmd *Commands) {
		got = log
		cmd.Exit(nil)
	}).InStage(Update).RunAlways())
	app.Step()
	assert.Same(t, l, got)
}

func TestLoggingModule_BuildsZap(t *testing.T) {
	app := NewApp().UseModules(LoggingModule{Name: "test", Debug: true, Development: true})
	assert.True(t, app.Logger().DebugEnabled())
}

func TestNopLogger(t *testing.T) {
	var app *App
	l := app.Logger()
	assert.False(t, l.DebugEnabled())
	assert.NotPanics(t, func() { l.Errorf("dropped %v", nil) })
}
