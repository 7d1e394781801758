package morphscape

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ZapLogger adapts a zap logger to Logger. The debug switch flips the shared
// atomic level, so child loggers follow it.
type ZapLogger struct {
	level zap.AtomicLevel
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a production (JSON) or development (console) logger.
func NewZapLogger(name string, debug, development bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		config.Level.SetLevel(zapcore.DebugLevel)
	}
	base, err := config.Build()
	if err != nil {
		return nil, err
	}
	return WrapZap(base.Named(name), config.Level), nil
}

// WrapZap wraps an existing logger whose core was built with level.
func WrapZap(base *zap.Logger, level zap.AtomicLevel) *ZapLogger {
	return &ZapLogger{level: level, base: base, sugar: base.Sugar()}
}

func (l *ZapLogger) Zap() *zap.Logger { return l.base }

func (l *ZapLogger) DebugEnabled() bool { return l.level.Enabled(zapcore.DebugLevel) }

func (l *ZapLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

func (l *ZapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

func (l *ZapLogger) Sync() error { return l.base.Sync() }

// LoggingModule installs a Logger resource. When Logger is set it is used
// as is; otherwise a zap logger is built from Name, Debug and Development.
type LoggingModule struct {
	Name        string
	Debug       bool
	Development bool
	Logger      *ZapLogger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger := m.Logger
	if logger == nil {
		var err error
		logger, err = NewZapLogger(m.Name, m.Debug, m.Development)
		if err != nil {
			panic(err)
		}
	}
	app.addResources(logger)
}

type nopLogger struct{}

func NewNopLogger() Logger                          { return nopLogger{} }
func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op
// logger. Never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
