package nativemod

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the diagnostics channel injected into the cache, matching the
// host's own log(level, msg) callback. Debug and Warn are for informational
// and non-fatal failures (e.g. a staging file that could not be unlinked);
// Fatal reports a condition the cache treats as unrecoverable and must end
// the process after logging.
type Logger interface {
	Debug(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Fatal(msg string, kv ...any)
}

type zapLogger struct {
	l *zap.SugaredLogger
}

// NewZapLogger adapts a *zap.Logger to Logger.
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{l: l.Sugar()}
}

func (z zapLogger) Debug(msg string, kv ...any) { z.l.Debugw(msg, kv...) }
func (z zapLogger) Warn(msg string, kv ...any)  { z.l.Warnw(msg, kv...) }
func (z zapLogger) Fatal(msg string, kv ...any) { z.l.Fatalw(msg, kv...) }

// NopLogger discards Debug and Warn; Fatal still halts, via panic rather
// than the process exit a real host's diagnostics channel would trigger,
// since a caller that wired no logger still needs the fatal contract kept.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Fatal(msg string, kv ...any) {
	panic(fmt.Sprintf("nativemod: fatal: %s %v", msg, kv))
}
