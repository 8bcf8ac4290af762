package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called so
// packages can log unconditionally, including from tests.
var Log = zap.NewNop()

var (
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	initOnce sync.Once
)

// Init builds the console logger. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = level
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

		l, err := cfg.Build()
		if err != nil {
			// Keep the no-op logger, there is nowhere to report this
			return
		}
		Log = l
	})
}

// SetDebug toggles debug level output on the process logger
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Sync flushes buffered log entries
func Sync() {
	_ = Log.Sync()
}
