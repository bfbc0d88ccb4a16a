// Package logging configures the process-wide zap logger. Packages log
// through zap.L(); until Setup runs that is a no-op logger.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup installs the global logger and returns a function that flushes it
// and restores the previous one. With verbose unset, logging stays silent.
func Setup(verbose bool, w io.Writer) func() {
	logger := New(verbose, w)
	restore := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		restore()
	}
}

// New builds a console logger writing debug and above to w when verbose,
// or a no-op logger otherwise.
func New(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	return zap.New(core).Named("spk")
}
