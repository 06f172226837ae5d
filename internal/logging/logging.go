// Package logging builds the logr.Logger handed to the provisioning core.
package logging

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a discarding logger unless verbose is set, in which case
// V(1) and below are written to w in zap's development format.
func New(verbose bool, w io.Writer) logr.Logger {
	if !verbose {
		return logr.Discard()
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapcore.Level(-1)),
	)
	return zapr.NewLogger(zap.New(core))
}
