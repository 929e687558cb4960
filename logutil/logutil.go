// Package logutil builds the zap loggers used by the command line tools.
package logutil

import (
	"fmt"
	"os"

	"github.com/katalvlaran/symnmf/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr as configured by cfg.
func New(cfg config.Log) (*zap.Logger, error) {
	return NewWithSink(cfg, zapcore.Lock(os.Stderr))
}

// NewWithSink returns a logger writing to ws.
func NewWithSink(cfg config.Log, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logutil: level %q: %w", cfg.Level, err)
	}
	enc, err := encoder(cfg.Format)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(enc, ws, level)

	return zap.New(core, zap.AddStacktrace(zapcore.FatalLevel)), nil
}

func encoder(format string) (zapcore.Encoder, error) {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	switch format {
	case "", "console":
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	case "json":
		return zapcore.NewJSONEncoder(ec), nil
	default:
		return nil, fmt.Errorf("logutil: format %q: %w", format, config.ErrInvalidConfig)
	}
}
