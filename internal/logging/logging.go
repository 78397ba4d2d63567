// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the diagnostic zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/extract-client/pkg/types"
)

const defaultLevel = zapcore.WarnLevel

// New returns a logger configured by cfg. An unknown level falls back to
// warn; format "json" selects the production encoder, anything else the
// console encoder.
func New(cfg types.LoggingConfig) (*zap.Logger, error) {
	level := defaultLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = defaultLevel
		}
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	out := cfg.OutputPath
	if out == "" {
		out = "stderr"
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
