package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates an OpenTelemetry-aware JSON logger writing to stdout.
// Unrecognised levels fall back to info. Every line carries the service name.
func NewLogger(level, serviceName string) (*otelzap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	config.Encoding = "json"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	opts := []zap.Option{zap.AddCallerSkip(1)}
	if serviceName != "" {
		opts = append(opts, zap.Fields(zap.String("service", serviceName)))
	}

	zapLogger, err := config.Build(opts...)
	if err != nil {
		return nil, err
	}

	return otelzap.New(zapLogger), nil
}

// ParseLevel maps a LOG_LEVEL value to a zap level, case-insensitively.
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	switch lvl {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
		return lvl
	default:
		return zapcore.InfoLevel
	}
}
