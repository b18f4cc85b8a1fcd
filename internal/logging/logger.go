package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerOption struct {
	LogLevel    string
	Development bool
}

type Option func(o *LoggerOption)

func WithLogLevel(logLevel string) Option {
	return func(o *LoggerOption) {
		o.LogLevel = logLevel
	}
}

// WithDevelopment switches to the human readable console encoder.
func WithDevelopment(dev bool) Option {
	return func(o *LoggerOption) {
		o.Development = dev
	}
}

func NewLogger(opts ...Option) (*zap.Logger, error) {
	option := &LoggerOption{}
	for _, opt := range opts {
		opt(option)
	}

	zapConfig := zap.NewProductionConfig()
	if option.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(ParseLevel(option.LogLevel))
	return zapConfig.Build()
}

// ParseLevel maps a config string to a zap level, defaulting to info.
func ParseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
