// Package monitoring holds the package-level diagnostic loggers. They start
// out on the standard log package and are switched to zap by Init.
package monitoring

import (
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger or Init. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf logs verbose diagnostics. It is a no-op until Init enables debug output.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebugLogger replaces the debug logger. Passing nil mutes it.
func SetDebugLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Debugf = func(string, ...interface{}) {}
		return
	}
	Debugf = f
}

// Config selects how Init builds the zap logger.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "console" or "json"
	OutputPaths []string
}

// NewLogger builds a zap logger from cfg. Unknown levels fall back to info.
func NewLogger(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zc.Level = level

	if cfg.Format == "json" {
		zc.Encoding = "json"
	} else {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.DisableStacktrace = true
	zc.DisableCaller = true

	zc.OutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// UseZap routes Logf and Debugf through l.
func UseZap(l *zap.Logger) {
	sugar := l.Sugar()
	SetLogger(sugar.Infof)
	SetDebugLogger(sugar.Debugf)
}

// Init builds a console logger on stderr (debug level when debug is set),
// installs it and returns a flush function for the caller to defer.
func Init(debug bool) (func(), error) {
	level := "info"
	if debug {
		level = "debug"
	}
	l, err := NewLogger(Config{Level: level, Format: "console"})
	if err != nil {
		return func() {}, err
	}
	UseZap(l)
	return func() { _ = l.Sync() }, nil
}
