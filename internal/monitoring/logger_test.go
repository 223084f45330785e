package monitoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func restore(t *testing.T) {
	origLog, origDebug := Logf, Debugf
	t.Cleanup(func() {
		Logf = origLog
		Debugf = origDebug
	})
}

func TestSetLogger(t *testing.T) {
	restore(t)

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("test message")
	assert.True(t, called, "custom logger was not called")

	called = false
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("test message") })
	assert.False(t, called, "no-op logger should not reach the old callback")
}

func TestSetDebugLogger(t *testing.T) {
	restore(t)

	var got []string
	SetDebugLogger(func(format string, v ...interface{}) { got = append(got, format) })
	Debugf("one")
	SetDebugLogger(nil)
	Debugf("two")
	assert.Equal(t, []string{"one"}, got)
}

func TestLogf_Default(t *testing.T) {
	require.NotNil(t, Logf)
	require.NotNil(t, Debugf)
	assert.NotPanics(t, func() {
		Logf("test message: %s", "value")
		Debugf("debug message: %s", "value")
	})
}

func TestUseZap(t *testing.T) {
	restore(t)

	core, logs := observer.New(zapcore.DebugLevel)
	UseZap(zap.New(core))

	Logf("wrote %s", "bin.stl")
	Debugf("cells=%d", 200)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "wrote bin.stl", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "cells=200", entries[1].Message)
}

func TestNewLogger_LevelAndOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gf.log")

	l, err := NewLogger(Config{Level: "bogus", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel), "unknown level falls back to info")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	l.Info("hello")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)

	dl, err := NewLogger(Config{Level: "DEBUG"})
	require.NoError(t, err)
	assert.True(t, dl.Core().Enabled(zapcore.DebugLevel))
}

func TestInit(t *testing.T) {
	restore(t)

	flush, err := Init(true)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		Debugf("debug enabled")
		flush()
	})
}
