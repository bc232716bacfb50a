package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smartpick/picklist/internal/picking"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		log, err := New(Config{})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("file output in json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "smartpick.log")

		log, err := New(Config{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)
		log.Debug("hello", zap.String("k", "v"))
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)
		assert.Contains(t, string(data), `"k":"v"`)
	})

	t.Run("unwritable file", func(t *testing.T) {
		_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "x.log")})
		assert.Error(t, err)
	})
}

func TestDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := NewDiagnostics(zap.New(core))

	d.Report(picking.Event{Kind: picking.EventHeaderFallback, Field: picking.FieldJAN, Label: "JAN", Column: 5})
	d.Report(picking.Event{Kind: picking.EventNoMasterMatch, SKU: "S1", OrderID: "O1", SourceRow: 3})
	d.Report(picking.Event{Kind: picking.EventZeroQuantity, SKU: "S2", Value: "abc"})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "picking", entries[0].LoggerName)
	assert.Equal(t, "JAN", entries[0].ContextMap()["label"])
	assert.EqualValues(t, 5, entries[0].ContextMap()["column"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "S1", entries[1].ContextMap()["sku"])
	assert.Equal(t, "O1", entries[1].ContextMap()["order_id"])

	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.Equal(t, "abc", entries[2].ContextMap()["value"])
}

func TestDiagnosticsRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d := NewDiagnostics(zap.New(core))

	d.Report(picking.Event{Kind: picking.EventZeroQuantity})
	d.Report(picking.Event{Kind: picking.EventMigrationMiss, Value: "X"})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "migration source has no target row", logs.All()[0].Message)
}

func TestDiagnosticsNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewDiagnostics(nil).Report(picking.Event{Kind: picking.EventNoMasterMatch})
	})
}
