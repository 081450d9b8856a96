package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "warn", JSON: true, out: zapcore.AddSync(&buf)})
	defer cleanup()

	l.Info("dropped")
	l.Warn("kept", zap.String("blog_id", "b1"))
	_ = l.Sync()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "b1", entry["blog_id"])
	assert.Contains(t, entry, "ts")
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "loud", JSON: true, out: zapcore.AddSync(&buf)})
	defer cleanup()

	l.Debug("dropped")
	l.Info("kept")
	_ = l.Sync()
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestBuild_RotateFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "info", out: zapcore.AddSync(&buf), Rotate: FileRotate{Filename: file, MaxSizeMB: 1}})
	l.Info("to file")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"to file"`)
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "debug", JSON: true, out: zapcore.AddSync(&buf)})
	defer cleanup()

	w := ToWriter(l, zapcore.InfoLevel)
	n, err := w.Write([]byte("[GIN-debug] GET /health\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	_ = l.Sync()
	assert.Contains(t, buf.String(), "[GIN-debug] GET /health")
}
