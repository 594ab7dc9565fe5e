package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewTextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer l.Close()

	l.Info("hidden")
	l.Warn("shown", "path", "a.tro")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "path=a.tro")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Format: "json"}, &buf)
	require.NoError(t, err)

	l.Info("parsed", "legs", 12)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "parsed", rec["msg"])
	require.EqualValues(t, 12, rec["legs"])
}

func TestNewRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtopo.log")
	var fallback bytes.Buffer

	l, err := New(Options{File: path, MaxSizeMB: 1, MaxBackups: 2}, &fallback)
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "to file"))
	require.Zero(t, fallback.Len())
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Options{Level: "loud"}, &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(Options{Format: "xml"}, &bytes.Buffer{})
	require.Error(t, err)
}
