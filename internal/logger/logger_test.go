package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.log")
	Init(Options{Level: "debug", File: path, Console: false})

	Log.Info("file output test entry")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "file output test entry") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.log")
	Init(Options{Level: "warn", File: path, Console: false})

	Log.Info("filtered entry")
	Log.Warn("kept entry")
	Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "filtered entry") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(string(data), "kept entry") {
		t.Error("warn entry missing")
	}
}
