package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "board", slog.LevelInfo)
	log.Debug("出力されない")
	log.Info("起動", "port", "8080")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("ログのパースに失敗: %v, body=%s", err, buf.String())
	}
	if record["service"] != "board" {
		t.Errorf("service = %v, want board", record["service"])
	}
	if record["msg"] != "起動" {
		t.Errorf("msg = %v, want 起動", record["msg"])
	}
	if record["port"] != "8080" {
		t.Errorf("port = %v, want 8080", record["port"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
