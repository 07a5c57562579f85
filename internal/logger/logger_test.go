package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Out: &buf})

	log.Debug().Msg("hidden")
	log.Info().Str("walk", "quantum").Msg("computed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected json line: %v", err)
	}
	if entry["walk"] != "quantum" || entry["message"] != "computed" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Out: &buf})
	log.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn, got %q", buf.String())
	}

	buf.Reset()
	log = New(Config{Level: "bogus", Out: &buf})
	log.Info().Msg("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Error("unknown level should fall back to info")
	}
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Pretty: true, Out: &buf})
	log.Debug().Msg("pretty")
	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("pretty output should not be json: %q", buf.String())
	}
}
