package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestProdLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "prod", "")
	log.Debug("hidden")
	log.Info("listing created", "listing_id", "abc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "listing created" || rec["listing_id"] != "abc" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "dev", "warn")
	log.Info("quiet")
	log.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("level not applied: %q", buf.String())
	}
}
