package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestTraceWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	SetTraceEnabled(false)
	Trace("dish.fetch", map[string]interface{}{"id": "1"})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file while tracing is disabled, stat err=%v", err)
	}

	SetTraceEnabled(true)
	Trace("dish.fetch", map[string]interface{}{"id": "1"})
	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0]["event"] != "dish.fetch" {
		t.Fatalf("unexpected event %v", entries[0]["event"])
	}
	payload, ok := entries[0]["payload"].(map[string]interface{})
	if !ok || payload["id"] != "1" {
		t.Fatalf("unexpected payload %#v", entries[0]["payload"])
	}
}

func TestErrorAppendsEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(nil)
	Error(errors.New("boom"))
	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0]["error"] != "boom" || entries[0]["level"] != "error" {
		t.Fatalf("unexpected entry %#v", entries[0])
	}
}
