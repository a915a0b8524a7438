package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("decode entry %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("server", WARN, &buf)

	logger.Debug("nav", "ignored", nil)
	logger.Info("nav", "ignored", nil)
	logger.Warn("nav", "menu button missing", map[string]any{"id": "hamburger"})
	logger.Error("site", "render failed", errors.New("boom"), nil)

	entries := decodeEntries(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[0].Category != "nav" || entries[0].Source != "server" {
		t.Fatalf("unexpected warn entry: %+v", entries[0])
	}
	if entries[0].Fields["id"] != "hamburger" {
		t.Fatalf("expected fields to round trip, got %+v", entries[0].Fields)
	}
	if entries[1].Error != "boom" {
		t.Fatalf("expected error text, got %+v", entries[1])
	}
}

func TestDiscardWritesNothing(t *testing.T) {
	logger := Discard()
	if logger.Enabled(ERROR) {
		t.Fatalf("discard logger should not be enabled")
	}
	logger.Error("x", "y", nil, nil)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{"debug": DEBUG, "": INFO, "INFO": INFO, "warning": WARN, "error": ERROR}
	for input, want := range tests {
		got, err := ParseLevel(input)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLogContextCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New("server", DEBUG, &buf)
	logger.WithRequestID("req-1").WithCategory("content").WithField("file", "content.yaml").Info("loaded")

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.RequestID != "req-1" || e.Category != "content" || e.Fields["file"] != "content.yaml" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestHTTPMiddlewareLogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := New("server", INFO, &buf)

	handler := NewHTTPLogger(logger).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != "WARN" || e.Category != "http" || e.Message != "GET /ping 418" {
		t.Fatalf("unexpected http entry: %+v", e)
	}
	if e.RequestID != rec.Header().Get(RequestIDHeader) {
		t.Fatalf("expected logged request id to match header")
	}
	if e.Duration == nil {
		t.Fatalf("expected duration")
	}
}

func TestHTTPMiddlewareKeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHTTPLogger(New("server", INFO, &buf)).Middleware(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc" {
		t.Fatalf("expected incoming request id to be reused, got %q", got)
	}
}

func TestFileWriterRotatesAndReadRecent(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(dir, "server.log", 1, 2)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}
	logger := New("server", INFO, fw)
	for i := 0; i < 5; i++ {
		logger.Info("test", "line", map[string]any{"i": i})
	}

	fw.mu.Lock()
	fw.maxSize = 1
	fw.mu.Unlock()
	logger.Info("test", "after rotation", nil)

	if err := fw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	entries, err := ReadRecent(fw.Path(), 10)
	if err != nil {
		t.Fatalf("read recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "after rotation" {
		t.Fatalf("expected only the post-rotation entry in the active file, got %+v", entries)
	}

	rotated, _ := filepath.Glob(filepath.Join(dir, "server.log.*.gz"))
	if len(rotated) != 1 {
		t.Fatalf("expected one compressed rotation, got %v", rotated)
	}
}

func TestReadRecentLimitsAndSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	content := `{"message":"one"}
not json
{"message":"two"}
{"message":"three"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := ReadRecent(path, 2)
	if err != nil {
		t.Fatalf("read recent: %v", err)
	}
	if len(entries) != 2 || entries[0].Message != "two" || entries[1].Message != "three" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	missing, err := ReadRecent(filepath.Join(t.TempDir(), "nope"), 5)
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty result for missing file, got %v %v", missing, err)
	}
}
