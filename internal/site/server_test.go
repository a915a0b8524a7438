package site

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Its-donkey/lander/logging"
)

func newTestServer(t *testing.T, logBuf *bytes.Buffer) (*Server, *Config) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.AssetsDir = t.TempDir()
	c, err := DefaultContent()
	if err != nil {
		t.Fatalf("DefaultContent: %v", err)
	}
	logger := logging.Discard()
	if logBuf != nil {
		logger = logging.New("lander", logging.DEBUG, logBuf)
	}
	s := NewServer(cfg, c, newTestRenderer(t), logger)
	s.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	return s, cfg
}

func get(t *testing.T, h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerRendersPage(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Header().Get(logging.RequestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
	rep, err := CheckContract(rec.Body)
	if err != nil {
		t.Fatalf("CheckContract: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("served page breaks the contract:\n%s", rep)
	}
}

func TestServerHealthz(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/healthz", nil)
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode healthz: %v", err)
	}
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected healthz %d %v", rec.Code, body)
	}
}

func TestServerServesWasmAssets(t *testing.T) {
	var logs bytes.Buffer
	s, cfg := newTestServer(t, &logs)

	rec := get(t, s.Handler(), "/main.wasm", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before the bundle is built, got %d", rec.Code)
	}
	if !strings.Contains(logs.String(), `"level":"WARN"`) {
		t.Fatalf("expected missing asset to be logged as a warning, got %s", logs.String())
	}

	if err := os.WriteFile(filepath.Join(cfg.AssetsDir, "main.wasm"), []byte("\x00asm"), 0o644); err != nil {
		t.Fatalf("write wasm: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.AssetsDir, "wasm_exec.js"), []byte("// go"), 0o644); err != nil {
		t.Fatalf("write wasm_exec: %v", err)
	}

	rec = get(t, s.Handler(), "/main.wasm", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/wasm" {
		t.Fatalf("expected wasm served, got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	rec = get(t, s.Handler(), "/wasm_exec.js", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/javascript" {
		t.Fatalf("expected wasm_exec served, got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestServerStylesFallBackToEmbedded(t *testing.T) {
	s, cfg := newTestServer(t, nil)

	rec := get(t, s.Handler(), "/styles.css", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".ripple") {
		t.Fatalf("expected embedded stylesheet, got %d", rec.Code)
	}

	if err := os.WriteFile(filepath.Join(cfg.AssetsDir, "styles.css"), []byte("body{color:red}"), 0o644); err != nil {
		t.Fatalf("write styles: %v", err)
	}
	rec = get(t, s.Handler(), "/styles.css", nil)
	if rec.Body.String() != "body{color:red}" {
		t.Fatalf("expected stylesheet from assets dir, got %q", rec.Body.String())
	}
}

func TestServerCORS(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(t, s.Handler(), "/healthz", map[string]string{"Origin": "http://localhost:3000"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected local origin allowed, got %q", got)
	}
	rec = get(t, s.Handler(), "/healthz", map[string]string{"Origin": "https://evil.example"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected foreign origin rejected, got %q", got)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	s, cfg := newTestServer(t, nil)
	cfg.Listen = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
