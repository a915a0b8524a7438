//go:build !js && !wasm

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Its-donkey/lander/logging"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "lander.yml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLinkCommand(t *testing.T) {
	out, err := runCLI(t, "link", "--phone", "628111", "--message", "hi there")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	want := "https://api.whatsapp.com/send?phone=628111&text=hi%20there"
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestCheckCommandOnRenderedContent(t *testing.T) {
	out, err := runCLI(t, "check")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok   navbar") || strings.Contains(out, "FAIL") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestCheckCommandFailsBrokenPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(`<html><body><a href="#nowhere">x</a></body></html>`), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
	out, err := runCLI(t, "check", path)
	if err == nil {
		t.Fatalf("expected failing checks to return an error")
	}
	if !strings.Contains(out, "FAIL anchor targets: #nowhere") {
		t.Fatalf("expected broken anchor in report:\n%s", out)
	}
}

func TestLogsCommand(t *testing.T) {
	dir := t.TempDir()
	fw, err := logging.NewFileWriter(dir, "lander.log", 1, 2)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	logger := logging.New("lander", logging.INFO, fw)
	logger.Info("server", "serving landing page", nil)
	logger.Warn("assets", "asset missing", nil)
	if err := fw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	t.Setenv("LANDER_LOG__DIR", dir)
	out, err := runCLI(t, "logs", "-n", "1")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if !strings.Contains(out, "asset missing") || strings.Contains(out, "serving landing page") {
		t.Fatalf("expected only the latest entry, got:\n%s", out)
	}
}
