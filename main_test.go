package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunAllRequiresProcesses(t *testing.T) {
	if err := runAll(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty process list")
	}
}

func TestRunAllReportsFailures(t *testing.T) {
	procs := []procConfig{
		{Name: "ok", Args: []string{"true"}},
		{Name: "broken", Args: []string{"false"}},
	}
	err := runAll(context.Background(), procs)
	if err == nil || !strings.Contains(err.Error(), "broken exited") {
		t.Fatalf("expected failure from broken process, got %v", err)
	}
}

func TestRunAllWaitsForSuccess(t *testing.T) {
	procs := []procConfig{
		{Name: "one", Args: []string{"true"}},
		{Name: "two", Args: []string{"sh", "-c", "exit 0"}, Env: []string{"LANDER_TEST=1"}},
	}
	if err := runAll(context.Background(), procs); err != nil {
		t.Fatalf("runAll: %v", err)
	}
}
