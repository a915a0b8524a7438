package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wasmProcs := []procConfig{
		{
			Name: "copy-wasm-exec",
			Args: []string{"sh", "-c", `cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/wasm_exec.js 2>/dev/null || cp "$(go env GOROOT)/misc/wasm/wasm_exec.js" web/wasm_exec.js`},
		},
		{
			Name: "build-lander-wasm",
			Args: []string{"go", "build", "-o", "web/main.wasm", "./cmd/lander-wasm"},
			Env:  []string{"GOOS=js", "GOARCH=wasm"},
		},
	}
	serveProcs := []procConfig{
		{
			Name: "lander",
			Args: []string{"go", "run", "./cmd/lander", "serve", "--assets", "web"},
		},
	}

	if err := os.MkdirAll("web", 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "lander: create web dir: %v\n", err)
		os.Exit(1)
	}
	if err := runAll(ctx, wasmProcs); err != nil {
		fmt.Fprintf(os.Stderr, "lander build failed: %v\n", err)
		os.Exit(1)
	}
	if err := runAll(ctx, serveProcs); err != nil {
		fmt.Fprintf(os.Stderr, "lander exited with error: %v\n", err)
		os.Exit(1)
	}
}

func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return fmt.Errorf("no processes configured")
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(procs))

	for _, cfg := range procs {
		wg.Add(1)
		go func(cfg procConfig) {
			defer wg.Done()
			cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if cfg.Dir != "" {
				cmd.Dir = cfg.Dir
			}
			if len(cfg.Env) > 0 {
				cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
			}
			if err := cmd.Start(); err != nil {
				errCh <- fmt.Errorf("%s start: %w", cfg.Name, err)
				return
			}
			if err := cmd.Wait(); err != nil {
				// If the context was cancelled, treat the exit as expected.
				select {
				case <-ctx.Done():
					return
				default:
				}
				errCh <- fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
		}(cfg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		shutdownDelay := time.After(2 * time.Second)
		select {
		case <-done:
		case <-shutdownDelay:
		}
	case err := <-errCh:
		return err
	case <-done:
		select {
		case err := <-errCh:
			return err
		default:
		}
	}
	return nil
}
