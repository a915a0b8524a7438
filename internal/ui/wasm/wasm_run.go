//go:build js && wasm

// Package wasm binds the landing page behaviors to the browser through syscall/js.
package wasm

import (
	"context"
	"syscall/js"

	"github.com/Its-donkey/lander/internal/ui/app"
	"github.com/Its-donkey/lander/internal/ui/config"
	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/sched"
	"github.com/Its-donkey/lander/logging"
)

// RunApp starts the landing page once the document is ready and blocks forever.
func RunApp() {
	done := make(chan struct{})
	global := js.Global()
	window := NewWindow(global)
	logger := logging.New("lander-ui", logLevel(global), ConsoleWriter{})

	var started *app.App
	start := func() {
		a, err := app.New(context.Background(), window, config.Default(), logger, sched.System{})
		if err != nil {
			logger.Error("app", "failed to start landing page", err, nil)
			return
		}
		started = a
	}

	if global.Get("document").Get("readyState").String() == "loading" {
		var release dom.Release
		release = window.Document().Listen("DOMContentLoaded", func(dom.Event) {
			release()
			start()
		}, true)
	} else {
		start()
	}

	window.Listen("pagehide", func(dom.Event) {
		if started != nil {
			started.Dispose()
		}
	}, true)
	<-done
}

// logLevel reads data-log-level from the root element, defaulting to INFO.
func logLevel(global js.Value) logging.Level {
	root := global.Get("document").Get("documentElement")
	if !root.Truthy() {
		return logging.INFO
	}
	raw := root.Call("getAttribute", "data-log-level")
	if raw.Type() != js.TypeString {
		return logging.INFO
	}
	level, err := logging.ParseLevel(raw.String())
	if err != nil {
		return logging.INFO
	}
	return level
}
