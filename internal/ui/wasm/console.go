//go:build js && wasm

package wasm

import (
	"encoding/json"
	"strings"
	"syscall/js"
)

// ConsoleWriter forwards JSON log lines to the browser console, choosing warn or error
// for the matching levels.
type ConsoleWriter struct{}

func (ConsoleWriter) Write(p []byte) (int, error) {
	console := js.Global().Get("console")
	if !console.Truthy() {
		return len(p), nil
	}
	line := strings.TrimSpace(string(p))
	var head struct {
		Level string `json:"level"`
	}
	method := "log"
	if err := json.Unmarshal(p, &head); err == nil {
		switch head.Level {
		case "WARN":
			method = "warn"
		case "ERROR":
			method = "error"
		case "DEBUG":
			method = "debug"
		}
	}
	console.Call(method, line)
	return len(p), nil
}
