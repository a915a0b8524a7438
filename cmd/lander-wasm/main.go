//go:build js && wasm

package main

import "github.com/Its-donkey/lander/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
