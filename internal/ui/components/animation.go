package components

import "github.com/Its-donkey/lander/internal/ui/dom"

// AnimationHook initialises a third-party animate-on-scroll library when the page loaded one.
type AnimationHook struct {
	lib dom.AnimationLibrary
}

// NewAnimationHook calls the library's init once with the configured options.
func NewAnimationHook(env Env) *AnimationHook {
	h := &AnimationHook{}
	lib, ok := env.Window.AnimationLibrary()
	if !ok {
		env.missing("animation", "animation library")
		return h
	}
	cfg := env.Config.AnimationLibrary
	lib.Init(dom.AnimationLibraryOptions{
		DurationMillis: int(cfg.Duration.Milliseconds()),
		Once:           cfg.Once,
		Offset:         cfg.Offset,
		Easing:         cfg.Easing,
	})
	h.lib = lib
	return h
}

// Enabled reports whether a library was found and initialised.
func (h *AnimationHook) Enabled() bool { return h.lib != nil }

// Dispose is a no-op; the library owns its own listeners.
func (h *AnimationHook) Dispose() {}
