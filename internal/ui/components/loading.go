package components

import (
	"context"
	"sync"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

// LoadingStage is where the loading screen is in its dismissal.
type LoadingStage int

const (
	LoadingVisible LoadingStage = iota
	LoadingHidden
	LoadingRemoved
)

// LoadingScreen hides #loading after a short delay and removes it once the fade is done.
type LoadingScreen struct {
	env    Env
	el     dom.Element
	cancel context.CancelFunc
	slot   *sched.Slot

	once  sync.Once
	mu    sync.Mutex
	stage LoadingStage
}

// NewLoadingScreen binds #loading. Start must be called to begin dismissal.
func NewLoadingScreen(ctx context.Context, env Env) *LoadingScreen {
	ctx, cancel := context.WithCancel(ctx)
	l := &LoadingScreen{env: env, cancel: cancel, slot: sched.NewSlot(ctx, env.Clock)}
	if el, ok := env.doc().ByID("loading"); ok {
		l.el = el
	} else {
		env.missing("loading", "#loading")
	}
	return l
}

// Enabled reports whether a loading screen was found.
func (l *LoadingScreen) Enabled() bool { return l.el != nil }

// Start runs the two-stage dismissal. Only the first call has any effect.
func (l *LoadingScreen) Start() {
	if l.el == nil {
		return
	}
	l.once.Do(func() {
		cfg := l.env.Config.Loading
		l.slot.Schedule(cfg.Delay, func() {
			l.el.AddClass("hidden")
			l.setStage(LoadingHidden)
			l.slot.Schedule(cfg.RemoveAfter, func() {
				l.el.Remove()
				l.setStage(LoadingRemoved)
			})
		})
	})
}

func (l *LoadingScreen) setStage(s LoadingStage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stage = s
}

// Stage returns the current dismissal stage.
func (l *LoadingScreen) Stage() LoadingStage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stage
}

// Dispose cancels any stage still waiting to run.
func (l *LoadingScreen) Dispose() {
	l.slot.Cancel()
	l.cancel()
}
