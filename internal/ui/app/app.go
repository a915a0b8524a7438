// Package app wires the landing page components together in their start-up order.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/Its-donkey/lander/internal/ui/components"
	"github.com/Its-donkey/lander/internal/ui/config"
	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/sched"
	"github.com/Its-donkey/lander/logging"
)

// Component is the lifecycle every landing page behavior implements.
type Component interface {
	Enabled() bool
	Dispose()
}

// ComponentStatus describes one component after start-up.
type ComponentStatus struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type named struct {
	name string
	c    Component
}

// App owns every component bound to one page.
type App struct {
	logger *logging.Logger
	cancel context.CancelFunc

	Loading    *components.LoadingScreen
	Progress   *components.ScrollProgress
	Navigation *components.Navigation
	Reveal     *components.Reveal
	Animation  *components.AnimationHook
	Stagger    *components.Stagger
	Ripple     *components.Ripple
	Hover      *components.HoverHints
	Parallax   *components.Parallax
	Responsive *components.Responsive
	Purchase   *components.Purchase
	Year       *components.FooterYear
	Images     *components.LazyImages
	EasterEgg  *components.EasterEgg

	order []named

	mu       sync.Mutex
	disposed bool
}

// New validates cfg, binds every component to the window's document and starts the
// loading screen dismissal. Components whose elements are missing stay inert.
func New(ctx context.Context, window dom.Window, cfg config.Config, logger *logging.Logger, clock sched.Clock) (*App, error) {
	if window == nil {
		return nil, fmt.Errorf("app: window is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: invalid config: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if clock == nil {
		clock = sched.System{}
	}

	ctx, cancel := context.WithCancel(ctx)
	env := components.Env{Window: window, Config: cfg, Clock: clock, Logger: logger}
	a := &App{logger: logger, cancel: cancel}

	a.Loading = components.NewLoadingScreen(ctx, env)
	a.Progress = components.NewScrollProgress(env)
	a.Navigation = components.NewNavigation(ctx, env)
	a.Reveal = components.NewReveal(env)
	a.Animation = components.NewAnimationHook(env)
	a.Stagger = components.NewStagger(ctx, env)
	a.Ripple = components.NewRipple(ctx, env)
	a.Hover = components.NewHoverHints(ctx, env)
	a.Parallax = components.NewParallax(env)
	a.Responsive = components.NewResponsive(env)
	a.Purchase = components.NewPurchase(env)
	a.Year = components.NewFooterYear(env)
	a.Images = components.NewLazyImages(env)
	a.EasterEgg = components.NewEasterEgg(ctx, env)

	a.order = []named{
		{"loading", a.Loading},
		{"progress", a.Progress},
		{"navigation", a.Navigation},
		{"reveal", a.Reveal},
		{"animation", a.Animation},
		{"stagger", a.Stagger},
		{"ripple", a.Ripple},
		{"hover", a.Hover},
		{"parallax", a.Parallax},
		{"responsive", a.Responsive},
		{"purchase", a.Purchase},
		{"year", a.Year},
		{"images", a.Images},
		{"easter-egg", a.EasterEgg},
	}

	a.Loading.Start()

	fields := make(map[string]any, len(a.order))
	for _, s := range a.Status() {
		fields[s.Name] = s.Enabled
	}
	logger.Info("app", "landing page initialised", fields)
	return a, nil
}

// Status reports which components found their elements.
func (a *App) Status() []ComponentStatus {
	out := make([]ComponentStatus, 0, len(a.order))
	for _, n := range a.order {
		out = append(out, ComponentStatus{Name: n.name, Enabled: n.c.Enabled()})
	}
	return out
}

// Dispose tears every component down in reverse start-up order. Later calls do nothing.
func (a *App) Dispose() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	a.mu.Unlock()

	for i := len(a.order) - 1; i >= 0; i-- {
		a.order[i].c.Dispose()
	}
	a.cancel()
	a.logger.Debug("app", "landing page disposed", nil)
}
