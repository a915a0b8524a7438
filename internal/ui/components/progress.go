package components

import (
	"sync"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/layout"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

// ScrollProgress sizes the progress bar to how far the page has been scrolled.
type ScrollProgress struct {
	env       Env
	bar       dom.Element
	throttle  *sched.Throttle
	listeners dom.Listeners

	mu      sync.Mutex
	percent float64
}

// NewScrollProgress binds #scroll-progress, falling back to #progress-bar. Without either
// the component stays disabled and scroll events do nothing.
func NewScrollProgress(env Env) *ScrollProgress {
	p := &ScrollProgress{env: env}
	bar, ok := env.firstByID("scroll-progress", "progress-bar")
	if !ok {
		env.missing("progress", "progress bar")
		return p
	}
	p.bar = bar
	p.throttle = sched.NewThrottle(env.Clock, env.Config.ScrollThrottle, p.Update)
	p.listeners.Add(env.Window.Listen("scroll", func(dom.Event) { p.throttle.Call() }, true))
	p.Update()
	return p
}

// Enabled reports whether a progress bar was found.
func (p *ScrollProgress) Enabled() bool { return p.bar != nil }

// Update recomputes the bar width.
func (p *ScrollProgress) Update() {
	if p.bar == nil {
		return
	}
	w := p.env.Window
	pct := layout.Progress(w.ScrollY(), w.Document().ScrollHeight(), w.InnerHeight())

	p.mu.Lock()
	p.percent = pct
	p.mu.Unlock()
	p.bar.SetStyle("width", percent(pct))
}

// Percent returns the last computed progress.
func (p *ScrollProgress) Percent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent
}

// Dispose detaches the scroll listener.
func (p *ScrollProgress) Dispose() {
	p.listeners.ReleaseAll()
	if p.throttle != nil {
		p.throttle.Stop()
	}
}
