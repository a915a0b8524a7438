package components

import (
	"sync"

	"github.com/Its-donkey/lander/internal/ui/dom"
)

// Reveal flips tagged elements to their revealed state the first time they intersect the
// viewport. Each element fires once and is then dropped from observation.
type Reveal struct {
	env      Env
	observer dom.Observer
	fallback bool

	mu       sync.Mutex
	pending  []dom.Element
	revealed int
}

// NewReveal registers every element matching the reveal selector. Browsers without
// IntersectionObserver get every element revealed immediately.
func NewReveal(env Env) *Reveal {
	cfg := env.Config.Reveal
	r := &Reveal{env: env}
	elements := env.doc().QueryAll(cfg.Selector)
	if len(elements) == 0 {
		env.missing("reveal", cfg.Selector)
		return r
	}

	observer, ok := env.Window.NewIntersectionObserver(dom.ObserverOptions{
		Threshold:  cfg.Threshold,
		RootMargin: cfg.RootMargin,
	}, r.handle)
	if !ok {
		env.Logger.Info("reveal", "intersection observer unavailable, revealing all", map[string]any{"count": len(elements)})
		r.fallback = true
		for _, el := range elements {
			el.AddClass(cfg.RevealedClass)
		}
		r.revealed = len(elements)
		return r
	}

	r.observer = observer
	r.pending = elements
	for _, el := range elements {
		observer.Observe(el)
	}
	return r
}

func (r *Reveal) handle(entries []dom.Intersection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		if !entry.IsIntersecting {
			continue
		}
		idx := r.indexLocked(entry.Target)
		if idx < 0 {
			continue
		}
		r.pending = append(r.pending[:idx], r.pending[idx+1:]...)
		r.revealed++
		entry.Target.AddClass(r.env.Config.Reveal.RevealedClass)
		if r.observer != nil {
			r.observer.Unobserve(entry.Target)
		}
	}
}

func (r *Reveal) indexLocked(el dom.Element) int {
	for i, candidate := range r.pending {
		if dom.Same(candidate, el) {
			return i
		}
	}
	return -1
}

// Enabled reports whether any element was tagged for reveal.
func (r *Reveal) Enabled() bool {
	return r.observer != nil || r.fallback
}

// Fallback reports whether elements were revealed without observation.
func (r *Reveal) Fallback() bool { return r.fallback }

// Pending returns how many elements are still waiting to be revealed.
func (r *Reveal) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Revealed returns how many elements have been revealed.
func (r *Reveal) Revealed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revealed
}

// Dispose stops observing.
func (r *Reveal) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.observer != nil {
		r.observer.Disconnect()
	}
	r.pending = nil
}
