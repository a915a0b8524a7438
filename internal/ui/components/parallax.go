package components

import (
	"strconv"
	"strings"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/layout"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

// ParallaxSelector matches decorative elements that drift while scrolling.
const ParallaxSelector = ".parallax"

// Parallax translates decorative elements at a fraction of the scroll speed.
// It is not bound at all on viewports narrower than the tablet breakpoint.
type Parallax struct {
	env       Env
	elements  []dom.Element
	throttle  *sched.Throttle
	listeners dom.Listeners
}

// NewParallax binds every parallax element when the viewport is wide enough.
func NewParallax(env Env) *Parallax {
	p := &Parallax{env: env}
	elements := env.doc().QueryAll(ParallaxSelector)
	if len(elements) == 0 {
		env.missing("parallax", ParallaxSelector)
		return p
	}
	if env.Window.InnerWidth() < float64(env.Config.Breakpoints.Tablet) {
		env.Logger.Debug("parallax", "viewport below tablet breakpoint, parallax disabled", nil)
		return p
	}
	p.elements = elements
	p.throttle = sched.NewThrottle(env.Clock, env.Config.ScrollThrottle, p.Update)
	p.listeners.Add(env.Window.Listen("scroll", func(dom.Event) { p.throttle.Call() }, true))
	return p
}

// Enabled reports whether parallax is active.
func (p *Parallax) Enabled() bool { return len(p.elements) > 0 }

// Update moves every on-screen element. Nothing moves while the viewport is narrow.
func (p *Parallax) Update() {
	w := p.env.Window
	cfg := p.env.Config
	if w.InnerWidth() < float64(cfg.Breakpoints.Tablet) {
		return
	}
	y := w.ScrollY()
	for _, el := range p.elements {
		if !layout.InViewport(el.Rect(), w.InnerHeight(), cfg.Parallax.ViewportMargin) {
			continue
		}
		offset := layout.ParallaxOffset(y, p.speed(el))
		el.SetStyle("transform", "translate3d(0, "+px(offset)+", 0)")
	}
}

func (p *Parallax) speed(el dom.Element) float64 {
	raw, ok := el.Attr("data-speed")
	if !ok {
		return p.env.Config.Parallax.DefaultSpeed
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v == 0 {
		return p.env.Config.Parallax.DefaultSpeed
	}
	return v
}

// Dispose detaches the scroll listener.
func (p *Parallax) Dispose() {
	p.listeners.ReleaseAll()
	if p.throttle != nil {
		p.throttle.Stop()
	}
}
