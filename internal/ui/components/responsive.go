package components

import (
	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

// Responsive simplifies the page on narrow viewports: parallax transforms are reset and
// staggered reveal delays are dropped. It runs once at start and after resizing settles.
type Responsive struct {
	env       Env
	debounce  *sched.Debounce
	listeners dom.Listeners
}

// NewResponsive applies the current viewport and watches for resizes.
func NewResponsive(env Env) *Responsive {
	r := &Responsive{env: env}
	r.debounce = sched.NewDebounce(env.Clock, env.Config.ResizeDebounce, r.Apply)
	r.listeners.Add(env.Window.Listen("resize", func(dom.Event) { r.debounce.Call() }, true))
	r.Apply()
	return r
}

// Enabled always reports true; the handler needs no particular element.
func (r *Responsive) Enabled() bool { return true }

// Apply adjusts the page for the current viewport width.
func (r *Responsive) Apply() {
	if r.env.Window.InnerWidth() >= float64(r.env.Config.Breakpoints.Tablet) {
		return
	}
	doc := r.env.doc()
	for _, el := range doc.QueryAll(ParallaxSelector) {
		el.SetStyle("transform", "none")
	}
	for _, el := range doc.QueryAll("[data-aos-delay]") {
		el.RemoveAttr("data-aos-delay")
	}
}

// Dispose detaches the resize listener.
func (r *Responsive) Dispose() {
	r.listeners.ReleaseAll()
	r.debounce.Stop()
}
