package components

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/layout"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

// RippleSelector matches buttons that get click ripples.
const RippleSelector = ".btn-primary, [data-ripple]"

// Ripple adds an expanding overlay to buttons on click. A button carries at most one
// ripple; a new click removes the previous one and cancels its expiry.
type Ripple struct {
	env       Env
	cancel    context.CancelFunc
	buttons   []*rippleButton
	listeners dom.Listeners
}

type rippleButton struct {
	el     dom.Element
	expiry *sched.Slot

	mu      sync.Mutex
	current dom.Element
}

// NewRipple binds every ripple button.
func NewRipple(ctx context.Context, env Env) *Ripple {
	ctx, cancel := context.WithCancel(ctx)
	r := &Ripple{env: env, cancel: cancel}
	for _, el := range env.doc().QueryAll(RippleSelector) {
		b := &rippleButton{el: el, expiry: sched.NewSlot(ctx, env.Clock)}
		r.buttons = append(r.buttons, b)
		r.listeners.Add(el.Listen("click", func(ev dom.Event) { r.spawn(b, ev.ClientX, ev.ClientY) }, true))
	}
	if len(r.buttons) == 0 {
		env.missing("ripple", RippleSelector)
	}
	return r
}

// Enabled reports whether any ripple button was found.
func (r *Ripple) Enabled() bool { return len(r.buttons) > 0 }

// Buttons returns how many buttons are bound.
func (r *Ripple) Buttons() int { return len(r.buttons) }

func (r *Ripple) spawn(b *rippleButton, clientX, clientY float64) {
	geo := layout.Ripple(b.el.Rect(), b.el.ClientWidth(), b.el.ClientHeight(), clientX, clientY)

	span := r.env.doc().CreateElement("span")
	span.AddClass("ripple")
	span.SetAttr("data-ripple-id", uuid.NewString())
	span.SetStyle("width", px(geo.Diameter))
	span.SetStyle("height", px(geo.Diameter))
	span.SetStyle("left", px(geo.Left))
	span.SetStyle("top", px(geo.Top))

	b.mu.Lock()
	if b.current != nil {
		b.current.Remove()
	}
	// Markup may ship a ripple of its own; the one-per-button rule covers it too.
	for _, stray := range b.el.QueryAll(".ripple") {
		stray.Remove()
	}
	b.el.AppendChild(span)
	b.current = span
	b.mu.Unlock()

	b.expiry.Schedule(r.env.Config.RippleDuration, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.current != nil && dom.Same(b.current, span) {
			span.Remove()
			b.current = nil
		}
	})
}

// Dispose detaches click listeners and removes live ripples.
func (r *Ripple) Dispose() {
	r.listeners.ReleaseAll()
	r.cancel()
	for _, b := range r.buttons {
		b.expiry.Cancel()
		b.mu.Lock()
		if b.current != nil {
			b.current.Remove()
			b.current = nil
		}
		b.mu.Unlock()
	}
}
