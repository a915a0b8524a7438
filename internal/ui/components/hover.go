package components

import (
	"context"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

// HoverSelector matches the elements that animate on hover.
const HoverSelector = ".btn-primary, .about-card, .benefit-card, .pricing-card"

// HoverHints sets will-change: transform while the pointer is over an animated element
// and puts it back to auto a short while after the pointer leaves. Re-entering before
// the reset keeps the hint.
type HoverHints struct {
	env       Env
	cancel    context.CancelFunc
	elements  []dom.Element
	resets    []*sched.Slot
	listeners dom.Listeners
}

// NewHoverHints binds mouseenter and mouseleave on every animated element.
func NewHoverHints(ctx context.Context, env Env) *HoverHints {
	ctx, cancel := context.WithCancel(ctx)
	h := &HoverHints{env: env, cancel: cancel, elements: env.doc().QueryAll(HoverSelector)}
	for _, el := range h.elements {
		slot := sched.NewSlot(ctx, env.Clock)
		h.resets = append(h.resets, slot)
		h.listeners.Add(el.Listen("mouseenter", func(dom.Event) {
			slot.Cancel()
			el.SetStyle("will-change", "transform")
		}, true))
		h.listeners.Add(el.Listen("mouseleave", func(dom.Event) {
			slot.Schedule(env.Config.HoverResetDelay, func() { el.SetStyle("will-change", "auto") })
		}, true))
	}
	if len(h.elements) == 0 {
		env.missing("hover", HoverSelector)
	}
	return h
}

// Enabled reports whether any animated element was found.
func (h *HoverHints) Enabled() bool { return len(h.elements) > 0 }

// Dispose detaches the hover listeners and drops pending resets.
func (h *HoverHints) Dispose() {
	h.listeners.ReleaseAll()
	for _, slot := range h.resets {
		slot.Cancel()
	}
	h.cancel()
}
