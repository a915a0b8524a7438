package components

import (
	"context"
	"strings"
	"sync"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/layout"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

const (
	// AnchorSelector matches every same-page link the navigation handles.
	AnchorSelector = `a[href^="#"]`
	// MobileLinkSelector matches links inside the mobile menu that close it on click.
	MobileLinkSelector = ".mobile-menu-link, .mobile-link, [data-mobile-link]"
	// SectionSelector matches the sections tracked for active-link highlighting.
	SectionSelector = "section[id]"
)

// Navigation owns the navbar scroll state, the mobile menu, same-page link scrolling and
// active-section highlighting.
type Navigation struct {
	env    Env
	cancel context.CancelFunc

	navbar dom.Element
	links  []dom.Element
	menu   *Menu

	throttle  *sched.Throttle
	pending   *sched.Slot
	listeners dom.Listeners
	mu        sync.Mutex
	active    string
	scrolled  bool
	disposed  bool
}

// NewNavigation binds the navbar, menu button, panel, overlay and in-page links.
func NewNavigation(ctx context.Context, env Env) *Navigation {
	ctx, cancel := context.WithCancel(ctx)
	doc := env.doc()
	n := &Navigation{
		env:     env,
		cancel:  cancel,
		links:   doc.QueryAll(AnchorSelector),
		pending: sched.NewSlot(ctx, env.Clock),
	}

	if el, ok := doc.ByID("navbar"); ok {
		n.navbar = el
	} else {
		env.missing("nav", "#navbar")
	}

	var button, panel, overlay, body dom.Element
	if el, ok := env.firstByID("hamburger", "mobile-menu-btn", "mobile-menu-toggle"); ok {
		button = el
	}
	if el, ok := doc.ByID("mobile-menu"); ok {
		panel = el
	}
	if el, ok := doc.ByID("menu-overlay"); ok {
		overlay = el
	}
	if el, ok := doc.Body(); ok {
		body = el
	}
	if button == nil || panel == nil {
		env.missing("nav", "mobile menu button or panel")
		button, panel = nil, nil
	}
	n.menu = NewMenu(button, panel, overlay, body)
	// Reopening the menu abandons a scroll still waiting for the close animation.
	n.menu.onOpen = func() { n.pending.Cancel() }

	n.bind(doc, button, overlay)
	n.UpdateOnScroll()
	return n
}

func (n *Navigation) bind(doc dom.Document, button, overlay dom.Element) {
	if n.menu.Enabled() {
		n.listeners.Add(button.Listen("click", func(dom.Event) { n.ToggleMobileMenu() }, false))
		if overlay != nil {
			n.listeners.Add(overlay.Listen("click", func(dom.Event) { n.CloseMobileMenu() }, false))
		}
		for _, link := range doc.QueryAll(MobileLinkSelector) {
			href, _ := link.Attr("href")
			if isFragment(href) {
				// Fragment links close the menu through HandleLinkClick.
				continue
			}
			n.listeners.Add(link.Listen("click", func(dom.Event) { n.CloseMobileMenu() }, true))
		}
	}

	for _, link := range n.links {
		n.listeners.Add(link.Listen("click", func(ev dom.Event) {
			href, _ := link.Attr("href")
			if n.HandleLinkClick(href) {
				ev.PreventDefault()
			}
		}, false))
	}

	n.throttle = sched.NewThrottle(n.env.Clock, n.env.Config.ScrollThrottle, n.UpdateOnScroll)
	n.listeners.Add(n.env.Window.Listen("scroll", func(dom.Event) { n.throttle.Call() }, true))
}

// Enabled reports whether navigation bound to anything at all.
func (n *Navigation) Enabled() bool {
	return n.navbar != nil || n.menu.Enabled() || len(n.links) > 0
}

// Menu returns the mobile menu.
func (n *Navigation) Menu() *Menu { return n.menu }

// ToggleMobileMenu flips the mobile menu.
func (n *Navigation) ToggleMobileMenu() MenuState {
	return n.menu.Toggle()
}

// CloseMobileMenu closes the mobile menu if it is open.
func (n *Navigation) CloseMobileMenu() {
	n.menu.Close()
}

// HandleLinkClick scrolls to the section a same-page link points at. When the menu is
// open it is closed first and the scroll waits for the close animation. It reports
// whether the link was handled, in which case the default navigation must be suppressed.
// A fragment link closes the menu even when its target is missing.
func (n *Navigation) HandleLinkClick(href string) bool {
	if !isFragment(href) {
		return false
	}
	target, ok := n.env.doc().ByID(strings.TrimPrefix(href, "#"))
	closed := n.menu.Close()
	if !ok {
		return false
	}
	if closed {
		n.pending.Schedule(n.env.Config.AnimationDuration, func() { n.scrollTo(target) })
		return true
	}
	n.pending.Cancel()
	n.scrollTo(target)
	return true
}

// ScrollPending reports whether a deferred scroll is waiting for the menu to close.
func (n *Navigation) ScrollPending() bool { return n.pending.Pending() }

func (n *Navigation) scrollTo(target dom.Element) {
	top := layout.ScrollTarget(target.Rect().Top, n.env.Window.ScrollY(), n.env.Config.ScrollOffset())
	n.env.Window.ScrollTo(top, true)
}

// UpdateOnScroll refreshes the navbar scrolled state and the active section link.
func (n *Navigation) UpdateOnScroll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return
	}
	cfg := n.env.Config
	y := n.env.Window.ScrollY()

	n.scrolled = layout.Scrolled(y, cfg.ScrolledThreshold)
	if n.navbar != nil {
		setClass(n.navbar, "scrolled", n.scrolled)
	}

	elements := n.env.doc().QueryAll(SectionSelector)
	sections := make([]layout.Section, 0, len(elements))
	for _, el := range elements {
		sections = append(sections, layout.Section{ID: el.ID(), Top: el.OffsetTop(), Height: el.ClientHeight()})
	}
	n.active = layout.ActiveSection(sections, y, cfg.SectionOffset())

	for _, link := range n.links {
		href, _ := link.Attr("href")
		setClass(link, "active", n.active != "" && href == "#"+n.active)
	}
}

// ActiveSection returns the id of the active section, or "" when none is active.
func (n *Navigation) ActiveSection() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// Scrolled reports whether the navbar is in its scrolled state.
func (n *Navigation) Scrolled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scrolled
}

// Dispose detaches listeners and cancels a pending deferred scroll.
func (n *Navigation) Dispose() {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return
	}
	n.disposed = true
	n.mu.Unlock()

	n.listeners.ReleaseAll()
	n.throttle.Stop()
	n.pending.Cancel()
	n.cancel()
}

func isFragment(href string) bool {
	return strings.HasPrefix(href, "#") && len(href) > 1
}
