package domtest

import (
	"github.com/Its-donkey/lander/internal/ui/dom"
)

// ScrollCall records a window.scrollTo call.
type ScrollCall struct {
	Top    float64
	Smooth bool
}

// OpenCall records a window.open call.
type OpenCall struct {
	URL    string
	Target string
}

// Window implements dom.Window over a Page.
type Window struct {
	page      *Page
	listeners listenerSet

	scrollY     float64
	innerWidth  float64
	innerHeight float64

	observersDisabled bool
	observers         []*Observer
	library           *AnimationLibrary

	Scrolls []ScrollCall
	Opened  []OpenCall
}

// NewWindow creates a 1280x800 desktop window over page.
func NewWindow(page *Page) *Window {
	return &Window{page: page, innerWidth: 1280, innerHeight: 800}
}

// Document returns the page.
func (w *Window) Document() dom.Document { return w.page }

// Page returns the concrete page.
func (w *Window) Page() *Page { return w.page }

// ScrollY returns the vertical scroll offset.
func (w *Window) ScrollY() float64 { return w.scrollY }

// InnerWidth returns the viewport width.
func (w *Window) InnerWidth() float64 { return w.innerWidth }

// InnerHeight returns the viewport height.
func (w *Window) InnerHeight() float64 { return w.innerHeight }

// ScrollTo records the call and jumps to top.
func (w *Window) ScrollTo(top float64, smooth bool) {
	w.Scrolls = append(w.Scrolls, ScrollCall{Top: top, Smooth: smooth})
	w.scrollY = top
}

// Open records the call.
func (w *Window) Open(url, target string) {
	w.Opened = append(w.Opened, OpenCall{URL: url, Target: target})
}

// Listen registers a window listener.
func (w *Window) Listen(event string, fn dom.Listener, passive bool) dom.Release {
	return w.listeners.add(event, fn, passive)
}

// ListenerCount returns the number of window listeners for event.
func (w *Window) ListenerCount(event string) int { return w.listeners.count(event) }

// TotalListeners returns the number of window listeners across all events.
func (w *Window) TotalListeners() int { return w.listeners.total() }

// Scroll moves to y and fires a scroll event.
func (w *Window) Scroll(y float64) {
	w.scrollY = y
	w.listeners.dispatch("scroll", dom.Event{})
}

// Resize changes the viewport size and fires a resize event.
func (w *Window) Resize(width, height float64) {
	w.innerWidth, w.innerHeight = width, height
	w.listeners.dispatch("resize", dom.Event{})
}

// SetViewport changes the viewport size without firing events.
func (w *Window) SetViewport(width, height float64) {
	w.innerWidth, w.innerHeight = width, height
}

// DisableIntersectionObserver simulates a browser without IntersectionObserver.
func (w *Window) DisableIntersectionObserver() { w.observersDisabled = true }

// NewIntersectionObserver creates a fake observer.
func (w *Window) NewIntersectionObserver(opts dom.ObserverOptions, fn func([]dom.Intersection)) (dom.Observer, bool) {
	if w.observersDisabled {
		return nil, false
	}
	o := &Observer{Options: opts, fn: fn}
	w.observers = append(w.observers, o)
	return o, true
}

// Observers returns every observer created so far.
func (w *Window) Observers() []*Observer { return w.observers }

// SetAnimationLibrary installs a fake animation library.
func (w *Window) SetAnimationLibrary(lib *AnimationLibrary) { w.library = lib }

// AnimationLibrary returns the installed library.
func (w *Window) AnimationLibrary() (dom.AnimationLibrary, bool) {
	if w.library == nil {
		return nil, false
	}
	return w.library, true
}

// Observer is a fake IntersectionObserver driven by the test.
type Observer struct {
	Options      dom.ObserverOptions
	fn           func([]dom.Intersection)
	observed     []dom.Element
	disconnected bool
}

// Observe starts watching el.
func (o *Observer) Observe(el dom.Element) {
	if !o.Watching(el) {
		o.observed = append(o.observed, el)
	}
}

// Unobserve stops watching el.
func (o *Observer) Unobserve(el dom.Element) {
	for i, candidate := range o.observed {
		if dom.Same(candidate, el) {
			o.observed = append(o.observed[:i], o.observed[i+1:]...)
			return
		}
	}
}

// Disconnect stops watching everything.
func (o *Observer) Disconnect() {
	o.observed = nil
	o.disconnected = true
}

// Disconnected reports whether Disconnect was called.
func (o *Observer) Disconnected() bool { return o.disconnected }

// Watching reports whether el is observed.
func (o *Observer) Watching(el dom.Element) bool {
	for _, candidate := range o.observed {
		if dom.Same(candidate, el) {
			return true
		}
	}
	return false
}

// Count returns the number of observed elements.
func (o *Observer) Count() int { return len(o.observed) }

// Intersect delivers an entry for el if it is still observed, the way a browser would.
func (o *Observer) Intersect(el dom.Element, intersecting bool) {
	if !o.Watching(el) {
		return
	}
	o.fn([]dom.Intersection{{Target: el, IsIntersecting: intersecting}})
}

// Fire delivers entries unconditionally, including for elements no longer observed.
func (o *Observer) Fire(entries ...dom.Intersection) {
	o.fn(entries)
}

// AnimationLibrary records Init calls.
type AnimationLibrary struct {
	Inits []dom.AnimationLibraryOptions
}

// Init records opts.
func (l *AnimationLibrary) Init(opts dom.AnimationLibraryOptions) {
	l.Inits = append(l.Inits, opts)
}
