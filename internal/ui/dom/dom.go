// Package dom is the narrow view of the browser that the page components depend on.
// The js/wasm build binds it to syscall/js; tests bind it to domtest.
package dom

import "github.com/Its-donkey/lander/internal/ui/layout"

// Release detaches a previously registered listener. Calling it more than once is safe.
type Release func()

// Event carries the parts of a DOM event the components read.
type Event struct {
	ClientX float64
	ClientY float64
	Key     string
	// Target is the element the listener was registered on.
	Target  Element
	Prevent func()
}

// PreventDefault suppresses the browser's default action for the event.
func (e Event) PreventDefault() {
	if e.Prevent != nil {
		e.Prevent()
	}
}

// Listener handles a DOM event.
type Listener func(Event)

// Element is a DOM element.
type Element interface {
	ID() string
	TagName() string

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	AddClass(names ...string)
	RemoveClass(names ...string)
	HasClass(name string) bool

	Style(property string) string
	SetStyle(property, value string)
	SetText(text string)

	Rect() layout.Rect
	OffsetTop() float64
	ClientWidth() float64
	ClientHeight() float64

	Query(selector string) (Element, bool)
	QueryAll(selector string) []Element
	AppendChild(child Element)
	Remove()

	// Listen registers fn for event. Passive listeners never call PreventDefault.
	Listen(event string, fn Listener, passive bool) Release
}

// Document is the page document.
type Document interface {
	ByID(id string) (Element, bool)
	Query(selector string) (Element, bool)
	QueryAll(selector string) []Element
	CreateElement(tag string) Element
	Body() (Element, bool)
	// ScrollHeight is documentElement.scrollHeight.
	ScrollHeight() float64
	Listen(event string, fn Listener, passive bool) Release
}

// ObserverOptions configures an intersection observer.
type ObserverOptions struct {
	Threshold  float64
	RootMargin string
}

// Intersection is one intersection observer entry.
type Intersection struct {
	Target         Element
	IsIntersecting bool
}

// Observer watches elements for viewport intersection.
type Observer interface {
	Observe(el Element)
	Unobserve(el Element)
	Disconnect()
}

// AnimationLibraryOptions are passed to a third-party animate-on-scroll library.
type AnimationLibraryOptions struct {
	DurationMillis int
	Once           bool
	Offset         int
	Easing         string
}

// AnimationLibrary is an optional animate-on-scroll library loaded by the page.
type AnimationLibrary interface {
	Init(opts AnimationLibraryOptions)
}

// Window is the browser window.
type Window interface {
	Document() Document
	ScrollY() float64
	InnerWidth() float64
	InnerHeight() float64
	ScrollTo(top float64, smooth bool)
	Open(url, target string)
	Listen(event string, fn Listener, passive bool) Release

	// NewIntersectionObserver reports false when the browser has no IntersectionObserver.
	NewIntersectionObserver(opts ObserverOptions, fn func([]Intersection)) (Observer, bool)
	// AnimationLibrary reports false when no library is loaded.
	AnimationLibrary() (AnimationLibrary, bool)
}

// Listeners collects release functions so a component can detach everything at once.
type Listeners struct {
	releases []Release
}

// Add records r.
func (l *Listeners) Add(r Release) {
	if r != nil {
		l.releases = append(l.releases, r)
	}
}

// Len returns the number of recorded listeners.
func (l *Listeners) Len() int { return len(l.releases) }

// ReleaseAll detaches every recorded listener.
func (l *Listeners) ReleaseAll() {
	for _, r := range l.releases {
		r()
	}
	l.releases = nil
}

// Same reports whether a and b refer to the same element.
func Same(a, b Element) bool {
	if a == nil || b == nil {
		return false
	}
	if s, ok := a.(interface{ SameAs(Element) bool }); ok {
		return s.SameAs(b)
	}
	return a == b
}
