//go:build js && wasm

package wasm

import (
	"sync"
	"syscall/js"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/layout"
)

// listen registers fn on target and returns a release that removes the listener and
// frees the js.Func.
func listen(target js.Value, event string, fn dom.Listener, passive bool) dom.Release {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			fn(dom.Event{})
			return nil
		}
		fn(toEvent(args[0], passive))
		return nil
	})
	opts := map[string]any{"passive": passive}
	target.Call("addEventListener", event, cb, opts)

	var once sync.Once
	return func() {
		once.Do(func() {
			target.Call("removeEventListener", event, cb, opts)
			cb.Release()
		})
	}
}

func toEvent(v js.Value, passive bool) dom.Event {
	ev := dom.Event{}
	if x := v.Get("clientX"); x.Type() == js.TypeNumber {
		ev.ClientX = x.Float()
	}
	if y := v.Get("clientY"); y.Type() == js.TypeNumber {
		ev.ClientY = y.Float()
	}
	if k := v.Get("key"); k.Type() == js.TypeString {
		ev.Key = k.String()
	}
	// window and document targets have no element nodeType.
	if t := v.Get("target"); t.Truthy() && isElementNode(t) {
		ev.Target = &element{v: t}
	}
	if !passive {
		ev.Prevent = func() { v.Call("preventDefault") }
	}
	return ev
}

func isElementNode(v js.Value) bool {
	n := v.Get("nodeType")
	return n.Type() == js.TypeNumber && n.Int() == 1
}

func wrap(v js.Value) (dom.Element, bool) {
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return &element{v: v}, true
}

func wrapAll(list js.Value) []dom.Element {
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &element{v: list.Index(i)})
	}
	return out
}

// element implements dom.Element over a browser element.
type element struct {
	v js.Value
}

func (e *element) SameAs(other dom.Element) bool {
	o, ok := other.(*element)
	return ok && e.v.Equal(o.v)
}

func (e *element) ID() string      { return e.v.Get("id").String() }
func (e *element) TagName() string { return e.v.Get("tagName").String() }

func (e *element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }
func (e *element) RemoveAttr(name string)     { e.v.Call("removeAttribute", name) }

func (e *element) AddClass(names ...string) {
	for _, n := range names {
		e.v.Get("classList").Call("add", n)
	}
}

func (e *element) RemoveClass(names ...string) {
	for _, n := range names {
		e.v.Get("classList").Call("remove", n)
	}
}

func (e *element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *element) SetText(text string) { e.v.Set("textContent", text) }

func (e *element) Rect() layout.Rect {
	r := e.v.Call("getBoundingClientRect")
	return layout.Rect{
		Top:    r.Get("top").Float(),
		Left:   r.Get("left").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

func (e *element) OffsetTop() float64    { return e.v.Get("offsetTop").Float() }
func (e *element) ClientWidth() float64  { return e.v.Get("clientWidth").Float() }
func (e *element) ClientHeight() float64 { return e.v.Get("clientHeight").Float() }

func (e *element) Query(selector string) (dom.Element, bool) {
	return wrap(e.v.Call("querySelector", selector))
}

func (e *element) QueryAll(selector string) []dom.Element {
	return wrapAll(e.v.Call("querySelectorAll", selector))
}

func (e *element) AppendChild(child dom.Element) {
	if c, ok := child.(*element); ok {
		e.v.Call("appendChild", c.v)
	}
}

func (e *element) Remove() { e.v.Call("remove") }

func (e *element) Listen(event string, fn dom.Listener, passive bool) dom.Release {
	return listen(e.v, event, fn, passive)
}

// document implements dom.Document.
type document struct {
	v js.Value
}

func (d *document) ByID(id string) (dom.Element, bool) {
	return wrap(d.v.Call("getElementById", id))
}

func (d *document) Query(selector string) (dom.Element, bool) {
	return wrap(d.v.Call("querySelector", selector))
}

func (d *document) QueryAll(selector string) []dom.Element {
	return wrapAll(d.v.Call("querySelectorAll", selector))
}

func (d *document) CreateElement(tag string) dom.Element {
	return &element{v: d.v.Call("createElement", tag)}
}

func (d *document) Body() (dom.Element, bool) { return wrap(d.v.Get("body")) }

func (d *document) ScrollHeight() float64 {
	return d.v.Get("documentElement").Get("scrollHeight").Float()
}

func (d *document) Listen(event string, fn dom.Listener, passive bool) dom.Release {
	return listen(d.v, event, fn, passive)
}

// Window implements dom.Window over the browser global object.
type Window struct {
	v   js.Value
	doc *document
}

// NewWindow wraps the global object.
func NewWindow(global js.Value) *Window {
	return &Window{v: global, doc: &document{v: global.Get("document")}}
}

func (w *Window) Document() dom.Document { return w.doc }

func (w *Window) ScrollY() float64 {
	if y := w.v.Get("pageYOffset"); y.Type() == js.TypeNumber {
		return y.Float()
	}
	return w.v.Get("scrollY").Float()
}

func (w *Window) InnerWidth() float64  { return w.v.Get("innerWidth").Float() }
func (w *Window) InnerHeight() float64 { return w.v.Get("innerHeight").Float() }

func (w *Window) ScrollTo(top float64, smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	w.v.Call("scrollTo", map[string]any{"top": top, "behavior": behavior})
}

func (w *Window) Open(url, target string) { w.v.Call("open", url, target) }

func (w *Window) Listen(event string, fn dom.Listener, passive bool) dom.Release {
	return listen(w.v, event, fn, passive)
}

func (w *Window) NewIntersectionObserver(opts dom.ObserverOptions, fn func([]dom.Intersection)) (dom.Observer, bool) {
	ctor := w.v.Get("IntersectionObserver")
	if ctor.Type() != js.TypeFunction {
		return nil, false
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		out := make([]dom.Intersection, 0, entries.Length())
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			out = append(out, dom.Intersection{
				Target:         &element{v: entry.Get("target")},
				IsIntersecting: entry.Get("isIntersecting").Bool(),
			})
		}
		fn(out)
		return nil
	})
	options := map[string]any{"threshold": opts.Threshold}
	if opts.RootMargin != "" {
		options["rootMargin"] = opts.RootMargin
	}
	v := ctor.New(cb, options)
	return &observer{v: v, cb: cb}, true
}

func (w *Window) AnimationLibrary() (dom.AnimationLibrary, bool) {
	lib := w.v.Get("AOS")
	if !lib.Truthy() || lib.Get("init").Type() != js.TypeFunction {
		return nil, false
	}
	return animationLibrary{v: lib}, true
}

type observer struct {
	v    js.Value
	cb   js.Func
	once sync.Once
}

func (o *observer) Observe(el dom.Element) {
	if e, ok := el.(*element); ok {
		o.v.Call("observe", e.v)
	}
}

func (o *observer) Unobserve(el dom.Element) {
	if e, ok := el.(*element); ok {
		o.v.Call("unobserve", e.v)
	}
}

func (o *observer) Disconnect() {
	o.once.Do(func() {
		o.v.Call("disconnect")
		o.cb.Release()
	})
}

type animationLibrary struct {
	v js.Value
}

func (l animationLibrary) Init(opts dom.AnimationLibraryOptions) {
	l.v.Call("init", map[string]any{
		"duration": opts.DurationMillis,
		"once":     opts.Once,
		"offset":   opts.Offset,
		"easing":   opts.Easing,
	})
}
