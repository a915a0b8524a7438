// Package domtest is an in-memory implementation of the dom interfaces for tests.
// Pages are parsed from HTML with golang.org/x/net/html and queried with goquery, so
// selectors behave the way they do in a browser. Layout values (rects, offsets, sizes)
// are set explicitly by the test.
package domtest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/layout"
)

type listener struct {
	fn      dom.Listener
	passive bool
}

type listenerSet struct {
	byEvent map[string][]*listener
}

func (s *listenerSet) add(event string, fn dom.Listener, passive bool) dom.Release {
	if s.byEvent == nil {
		s.byEvent = make(map[string][]*listener)
	}
	l := &listener{fn: fn, passive: passive}
	s.byEvent[event] = append(s.byEvent[event], l)
	return func() {
		list := s.byEvent[event]
		for i, candidate := range list {
			if candidate == l {
				s.byEvent[event] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

func (s *listenerSet) count(event string) int {
	return len(s.byEvent[event])
}

func (s *listenerSet) total() int {
	n := 0
	for _, list := range s.byEvent {
		n += len(list)
	}
	return n
}

// dispatch calls every listener for event and reports whether one prevented the default.
func (s *listenerSet) dispatch(event string, ev dom.Event) bool {
	prevented := false
	snapshot := append([]*listener(nil), s.byEvent[event]...)
	for _, l := range snapshot {
		e := ev
		if !l.passive {
			e.Prevent = func() { prevented = true }
		} else {
			e.Prevent = nil
		}
		l.fn(e)
	}
	return prevented
}

// Page is a parsed HTML document implementing dom.Document.
type Page struct {
	root         *html.Node
	elements     map[*html.Node]*Element
	listeners    listenerSet
	scrollHeight float64
}

// Parse builds a page from markup.
func Parse(markup string) (*Page, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &Page{root: root, elements: make(map[*html.Node]*Element)}, nil
}

// MustParse is Parse for fixtures that are known to be valid.
func MustParse(markup string) *Page {
	p, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Page) wrap(n *html.Node) *Element {
	if el, ok := p.elements[n]; ok {
		return el
	}
	el := &Element{page: p, node: n, styles: make(map[string]string)}
	p.elements[n] = el
	return el
}

func (p *Page) find(from *html.Node, selector string) []dom.Element {
	sel := goquery.NewDocumentFromNode(from).Find(selector)
	out := make([]dom.Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, p.wrap(n))
	}
	return out
}

// ByID returns the attached element with the given id.
func (p *Page) ByID(id string) (dom.Element, bool) {
	for _, el := range p.find(p.root, "[id]") {
		if el.ID() == id {
			return el, true
		}
	}
	return nil, false
}

// El is ByID for tests that know the element exists.
func (p *Page) El(id string) *Element {
	el, ok := p.ByID(id)
	if !ok {
		panic("domtest: no element with id " + id)
	}
	return el.(*Element)
}

// Query returns the first element matching selector.
func (p *Page) Query(selector string) (dom.Element, bool) {
	all := p.find(p.root, selector)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// QueryAll returns every element matching selector in document order.
func (p *Page) QueryAll(selector string) []dom.Element {
	return p.find(p.root, selector)
}

// Count returns how many elements match selector.
func (p *Page) Count(selector string) int {
	return goquery.NewDocumentFromNode(p.root).Find(selector).Length()
}

// CreateElement creates a detached element.
func (p *Page) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	return p.wrap(n)
}

// Body returns the body element.
func (p *Page) Body() (dom.Element, bool) {
	return p.Query("body")
}

// ScrollHeight returns the configured document height.
func (p *Page) ScrollHeight() float64 { return p.scrollHeight }

// SetScrollHeight sets the document height.
func (p *Page) SetScrollHeight(h float64) { p.scrollHeight = h }

// Listen registers a document listener.
func (p *Page) Listen(event string, fn dom.Listener, passive bool) dom.Release {
	return p.listeners.add(event, fn, passive)
}

// Dispatch fires a document event.
func (p *Page) Dispatch(event string, ev dom.Event) bool {
	return p.listeners.dispatch(event, ev)
}

// KeyDown fires a keydown event on the document.
func (p *Page) KeyDown(key string) {
	p.Dispatch("keydown", dom.Event{Key: key})
}

// ListenerCount returns the number of document listeners for event.
func (p *Page) ListenerCount(event string) int { return p.listeners.count(event) }

// Element is a node in a Page implementing dom.Element.
type Element struct {
	page      *Page
	node      *html.Node
	styles    map[string]string
	listeners listenerSet

	rect      layout.Rect
	offsetTop float64
	clientW   float64
	clientH   float64
}

// SameAs reports whether other wraps the same node.
func (e *Element) SameAs(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o.node == e.node
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// TagName returns the upper-case tag name.
func (e *Element) TagName() string { return strings.ToUpper(e.node.Data) }

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes an attribute.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

func (e *Element) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// AddClass adds class names that are not already present.
func (e *Element) AddClass(names ...string) {
	current := e.classes()
	for _, name := range names {
		if !e.HasClass(name) {
			current = append(current, name)
			e.SetAttr("class", strings.Join(current, " "))
		}
	}
}

// RemoveClass removes class names.
func (e *Element) RemoveClass(names ...string) {
	current := e.classes()
	kept := current[:0]
	for _, c := range current {
		remove := false
		for _, name := range names {
			if c == name {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// HasClass reports whether the class is present.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

// Style returns an inline style property.
func (e *Element) Style(property string) string { return e.styles[property] }

// SetStyle sets an inline style property. An empty value clears it.
func (e *Element) SetStyle(property, value string) {
	if value == "" {
		delete(e.styles, property)
		return
	}
	e.styles[property] = value
}

// SetText replaces the element's children with a text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return goquery.NewDocumentFromNode(e.node).Text()
}

// Rect returns the configured bounding rectangle.
func (e *Element) Rect() layout.Rect { return e.rect }

// SetRect sets the bounding rectangle.
func (e *Element) SetRect(r layout.Rect) *Element {
	e.rect = r
	return e
}

// OffsetTop returns the configured document offset.
func (e *Element) OffsetTop() float64 { return e.offsetTop }

// SetOffsetTop sets the document offset.
func (e *Element) SetOffsetTop(top float64) *Element {
	e.offsetTop = top
	return e
}

// ClientWidth returns the configured client width.
func (e *Element) ClientWidth() float64 { return e.clientW }

// ClientHeight returns the configured client height.
func (e *Element) ClientHeight() float64 { return e.clientH }

// SetClientSize sets the client width and height.
func (e *Element) SetClientSize(w, h float64) *Element {
	e.clientW, e.clientH = w, h
	return e
}

// Query returns the first descendant matching selector.
func (e *Element) Query(selector string) (dom.Element, bool) {
	all := e.page.find(e.node, selector)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// QueryAll returns every descendant matching selector.
func (e *Element) QueryAll(selector string) []dom.Element {
	return e.page.find(e.node, selector)
}

// AppendChild moves child under e.
func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// Attached reports whether the element is part of the page tree.
func (e *Element) Attached() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.page.root {
			return true
		}
	}
	return false
}

// Listen registers an element listener.
func (e *Element) Listen(event string, fn dom.Listener, passive bool) dom.Release {
	return e.listeners.add(event, fn, passive)
}

// Dispatch fires event on the element and reports whether the default was prevented.
func (e *Element) Dispatch(event string, ev dom.Event) bool {
	ev.Target = e
	return e.listeners.dispatch(event, ev)
}

// Click fires a click at the given client coordinates.
func (e *Element) Click(x, y float64) bool {
	return e.Dispatch("click", dom.Event{ClientX: x, ClientY: y})
}

// ListenerCount returns the number of listeners registered for event.
func (e *Element) ListenerCount(event string) int { return e.listeners.count(event) }

// TotalListeners returns the number of listeners across all events.
func (e *Element) TotalListeners() int { return e.listeners.total() }
