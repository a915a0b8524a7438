package domtest

import (
	"testing"

	"github.com/Its-donkey/lander/internal/ui/dom"
)

const page = `<html><body>
<nav id="navbar" class="nav"><a class="nav-link" href="#a">A</a><a class="nav-link" href="#b">B</a></nav>
<section id="a"></section><section id="b"><p>text</p></section>
</body></html>`

func TestSelectorsAndIdentity(t *testing.T) {
	p := MustParse(page)

	if got := p.Count(".nav-link"); got != 2 {
		t.Fatalf("expected 2 nav links, got %d", got)
	}
	first, ok := p.Query(`a[href="#a"]`)
	if !ok {
		t.Fatalf("expected link to #a")
	}
	again := p.QueryAll(".nav-link")[0]
	if !dom.Same(first, again) {
		t.Fatalf("expected repeated lookups to return the same element")
	}
	if _, ok := p.ByID("missing"); ok {
		t.Fatalf("unexpected element for missing id")
	}
	if got := p.El("b").Text(); got != "text" {
		t.Fatalf("expected section text %q, got %q", "text", got)
	}
}

func TestClassesAndAttributes(t *testing.T) {
	p := MustParse(page)
	nav := p.El("navbar")

	nav.AddClass("scrolled", "scrolled")
	if v, _ := nav.Attr("class"); v != "nav scrolled" {
		t.Fatalf("unexpected class attribute %q", v)
	}
	nav.RemoveClass("nav")
	if nav.HasClass("nav") || !nav.HasClass("scrolled") {
		t.Fatalf("remove class touched the wrong names: %q", nav.classes())
	}
	nav.SetAttr("aria-hidden", "true")
	nav.RemoveAttr("aria-hidden")
	if _, ok := nav.Attr("aria-hidden"); ok {
		t.Fatalf("expected attribute to be removed")
	}
	nav.SetStyle("overflow", "hidden")
	nav.SetStyle("overflow", "")
	if nav.Style("overflow") != "" {
		t.Fatalf("empty style value should clear the property")
	}
}

func TestCreateAppendRemove(t *testing.T) {
	p := MustParse(page)
	span := p.CreateElement("SPAN").(*Element)
	if span.Attached() || span.TagName() != "SPAN" {
		t.Fatalf("expected detached span, attached=%v tag=%s", span.Attached(), span.TagName())
	}
	p.El("a").AppendChild(span)
	if !span.Attached() || p.Count("#a span") != 1 {
		t.Fatalf("expected span under #a")
	}
	span.Remove()
	if span.Attached() || p.Count("span") != 0 {
		t.Fatalf("expected span to be detached")
	}
}

func TestListenersHonourPassive(t *testing.T) {
	p := MustParse(page)
	link := p.QueryAll(".nav-link")[0].(*Element)

	var passiveCanPrevent bool
	releasePassive := link.Listen("click", func(ev dom.Event) { passiveCanPrevent = ev.Prevent != nil }, true)
	if link.Click(0, 0) {
		t.Fatalf("passive listener must not prevent default")
	}
	if passiveCanPrevent {
		t.Fatalf("passive listener received a prevent func")
	}

	release := link.Listen("click", func(ev dom.Event) {
		if ev.Target == nil || !dom.Same(ev.Target, link) {
			t.Errorf("expected click target to be the link")
		}
		ev.PreventDefault()
	}, false)
	if !link.Click(0, 0) {
		t.Fatalf("expected active listener to prevent default")
	}

	release()
	releasePassive()
	if link.TotalListeners() != 0 {
		t.Fatalf("expected no listeners after release, got %d", link.TotalListeners())
	}
}

func TestWindowScrollDispatch(t *testing.T) {
	p := MustParse(page)
	w := NewWindow(p)
	var seen []float64
	w.Listen("scroll", func(dom.Event) { seen = append(seen, w.ScrollY()) }, true)

	w.Scroll(120)
	w.ScrollTo(300, true)
	if len(seen) != 1 || seen[0] != 120 {
		t.Fatalf("expected one scroll event at 120, got %v", seen)
	}
	if len(w.Scrolls) != 1 || w.Scrolls[0].Top != 300 || !w.Scrolls[0].Smooth {
		t.Fatalf("expected recorded smooth ScrollTo(300), got %+v", w.Scrolls)
	}
}
