package components

import (
	"testing"

	"github.com/Its-donkey/lander/internal/ui/dom"
)

func TestRevealFiresOncePerElement(t *testing.T) {
	f := newFixture(t, landingPage)
	r := NewReveal(f.env)

	observers := f.window.Observers()
	if len(observers) != 1 {
		t.Fatalf("expected one observer, got %d", len(observers))
	}
	obs := observers[0]
	if obs.Options.Threshold != 0.1 || obs.Options.RootMargin != "0px 0px -50px 0px" {
		t.Fatalf("unexpected observer options: %+v", obs.Options)
	}
	if obs.Count() != 2 || r.Pending() != 2 {
		t.Fatalf("expected two observed elements, got observer=%d pending=%d", obs.Count(), r.Pending())
	}

	heading, _ := f.page.Query("h1")
	card, _ := f.page.Query(".about-card")

	obs.Intersect(card, false)
	if card.HasClass("aos-animate") {
		t.Fatalf("non-intersecting entry must not reveal")
	}

	obs.Intersect(heading, true)
	if !heading.HasClass("aos-animate") {
		t.Fatalf("expected heading to be revealed")
	}
	if obs.Watching(heading) {
		t.Fatalf("expected revealed heading to be unobserved")
	}

	// A late entry for an already revealed element changes nothing.
	obs.Fire(dom.Intersection{Target: heading, IsIntersecting: true})
	if r.Revealed() != 1 || r.Pending() != 1 {
		t.Fatalf("expected exactly one reveal, got revealed=%d pending=%d", r.Revealed(), r.Pending())
	}

	obs.Intersect(card, true)
	if r.Revealed() != 2 || r.Pending() != 0 || obs.Count() != 0 {
		t.Fatalf("expected everything revealed, got revealed=%d pending=%d observed=%d", r.Revealed(), r.Pending(), obs.Count())
	}

	r.Dispose()
	if !obs.Disconnected() {
		t.Fatalf("expected dispose to disconnect the observer")
	}
}

func TestRevealWithoutObserverRevealsEverything(t *testing.T) {
	f := newFixture(t, landingPage)
	f.window.DisableIntersectionObserver()
	r := NewReveal(f.env)

	if !r.Fallback() || !r.Enabled() {
		t.Fatalf("expected fallback mode")
	}
	for _, el := range f.page.QueryAll("[data-aos]") {
		if !el.HasClass("aos-animate") {
			t.Fatalf("expected %s to be revealed", el.TagName())
		}
	}
	if r.Revealed() != 2 || r.Pending() != 0 {
		t.Fatalf("unexpected counts revealed=%d pending=%d", r.Revealed(), r.Pending())
	}
	r.Dispose()
}

func TestRevealWithoutTaggedElements(t *testing.T) {
	f := newFixture(t, `<html><body><p>plain</p></body></html>`)
	r := NewReveal(f.env)

	if r.Enabled() || len(f.window.Observers()) != 0 {
		t.Fatalf("expected no observer for a page without reveal targets")
	}
	r.Dispose()
}
