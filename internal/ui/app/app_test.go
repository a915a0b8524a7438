package app

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Its-donkey/lander/internal/ui/config"
	"github.com/Its-donkey/lander/internal/ui/dom/domtest"
	"github.com/Its-donkey/lander/internal/ui/sched"
	"github.com/Its-donkey/lander/logging"
)

const page = `<html><body>
<div id="loading"></div>
<div id="scroll-progress"></div>
<nav id="navbar">
  <a class="nav-link" href="#home">Home</a>
  <button id="mobile-menu-btn"><i class="fa fa-bars"></i></button>
</nav>
<div id="mobile-menu"><a class="mobile-link" href="#home">Home</a></div>
<section id="home"><h2 data-aos="fade">Hi</h2><button class="btn-primary" data-buy>Buy</button></section>
<footer><span id="year"></span></footer>
</body></html>`

func newApp(t *testing.T, markup string) (*App, *domtest.Window, *sched.Manual) {
	t.Helper()
	p := domtest.MustParse(markup)
	p.SetScrollHeight(2000)
	w := domtest.NewWindow(p)
	clock := sched.NewManual(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	a, err := New(context.Background(), w, config.Default(), logging.Discard(), clock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, w, clock
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	w := domtest.NewWindow(domtest.MustParse(page))
	cfg := config.Default()
	cfg.NavHeight = 0
	if _, err := New(context.Background(), w, cfg, nil, nil); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
	if _, err := New(context.Background(), nil, config.Default(), nil, nil); err == nil {
		t.Fatalf("expected missing window to be rejected")
	}
}

func TestStatusReportsBoundComponents(t *testing.T) {
	a, _, _ := newApp(t, page)

	want := map[string]bool{
		"loading":    true,
		"progress":   true,
		"navigation": true,
		"reveal":     true,
		"animation":  false,
		"stagger":    false,
		"ripple":     true,
		"hover":      true,
		"parallax":   false,
		"responsive": true,
		"purchase":   true,
		"year":       true,
		"images":     false,
		"easter-egg": true,
	}
	status := a.Status()
	if len(status) != len(want) {
		t.Fatalf("expected %d components, got %d", len(want), len(status))
	}
	for _, s := range status {
		if s.Enabled != want[s.Name] {
			t.Errorf("%s: enabled=%v, want %v", s.Name, s.Enabled, want[s.Name])
		}
	}
}

func TestEmptyPageStartsWithoutErrors(t *testing.T) {
	a, w, clock := newApp(t, `<html><body></body></html>`)
	w.Scroll(400)
	w.Resize(400, 700)
	clock.Advance(time.Second)

	for _, s := range a.Status() {
		if s.Enabled && s.Name != "responsive" && s.Name != "easter-egg" {
			t.Errorf("%s unexpectedly enabled on an empty page", s.Name)
		}
	}
	a.Dispose()
}

func TestLoadingScreenStartsAutomatically(t *testing.T) {
	a, w, clock := newApp(t, page)
	clock.Advance(800 * time.Millisecond)
	if _, ok := w.Document().ByID("loading"); ok {
		t.Fatalf("expected loading screen removed")
	}
	a.Dispose()
}

func TestAnimationLibraryInitialisedOnce(t *testing.T) {
	p := domtest.MustParse(page)
	w := domtest.NewWindow(p)
	lib := &domtest.AnimationLibrary{}
	w.SetAnimationLibrary(lib)

	a, err := New(context.Background(), w, config.Default(), nil, sched.NewManual(time.Now()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(lib.Inits) != 1 {
		t.Fatalf("expected one init, got %d", len(lib.Inits))
	}
	opts := lib.Inits[0]
	if opts.DurationMillis != 800 || !opts.Once || opts.Offset != 100 || opts.Easing != "ease-out-cubic" {
		t.Fatalf("unexpected init options %+v", opts)
	}
	if !a.Animation.Enabled() {
		t.Fatalf("expected animation hook enabled")
	}
}

func TestDisposeReleasesAllListeners(t *testing.T) {
	a, w, clock := newApp(t, page)
	a.Navigation.ToggleMobileMenu()
	a.Navigation.HandleLinkClick("#home")

	a.Dispose()
	a.Dispose()

	if w.TotalListeners() != 0 {
		t.Fatalf("expected no window listeners, got %d", w.TotalListeners())
	}
	if n := w.Page().ListenerCount("keydown"); n != 0 {
		t.Fatalf("expected no document listeners, got %d", n)
	}
	for _, id := range []string{"mobile-menu-btn"} {
		if n := w.Page().El(id).TotalListeners(); n != 0 {
			t.Fatalf("%s still has %d listeners", id, n)
		}
	}
	buy := w.Page().QueryAll("[data-buy]")[0].(*domtest.Element)
	if n := buy.TotalListeners(); n != 0 {
		t.Fatalf("buy button still has %d listeners", n)
	}
	clock.Advance(time.Second)
	if len(w.Scrolls) != 0 {
		t.Fatalf("deferred scroll fired after dispose")
	}
}

func TestInitialisationIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("lander-ui", logging.INFO, &buf)
	w := domtest.NewWindow(domtest.MustParse(page))

	if _, err := New(context.Background(), w, config.Default(), logger, sched.NewManual(time.Now())); err != nil {
		t.Fatalf("New: %v", err)
	}

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry logging.Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if entry.Category == "app" && entry.Fields["navigation"] == true {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an app initialisation entry, got %s", buf.String())
	}
}
