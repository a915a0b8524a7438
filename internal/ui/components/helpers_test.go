package components

import (
	"testing"
	"time"

	"github.com/Its-donkey/lander/internal/ui/config"
	"github.com/Its-donkey/lander/internal/ui/dom/domtest"
	"github.com/Its-donkey/lander/internal/ui/sched"
	"github.com/Its-donkey/lander/logging"
)

const landingPage = `<!doctype html>
<html><body>
<div id="loading">Loading</div>
<div id="scroll-progress"></div>
<nav id="navbar">
  <a class="nav-link" href="#home">Home</a>
  <a class="nav-link" href="#about">About</a>
  <a class="nav-link" href="#pricing">Pricing</a>
  <a class="nav-link" href="https://example.com/blog">Blog</a>
  <button id="hamburger" aria-expanded="false"><i class="fa fa-bars"></i></button>
</nav>
<div id="menu-overlay"></div>
<div id="mobile-menu" aria-hidden="true">
  <a class="mobile-menu-link" href="#about">About</a>
  <a class="mobile-menu-link" href="https://example.com/login">Login</a>
</div>
<section id="home"><h1 data-aos="fade-up">Hero</h1><div class="parallax" data-speed="0.25"></div></section>
<section id="about"><div class="about-card" data-aos="fade-up" data-aos-delay="100">About</div></section>
<section id="pricing">
  <button class="btn-primary" data-buy>Buy</button>
  <button class="btn-primary" data-buy data-buy-phone="628111" data-buy-message="Hi there">Buy other</button>
  <img data-src="/hero.png">
</section>
<footer><span id="year"></span></footer>
</body></html>`

var epoch = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fixture struct {
	page   *domtest.Page
	window *domtest.Window
	clock  *sched.Manual
	env    Env
}

func newFixture(t *testing.T, markup string) *fixture {
	t.Helper()
	page, err := domtest.Parse(markup)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	page.SetScrollHeight(3000)
	window := domtest.NewWindow(page)
	clock := sched.NewManual(epoch)
	return &fixture{
		page:   page,
		window: window,
		clock:  clock,
		env: Env{
			Window: window,
			Config: config.Default(),
			Clock:  clock,
			Logger: logging.Discard(),
		},
	}
}

// layoutSections positions sections so their effective spans (after the navbar and
// lookahead offset) are home [0,300), about [300,700), pricing [700,∞).
func (f *fixture) layoutSections() {
	offset := f.env.Config.SectionOffset()
	f.page.El("home").SetOffsetTop(0 + offset).SetClientSize(1280, 300)
	f.page.El("about").SetOffsetTop(300 + offset).SetClientSize(1280, 400)
	f.page.El("pricing").SetOffsetTop(700 + offset).SetClientSize(1280, 1e9)
}
