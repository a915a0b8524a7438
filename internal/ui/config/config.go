// Package config holds the immutable settings shared by the landing page components.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Breakpoints are viewport widths in CSS pixels.
type Breakpoints struct {
	Mobile  int
	Tablet  int
	Desktop int
}

// RevealConfig configures the reveal-on-intersect animator.
type RevealConfig struct {
	Selector      string
	RevealedClass string
	Threshold     float64
	RootMargin    string
}

// LoadingConfig configures the two-stage loading screen dismissal.
type LoadingConfig struct {
	Delay       time.Duration
	RemoveAfter time.Duration
}

// ParallaxConfig configures the parallax decoration.
type ParallaxConfig struct {
	DefaultSpeed   float64
	ViewportMargin float64
}

// PurchaseConfig describes the messaging deep link used by buy buttons.
type PurchaseConfig struct {
	BaseURL string
	Phone   string
	Message string
}

// AnimationLibraryConfig is handed to an optional third-party animation library.
type AnimationLibraryConfig struct {
	Duration time.Duration
	Once     bool
	Offset   int
	Easing   string
}

// Config is passed by value into every component constructor and never mutated afterwards.
type Config struct {
	NavHeight         float64
	ActiveLookahead   float64
	ScrolledThreshold float64
	AnimationDuration time.Duration
	ScrollThrottle    time.Duration
	ResizeDebounce    time.Duration
	RippleDuration    time.Duration
	EasterEggDuration time.Duration
	// HoverResetDelay is how long a will-change hint outlives the pointer leaving.
	HoverResetDelay   time.Duration
	// StaggerStep separates successive cards in the start-up fade in.
	StaggerStep       time.Duration
	Breakpoints       Breakpoints
	Reveal            RevealConfig
	Loading           LoadingConfig
	Parallax          ParallaxConfig
	Purchase          PurchaseConfig
	AnimationLibrary  AnimationLibraryConfig
}

// Default returns the canonical landing page settings.
func Default() Config {
	return Config{
		NavHeight:         80,
		ActiveLookahead:   100,
		ScrolledThreshold: 50,
		AnimationDuration: 500 * time.Millisecond,
		ScrollThrottle:    16 * time.Millisecond,
		ResizeDebounce:    250 * time.Millisecond,
		RippleDuration:    600 * time.Millisecond,
		EasterEggDuration: 5 * time.Second,
		HoverResetDelay:   500 * time.Millisecond,
		StaggerStep:       50 * time.Millisecond,
		Breakpoints: Breakpoints{
			Mobile:  640,
			Tablet:  768,
			Desktop: 1024,
		},
		Reveal: RevealConfig{
			Selector:      "[data-aos]",
			RevealedClass: "aos-animate",
			Threshold:     0.1,
			RootMargin:    "0px 0px -50px 0px",
		},
		Loading: LoadingConfig{
			Delay:       300 * time.Millisecond,
			RemoveAfter: 500 * time.Millisecond,
		},
		Parallax: ParallaxConfig{
			DefaultSpeed:   0.5,
			ViewportMargin: 200,
		},
		Purchase: PurchaseConfig{
			BaseURL: "https://api.whatsapp.com/send",
			Phone:   "6285842615683",
			Message: "Halo Om, saya tertarik untuk membeli lisensi Ngrender Pro V2.8 seharga Rp 400.000",
		},
		AnimationLibrary: AnimationLibraryConfig{
			Duration: 800 * time.Millisecond,
			Once:     true,
			Offset:   100,
			Easing:   "ease-out-cubic",
		},
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.NavHeight <= 0 {
		errs = append(errs, fmt.Errorf("nav height must be positive, got %v", c.NavHeight))
	}
	if c.ActiveLookahead < 0 {
		errs = append(errs, fmt.Errorf("active lookahead must be non-negative, got %v", c.ActiveLookahead))
	}
	if c.ScrolledThreshold < 0 {
		errs = append(errs, fmt.Errorf("scrolled threshold must be non-negative, got %v", c.ScrolledThreshold))
	}
	durations := map[string]time.Duration{
		"animation duration": c.AnimationDuration,
		"scroll throttle":    c.ScrollThrottle,
		"resize debounce":    c.ResizeDebounce,
		"ripple duration":    c.RippleDuration,
		"loading remove":     c.Loading.RemoveAfter,
	}
	for _, name := range []string{"animation duration", "scroll throttle", "resize debounce", "ripple duration", "loading remove"} {
		if durations[name] <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, durations[name]))
		}
	}
	if c.HoverResetDelay < 0 || c.StaggerStep < 0 {
		errs = append(errs, fmt.Errorf("hover reset delay and stagger step must be non-negative, got %s/%s", c.HoverResetDelay, c.StaggerStep))
	}
	if c.Loading.Delay < 0 {
		errs = append(errs, fmt.Errorf("loading delay must be non-negative, got %s", c.Loading.Delay))
	}
	if c.Reveal.Threshold < 0 || c.Reveal.Threshold > 1 {
		errs = append(errs, fmt.Errorf("reveal threshold must be within [0,1], got %v", c.Reveal.Threshold))
	}
	if strings.TrimSpace(c.Reveal.Selector) == "" || strings.TrimSpace(c.Reveal.RevealedClass) == "" {
		errs = append(errs, errors.New("reveal selector and class are required"))
	}
	bp := c.Breakpoints
	if bp.Mobile <= 0 || bp.Mobile >= bp.Tablet || bp.Tablet >= bp.Desktop {
		errs = append(errs, fmt.Errorf("breakpoints must be positive and ascending, got %d/%d/%d", bp.Mobile, bp.Tablet, bp.Desktop))
	}
	if strings.TrimSpace(c.Purchase.BaseURL) == "" {
		errs = append(errs, errors.New("purchase base url is required"))
	}
	return errors.Join(errs...)
}

// ScrollOffset is the distance kept between a scroll target and the top of the viewport.
func (c Config) ScrollOffset() float64 {
	return c.NavHeight
}

// SectionOffset is subtracted from a section's top when deciding which section is active.
func (c Config) SectionOffset() float64 {
	return c.NavHeight + c.ActiveLookahead
}
