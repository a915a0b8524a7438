// Package layout holds the scroll and geometry calculations behind the page components.
// Nothing in here touches the DOM.
package layout

import "math"

// Rect is a bounding client rectangle in CSS pixels relative to the viewport.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Section is an in-page section described by its document offset and height.
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// Progress returns how far the page has been scrolled as a percentage in [0,100].
// A page that cannot scroll reports 0.
func Progress(scrollY, documentHeight, viewportHeight float64) float64 {
	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 || math.IsNaN(scrollable) || math.IsNaN(scrollY) {
		return 0
	}
	return Clamp(scrollY/scrollable*100, 0, 100)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scrolled reports whether the page is past the navbar threshold.
func Scrolled(scrollY, threshold float64) bool {
	return scrollY > threshold
}

// ActiveSection returns the id of the section containing scrollY once each section's top
// is shifted up by offset. Spans are closed-open. When spans overlap the last matching
// section in document order wins. It returns "" when no section matches.
func ActiveSection(sections []Section, scrollY, offset float64) string {
	current := ""
	for _, s := range sections {
		top := s.Top - offset
		if scrollY >= top && scrollY < top+s.Height {
			current = s.ID
		}
	}
	return current
}

// ScrollTarget is the document offset that places a target just below the fixed navbar.
func ScrollTarget(targetTop, scrollY, navHeight float64) float64 {
	return targetTop + scrollY - navHeight
}

// RippleGeometry is the size and position of a ripple relative to its button.
type RippleGeometry struct {
	Diameter float64
	Left     float64
	Top      float64
}

// Ripple sizes a ripple to the button's larger dimension and centres it on the pointer.
func Ripple(button Rect, clientWidth, clientHeight, pointerX, pointerY float64) RippleGeometry {
	diameter := math.Max(clientWidth, clientHeight)
	radius := diameter / 2
	return RippleGeometry{
		Diameter: diameter,
		Left:     pointerX - button.Left - radius,
		Top:      pointerY - button.Top - radius,
	}
}

// InViewport reports whether r is on screen, treating the bottom margin pixels as off screen.
func InViewport(r Rect, viewportHeight, margin float64) bool {
	return r.Top <= viewportHeight-margin && r.Bottom() >= 0
}

// ParallaxOffset is the vertical translation applied to a parallax element.
func ParallaxOffset(scrollY, speed float64) float64 {
	return -(scrollY * speed)
}
