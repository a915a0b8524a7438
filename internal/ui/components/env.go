// Package components implements the landing page behaviors: navigation, mobile menu,
// scroll progress, reveal animations, ripples, loading screen, parallax and the small
// utilities around them. Each component is constructed once, binds to the elements it
// finds, reports whether it is Enabled, and detaches everything on Dispose.
package components

import (
	"strconv"

	"github.com/Its-donkey/lander/internal/ui/config"
	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/sched"
	"github.com/Its-donkey/lander/logging"
)

// Env is what every component is constructed with.
type Env struct {
	Window dom.Window
	Config config.Config
	Clock  sched.Clock
	Logger *logging.Logger
}

func (e Env) doc() dom.Document { return e.Window.Document() }

// firstByID returns the first element found among ids.
func (e Env) firstByID(ids ...string) (dom.Element, bool) {
	for _, id := range ids {
		if el, ok := e.doc().ByID(id); ok {
			return el, true
		}
	}
	return nil, false
}

// missing logs that an optional element is absent and the feature is inert.
func (e Env) missing(category, what string) {
	e.Logger.Debug(category, what+" not found, feature disabled", nil)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func px(v float64) string {
	return formatFloat(v) + "px"
}

func percent(v float64) string {
	return formatFloat(v) + "%"
}

func setClass(el dom.Element, name string, on bool) {
	if on {
		el.AddClass(name)
	} else {
		el.RemoveClass(name)
	}
}
