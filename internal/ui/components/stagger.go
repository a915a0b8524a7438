package components

import (
	"context"
	"time"

	"github.com/Its-donkey/lander/internal/ui/sched"
)

// StaggerSelector matches the cards faded in one after another at start-up.
const StaggerSelector = ".about-card, .benefit-card, .feature-item"

const (
	staggerTransition = "all 0.6s cubic-bezier(0.23, 1, 0.32, 1)"
	staggerOffset     = "translateY(20px)"
)

// Stagger hides the cards and fades them back in, each StaggerStep after the previous.
type Stagger struct {
	cancel context.CancelFunc
	tasks  []*sched.Task
	count  int
}

// NewStagger hides every card and schedules its fade in.
func NewStagger(ctx context.Context, env Env) *Stagger {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stagger{cancel: cancel}
	cards := env.doc().QueryAll(StaggerSelector)
	s.count = len(cards)
	for i, card := range cards {
		card.SetStyle("opacity", "0")
		card.SetStyle("transform", staggerOffset)
		s.tasks = append(s.tasks, sched.After(ctx, env.Clock, time.Duration(i)*env.Config.StaggerStep, func() {
			card.SetStyle("transition", staggerTransition)
			card.SetStyle("opacity", "1")
			card.SetStyle("transform", "translateY(0)")
		}))
	}
	return s
}

// Enabled reports whether any card was found.
func (s *Stagger) Enabled() bool { return s.count > 0 }

// Remaining returns how many cards have yet to fade in.
func (s *Stagger) Remaining() int {
	n := 0
	for _, t := range s.tasks {
		if t.Pending() {
			n++
		}
	}
	return n
}

// Dispose cancels fades that have not started. Cards already hidden stay as they are.
func (s *Stagger) Dispose() { s.cancel() }
