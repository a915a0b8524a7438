package components

import (
	"context"
	"strconv"
	"sync"

	"github.com/Its-donkey/lander/internal/ui/dom"
	"github.com/Its-donkey/lander/internal/ui/sched"
)

// FooterYear writes the current year into #year.
type FooterYear struct {
	el dom.Element
}

// NewFooterYear fills in #year if present.
func NewFooterYear(env Env) *FooterYear {
	f := &FooterYear{}
	el, ok := env.doc().ByID("year")
	if !ok {
		env.missing("footer", "#year")
		return f
	}
	f.el = el
	el.SetText(strconv.Itoa(env.Clock.Now().Year()))
	return f
}

// Enabled reports whether #year was found.
func (f *FooterYear) Enabled() bool { return f.el != nil }

// Dispose is a no-op; the year is written once.
func (f *FooterYear) Dispose() {}

// LazyImagesSelector matches images that defer loading until they approach the viewport.
const LazyImagesSelector = "img[data-src]"

// LazyImages moves data-src into src the first time an image intersects the viewport.
// Without IntersectionObserver every image is loaded immediately.
type LazyImages struct {
	observer dom.Observer

	mu      sync.Mutex
	pending []dom.Element
	loaded  int
}

// NewLazyImages observes every img[data-src].
func NewLazyImages(env Env) *LazyImages {
	l := &LazyImages{}
	images := env.doc().QueryAll(LazyImagesSelector)
	if len(images) == 0 {
		return l
	}
	observer, ok := env.Window.NewIntersectionObserver(dom.ObserverOptions{}, l.handle)
	if !ok {
		for _, img := range images {
			l.load(img)
		}
		return l
	}
	l.observer = observer
	l.pending = images
	for _, img := range images {
		observer.Observe(img)
	}
	return l
}

func (l *LazyImages) handle(entries []dom.Intersection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range entries {
		if !entry.IsIntersecting {
			continue
		}
		idx := -1
		for i, img := range l.pending {
			if dom.Same(img, entry.Target) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		l.pending = append(l.pending[:idx], l.pending[idx+1:]...)
		l.load(entry.Target)
		l.observer.Unobserve(entry.Target)
	}
}

func (l *LazyImages) load(img dom.Element) {
	src, ok := img.Attr("data-src")
	if !ok {
		return
	}
	img.SetAttr("src", src)
	img.RemoveAttr("data-src")
	l.loaded++
}

// Enabled reports whether any image was deferred.
func (l *LazyImages) Enabled() bool { return l.observer != nil || l.loaded > 0 }

// Loaded returns how many images have been swapped.
func (l *LazyImages) Loaded() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Pending returns how many images are still waiting to intersect.
func (l *LazyImages) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Dispose stops observing.
func (l *LazyImages) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.observer != nil {
		l.observer.Disconnect()
	}
	l.pending = nil
}

// KonamiCode is the key sequence that unlocks rainbow mode.
var KonamiCode = []string{"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown", "ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight", "b", "a"}

// KeySequence matches the most recent keys against a fixed pattern.
type KeySequence struct {
	pattern []string
	recent  []string
}

// NewKeySequence creates a matcher for pattern.
func NewKeySequence(pattern []string) *KeySequence {
	return &KeySequence{pattern: pattern}
}

// Push records key and reports whether the latest keys complete the pattern.
func (k *KeySequence) Push(key string) bool {
	k.recent = append(k.recent, key)
	if len(k.recent) > len(k.pattern) {
		k.recent = k.recent[len(k.recent)-len(k.pattern):]
	}
	if len(k.recent) != len(k.pattern) {
		return false
	}
	for i, want := range k.pattern {
		if k.recent[i] != want {
			return false
		}
	}
	return true
}

// EasterEgg turns on rainbow mode for a while when the Konami code is typed.
type EasterEgg struct {
	env       Env
	body      dom.Element
	cancel    context.CancelFunc
	slot      *sched.Slot
	listeners dom.Listeners

	mu  sync.Mutex
	seq *KeySequence
}

// NewEasterEgg listens for keydown on the document.
func NewEasterEgg(ctx context.Context, env Env) *EasterEgg {
	ctx, cancel := context.WithCancel(ctx)
	e := &EasterEgg{env: env, cancel: cancel, slot: sched.NewSlot(ctx, env.Clock), seq: NewKeySequence(KonamiCode)}
	body, ok := env.doc().Body()
	if !ok {
		return e
	}
	e.body = body
	e.listeners.Add(env.doc().Listen("keydown", func(ev dom.Event) { e.Key(ev.Key) }, true))
	return e
}

// Enabled reports whether the document has a body to decorate.
func (e *EasterEgg) Enabled() bool { return e.body != nil }

// Key feeds one key press.
func (e *EasterEgg) Key(key string) {
	if e.body == nil {
		return
	}
	e.mu.Lock()
	matched := e.seq.Push(key)
	e.mu.Unlock()
	if !matched {
		return
	}
	e.env.Logger.Info("easter-egg", "rainbow mode unlocked", nil)
	e.body.AddClass("rainbow")
	e.slot.Schedule(e.env.Config.EasterEggDuration, func() { e.body.RemoveClass("rainbow") })
}

// Dispose detaches the key listener and ends rainbow mode early.
func (e *EasterEgg) Dispose() {
	e.listeners.ReleaseAll()
	if e.slot.Cancel() && e.body != nil {
		e.body.RemoveClass("rainbow")
	}
	e.cancel()
}
