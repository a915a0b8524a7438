package components

import (
	"sync"

	"github.com/Its-donkey/lander/internal/ui/dom"
)

// MenuState is the mobile menu's open/closed state.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// Menu owns the mobile menu state and keeps the button, panel, overlay and body in sync
// with it. The mirror is only written when the state changes.
type Menu struct {
	mu    sync.Mutex
	state MenuState

	button  dom.Element
	panel   dom.Element
	overlay dom.Element
	body    dom.Element

	onOpen func()
}

// NewMenu binds a menu. It is enabled only when both the button and the panel exist;
// overlay and body are optional.
func NewMenu(button, panel, overlay, body dom.Element) *Menu {
	m := &Menu{button: button, panel: panel, overlay: overlay, body: body}
	if m.Enabled() {
		m.mirror(MenuClosed)
	}
	return m
}

// Enabled reports whether the menu found its button and panel.
func (m *Menu) Enabled() bool {
	return m.button != nil && m.panel != nil
}

// State returns the current state.
func (m *Menu) State() MenuState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsOpen reports whether the menu is open.
func (m *Menu) IsOpen() bool { return m.State() == MenuOpen }

// Toggle flips the state and returns the new one.
func (m *Menu) Toggle() MenuState {
	if m.IsOpen() {
		m.Close()
		return MenuClosed
	}
	m.Open()
	return MenuOpen
}

// Open opens the menu. It reports whether the state changed.
func (m *Menu) Open() bool {
	if !m.set(MenuOpen) {
		return false
	}
	if m.onOpen != nil {
		m.onOpen()
	}
	return true
}

// Close closes the menu. Closing a closed menu is a no-op.
func (m *Menu) Close() bool {
	return m.set(MenuClosed)
}

func (m *Menu) set(next MenuState) bool {
	if !m.Enabled() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == next {
		return false
	}
	m.state = next
	m.mirror(next)
	return true
}

func (m *Menu) mirror(state MenuState) {
	open := state == MenuOpen
	expanded, hidden, overflow := "false", "true", ""
	if open {
		expanded, hidden, overflow = "true", "false", "hidden"
	}

	setClass(m.panel, "open", open)
	m.panel.SetAttr("aria-hidden", hidden)
	setClass(m.button, "active", open)
	m.button.SetAttr("aria-expanded", expanded)
	if m.overlay != nil {
		setClass(m.overlay, "active", open)
	}
	if m.body != nil {
		m.body.SetStyle("overflow", overflow)
	}
	if icon, ok := m.button.Query("i"); ok && (icon.HasClass("fa-bars") || icon.HasClass("fa-times")) {
		setClass(icon, "fa-bars", !open)
		setClass(icon, "fa-times", open)
	}
}
