package components

import (
	"net/url"
	"strings"

	"github.com/Its-donkey/lander/internal/ui/dom"
)

// BuySelector matches buttons that open the purchase chat.
const BuySelector = "[data-buy]"

// EncodeURIComponent escapes s the way the browser's encodeURIComponent does, so spaces
// become %20 rather than +.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for _, keep := range []struct{ from, to string }{
		{"%21", "!"}, {"%27", "'"}, {"%28", "("}, {"%29", ")"}, {"%2A", "*"},
	} {
		escaped = strings.ReplaceAll(escaped, keep.from, keep.to)
	}
	return escaped
}

// PurchaseURL builds the messaging deep link for phone with a prefilled message.
func PurchaseURL(baseURL, phone, message string) string {
	base := strings.TrimSpace(baseURL)
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "phone=" + EncodeURIComponent(strings.TrimSpace(phone)) + "&text=" + EncodeURIComponent(message)
}

// Purchase opens the purchase deep link in a new browsing context from buy buttons.
// A button's data-buy-base, data-buy-phone and data-buy-message attributes override the
// configured values.
type Purchase struct {
	env       Env
	buttons   []dom.Element
	listeners dom.Listeners
}

// NewPurchase binds every buy button.
func NewPurchase(env Env) *Purchase {
	p := &Purchase{env: env, buttons: env.doc().QueryAll(BuySelector)}
	for _, b := range p.buttons {
		p.listeners.Add(b.Listen("click", func(ev dom.Event) {
			ev.PreventDefault()
			p.Buy(p.URLFor(b))
		}, false))
	}
	if len(p.buttons) == 0 {
		env.missing("purchase", BuySelector)
	}
	return p
}

// Enabled reports whether any buy button was found.
func (p *Purchase) Enabled() bool { return len(p.buttons) > 0 }

// URL returns the deep link built from configuration alone.
func (p *Purchase) URL() string {
	cfg := p.env.Config.Purchase
	return PurchaseURL(cfg.BaseURL, cfg.Phone, cfg.Message)
}

// URLFor returns the deep link for a particular button.
func (p *Purchase) URLFor(button dom.Element) string {
	cfg := p.env.Config.Purchase
	base, phone, message := cfg.BaseURL, cfg.Phone, cfg.Message
	if v, ok := button.Attr("data-buy-base"); ok && strings.TrimSpace(v) != "" {
		base = v
	}
	if v, ok := button.Attr("data-buy-phone"); ok && strings.TrimSpace(v) != "" {
		phone = v
	}
	if v, ok := button.Attr("data-buy-message"); ok && strings.TrimSpace(v) != "" {
		message = v
	}
	return PurchaseURL(base, phone, message)
}

// Buy opens link in a new tab.
func (p *Purchase) Buy(link string) {
	p.env.Logger.Info("purchase", "opening purchase link", nil)
	p.env.Window.Open(link, "_blank")
}

// Dispose detaches click listeners.
func (p *Purchase) Dispose() { p.listeners.ReleaseAll() }
