// Package site renders the landing page that hosts the WASM bundle and serves it with
// its assets.
package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/default.yaml
var defaultContent []byte

// Content is everything the landing page template displays.
type Content struct {
	Lang         string    `yaml:"lang"`
	Title        string    `yaml:"title"`
	Description  string    `yaml:"description"`
	Brand        string    `yaml:"brand"`
	Nav          []NavLink `yaml:"nav"`
	Hero         Hero      `yaml:"hero"`
	Sections     []Section `yaml:"sections"`
	PricingTitle string    `yaml:"pricing_title"`
	BuyLabel     string    `yaml:"buy_label"`
	Plans        []Plan    `yaml:"plans"`
	Footer       string    `yaml:"footer"`
}

// NavLink is one entry in the navbar and the mobile menu.
type NavLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Hero is the first screen. Body is Markdown.
type Hero struct {
	Heading  string `yaml:"heading"`
	Body     string `yaml:"body"`
	CTALabel string `yaml:"cta_label"`
	CTAHref  string `yaml:"cta_href"`
}

// Section is a titled block with a Markdown body and optional cards.
type Section struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Animation string `yaml:"animation"`
	Delay     int    `yaml:"delay"`
	Cards     []Card `yaml:"cards"`
}

// Card is a small feature tile inside a section.
type Card struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Plan is a purchasable offer. Phone and Message override the configured purchase chat.
type Plan struct {
	Name     string   `yaml:"name"`
	Price    string   `yaml:"price"`
	Features []string `yaml:"features"`
	Featured bool     `yaml:"featured"`
	Phone    string   `yaml:"phone"`
	Message  string   `yaml:"message"`
}

// reservedIDs are rendered by the page template itself.
var reservedIDs = map[string]bool{
	"home": true, "pricing": true, "navbar": true, "mobile-menu": true, "menu-overlay": true,
	"loading": true, "scroll-progress": true, "year": true, "mobile-menu-btn": true,
}

// DefaultContent returns the embedded landing page content.
func DefaultContent() (*Content, error) {
	return ParseContent(defaultContent)
}

// LoadContent reads content from path, or the embedded default when path is empty.
func LoadContent(path string) (*Content, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultContent()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	c, err := ParseContent(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// ParseContent decodes and validates YAML content.
func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.BuyLabel == "" {
		c.BuyLabel = "Buy now"
	}
	if c.PricingTitle == "" {
		c.PricingTitle = "Pricing"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every section can be linked to and every nav link has a target.
func (c *Content) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	ids := map[string]bool{"home": true}
	if len(c.Plans) > 0 {
		ids["pricing"] = true
	}
	for i, s := range c.Sections {
		id := strings.TrimSpace(s.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("section %d has no id", i))
		case reservedIDs[id]:
			errs = append(errs, fmt.Errorf("section id %q is reserved", id))
		case ids[id]:
			errs = append(errs, fmt.Errorf("duplicate section id %q", id))
		}
		ids[id] = true
	}
	for _, link := range c.Nav {
		if !strings.HasPrefix(link.Href, "#") {
			continue
		}
		if !ids[strings.TrimPrefix(link.Href, "#")] {
			errs = append(errs, fmt.Errorf("nav link %q points at missing section %s", link.Label, link.Href))
		}
	}
	return errors.Join(errs...)
}
