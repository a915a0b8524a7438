package site

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Check is one line of a contract report.
type Check struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	OK       bool   `json:"ok"`
	Detail   string `json:"detail,omitempty"`
}

// Report lists how well a page satisfies the element contract the client behaviors
// bind to. Optional elements only disable their feature when missing.
type Report struct {
	Checks []Check `json:"checks"`
}

// OK reports whether every required check passed.
func (r Report) OK() bool {
	for _, c := range r.Checks {
		if c.Required && !c.OK {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass.
func (r Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

// String formats the report one check per line.
func (r Report) String() string {
	var b strings.Builder
	for _, c := range r.Checks {
		status := "ok"
		switch {
		case !c.OK && c.Required:
			status = "FAIL"
		case !c.OK:
			status = "warn"
		}
		fmt.Fprintf(&b, "%-4s %s", status, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&b, ": %s", c.Detail)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CheckContract parses an HTML page and verifies the ids, classes and links the client
// behaviors expect.
func CheckContract(r io.Reader) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("parse page: %w", err)
	}
	var rep Report
	add := func(name string, required, ok bool, detail string) {
		rep.Checks = append(rep.Checks, Check{Name: name, Required: required, OK: ok, Detail: detail})
	}
	anyID := func(ids ...string) (string, bool) {
		for _, id := range ids {
			if doc.Find("#" + id).Length() > 0 {
				return id, true
			}
		}
		return "", false
	}
	present := func(name string, required bool, ids ...string) {
		if id, ok := anyID(ids...); ok {
			add(name, required, true, "#"+id)
			return
		}
		add(name, required, false, "missing #"+strings.Join(ids, ", #"))
	}

	present("navbar", true, "navbar")
	present("menu button", false, "hamburger", "mobile-menu-btn", "mobile-menu-toggle")
	present("mobile menu", false, "mobile-menu")
	present("menu overlay", false, "menu-overlay")
	present("scroll progress", false, "scroll-progress", "progress-bar")
	present("loading screen", false, "loading")
	present("footer year", false, "year")

	if icon := doc.Find("#hamburger i, #mobile-menu-btn i, #mobile-menu-toggle i"); icon.Length() > 0 {
		ok := icon.HasClass("fa-bars") || icon.HasClass("fa-times")
		add("menu icon", false, ok, "icon should carry fa-bars or fa-times")
	}

	sections := doc.Find("section[id]")
	add("sections", true, sections.Length() > 0, fmt.Sprintf("%d sections", sections.Length()))

	ids := map[string]int{}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids[id]++
	})
	var dupes []string
	for id, n := range ids {
		if n > 1 {
			dupes = append(dupes, id)
		}
	}
	slices.Sort(dupes)
	add("unique ids", true, len(dupes) == 0, strings.Join(dupes, ", "))

	var broken []string
	doc.Find(`a[href^="#"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if len(href) < 2 {
			return
		}
		if ids[href[1:]] == 0 {
			broken = append(broken, href)
		}
	})
	add("anchor targets", true, len(broken) == 0, strings.Join(broken, ", "))

	reveal := doc.Find("[data-aos]").Length()
	add("reveal targets", false, reveal > 0, fmt.Sprintf("%d elements", reveal))
	buy := doc.Find("[data-buy]").Length()
	add("buy buttons", false, buy > 0, fmt.Sprintf("%d buttons", buy))
	return rep, nil
}
