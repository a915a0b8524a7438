package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/styles.css
var defaultStyles []byte

// PageData is what the page template is executed with.
type PageData struct {
	Content  *Content
	Plans    []Plan
	Year     int
	LogLevel string
	// BuyBase overrides the chat endpoint the buy buttons open. Empty keeps the built-in one.
	BuyBase string
}

// Renderer turns Content into the landing page. Markdown bodies are converted with
// goldmark and then sanitized, so content files cannot inject script.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	page   *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: bluemonday.UGCPolicy(),
	}
	funcs := template.FuncMap{
		"markdown":  r.Markdown,
		"animation": animation,
		"stagger":   stagger,
	}
	page, err := template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	r.page = page
	return r, nil
}

// Markdown renders src to sanitized HTML.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// Render writes the full page. Plans without their own phone or message inherit purchase,
// and a configured base URL is carried on every buy button.
func (r *Renderer) Render(w io.Writer, c *Content, year int, logLevel string, purchase PurchaseConfig) error {
	plans := make([]Plan, len(c.Plans))
	for i, p := range c.Plans {
		if p.Phone == "" {
			p.Phone = purchase.Phone
		}
		if p.Message == "" {
			p.Message = purchase.Message
		}
		plans[i] = p
	}
	data := PageData{Content: c, Plans: plans, Year: year, LogLevel: strings.ToLower(logLevel), BuyBase: strings.TrimSpace(purchase.BaseURL)}

	var buf bytes.Buffer
	if err := r.page.ExecuteTemplate(&buf, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func animation(name string) string {
	if strings.TrimSpace(name) == "" {
		return "fade-up"
	}
	return name
}

// stagger spaces card reveals 100ms apart.
func stagger(i int) string {
	return strconv.Itoa((i + 1) * 100)
}
