package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// previewLength is the number of characters of page text kept on a miss.
const previewLength = 1000

// Snapshot is the rendered state of the result page that strategies read.
type Snapshot struct {
	// Text is the body's rendered text (innerText).
	Text string

	// HTML is the serialized DOM after scripts ran.
	HTML string

	doc *goquery.Document
}

// NewSnapshot parses rawHTML once so every strategy shares the same DOM.
// When text is empty it is derived from the markup.
func NewSnapshot(text, rawHTML string) *Snapshot {
	s := &Snapshot{Text: text, HTML: rawHTML}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML)); err == nil {
		s.doc = doc
	}
	if strings.TrimSpace(s.Text) == "" {
		s.Text = VisibleText(rawHTML)
	}
	return s
}

// Preview returns the first characters of the page text for diagnostics.
func (s *Snapshot) Preview() string {
	if utf8.RuneCountInString(s.Text) <= previewLength {
		return s.Text
	}
	return string([]rune(s.Text)[:previewLength])
}

// invisibleTags never contribute rendered text.
var invisibleTags = map[string]struct{}{
	"head":     {},
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"svg":      {},
}

// blockTags end a line of rendered text.
var blockTags = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "br": {},
	"dd": {}, "div": {}, "dl": {}, "dt": {}, "fieldset": {}, "footer": {},
	"form": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"header": {}, "hr": {}, "li": {}, "main": {}, "nav": {}, "ol": {}, "p": {},
	"pre": {}, "section": {}, "table": {}, "td": {}, "th": {}, "tr": {}, "ul": {},
}

// VisibleText approximates innerText for markup without a live browser:
// scripts and styles are dropped and block elements break lines.
func VisibleText(rawHTML string) string {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := invisibleTags[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
				if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			if _, block := blockTags[n.Data]; block && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte('\n')
			}
		}
	}
	walk(root)
	return strings.TrimSpace(b.String())
}
