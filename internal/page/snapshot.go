// Package page models a rendered DOM snapshot captured from the browser.
//
// A Snapshot is the single input to the extraction pipeline: the parsed
// document for one fully loaded, fully expanded page, plus the rendered
// dimensions of every image on it. Geometry has to be captured while the
// page is live since it does not survive into static HTML.
package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Dim holds the rendered width and height of an image in device pixels.
type Dim struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Snapshot is a materialized DOM tree for one already-navigated,
// already-scrolled, already-expanded page.
type Snapshot struct {
	URL       string
	HTML      string
	Doc       *goquery.Document
	Images    map[string]Dim // rendered dimensions keyed by img src
	FetchedAt time.Time
}

// FromHTML builds a Snapshot from captured outer HTML. Script, style and
// other non-rendered subtrees are removed so text queries reflect what the
// page actually displayed.
func FromHTML(url, rawHTML string, images map[string]Dim) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse snapshot HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, template").Remove()

	if images == nil {
		images = make(map[string]Dim)
	}

	return &Snapshot{
		URL:       url,
		HTML:      rawHTML,
		Doc:       doc,
		Images:    images,
		FetchedAt: time.Now(),
	}, nil
}

// Dim returns the rendered dimensions recorded for an image src.
func (s *Snapshot) Dim(src string) Dim {
	return s.Images[src]
}

// Text returns the whitespace-collapsed trimmed visible text of a node and
// its descendants.
func Text(n *html.Node) string {
	var b strings.Builder
	appendText(&b, n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// SelectionText returns the collapsed trimmed text of a goquery selection.
func SelectionText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func appendText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type != html.ElementNode {
		return
	}
	if skipTags[n.Data] {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(b, c)
	}
}

// BlockText approximates the browser's innerText for a node: inline text is
// joined, block-level boundaries and <br> produce line breaks. Lines are not
// trimmed; callers split on newlines and trim per line.
func BlockText(n *html.Node) string {
	var b strings.Builder
	appendBlockText(&b, n)
	return b.String()
}

// SelectionBlockText is BlockText over the first node of a selection.
func SelectionBlockText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	return BlockText(s.Nodes[0])
}

var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"template": true, "iframe": true, "head": true,
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "dt": true, "dd": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

func appendBlockText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// Collapse source whitespace the way layout does, keeping a single
		// boundary space so inline siblings stay separated.
		if t := collapseSpace(n.Data); t != "" {
			b.WriteString(t)
		}
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
		block := blockTags[n.Data]
		if block {
			breakLine(b)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendBlockText(b, c)
		}
		if block {
			breakLine(b)
		}
	}
}

// collapseSpace squeezes whitespace runs down to single spaces. Boundary
// spaces survive so inline siblings keep their separators; line-level
// trimming is the caller's job.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

func breakLine(b *strings.Builder) {
	if b.Len() > 0 && !endsWithBreak(b) {
		b.WriteByte('\n')
	}
}

func endsWithBreak(b *strings.Builder) bool {
	s := b.String()
	return len(s) > 0 && s[len(s)-1] == '\n'
}
