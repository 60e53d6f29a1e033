package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/xmark/internal/logger"
	"github.com/jmylchreest/xmark/internal/page"
)

// Extract runs the content pipeline over one snapshot: container selection,
// the classified pre-order walk, the sparse-text fallback pass and metadata
// derivation. A delivered snapshot always yields a Result, however sparse;
// only the absence of a snapshot is an error, and that is the browser's to
// report.
func Extract(snap *page.Snapshot, profile *Profile) *Result {
	if profile == nil {
		profile = DefaultProfile()
	}

	container := selectContainer(snap.Doc, profile)
	acc := newAccumulator()

	if len(container.Nodes) > 0 {
		walkContent(container.Nodes[0], snap, profile, acc)
	}

	structuredLen := acc.textLen
	if structuredLen < profile.SparseThreshold {
		logger.Debug("structured extraction sparse, running line fallback",
			"text_len", structuredLen,
			"threshold", profile.SparseThreshold)
		fallbackLines(snap.Doc, container, profile, acc)
	}

	res := &Result{
		Title:   deriveTitle(container, profile),
		Content: acc.items,
	}
	extractMeta(snap.Doc, profile, res)

	logger.Debug("extraction complete",
		"title", res.Title,
		"items", len(res.Content),
		"structured_text_len", structuredLen)

	return res
}

// selectContainer evaluates the candidate selectors and picks the existing
// candidate with the most visible text. Sites sometimes wrap the true
// content in a shallower but shorter element than a deeper structural one,
// so the first match is not automatically the best one. Falls back to the
// document body when no candidate exists.
func selectContainer(doc *goquery.Document, p *Profile) *goquery.Selection {
	var candidates []*goquery.Selection
	for _, sel := range p.ContainerSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return doc.Find("body").First()
	}

	container := candidates[0]
	maxLen := 0
	for _, s := range candidates {
		if l := len(page.SelectionText(s)); l > maxLen {
			maxLen = l
			container = s
		}
	}
	return container
}

// walkContent visits every element under n in document order, classifying
// each into the accumulator. Skipped nodes (hidden from assistive
// technology, or buttons) are not classified but their subtrees are still
// walked, matching how content is nested inside X's control wrappers.
func walkContent(n *html.Node, snap *page.Snapshot, p *Profile, acc *accumulator) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !skippable(c) {
			classify(c, snap, p, acc)
		}
		walkContent(c, snap, p, acc)
	}
}

func skippable(n *html.Node) bool {
	return attr(n, "aria-hidden") == "true" || attr(n, "role") == "button"
}

func classify(n *html.Node, snap *page.Snapshot, p *Profile, acc *accumulator) {
	switch n.Data {
	case "img":
		src := attr(n, "src")
		if src == "" || !strings.Contains(src, p.MediaHost) {
			return
		}
		d := snap.Dim(src)
		if d.Width <= p.MinImageSize || d.Height <= p.MinImageSize {
			return
		}
		alt := attr(n, "alt")
		if alt == "" {
			alt = "Image"
		}
		acc.addImage(src, alt)

	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "li", "blockquote", "pre":
		acc.addText(collapseTag(n.Data), page.Text(n))

	case "div", "span":
		// Leaf containers capture text authored without semantic tags.
		if countElementChildren(n) == 0 {
			acc.addText("p", page.Text(n))
		}
	}
}

// collapseTag reduces the tag vocabulary to h1-h4, p and li.
func collapseTag(tag string) string {
	switch tag {
	case "h5", "h6":
		return "h4"
	case "blockquote", "pre":
		return "p"
	default:
		return tag
	}
}

var bulletRe = regexp.MustCompile(`^[-•]\s+`)

// fallbackLines is the secondary extraction strategy for pages that render
// most content as unstructured line-wrapped text. It splits the raw visible
// text of the article body (or the container) into lines and emits every
// line the structured walk did not already produce. Purely additive: items
// already emitted are never removed or reordered.
func fallbackLines(doc *goquery.Document, container *goquery.Selection, p *Profile, acc *accumulator) {
	region := doc.Find(p.ArticleBodySelector).First()
	if region.Length() == 0 {
		region = container
	}

	raw := page.SelectionBlockText(region)
	added := 0
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || acc.seen(line) {
			continue
		}
		tag, text := "p", line
		if bulletRe.MatchString(line) {
			tag = "li"
			text = bulletRe.ReplaceAllString(line, "")
		}
		// The raw line is the dedup key even though the emitted text has
		// the bullet marker stripped.
		if acc.addTextKeyed(tag, text, line) {
			added++
		}
	}
	logger.Debug("fallback pass complete", "lines_added", added)
}

// deriveTitle prefers the first h1/h2 inside the container, then the first
// line of the primary post text, then empty. The renderer supplies a
// URL-derived fallback for the empty case.
func deriveTitle(container *goquery.Selection, p *Profile) string {
	if h := container.Find("h1, h2").First(); h.Length() > 0 {
		return page.SelectionText(h)
	}
	if t := container.Find(p.PostTextSelector).First(); t.Length() > 0 {
		raw := strings.TrimSpace(page.SelectionBlockText(t))
		first, _, _ := strings.Cut(raw, "\n")
		first = strings.TrimSpace(first)
		if r := []rune(first); len(r) > p.TitleMaxRunes {
			first = string(r[:p.TitleMaxRunes])
		}
		return first
	}
	return ""
}

// extractMeta reads author, handle, timestamp and stat counters from their
// fixed structural locations. Each is best-effort; anything absent stays
// empty.
func extractMeta(doc *goquery.Document, p *Profile, res *Result) {
	if author := doc.Find(p.AuthorSelector).First(); author.Length() > 0 {
		res.Author = page.SelectionText(author.Find("span").First())
		res.Handle = page.SelectionText(author.Find(`a[href^="/"]`).First())
	}

	if t := doc.Find("time").First(); t.Length() > 0 {
		if dt, ok := t.Attr("datetime"); ok && dt != "" {
			res.Timestamp = dt
		} else {
			res.Timestamp = page.SelectionText(t)
		}
	}

	seenKeys := make(map[string]struct{})
	doc.Find(p.StatsSelector).Each(func(_ int, s *goquery.Selection) {
		key, ok := s.Attr("data-testid")
		if !ok || key == "" {
			return
		}
		if _, dup := seenKeys[key]; dup {
			return
		}
		seenKeys[key] = struct{}{}
		res.Stats = append(res.Stats, Stat{Key: key, Value: page.SelectionText(s)})
	})
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func countElementChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}
