package render

import (
	"strings"
	"testing"

	"github.com/jmylchreest/xmark/internal/extract"
)

const postURL = "https://x.com/janedoe/status/1234567890"

func fullResult() *extract.Result {
	return &extract.Result{
		Title:     "Understanding Distributed Consensus",
		Author:    "Jane Doe",
		Handle:    "@janedoe",
		Timestamp: "2024-01-01T00:00:00.000Z",
		Stats: []extract.Stat{
			{Key: "reply-count", Value: "12"},
			{Key: "like-count", Value: "345"},
		},
		Content: []extract.Item{
			{Type: extract.ItemText, Tag: "h2", Text: "Background"},
			{Type: extract.ItemText, Tag: "p", Text: "Consensus is hard."},
			{Type: extract.ItemImage, Src: "https://pbs.twimg.com/media/a.jpg", Alt: "diagram"},
			{Type: extract.ItemText, Tag: "li", Text: "first"},
			{Type: extract.ItemText, Tag: "li", Text: "second"},
			{Type: extract.ItemText, Tag: "p", Text: "Closing."},
		},
	}
}

func TestMarkdown_Deterministic(t *testing.T) {
	res := fullResult()
	a := Markdown(res, postURL)
	b := Markdown(res, postURL)
	if a != b {
		t.Error("rendering the same result twice must be byte-identical")
	}
}

func TestMarkdown_FullDocument(t *testing.T) {
	doc := Markdown(fullResult(), postURL)

	for _, want := range []string{
		"# Understanding Distributed Consensus\n",
		"**Author:** Jane Doe (@janedoe)",
		"**Date:** 2024-01-01T00:00:00.000Z",
		"**Source:** [" + postURL + "](" + postURL + ")",
		"**Stats:** 12 Reply Count | 345 Like Count",
		"\n---\n",
		"\n## Background\n",
		"\nConsensus is hard.\n",
		"\n![diagram](https://pbs.twimg.com/media/a.jpg)\n",
		"- first\n- second",
		"\nClosing.\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n\n%s", want, doc)
		}
	}
}

func TestMarkdown_MetadataOrder(t *testing.T) {
	doc := Markdown(fullResult(), postURL)

	author := strings.Index(doc, "**Author:**")
	date := strings.Index(doc, "**Date:**")
	source := strings.Index(doc, "**Source:**")
	stats := strings.Index(doc, "**Stats:**")
	rule := strings.Index(doc, "---")

	if !(author < date && date < source && source < stats && stats < rule) {
		t.Errorf("metadata out of order: author=%d date=%d source=%d stats=%d rule=%d",
			author, date, source, stats, rule)
	}
}

func TestMarkdown_ListClosedByParagraph(t *testing.T) {
	res := &extract.Result{
		Title: "Lists",
		Content: []extract.Item{
			{Type: extract.ItemText, Tag: "li", Text: "a"},
			{Type: extract.ItemText, Tag: "li", Text: "b"},
			{Type: extract.ItemText, Tag: "p", Text: "after"},
			{Type: extract.ItemText, Tag: "li", Text: "c"},
		},
	}

	doc := Markdown(res, postURL)

	if !strings.Contains(doc, "- a\n- b\n") {
		t.Errorf("consecutive items must be adjacent lines:\n%s", doc)
	}
	// The paragraph forces a blank line so the list block ends.
	if !strings.Contains(doc, "- b\n\n\nafter") {
		t.Errorf("list must be closed by a blank line before the paragraph:\n%s", doc)
	}
	if !strings.Contains(doc, "- c") {
		t.Errorf("a new list may start after the paragraph:\n%s", doc)
	}
}

func TestMarkdown_TitleFallback(t *testing.T) {
	tests := []struct {
		name  string
		title string
		url   string
		want  string
	}{
		{"empty title uses status id", "", "https://x.com/u/status/42", "# X Article 42\n"},
		{"placeholder title uses status id", "X Article", "https://x.com/u/status/42", "# X Article 42\n"},
		{"no status id in url", "", "https://x.com/u/about", "# X Article\n"},
		{"real title kept", "A Real Title", "https://x.com/u/status/42", "# A Real Title\n"},
		{"whitespace title treated as empty", "   ", "https://x.com/u/status/42", "# X Article 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Markdown(&extract.Result{Title: tt.title}, tt.url)
			first, _, _ := strings.Cut(doc, "\n\n")
			if first+"\n" != tt.want {
				t.Errorf("first line = %q, want %q", first+"\n", tt.want)
			}
		})
	}
}

func TestMarkdown_EmptyResultStillRenders(t *testing.T) {
	doc := Markdown(&extract.Result{}, "https://x.com/u/status/7")

	if !strings.Contains(doc, "# X Article 7") {
		t.Errorf("missing fallback title:\n%s", doc)
	}
	if !strings.Contains(doc, "**Source:** [https://x.com/u/status/7](https://x.com/u/status/7)") {
		t.Errorf("source line must always be present:\n%s", doc)
	}
	if strings.Contains(doc, "**Author:**") || strings.Contains(doc, "**Date:**") || strings.Contains(doc, "**Stats:**") {
		t.Errorf("absent metadata must not render:\n%s", doc)
	}
}

func TestMarkdown_SkipsEmptyItems(t *testing.T) {
	res := &extract.Result{
		Title: "Sparse",
		Content: []extract.Item{
			{Type: extract.ItemText, Tag: "p", Text: "   "},
			{Type: extract.ItemImage, Src: "", Alt: "broken"},
			{Type: extract.ItemText, Tag: "p", Text: "kept"},
		},
	}

	doc := Markdown(res, postURL)

	if strings.Contains(doc, "![broken]") {
		t.Errorf("image without src must be skipped:\n%s", doc)
	}
	if !strings.Contains(doc, "\nkept\n") {
		t.Errorf("non-empty paragraph must render:\n%s", doc)
	}
}

func TestMarkdown_HeadingLevels(t *testing.T) {
	res := &extract.Result{
		Title: "Headings",
		Content: []extract.Item{
			{Type: extract.ItemText, Tag: "h1", Text: "one"},
			{Type: extract.ItemText, Tag: "h2", Text: "two"},
			{Type: extract.ItemText, Tag: "h3", Text: "three"},
			{Type: extract.ItemText, Tag: "h4", Text: "four"},
		},
	}

	doc := Markdown(res, postURL)

	for _, want := range []string{"\n# one\n", "\n## two\n", "\n### three\n", "\n#### four\n"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestHumanizeStatKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"like-count", "Like Count"},
		{"reply-count", "Reply Count"},
		{`data-testid="repost-count"`, "Repost Count"},
		{"views", "Views"},
	}

	for _, tt := range tests {
		if got := humanizeStatKey(tt.in); got != tt.want {
			t.Errorf("humanizeStatKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://x.com/u/status/1234567890", "1234567890"},
		{"https://twitter.com/u/status/99/photo/1", "99"},
		{"https://x.com/u/about", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StatusID(tt.url); got != tt.want {
			t.Errorf("StatusID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
