// Package render converts an extraction result into a markdown document.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/xmark/internal/extract"
)

const titlePlaceholder = "X Article"

var statusIDRe = regexp.MustCompile(`/status/(\d+)`)

// StatusID extracts the numeric post identifier from a post URL, or empty.
func StatusID(url string) string {
	if m := statusIDRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// Markdown renders one extraction result into a complete document. Pure and
// deterministic: the same result and URL always produce byte-identical
// output, and no input is too sparse to render. At minimum the document
// carries a title line and the source link.
func Markdown(res *extract.Result, sourceURL string) string {
	var lines []string

	title := strings.TrimSpace(res.Title)
	if title == "" || title == titlePlaceholder {
		if id := StatusID(sourceURL); id != "" {
			title = fmt.Sprintf("%s %s", titlePlaceholder, id)
		} else {
			title = titlePlaceholder
		}
	}
	lines = append(lines, fmt.Sprintf("# %s\n", title))

	if res.Author != "" || res.Handle != "" {
		authorLine := "**Author:** " + res.Author
		if res.Handle != "" {
			authorLine += fmt.Sprintf(" (%s)", res.Handle)
		}
		lines = append(lines, authorLine)
	}

	if res.Timestamp != "" {
		lines = append(lines, "**Date:** "+res.Timestamp)
	}

	lines = append(lines, fmt.Sprintf("**Source:** [%s](%s)", sourceURL, sourceURL))

	if len(res.Stats) > 0 {
		parts := make([]string, 0, len(res.Stats))
		for _, st := range res.Stats {
			parts = append(parts, st.Value+" "+humanizeStatKey(st.Key))
		}
		lines = append(lines, "**Stats:** "+strings.Join(parts, " | "))
	}

	lines = append(lines, "\n---\n")

	inList := false
	for _, item := range res.Content {
		switch item.Type {
		case extract.ItemText:
			text := strings.TrimSpace(item.Text)
			if text == "" {
				continue
			}

			// A non-list block closes the current list visually.
			if inList && item.Tag != "li" {
				inList = false
				lines = append(lines, "")
			}

			switch item.Tag {
			case "h1":
				lines = append(lines, fmt.Sprintf("\n# %s\n", text))
			case "h2":
				lines = append(lines, fmt.Sprintf("\n## %s\n", text))
			case "h3":
				lines = append(lines, fmt.Sprintf("\n### %s\n", text))
			case "h4":
				lines = append(lines, fmt.Sprintf("\n#### %s\n", text))
			case "li":
				lines = append(lines, "- "+text)
				inList = true
			default:
				lines = append(lines, fmt.Sprintf("\n%s\n", text))
			}

		case extract.ItemImage:
			if item.Src != "" {
				lines = append(lines, fmt.Sprintf("\n![%s](%s)\n", item.Alt, item.Src))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// humanizeStatKey turns a raw counter key like `like-count` (or its
// attribute-wrapped form) into a display label like `Like Count`.
// Casers are stateful, so one is created per call.
func humanizeStatKey(key string) string {
	key = strings.TrimPrefix(key, `data-testid="`)
	key = strings.ReplaceAll(key, `"`, "")
	key = strings.ReplaceAll(key, "-", " ")
	return cases.Title(language.English).String(key)
}
