// Package naming derives safe output filenames from post metadata.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLen = 60

var (
	statusIDRe   = regexp.MustCompile(`/status/(\d+)`)
	nonAlnumRe   = regexp.MustCompile(`[^A-Za-z0-9]+`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// StatusID extracts the numeric post identifier from a post URL, or empty.
func StatusID(url string) string {
	if m := statusIDRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// Slug converts a title into a short, lowercase, ASCII-only filename stem.
// Accented letters are folded to their base form before non-alphanumerics
// collapse to underscores.
func Slug(title string) string {
	if title == "" {
		return ""
	}

	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	s := nonAlnumRe.ReplaceAllString(folded, "_")
	s = underscoreRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	s = strings.ToLower(s)
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}

// Filename builds the output file stem (no extension). A usable title slug
// wins; otherwise the handle and status id fill in, most specific first.
func Filename(title, handle, url string) string {
	slug := Slug(title)
	handleSlug := Slug(strings.TrimSpace(strings.TrimLeft(handle, "@")))
	statusID := StatusID(url)

	if len(slug) >= 3 {
		return slug
	}

	switch {
	case handleSlug != "" && statusID != "":
		return fmt.Sprintf("x_%s_%s", handleSlug, statusID)
	case statusID != "":
		return "x_article_" + statusID
	case handleSlug != "":
		return "x_" + handleSlug
	default:
		return "x_article"
	}
}
