package page

import (
	"strings"
	"testing"
)

func mustSnapshot(t *testing.T, html string, images map[string]Dim) *Snapshot {
	t.Helper()
	snap, err := FromHTML("https://x.com/u/status/1", html, images)
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	return snap
}

func TestFromHTML_StripsNonRenderedContent(t *testing.T) {
	snap := mustSnapshot(t, `<html><body>
		<p>Visible</p>
		<script>var hidden = "scripted";</script>
		<style>.x { color: red }</style>
		<noscript>enable js</noscript>
	</body></html>`, nil)

	text := snap.Doc.Find("body").Text()
	if !strings.Contains(text, "Visible") {
		t.Error("expected visible text to survive")
	}
	for _, leaked := range []string{"scripted", "color: red", "enable js"} {
		if strings.Contains(text, leaked) {
			t.Errorf("expected %q to be stripped", leaked)
		}
	}
}

func TestFromHTML_InvalidInputStillParses(t *testing.T) {
	// html.Parse is lenient; truncated markup still yields a document.
	snap := mustSnapshot(t, `<p>unclosed`, nil)
	if got := SelectionText(snap.Doc.Find("p")); got != "unclosed" {
		t.Errorf("expected lenient parse, got %q", got)
	}
}

func TestDim(t *testing.T) {
	snap := mustSnapshot(t, `<html><body></body></html>`, map[string]Dim{
		"https://pbs.twimg.com/media/a.jpg": {Width: 640, Height: 480},
	})

	if d := snap.Dim("https://pbs.twimg.com/media/a.jpg"); d.Width != 640 || d.Height != 480 {
		t.Errorf("Dim() = %+v, want 640x480", d)
	}
	if d := snap.Dim("https://pbs.twimg.com/media/missing.jpg"); d.Width != 0 || d.Height != 0 {
		t.Errorf("missing src should report zero dimensions, got %+v", d)
	}
}

func TestText_CollapsesWhitespace(t *testing.T) {
	snap := mustSnapshot(t, "<p>  one\n\ttwo   three </p>", nil)
	sel := snap.Doc.Find("p")
	if len(sel.Nodes) == 0 {
		t.Fatal("no p element")
	}
	if got := Text(sel.Nodes[0]); got != "one two three" {
		t.Errorf("Text() = %q, want %q", got, "one two three")
	}
}

func TestSelectionText(t *testing.T) {
	snap := mustSnapshot(t, "<p>Hello <b>bold</b> world</p>", nil)
	if got := SelectionText(snap.Doc.Find("p")); got != "Hello bold world" {
		t.Errorf("SelectionText() = %q", got)
	}
}

func TestBlockText(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		sel   string
		lines []string
	}{
		{
			name:  "block boundaries become line breaks",
			html:  `<div id="r"><p>first</p><p>second</p></div>`,
			sel:   "#r",
			lines: []string{"first", "second"},
		},
		{
			name:  "br splits lines inside one element",
			html:  `<div id="r"><span>alpha<br>beta</span></div>`,
			sel:   "#r",
			lines: []string{"alpha", "beta"},
		},
		{
			name:  "inline siblings stay on one line",
			html:  `<div id="r">Hello <b>bold</b> world</div>`,
			sel:   "#r",
			lines: []string{"Hello bold world"},
		},
		{
			name:  "nested blocks each break",
			html:  `<div id="r"><div><span>- one</span></div><div><span>- two</span></div></div>`,
			sel:   "#r",
			lines: []string{"- one", "- two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := mustSnapshot(t, tt.html, nil)
			raw := SelectionBlockText(snap.Doc.Find(tt.sel))

			var got []string
			for _, line := range strings.Split(raw, "\n") {
				line = strings.TrimSpace(line)
				if line != "" {
					got = append(got, line)
				}
			}

			if len(got) != len(tt.lines) {
				t.Fatalf("got lines %q, want %q", got, tt.lines)
			}
			for i := range got {
				if got[i] != tt.lines[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.lines[i])
				}
			}
		})
	}
}

func TestSelectionBlockText_EmptySelection(t *testing.T) {
	snap := mustSnapshot(t, `<p>x</p>`, nil)
	if got := SelectionBlockText(snap.Doc.Find("#nope")); got != "" {
		t.Errorf("expected empty string for empty selection, got %q", got)
	}
}
