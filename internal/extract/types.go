// Package extract turns a rendered page snapshot into an ordered,
// deduplicated content model.
package extract

// ItemType discriminates the content item union.
type ItemType string

const (
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
)

// Item is one piece of extracted content in document order. Text items
// carry Tag and Text; image items carry Src and Alt.
type Item struct {
	Type ItemType `json:"type"`
	Tag  string   `json:"tag,omitempty"` // h1, h2, h3, h4, p or li
	Text string   `json:"text,omitempty"`
	Src  string   `json:"src,omitempty"`
	Alt  string   `json:"alt,omitempty"`
}

// Stat is one counter read from the page, in DOM order.
type Stat struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Result is everything extracted from one snapshot. It is built once per
// run and read once by the renderer. Every field except Content may be
// empty; absence of page data is never an error.
//
// Invariants: no two text items share the same Text, no two image items
// share the same Src.
type Result struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Handle    string `json:"handle"`
	Timestamp string `json:"timestamp"`
	Stats     []Stat `json:"stats,omitempty"`
	Content   []Item `json:"content"`
}
