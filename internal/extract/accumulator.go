package extract

// accumulator carries the ordered item list and the dedup ledgers through
// the walk. Both passes thread it explicitly, so the walk stays a function
// of its inputs.
type accumulator struct {
	items     []Item
	seenText  map[string]struct{}
	seenImage map[string]struct{}
	textLen   int
}

func newAccumulator() *accumulator {
	return &accumulator{
		seenText:  make(map[string]struct{}),
		seenImage: make(map[string]struct{}),
	}
}

// addText emits a text item unless the text is empty or already seen.
// The dedup key is the text itself.
func (a *accumulator) addText(tag, text string) bool {
	return a.addTextKeyed(tag, text, text)
}

// addTextKeyed emits a text item deduplicated under an explicit key. The
// fallback pass keys on the raw line while emitting the marker-stripped
// text.
func (a *accumulator) addTextKeyed(tag, text, key string) bool {
	if text == "" || key == "" {
		return false
	}
	if _, ok := a.seenText[key]; ok {
		return false
	}
	a.seenText[key] = struct{}{}
	a.items = append(a.items, Item{Type: ItemText, Tag: tag, Text: text})
	a.textLen += len(text)
	return true
}

// addImage emits an image item unless the src was already seen.
func (a *accumulator) addImage(src, alt string) bool {
	if src == "" {
		return false
	}
	if _, ok := a.seenImage[src]; ok {
		return false
	}
	a.seenImage[src] = struct{}{}
	a.items = append(a.items, Item{Type: ItemImage, Src: src, Alt: alt})
	return true
}

// seen reports whether a dedup key has been recorded.
func (a *accumulator) seen(key string) bool {
	_, ok := a.seenText[key]
	return ok
}
