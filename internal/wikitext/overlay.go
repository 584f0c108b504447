package wikitext

import "strings"

type cellState uint8

const (
	cellOriginal cellState = iota
	cellHead
	cellTombstone
)

// overlayCell is the per-rune state of a pending rewrite: the original rune,
// a replacement head carrying the text rendered in its place, or a tombstone
// suppressing the rune from output.
type overlayCell struct {
	state cellState
	repl  string
}

// overlay is a mutable per-rune projection of a source string. Passes write
// replacements into it by span; compact folds it into the final output.
// A fresh overlay is built per transcode call and consumed exactly once.
type overlay struct {
	runes []rune
	cells []overlayCell
}

func newOverlay(source string) *overlay {
	runes := []rune(source)
	return &overlay{
		runes: runes,
		cells: make([]overlayCell, len(runes)),
	}
}

// replace writes repl over the span: the first offset becomes the replacement
// head and every remaining offset a tombstone. An empty repl deletes the span
// outright. Later writes to an offset overwrite earlier ones; pass ordering
// guarantees this never lands inside an already-resolved construct's interior.
func (o *overlay) replace(span Span, repl string) {
	if span.Start >= span.End {
		return
	}
	if repl == "" {
		o.delete(span)
		return
	}
	o.cells[span.Start] = overlayCell{state: cellHead, repl: repl}
	for i := span.Start + 1; i < span.End; i++ {
		o.cells[i] = overlayCell{state: cellTombstone}
	}
}

// delete tombstones every offset of the span.
func (o *overlay) delete(span Span) {
	for i := span.Start; i < span.End; i++ {
		o.cells[i] = overlayCell{state: cellTombstone}
	}
}

// compact folds the overlay into the output string, preserving the relative
// order of all surviving original runes.
func (o *overlay) compact() string {
	var b strings.Builder
	b.Grow(len(o.runes))
	for i, cell := range o.cells {
		switch cell.state {
		case cellOriginal:
			b.WriteRune(o.runes[i])
		case cellHead:
			b.WriteString(cell.repl)
		}
	}
	return b.String()
}
