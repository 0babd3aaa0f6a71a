// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/overlay.go
// Summary: Column-range style overlays on span lists.

package core

import "github.com/gdamore/tcell/v2"

// OverlaySpanCols applies transform to the visual columns [fromCol, toCol)
// of spans, splitting spans at the boundaries. toCol < 0 means "to end of
// line". Spans outside the range pass through untouched; spans with the
// zero style are resolved against fallback before transforming.
func OverlaySpanCols(spans []Span, fromCol, toCol int, fallback tcell.Style, transform func(tcell.Style) tcell.Style) []Span {
	out := make([]Span, 0, len(spans)+2)
	col := 0
	for _, sp := range spans {
		w := sp.Width()
		spStart, spEnd := col, col+w
		col = spEnd
		lo := fromCol
		if lo < spStart {
			lo = spStart
		}
		hi := spEnd
		if toCol >= 0 && toCol < hi {
			hi = toCol
		}
		if lo >= hi {
			out = append(out, sp)
			continue
		}
		bs, be, ok := ByteRangeForCols(sp.Text, lo-spStart, hi-spStart)
		if !ok {
			out = append(out, sp)
			continue
		}
		if bs > 0 {
			out = append(out, Span{Text: sp.Text[:bs], Style: sp.Style})
		}
		st := transform(PatchStyle(fallback, sp.Style))
		out = append(out, Span{Text: sp.Text[bs:be], Style: st})
		if be < len(sp.Text) {
			out = append(out, Span{Text: sp.Text[be:], Style: sp.Style})
		}
	}
	return out
}
