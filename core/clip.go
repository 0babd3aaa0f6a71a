// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/clip.go
// Summary: Horizontal clipping renderer for styled spans.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// RenderSpansClipped draws spans at (x, y) starting from visual column
// startCol of the span text, writing at most maxCols cells. Tabs expand
// to TabWidth spaces, width-0 runes are dropped, and wide glyphs that
// straddle either clip edge are not written at all. Spans with the zero
// style are drawn with fallback. Returns the number of cells written.
func RenderSpansClipped(buf Buffer, x, y, startCol, maxCols int, spans []Span, fallback tcell.Style) int {
	if maxCols <= 0 {
		return 0
	}
	col := 0
	written := 0
	for _, sp := range spans {
		st := PatchStyle(fallback, sp.Style)
		for _, r := range sp.Text {
			if r == '\t' {
				for i := 0; i < TabWidth; i++ {
					col, written = putCell(buf, x, y, startCol, maxCols, col, written, ' ', 1, st)
					if written >= maxCols {
						return written
					}
				}
				continue
			}
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			col, written = putCell(buf, x, y, startCol, maxCols, col, written, r, w, st)
			if written >= maxCols {
				return written
			}
		}
	}
	return written
}

// RenderStrClipped draws a single string with one style, clipped the same
// way RenderSpansClipped clips spans.
func RenderStrClipped(buf Buffer, x, y, startCol, maxCols int, s string, style tcell.Style) int {
	return RenderSpansClipped(buf, x, y, startCol, maxCols, []Span{{Text: s, Style: style}}, style)
}

func putCell(buf Buffer, x, y, startCol, maxCols, col, written int, r rune, w int, st tcell.Style) (int, int) {
	next := col + w
	if next <= startCol {
		return next, written
	}
	if col < startCol {
		// Wide glyph straddling the left clip edge: drop it whole.
		return next, written
	}
	out := col - startCol
	if out+w > maxCols {
		// A wide glyph crossing the right edge is not written; reporting
		// the area full stops the caller.
		return next, maxCols
	}
	buf.SetCell(x+out, y, r, st)
	if w == 2 {
		buf.SetCell(x+out+1, y, 0, st)
	}
	return next, written + w
}
