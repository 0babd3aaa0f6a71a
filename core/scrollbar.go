// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/scrollbar.go
// Summary: One-column vertical scrollbar renderer.

package core

import "github.com/gdamore/tcell/v2"

// RenderScrollbar draws a one-column scrollbar in the rightmost column of
// area. When contentH fits in viewportH the column is cleared to spaces.
// Otherwise a proportional thumb of at least one cell is drawn, its top
// derived from scrollY so the thumb reaches the bottom exactly when the
// content does.
func RenderScrollbar(buf Buffer, area Rect, scrollY, viewportH, contentH int, track, thumb tcell.Style) {
	if area.Empty() {
		return
	}
	x := area.X + area.W - 1
	if contentH <= viewportH || viewportH <= 0 {
		for y := 0; y < area.H; y++ {
			buf.SetCell(x, area.Y+y, ' ', track)
		}
		return
	}
	h := area.H
	thumbH := (h*viewportH + contentH/2) / contentH
	if thumbH < 1 {
		thumbH = 1
	}
	if thumbH > h {
		thumbH = h
	}
	maxScroll := contentH - viewportH
	if scrollY < 0 {
		scrollY = 0
	}
	if scrollY > maxScroll {
		scrollY = maxScroll
	}
	thumbTop := 0
	if maxScroll > 0 {
		thumbTop = (scrollY*(h-thumbH) + maxScroll/2) / maxScroll
	}
	for y := 0; y < h; y++ {
		r := ' '
		st := track
		if y >= thumbTop && y < thumbTop+thumbH {
			r = '█'
			st = thumb
		}
		buf.SetCell(x, area.Y+y, r, st)
	}
}
