// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/width.go
// Summary: Unicode cell-width measurement and column/byte mapping.

package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TabWidth is the display width a tab expands to.
const TabWidth = 4

// RuneDisplayWidth returns the cell width of a single rune, expanding tabs.
func RuneDisplayWidth(r rune) int {
	if r == '\t' {
		return TabWidth
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s in cells. Tabs count as
// TabWidth; combining marks count as part of their grapheme cluster.
func StringWidth(s string) int {
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if g.Str() == "\t" {
			w += TabWidth
			continue
		}
		w += g.Width()
	}
	return w
}

// ByteRangeForCols maps the visual column interval [startCol, endCol) of s
// to a byte interval. Wide glyphs that straddle either boundary snap
// outward, so the returned interval is the minimal byte range whose width
// covers the requested columns. Returns ok=false when startCol >= endCol
// or the interval lies entirely past the end of s.
func ByteRangeForCols(s string, startCol, endCol int) (bs, be int, ok bool) {
	if startCol >= endCol {
		return 0, 0, false
	}
	col := 0
	bs = -1
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if g.Str() == "\t" {
			w = TabWidth
		}
		if w == 0 {
			continue
		}
		from, to := g.Positions()
		if bs < 0 && col+w > startCol {
			bs = from
		}
		col += w
		if col >= endCol {
			return bs, to, true
		}
	}
	if bs < 0 {
		return 0, 0, false
	}
	return bs, len(s), true
}

// TruncateToWidth cuts s to at most maxCols display columns, never
// splitting a wide glyph.
func TruncateToWidth(s string, maxCols int) string {
	if maxCols <= 0 {
		return ""
	}
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if g.Str() == "\t" {
			w = TabWidth
		}
		if col+w > maxCols {
			from, _ := g.Positions()
			return s[:from]
		}
		col += w
	}
	return s
}
