// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/buffer.go
// Summary: Cell buffer contract plus an in-memory implementation.

package core

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Buffer is the write-only cell sink every view draws into. Out-of-bounds
// writes must be ignored by the implementation, not by callers.
type Buffer interface {
	Size() (w, h int)
	// SetCell writes one glyph cell. A width-2 glyph occupies this cell
	// plus a continuation cell that callers write as rune 0.
	SetCell(x, y int, r rune, style tcell.Style)
	// SetStyle paints every cell in the rect with style, keeping glyphs.
	SetStyle(r Rect, style tcell.Style)
}

// Cell is one terminal cell in a MemBuffer.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// MemBuffer is an addressable in-memory cell grid. It backs tests and the
// dump-mode CLI; interactive hosts wrap their own screen instead.
type MemBuffer struct {
	w, h  int
	cells []Cell
}

// NewMemBuffer returns a buffer of w×h space-filled cells.
func NewMemBuffer(w, h int) *MemBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &MemBuffer{w: w, h: h, cells: make([]Cell, w*h)}
	for i := range b.cells {
		b.cells[i].Rune = ' '
	}
	return b
}

func (b *MemBuffer) Size() (int, int) { return b.w, b.h }

func (b *MemBuffer) SetCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.cells[y*b.w+x] = Cell{Rune: r, Style: style}
}

func (b *MemBuffer) SetStyle(r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		if y < 0 || y >= b.h {
			continue
		}
		for x := r.X; x < r.X+r.W; x++ {
			if x < 0 || x >= b.w {
				continue
			}
			b.cells[y*b.w+x].Style = style
		}
	}
}

// Cell returns the cell at (x, y) and whether it is in bounds.
func (b *MemBuffer) Cell(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return Cell{}, false
	}
	return b.cells[y*b.w+x], true
}

// Row returns the plain text of row y. Continuation cells of wide glyphs
// contribute nothing; trailing spaces are kept.
func (b *MemBuffer) Row(y int) string {
	if y < 0 || y >= b.h {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.w; x++ {
		c := b.cells[y*b.w+x]
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// ScreenBuffer adapts a live tcell.Screen to the Buffer contract.
type ScreenBuffer struct {
	Screen tcell.Screen
}

func (s ScreenBuffer) Size() (int, int) { return s.Screen.Size() }

func (s ScreenBuffer) SetCell(x, y int, r rune, style tcell.Style) {
	if r == 0 {
		// tcell tracks wide-rune continuations itself.
		return
	}
	s.Screen.SetContent(x, y, r, nil, style)
}

func (s ScreenBuffer) SetStyle(r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			ch, comb, _, _ := s.Screen.GetContent(x, y)
			s.Screen.SetContent(x, y, ch, comb, style)
		}
	}
}
