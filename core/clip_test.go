// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func row(b *MemBuffer, y int) string {
	return strings.TrimRight(b.Row(y), " ")
}

func TestRenderStrClippedBasic(t *testing.T) {
	b := NewMemBuffer(10, 1)
	n := RenderStrClipped(b, 0, 0, 0, 10, "hello", tcell.StyleDefault)
	if n != 5 {
		t.Fatalf("written = %d, want 5", n)
	}
	if got := row(b, 0); got != "hello" {
		t.Fatalf("row = %q, want %q", got, "hello")
	}
}

func TestRenderStrClippedTabExpansion(t *testing.T) {
	b := NewMemBuffer(10, 1)
	RenderStrClipped(b, 0, 0, 0, 10, "a\tb", tcell.StyleDefault)
	if got := b.Row(0); got != "a    b    " {
		t.Fatalf("row = %q", got)
	}
}

func TestRenderStrClippedWideLeftStraddle(t *testing.T) {
	// A wide glyph straddling the left clip edge is dropped whole.
	b := NewMemBuffer(4, 1)
	RenderStrClipped(b, 0, 0, 1, 4, "日b", tcell.StyleDefault)
	if got := row(b, 0); got != "b" {
		t.Fatalf("row = %q, want %q", got, "b")
	}
}

func TestRenderStrClippedWideRightEdge(t *testing.T) {
	// A wide glyph crossing the right edge is not written at all.
	b := NewMemBuffer(3, 1)
	RenderStrClipped(b, 0, 0, 0, 3, "ab日", tcell.StyleDefault)
	if got := row(b, 0); got != "ab" {
		t.Fatalf("row = %q, want %q", got, "ab")
	}
}

func TestRenderStrClippedWideContinuationCell(t *testing.T) {
	b := NewMemBuffer(4, 1)
	RenderStrClipped(b, 0, 0, 0, 4, "日", tcell.StyleDefault)
	c, _ := b.Cell(0, 0)
	if c.Rune != '日' {
		t.Fatalf("cell 0 = %q", c.Rune)
	}
	c, _ = b.Cell(1, 0)
	if c.Rune != 0 {
		t.Fatalf("continuation cell rune = %q, want 0", c.Rune)
	}
}

func TestRenderSpansClippedFallbackStyle(t *testing.T) {
	fallback := tcell.StyleDefault.Foreground(tcell.ColorRed)
	explicit := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	b := NewMemBuffer(4, 1)
	RenderSpansClipped(b, 0, 0, 0, 4, []Span{
		{Text: "a"},
		{Text: "b", Style: explicit},
	}, fallback)
	c, _ := b.Cell(0, 0)
	if c.Style != fallback {
		t.Errorf("default-style span did not take the fallback style")
	}
	c, _ = b.Cell(1, 0)
	if c.Style != explicit {
		t.Errorf("explicit span style was not preserved")
	}
}

func TestRenderSpansClippedHorizontalScroll(t *testing.T) {
	b := NewMemBuffer(3, 1)
	RenderStrClipped(b, 0, 0, 2, 3, "abcdef", tcell.StyleDefault)
	if got := row(b, 0); got != "cde" {
		t.Fatalf("row = %q, want %q", got, "cde")
	}
}

func TestOverlaySpanCols(t *testing.T) {
	base := tcell.StyleDefault
	spans := []Span{{Text: "hello world"}}
	out := OverlaySpanCols(spans, 6, 11, base, func(s tcell.Style) tcell.Style {
		return s.Reverse(true)
	})
	if JoinPlain(out) != "hello world" {
		t.Fatalf("overlay changed text: %q", JoinPlain(out))
	}
	if len(out) != 2 {
		t.Fatalf("spans = %d, want 2", len(out))
	}
	if out[1].Text != "world" {
		t.Fatalf("overlay span = %q, want %q", out[1].Text, "world")
	}
	if out[1].Style != base.Reverse(true) {
		t.Errorf("overlay style not reversed")
	}
}

func TestScrollbar(t *testing.T) {
	th := tcell.StyleDefault
	b := NewMemBuffer(5, 4)
	area := NewRect(0, 0, 5, 4)

	// Content fits: blank track.
	RenderScrollbar(b, area, 0, 4, 3, th, th)
	for y := 0; y < 4; y++ {
		if c, _ := b.Cell(4, y); c.Rune != ' ' {
			t.Fatalf("fit content: cell (4,%d) = %q, want blank", y, c.Rune)
		}
	}

	// Content twice the viewport: half-height thumb at the top.
	RenderScrollbar(b, area, 0, 4, 8, th, th)
	for y := 0; y < 4; y++ {
		c, _ := b.Cell(4, y)
		want := y < 2
		if (c.Rune == '█') != want {
			t.Fatalf("scroll 0: thumb at y=%d = %v, want %v", y, c.Rune == '█', want)
		}
	}

	// Scrolled to the bottom: thumb at the bottom.
	RenderScrollbar(b, area, 4, 4, 8, th, th)
	if c, _ := b.Cell(4, 3); c.Rune != '█' {
		t.Fatalf("scroll max: no thumb at bottom")
	}
	if c, _ := b.Cell(4, 0); c.Rune == '█' {
		t.Fatalf("scroll max: thumb still at top")
	}
}

func TestScrollbarRounds(t *testing.T) {
	th := tcell.StyleDefault
	b := NewMemBuffer(5, 4)
	area := NewRect(0, 0, 5, 4)

	// 4*5/7 = 2.857 rounds to a 3-cell thumb; at scrollY 1 of 2 its top
	// rounds from 0.5 up to row 1.
	RenderScrollbar(b, area, 1, 5, 7, th, th)
	for y := 0; y < 4; y++ {
		c, _ := b.Cell(4, y)
		want := y >= 1
		if (c.Rune == '█') != want {
			t.Fatalf("rounded thumb at y=%d = %v, want %v", y, c.Rune == '█', want)
		}
	}
}
