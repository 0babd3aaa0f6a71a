// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import "testing"

func TestClamping(t *testing.T) {
	var s State
	s.SetViewport(10, 5)
	s.SetContent(10, 20)

	s.ScrollYBy(100)
	if s.Y != 15 {
		t.Fatalf("Y = %d, want 15", s.Y)
	}
	if !s.AtBottom() {
		t.Fatal("AtBottom = false at max offset")
	}
	s.ScrollYBy(-100)
	if s.Y != 0 {
		t.Fatalf("Y = %d, want 0", s.Y)
	}

	// Shrinking content pulls the offset back in range.
	s.ToBottom()
	s.SetContent(10, 8)
	if s.Y != 3 {
		t.Fatalf("Y after shrink = %d, want 3", s.Y)
	}
}

func TestPageSteps(t *testing.T) {
	var s State
	s.SetViewport(10, 6)
	s.SetContent(10, 100)

	s.PageDown()
	if s.Y != 5 {
		t.Fatalf("PageDown: Y = %d, want 5", s.Y)
	}
	s.HalfPageDown()
	if s.Y != 8 {
		t.Fatalf("HalfPageDown: Y = %d, want 8", s.Y)
	}
	s.PageUp()
	s.HalfPageUp()
	if s.Y != 0 {
		t.Fatalf("round trip: Y = %d, want 0", s.Y)
	}
}

func TestContentFitsViewport(t *testing.T) {
	var s State
	s.SetViewport(10, 10)
	s.SetContent(4, 4)
	s.ScrollYBy(3)
	s.ScrollXBy(3)
	if s.X != 0 || s.Y != 0 {
		t.Fatalf("offsets = (%d,%d), want (0,0)", s.X, s.Y)
	}
	if !s.AtBottom() {
		t.Fatal("AtBottom should hold when content fits")
	}
	if _, ok := s.PercentY(); ok {
		t.Fatal("PercentY should report no position when content fits")
	}
}

func TestPercentY(t *testing.T) {
	var s State
	s.SetViewport(10, 5)
	s.SetContent(10, 20)

	// The visible bottom edge drives the percentage.
	if pct, ok := s.PercentY(); !ok || pct != 25 {
		t.Fatalf("PercentY at top = %d ok=%v, want 25", pct, ok)
	}
	s.ToBottom()
	if pct, ok := s.PercentY(); !ok || pct != 100 {
		t.Fatalf("PercentY at bottom = %d ok=%v, want 100", pct, ok)
	}
	s.Y = 5
	if pct, ok := s.PercentY(); !ok || pct != 50 {
		t.Fatalf("PercentY mid = %d ok=%v, want 50", pct, ok)
	}
}

func TestHorizontal(t *testing.T) {
	var s State
	s.SetViewport(5, 5)
	s.SetContent(12, 5)
	s.ScrollXBy(4)
	s.ScrollXBy(4)
	if s.X != 7 {
		t.Fatalf("X = %d, want 7", s.X)
	}
	s.ToLeft()
	if s.X != 0 {
		t.Fatalf("ToLeft: X = %d", s.X)
	}
	s.ToRight()
	if s.X != 7 {
		t.Fatalf("ToRight: X = %d, want 7", s.X)
	}
}
