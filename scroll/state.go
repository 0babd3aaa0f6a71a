// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/state.go
// Summary: Shared 2-D scroll offset state with clamping.

package scroll

// State tracks a viewport over scrollable content. Offsets are clamped
// lazily so content and viewport sizes can be set in any order.
type State struct {
	X, Y                 int
	ViewportW, ViewportH int
	ContentW, ContentH   int
}

// SetViewport records the visible size and re-clamps the offsets.
func (s *State) SetViewport(w, h int) {
	s.ViewportW, s.ViewportH = w, h
	s.Clamp()
}

// SetContent records the content size and re-clamps the offsets.
func (s *State) SetContent(w, h int) {
	s.ContentW, s.ContentH = w, h
	s.Clamp()
}

// MaxX returns the largest valid horizontal offset.
func (s *State) MaxX() int {
	m := s.ContentW - s.ViewportW
	if m < 0 {
		m = 0
	}
	return m
}

// MaxY returns the largest valid vertical offset.
func (s *State) MaxY() int {
	m := s.ContentH - s.ViewportH
	if m < 0 {
		m = 0
	}
	return m
}

// Clamp forces both offsets into their valid ranges.
func (s *State) Clamp() {
	if s.X < 0 {
		s.X = 0
	}
	if s.X > s.MaxX() {
		s.X = s.MaxX()
	}
	if s.Y < 0 {
		s.Y = 0
	}
	if s.Y > s.MaxY() {
		s.Y = s.MaxY()
	}
}

// ScrollXBy shifts the horizontal offset and clamps.
func (s *State) ScrollXBy(d int) {
	s.X += d
	s.Clamp()
}

// ScrollYBy shifts the vertical offset and clamps.
func (s *State) ScrollYBy(d int) {
	s.Y += d
	s.Clamp()
}

// PageUp scrolls up by one viewport height minus one line of overlap.
func (s *State) PageUp() { s.ScrollYBy(-(s.pageStep())) }

// PageDown scrolls down by one viewport height minus one line of overlap.
func (s *State) PageDown() { s.ScrollYBy(s.pageStep()) }

// HalfPageUp scrolls up by half the viewport height.
func (s *State) HalfPageUp() { s.ScrollYBy(-maxInt(1, s.ViewportH/2)) }

// HalfPageDown scrolls down by half the viewport height.
func (s *State) HalfPageDown() { s.ScrollYBy(maxInt(1, s.ViewportH/2)) }

// ToTop jumps to the first line.
func (s *State) ToTop() { s.Y = 0 }

// ToBottom jumps so the last line is visible.
func (s *State) ToBottom() { s.Y = s.MaxY() }

// ToLeft jumps to the first column.
func (s *State) ToLeft() { s.X = 0 }

// ToRight jumps so the last column is visible.
func (s *State) ToRight() { s.X = s.MaxX() }

// AtBottom reports whether the viewport shows the end of the content.
func (s *State) AtBottom() bool { return s.Y >= s.MaxY() }

// PercentY returns how far down the visible bottom edge sits, as a
// rounded 0..100. ok is false when the content fits the viewport and no
// position is meaningful.
func (s *State) PercentY() (int, bool) {
	if s.ContentH == 0 || s.ViewportH == 0 || s.ContentH <= s.ViewportH {
		return 0, false
	}
	bottom := s.Y + s.ViewportH
	pct := (bottom*100 + s.ContentH/2) / s.ContentH
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

func (s *State) pageStep() int {
	return maxInt(1, s.ViewportH-1)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
