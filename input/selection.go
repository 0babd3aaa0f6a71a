// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/selection.go
// Summary: Line/column text selection shared by scrolling views.

package input

// Point is a position in content coordinates: a line index and a visual
// column within that line.
type Point struct {
	Line int
	Col  int
}

// Less orders points by line, then column.
func (p Point) Less(q Point) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Selection is an anchor/head pair. Active means a drag is in progress
// or a committed range exists.
type Selection struct {
	Anchor Point
	Head   Point
	Active bool
}

// Normalized returns the selection's endpoints in document order.
func (s Selection) Normalized() (start, end Point) {
	if s.Head.Less(s.Anchor) {
		return s.Head, s.Anchor
	}
	return s.Anchor, s.Head
}

// NormalizedInclusive returns the ordered endpoints with the end column
// advanced by one, so a click-without-drag still covers one cell.
func (s Selection) NormalizedInclusive() (start, end Point) {
	start, end = s.Normalized()
	end.Col++
	return start, end
}

// Clear deactivates the selection.
func (s *Selection) Clear() { *s = Selection{} }

// Start anchors a new selection at p.
func (s *Selection) Start(p Point) {
	s.Anchor, s.Head, s.Active = p, p, true
}

// Extend moves the head to p, keeping the anchor.
func (s *Selection) Extend(p Point) {
	if !s.Active {
		s.Start(p)
		return
	}
	s.Head = p
}

// LineCols returns the visual column range [from, to) that the selection
// covers on line, and ok=false when the line is outside the selection.
// to < 0 means "to end of line".
func (s Selection) LineCols(line int) (from, to int, ok bool) {
	if !s.Active {
		return 0, 0, false
	}
	start, end := s.NormalizedInclusive()
	if line < start.Line || line > end.Line {
		return 0, 0, false
	}
	from, to = 0, -1
	if line == start.Line {
		from = start.Col
	}
	if line == end.Line {
		to = end.Col
	}
	return from, to, true
}
