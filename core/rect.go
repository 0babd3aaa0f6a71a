// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/rect.go
// Summary: Integer cell rectangle used by all views.

package core

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// NewRect returns a Rect, clamping negative sizes to zero.
func NewRect(x, y, w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// InsetH shrinks the rect horizontally by left and right columns.
func (r Rect) InsetH(left, right int) Rect {
	if left < 0 {
		left = 0
	}
	if left > r.W {
		left = r.W
	}
	if right < 0 {
		right = 0
	}
	if right > r.W-left {
		right = r.W - left
	}
	return Rect{X: r.X + left, Y: r.Y, W: r.W - left - right, H: r.H}
}
