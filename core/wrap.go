// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/wrap.go
// Summary: Plain word wrapping and URL-aware split helpers.

package core

import "strings"

// WrapPlain word-wraps text to width columns. Each input line wraps
// independently and always yields at least one output line, so blank
// input lines survive. Words longer than width are split by column.
func WrapPlain(text string, width int) []string {
	if width <= 0 {
		width = 1
	}
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		cur := ""
		curW := 0
		for _, word := range strings.Fields(raw) {
			ww := StringWidth(word)
			switch {
			case curW == 0 && ww <= width:
				cur, curW = word, ww
			case curW+1+ww <= width:
				cur += " " + word
				curW += 1 + ww
			default:
				if curW > 0 {
					out = append(out, cur)
					cur, curW = "", 0
				}
				for StringWidth(word) > width {
					head, tail := SplitToWidth(word, width)
					out = append(out, head)
					word = tail
				}
				cur, curW = word, StringWidth(word)
			}
		}
		out = append(out, cur)
	}
	return out
}

// SplitToWidth cuts s after at most maxCols columns, never splitting a
// wide glyph, and returns both halves. The head is never empty unless s
// is empty.
func SplitToWidth(s string, maxCols int) (head, tail string) {
	if s == "" {
		return "", ""
	}
	head = TruncateToWidth(s, maxCols)
	if head == "" {
		// A single glyph wider than maxCols still has to go somewhere.
		g := []rune(s)
		return string(g[0]), string(g[1:])
	}
	return head, s[len(head):]
}

// IsURLBreakChar reports whether r is a character URLs conventionally
// break after when wrapped.
func IsURLBreakChar(r rune) bool {
	switch r {
	case '.', '-', '_', '~', '?', '&', '#', '=', '/':
		return true
	}
	return false
}

// LooksLikeURL reports whether s starts with a scheme wrapping should
// treat as a URL.
func LooksLikeURL(s string) bool {
	for _, p := range []string{"http://", "https://", "file://", "mailto:"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// SplitURLToWidth cuts s after at most maxCols columns, preferring to
// break just after the last URL break character that still fits. Falls
// back to a plain column split when no break character fits.
func SplitURLToWidth(s string, maxCols int) (head, tail string) {
	head, tail = SplitToWidth(s, maxCols)
	if tail == "" {
		return head, tail
	}
	best := -1
	for i, r := range head {
		if IsURLBreakChar(r) {
			best = i + len(string(r))
		}
	}
	if best > 0 && best < len(head) {
		return head[:best], s[best:]
	}
	return head, tail
}
