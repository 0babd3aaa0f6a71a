// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/wrap.go
// Summary: Segment-preserving word wrap and padding.

package markdown

import (
	"strings"

	"github.com/framegrace/texelview/core"
)

// splitSegmentWS splits a segment into alternating whitespace and word
// tokens, each keeping the segment's attributes.
func splitSegmentWS(s Segment) []Segment {
	var out []Segment
	text := s.Text
	for text != "" {
		ws := text[0] == ' ' || text[0] == '\t'
		i := 0
		for i < len(text) {
			c := text[i] == ' ' || text[i] == '\t'
			if c != ws {
				break
			}
			i++
		}
		tok := s
		tok.Text = text[:i]
		out = append(out, tok)
		text = text[i:]
	}
	return out
}

func isWhitespace(s Segment) bool {
	return strings.TrimLeft(s.Text, " \t") == ""
}

// wrapSegments word-wraps content to width, emitting complete lines that
// start with ini (first line) or sub (continuations). Words wider than a
// line split by column, breaking URLs after conventional break
// characters when possible.
func wrapSegments(content []Segment, ini, sub []Segment, width int) [][]Segment {
	var lines [][]Segment
	avail := func(prefix []Segment) int {
		a := width - segmentsWidth(prefix)
		if a < 1 {
			a = 1
		}
		return a
	}
	cur := append([]Segment{}, ini...)
	room := avail(ini)
	used := 0
	empty := true

	push := func() {
		lines = append(lines, cur)
		cur = append([]Segment{}, sub...)
		room = avail(sub)
		used = 0
		empty = true
	}

	var tokens []Segment
	for _, s := range content {
		tokens = append(tokens, splitSegmentWS(s)...)
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		tw := tok.Width()
		if empty && isWhitespace(tok) {
			continue
		}
		if used+tw <= room {
			cur = append(cur, tok)
			used += tw
			empty = false
			continue
		}
		if !empty {
			push()
			i--
			continue
		}
		// A single token wider than the line: split it by columns.
		rest := tok
		for core.StringWidth(rest.Text) > room {
			var head, tail string
			if core.LooksLikeURL(rest.Text) {
				head, tail = core.SplitURLToWidth(rest.Text, room)
			} else {
				head, tail = core.SplitToWidth(rest.Text, room)
			}
			part := rest
			part.Text = head
			cur = append(cur, part)
			push()
			rest.Text = tail
		}
		if rest.Text != "" {
			cur = append(cur, rest)
			used = core.StringWidth(rest.Text)
			empty = false
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// truncateSegmentsWithEllipsis limits segments to max columns, replacing
// the overflow with a trailing ellipsis.
func truncateSegmentsWithEllipsis(segs []Segment, max int) []Segment {
	if segmentsWidth(segs) <= max {
		return segs
	}
	if max < 1 {
		return nil
	}
	budget := max - 1
	var out []Segment
	for _, s := range segs {
		w := s.Width()
		if w <= budget {
			out = append(out, s)
			budget -= w
			continue
		}
		s.Text = core.TruncateToWidth(s.Text, budget)
		if s.Text != "" {
			out = append(out, s)
		}
		break
	}
	ell := mutedSeg("…")
	if len(out) > 0 {
		ell = out[len(out)-1]
		ell.Text = "…"
	}
	return append(out, ell)
}

// padSegments pads segments with spaces to width per alignment. None
// aligns left.
func padSegments(segs []Segment, width int, align Alignment) []Segment {
	w := segmentsWidth(segs)
	if w >= width {
		return segs
	}
	pad := width - w
	switch align {
	case AlignRight:
		return append([]Segment{seg(strings.Repeat(" ", pad))}, segs...)
	case AlignCenter:
		left := pad / 2
		out := append([]Segment{seg(strings.Repeat(" ", left))}, segs...)
		return append(out, seg(strings.Repeat(" ", pad-left)))
	default:
		return append(segs, seg(strings.Repeat(" ", pad)))
	}
}
