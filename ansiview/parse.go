// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ansiview/parse.go
// Summary: SGR escape sequence parsing into styled lines.

package ansiview

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
)

// sgrState is the running graphic rendition while scanning.
type sgrState struct {
	fg, bg    tcell.Color
	bold      bool
	italic    bool
	underline bool
	reverse   bool
	strike    bool
}

func (s *sgrState) reset() { *s = sgrState{fg: tcell.ColorDefault, bg: tcell.ColorDefault} }

func (s *sgrState) style() (tcell.Style, bool) {
	plain := sgrState{fg: tcell.ColorDefault, bg: tcell.ColorDefault}
	if *s == plain {
		return tcell.Style{}, false
	}
	st := tcell.StyleDefault.
		Foreground(s.fg).Background(s.bg).
		Bold(s.bold).Italic(s.italic).Underline(s.underline).
		Reverse(s.reverse).StrikeThrough(s.strike)
	return st, true
}

// apply processes one SGR parameter list.
func (s *sgrState) apply(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			s.reset()
		case p == 1:
			s.bold = true
		case p == 3:
			s.italic = true
		case p == 4:
			s.underline = true
		case p == 7:
			s.reverse = true
		case p == 9:
			s.strike = true
		case p == 22:
			s.bold = false
		case p == 23:
			s.italic = false
		case p == 24:
			s.underline = false
		case p == 27:
			s.reverse = false
		case p == 29:
			s.strike = false
		case p >= 30 && p <= 37:
			s.fg = tcell.PaletteColor(p - 30)
		case p == 39:
			s.fg = tcell.ColorDefault
		case p >= 40 && p <= 47:
			s.bg = tcell.PaletteColor(p - 40)
		case p == 49:
			s.bg = tcell.ColorDefault
		case p == 38:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				s.fg = c
				i += skip
			}
		case p == 48:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				s.bg = c
				i += skip
			}
		case p >= 90 && p <= 97:
			s.fg = tcell.PaletteColor(p - 90 + 8)
		case p >= 100 && p <= 107:
			s.bg = tcell.PaletteColor(p - 100 + 8)
		}
		i++
	}
}

// extendedColor decodes the 5;n and 2;r;g;b forms of SGR 38/48.
func extendedColor(rest []int) (tcell.Color, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 {
		return tcell.PaletteColor(clampByte(rest[1])), 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 {
		return tcell.NewRGBColor(
			int32(clampByte(rest[1])), int32(clampByte(rest[2])), int32(clampByte(rest[3]))), 4, true
	}
	return 0, 0, false
}

func clampByte(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// ParseText converts text with embedded SGR escapes into styled lines.
// Non-SGR escape sequences are dropped; carriage returns are stripped.
func ParseText(text string) []core.Line {
	var st sgrState
	st.reset()
	lines := []core.Line{{}}
	cur := &lines[len(lines)-1]
	var run strings.Builder

	flush := func() {
		if run.Len() == 0 {
			return
		}
		style, styled := st.style()
		sp := core.Span{Text: run.String()}
		if styled {
			sp.Style = style
		}
		cur.Spans = append(cur.Spans, sp)
		run.Reset()
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == 0x1b:
			flush()
			i += consumeEscape(text[i:], &st)
		case c == '\n':
			flush()
			lines = append(lines, core.Line{})
			cur = &lines[len(lines)-1]
			i++
		case c == '\r':
			i++
		default:
			run.WriteByte(c)
			i++
		}
	}
	flush()
	return lines
}

// consumeEscape eats one escape sequence starting at s[0] == ESC and
// applies it when it is an SGR. Returns the byte length consumed.
func consumeEscape(s string, st *sgrState) int {
	if len(s) < 2 {
		return len(s)
	}
	if s[1] != '[' {
		// Two-byte escape, or OSC and friends we do not track. Skip the
		// introducer and let the scanner treat the rest as text.
		return 2
	}
	j := 2
	for j < len(s) {
		c := s[j]
		if c >= 0x40 && c <= 0x7e {
			if c == 'm' {
				st.apply(parseParams(s[2:j]))
			}
			return j + 1
		}
		j++
	}
	return len(s)
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ':' })
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n := 0
		for _, r := range p {
			if r < '0' || r > '9' {
				n = 0
				break
			}
			n = n*10 + int(r-'0')
		}
		out = append(out, n)
	}
	return out
}
