// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/mdview/ansi.go
// Summary: Styled line to ANSI escape sequence emission.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

// writeLineANSI emits one styled line followed by SGR reset and newline.
func writeLineANSI(w io.Writer, line core.Line, th theme.Theme) {
	for _, sp := range line.Spans {
		st := core.PatchStyle(th.Text, sp.Style)
		if seq := sgrFor(st); seq != "" {
			fmt.Fprint(w, seq, sp.Text, "\x1b[0m")
		} else {
			fmt.Fprint(w, sp.Text)
		}
	}
	fmt.Fprintln(w)
}

// sgrFor builds the SGR sequence for a style, "" for the default style.
func sgrFor(st tcell.Style) string {
	fg, bg, attr := st.Decompose()
	var codes []string
	if attr&tcell.AttrBold != 0 {
		codes = append(codes, "1")
	}
	if attr&tcell.AttrItalic != 0 {
		codes = append(codes, "3")
	}
	if attr&tcell.AttrUnderline != 0 {
		codes = append(codes, "4")
	}
	if attr&tcell.AttrReverse != 0 {
		codes = append(codes, "7")
	}
	if attr&tcell.AttrStrikeThrough != 0 {
		codes = append(codes, "9")
	}
	codes = append(codes, colorCodes(fg, 38)...)
	codes = append(codes, colorCodes(bg, 48)...)
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCodes(c tcell.Color, base int) []string {
	if !c.Valid() || c == tcell.ColorDefault {
		return nil
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return []string{fmt.Sprintf("%d;2;%d;%d;%d", base, r, g, b)}
	}
	n := int(c - tcell.ColorValid)
	if n >= 0 && n < 256 {
		return []string{fmt.Sprintf("%d;5;%d", base, n)}
	}
	return nil
}
