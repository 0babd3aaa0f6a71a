// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Style palette shared by every view.

package theme

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme carries the styles views draw with. Views never hardcode colors;
// hosts swap the whole theme to restyle everything at once.
type Theme struct {
	Text       tcell.Style
	TextMuted  tcell.Style
	Accent     tcell.Style
	Danger     tcell.Style
	CodeInline tcell.Style

	DiffAdd  tcell.Style
	DiffDel  tcell.Style
	DiffHunk tcell.Style

	Selection   tcell.Style
	ScrollTrack tcell.Style
	ScrollThumb tcell.Style
}

// Default returns the built-in palette. The gray ramp (muted text,
// scrollbar track and thumb) is shaded down from one reference tone so
// the steps stay proportional if the tone is retuned.
func Default() Theme {
	base := tcell.StyleDefault
	gray := tcell.NewRGBColor(0xc0, 0xc0, 0xc0)
	return Theme{
		Text:        base,
		TextMuted:   base.Foreground(Shade(gray, -0.45)),
		Accent:      base.Foreground(tcell.ColorDarkCyan),
		Danger:      base.Foreground(tcell.ColorRed),
		CodeInline:  base.Foreground(tcell.ColorDarkCyan),
		DiffAdd:     base.Foreground(tcell.ColorGreen),
		DiffDel:     base.Foreground(tcell.ColorRed),
		DiffHunk:    base.Foreground(tcell.ColorDarkCyan),
		Selection:   base.Reverse(true),
		ScrollTrack: base.Foreground(Shade(gray, -0.45)),
		ScrollThumb: base.Foreground(Shade(gray, -0.2)),
	}
}

// Shade darkens or lightens a color by amount in [-1, 1] using a blend
// in Luv space, which keeps hues stable across terminals.
func Shade(c tcell.Color, amount float64) tcell.Color {
	r, g, b := c.RGB()
	from := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	target := colorful.Color{R: 1, G: 1, B: 1}
	if amount < 0 {
		target = colorful.Color{}
		amount = -amount
	}
	if amount > 1 {
		amount = 1
	}
	out := from.BlendLuv(target, amount).Clamped()
	return tcell.NewRGBColor(int32(out.R*255), int32(out.G*255), int32(out.B*255))
}
