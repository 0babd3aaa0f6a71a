// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: help/help.go
// Summary: Single-row key hint bar.

package help

import (
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

// Binding is one key hint: the key chord and what it does.
type Binding struct {
	Key   string
	Label string
}

// Bar renders a row of key hints.
type Bar struct {
	bindings []Binding
}

// New returns a bar over bindings.
func New(bindings []Binding) *Bar {
	return &Bar{bindings: bindings}
}

// SetBindings replaces the hints.
func (b *Bar) SetBindings(bindings []Binding) { b.bindings = bindings }

// Spans returns the bar's styled spans, hints separated by two spaces.
func (b *Bar) Spans(th theme.Theme) []core.Span {
	var out []core.Span
	for i, bd := range b.bindings {
		if i > 0 {
			out = append(out, core.Span{Text: "  ", Style: th.TextMuted})
		}
		out = append(out, core.Span{Text: bd.Key, Style: th.Accent})
		out = append(out, core.Span{Text: " " + bd.Label, Style: th.TextMuted})
	}
	return out
}

// Render draws the bar into the first row of area, clipped to its width.
func (b *Bar) Render(area core.Rect, buf core.Buffer, th theme.Theme) {
	if area.Empty() {
		return
	}
	core.RenderSpansClipped(buf, area.X, area.Y, 0, area.W, b.Spans(th), th.TextMuted)
}
