// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ansiview/view.go
// Summary: Scrollable view over ANSI-styled text.

package ansiview

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/input"
	"github.com/framegrace/texelview/scroll"
	"github.com/framegrace/texelview/theme"
)

// Options configures an ANSI view.
type Options struct {
	ShowScrollbar bool
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options { return Options{ShowScrollbar: true} }

// EventKind classifies what handling an input event produced.
type EventKind int

const (
	EventNone EventKind = iota
	EventHandled
	EventSelectionChanged
	EventCopyRequested
)

// Event is the outcome of handle-event calls.
type Event struct {
	Kind EventKind
	Text string
}

// View renders pre-styled terminal output with scrolling and selection.
type View struct {
	opts  Options
	lines []core.Line

	Scroll scroll.State
	sel    input.Selection

	contentW int
}

// New returns an empty ANSI view.
func New(opts Options) *View {
	return &View{opts: opts}
}

// SetText replaces the content, parsing embedded SGR escapes.
func (v *View) SetText(text string) {
	v.lines = ParseText(text)
	v.contentW = 0
	for _, l := range v.lines {
		if w := l.Width(); w > v.contentW {
			v.contentW = w
		}
	}
	v.sel.Clear()
}

// Lines exposes the parsed styled lines.
func (v *View) Lines() []core.Line { return v.lines }

// SelectedText returns the plain text under the selection, or "".
func (v *View) SelectedText() string {
	if !v.sel.Active {
		return ""
	}
	var parts []string
	start, end := v.sel.NormalizedInclusive()
	for i := start.Line; i <= end.Line && i < len(v.lines); i++ {
		if i < 0 {
			continue
		}
		plain := v.lines[i].Plain()
		from, to := 0, core.StringWidth(plain)
		if i == start.Line {
			from = start.Col
		}
		if i == end.Line && end.Col < to {
			to = end.Col
		}
		bs, be, ok := core.ByteRangeForCols(plain, from, to)
		if !ok {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, plain[bs:be])
	}
	return strings.Join(parts, "\n")
}

// ClearSelection drops the selection.
func (v *View) ClearSelection() { v.sel.Clear() }

// HandleKey applies the shared bindings.
func (v *View) HandleKey(ev input.KeyEvent) Event {
	switch input.HandleViewKey(ev, &v.Scroll, &v.sel) {
	case input.ActionCopy:
		return Event{Kind: EventCopyRequested, Text: v.SelectedText()}
	case input.ActionSelectionCleared:
		return Event{Kind: EventSelectionChanged}
	case input.ActionHandled:
		return Event{Kind: EventHandled}
	}
	return Event{}
}

// HandleMouse updates selection and scroll from a mouse event.
func (v *View) HandleMouse(ev input.MouseEvent, area core.Rect) Event {
	if input.HandleWheel(ev, &v.Scroll) {
		return Event{Kind: EventHandled}
	}
	content := v.contentArea(area)
	p := input.Point{
		Line: v.Scroll.Y + ev.Y - content.Y,
		Col:  v.Scroll.X + ev.X - content.X,
	}
	switch ev.Kind {
	case input.MouseDown:
		if !content.Contains(ev.X, ev.Y) {
			return Event{}
		}
		v.sel.Start(p)
		return Event{Kind: EventSelectionChanged}
	case input.MouseDrag, input.MouseUp:
		if !v.sel.Active {
			return Event{}
		}
		v.sel.Extend(p)
		return Event{Kind: EventSelectionChanged}
	}
	return Event{}
}

func (v *View) contentArea(area core.Rect) core.Rect {
	right := 0
	if v.opts.ShowScrollbar {
		right = 1
	}
	return area.InsetH(0, right)
}

// Render draws the view into area.
func (v *View) Render(area core.Rect, buf core.Buffer, th theme.Theme) {
	if area.Empty() {
		return
	}
	content := v.contentArea(area)
	v.Scroll.SetViewport(content.W, content.H)
	v.Scroll.SetContent(v.contentW, len(v.lines))

	for row := 0; row < content.H; row++ {
		i := v.Scroll.Y + row
		if i >= len(v.lines) {
			break
		}
		spans := v.lines[i].Spans
		if from, to, ok := v.sel.LineCols(i); ok {
			spans = core.OverlaySpanCols(spans, from, to, th.Text, func(s tcell.Style) tcell.Style {
				return s.Reverse(true)
			})
		}
		core.RenderSpansClipped(buf, content.X, area.Y+row, v.Scroll.X, content.W, spans, th.Text)
	}

	if v.opts.ShowScrollbar {
		core.RenderScrollbar(buf, area, v.Scroll.Y, content.H, len(v.lines), th.ScrollTrack, th.ScrollThumb)
	}
}
