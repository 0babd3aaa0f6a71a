// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/view.go
// Summary: Scrollable markdown view with selection.

package markdown

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/highlight"
	"github.com/framegrace/texelview/input"
	"github.com/framegrace/texelview/scroll"
	"github.com/framegrace/texelview/theme"
)

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

// View renders a markdown document with scrolling and text selection.
type View struct {
	doc *Document

	Scroll scroll.State
	sel    input.Selection
}

// NewView returns an empty view.
func NewView(opts Options) *View {
	return &View{doc: NewDocument(opts)}
}

// Document exposes the underlying document.
func (v *View) Document() *Document { return v.doc }

// SetText replaces the rendered markdown.
func (v *View) SetText(text string) {
	v.doc.SetText(text)
	v.sel.Clear()
}

// SetHighlighter sets the code highlighter.
func (v *View) SetHighlighter(h highlight.Highlighter) { v.doc.SetHighlighter(h) }

// SelectedText returns the plain text under the selection, or "".
func (v *View) SelectedText() string {
	if !v.sel.Active || v.doc.rendered == nil {
		return ""
	}
	var parts []string
	start, end := v.sel.NormalizedInclusive()
	for i := start.Line; i <= end.Line && i < len(v.doc.rendered); i++ {
		if i < 0 {
			continue
		}
		plain := v.doc.rendered[i].Plain()
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
	if v.doc.opts.ShowScrollbar {
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
	v.doc.EnsureLayout(content.W, th)
	contentW, contentH := v.doc.ContentSize()
	v.Scroll.SetViewport(content.W, content.H)
	v.Scroll.SetContent(contentW, contentH)

	start := v.Scroll.Y
	end := start + content.H
	v.doc.MaterializeHighlights(start, end, th)

	for row := 0; row < content.H; row++ {
		i := start + row
		if i >= len(v.doc.rendered) {
			break
		}
		spans := v.doc.rendered[i].Spans
		if from, to, ok := v.sel.LineCols(i); ok {
			spans = core.OverlaySpanCols(spans, from, to, th.Text, func(s tcell.Style) tcell.Style {
				return s.Reverse(true)
			})
		}
		core.RenderSpansClipped(buf, content.X, area.Y+row, v.Scroll.X, content.W, spans, th.Text)
	}

	if v.doc.opts.ShowScrollbar {
		core.RenderScrollbar(buf, area, v.Scroll.Y, content.H, contentH, th.ScrollTrack, th.ScrollThumb)
	}
}

// LinesForWidth lays out and returns fully highlighted lines at width.
func (v *View) LinesForWidth(width int, th theme.Theme) []core.Line {
	return v.doc.LinesForWidth(width, th)
}
