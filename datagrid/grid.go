// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: datagrid/grid.go
// Summary: Virtualized 2-D data grid with cursor and selection.

package datagrid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/input"
	"github.com/framegrace/texelview/theme"
	"github.com/framegrace/texelview/virtualizer"
)

// Source supplies grid content. RenderCell may write into buf inside
// area but must not call back into the grid.
type Source interface {
	RowCount() int
	ColCount() int
	// ColWidth returns the natural content width of a column.
	ColWidth(col int) int
	Header(col int) string
	RenderCell(buf core.Buffer, area core.Rect, ctx CellContext, th theme.Theme)
}

// CellContext addresses the cell being rendered. ClipTop and ClipLeft
// are the rows and columns of the cell cut off by the viewport edge, so
// partially visible cells can offset their content.
type CellContext struct {
	Row, Col          int
	Selected          bool
	ClipTop, ClipLeft int
}

// Cell addresses one grid cell.
type Cell struct {
	Row, Col int
}

// Options configures a grid.
type Options struct {
	OverscanRows, OverscanCols int
	RowHeight                  int
	ColGap                     int
	ShowHeader                 bool
	ShowScrollbar              bool
	// SelectionFollowsCursor keeps a single-cell selection on the cursor.
	SelectionFollowsCursor bool
	// MultiSelect enables shift-extended rectangular selection.
	MultiSelect bool
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		OverscanRows:  2,
		OverscanCols:  2,
		RowHeight:     1,
		ColGap:        1,
		ShowHeader:    true,
		ShowScrollbar: true,
	}
}

// EventKind classifies what handling an input event produced.
type EventKind int

const (
	EventNone EventKind = iota
	EventHandled
	EventSelectionChanged
	// EventActivated fires on Enter; Cell holds the cursor cell.
	EventActivated
)

// Event is the outcome of handle-event calls.
type Event struct {
	Kind EventKind
	Cell Cell
}

// Grid is a scrollable table over a Source, virtualized on both axes.
type Grid struct {
	opts Options
	src  Source

	rows *virtualizer.Virtualizer
	cols *virtualizer.Virtualizer

	cursor Cell
	anchor Cell
	// selection rectangle, inclusive; selActive gates it.
	selMin, selMax Cell
	selActive      bool

	scrollX, scrollY int
	lastBodyH        int
}

// New returns a grid over src.
func New(src Source, opts Options) *Grid {
	if opts.RowHeight < 1 {
		opts.RowHeight = 1
	}
	g := &Grid{opts: opts, src: src}
	g.rows = virtualizer.New(src.RowCount(), func(int) int { return opts.RowHeight })
	g.rebuildColVirtualizer()
	return g
}

// Reload re-reads the source's dimensions and column widths.
func (g *Grid) Reload() {
	g.rows.SetCount(g.src.RowCount())
	g.rebuildColVirtualizer()
	g.clampCursor()
}

func (g *Grid) rebuildColVirtualizer() {
	src := g.src
	g.cols = virtualizer.New(src.ColCount(), func(i int) int {
		w := src.ColWidth(i)
		hw := core.StringWidth(src.Header(i))
		if hw > w {
			w = hw
		}
		if w < 1 {
			w = 1
		}
		return w
	})
	g.cols.SetGap(g.opts.ColGap)
}

// Cursor returns the cursor cell.
func (g *Grid) Cursor() Cell { return g.cursor }

// Selection returns the inclusive selected rectangle and whether one is
// active.
func (g *Grid) Selection() (min, max Cell, ok bool) {
	return g.selMin, g.selMax, g.selActive
}

// ClearSelection drops the selection.
func (g *Grid) ClearSelection() { g.selActive = false }

func (g *Grid) selected(r, c int) bool {
	if !g.selActive {
		return false
	}
	return r >= g.selMin.Row && r <= g.selMax.Row && c >= g.selMin.Col && c <= g.selMax.Col
}

func (g *Grid) clampCursor() {
	g.cursor.Row = clamp(g.cursor.Row, 0, g.src.RowCount()-1)
	g.cursor.Col = clamp(g.cursor.Col, 0, g.src.ColCount()-1)
}

func (g *Grid) selectSingle(c Cell) {
	g.selMin, g.selMax = c, c
	g.selActive = true
	g.anchor = c
}

func (g *Grid) selectRect(a, b Cell) {
	g.selMin = Cell{Row: minInt(a.Row, b.Row), Col: minInt(a.Col, b.Col)}
	g.selMax = Cell{Row: maxInt(a.Row, b.Row), Col: maxInt(a.Col, b.Col)}
	g.selActive = true
}

// moveCursorBy shifts the cursor, scrolls it into view and updates the
// selection per the options and shift state.
func (g *Grid) moveCursorBy(dr, dc int, shift bool) Event {
	g.cursor.Row += dr
	g.cursor.Col += dc
	g.clampCursor()
	g.scrollCursorIntoView()
	if shift && g.opts.MultiSelect {
		g.selectRect(g.anchor, g.cursor)
		return Event{Kind: EventSelectionChanged, Cell: g.cursor}
	}
	if g.opts.SelectionFollowsCursor {
		g.selectSingle(g.cursor)
		return Event{Kind: EventSelectionChanged, Cell: g.cursor}
	}
	return Event{Kind: EventHandled, Cell: g.cursor}
}

func (g *Grid) scrollCursorIntoView() {
	g.scrollY = scrollTo(g.rows, g.cursor.Row, g.scrollY)
	g.scrollX = scrollTo(g.cols, g.cursor.Col, g.scrollX)
}

func scrollTo(v *virtualizer.Virtualizer, idx, cur int) int {
	v.SetScroll(cur)
	return v.ScrollToIndex(idx, virtualizer.AlignAuto)
}

// snapCursorToScroll moves the cursor to the first fully visible row
// after a page scroll.
func (g *Grid) snapCursorToScroll() {
	g.cursor.Row = g.rows.IndexAtOffset(g.scrollY)
	g.clampCursor()
	if g.opts.SelectionFollowsCursor {
		g.selectSingle(g.cursor)
	}
}

// HandleKey applies the grid bindings.
func (g *Grid) HandleKey(ev input.KeyEvent) Event {
	shift := ev.Mod&tcell.ModShift != 0
	switch {
	case ev.IsRune('j') || ev.Key == tcell.KeyDown:
		return g.moveCursorBy(1, 0, shift)
	case ev.IsRune('k') || ev.Key == tcell.KeyUp:
		return g.moveCursorBy(-1, 0, shift)
	case ev.IsRune('h') || ev.Key == tcell.KeyLeft:
		return g.moveCursorBy(0, -1, shift)
	case ev.IsRune('l') || ev.Key == tcell.KeyRight:
		return g.moveCursorBy(0, 1, shift)
	case ev.Key == tcell.KeyPgDn:
		g.pageScroll(1)
		return Event{Kind: EventHandled, Cell: g.cursor}
	case ev.Key == tcell.KeyPgUp:
		g.pageScroll(-1)
		return Event{Kind: EventHandled, Cell: g.cursor}
	case ev.IsCtrl('d'):
		g.halfPageScroll(1)
		return Event{Kind: EventHandled, Cell: g.cursor}
	case ev.IsCtrl('u'):
		g.halfPageScroll(-1)
		return Event{Kind: EventHandled, Cell: g.cursor}
	case ev.Key == tcell.KeyHome:
		g.cursor = Cell{}
		g.scrollCursorIntoView()
		return g.afterJump()
	case ev.Key == tcell.KeyEnd:
		g.cursor = Cell{Row: g.src.RowCount() - 1, Col: g.src.ColCount() - 1}
		g.clampCursor()
		g.scrollCursorIntoView()
		return g.afterJump()
	case ev.IsRune('g'):
		g.cursor.Row = 0
		g.scrollCursorIntoView()
		return g.afterJump()
	case ev.IsRune('G'):
		g.cursor.Row = g.src.RowCount() - 1
		g.clampCursor()
		g.scrollCursorIntoView()
		return g.afterJump()
	case ev.IsRune(' '):
		g.selectSingle(g.cursor)
		return Event{Kind: EventSelectionChanged, Cell: g.cursor}
	case ev.Key == tcell.KeyEnter:
		return Event{Kind: EventActivated, Cell: g.cursor}
	}
	return Event{}
}

func (g *Grid) afterJump() Event {
	if g.opts.SelectionFollowsCursor {
		g.selectSingle(g.cursor)
		return Event{Kind: EventSelectionChanged, Cell: g.cursor}
	}
	return Event{Kind: EventHandled, Cell: g.cursor}
}

func (g *Grid) pageScroll(dir int) {
	step := maxInt(1, g.rowViewport()-g.opts.RowHeight)
	g.scrollY += dir * step
	g.syncScrollY()
	g.snapCursorToScroll()
}

func (g *Grid) halfPageScroll(dir int) {
	step := maxInt(1, g.rowViewport()/2)
	g.scrollY += dir * step
	g.syncScrollY()
	g.snapCursorToScroll()
}

func (g *Grid) rowViewport() int {
	// The virtualizer keeps the viewport from the last render.
	return maxInt(1, g.lastBodyH)
}

func (g *Grid) syncScrollY() {
	g.rows.SetScroll(g.scrollY)
	g.scrollY = g.rows.ScrollOffset()
}

// HandleMouse applies wheel scrolling and click-to-move-cursor.
func (g *Grid) HandleMouse(ev input.MouseEvent, area core.Rect) Event {
	switch ev.Kind {
	case input.MouseWheelUp:
		g.scrollY -= input.WheelLines
		g.syncScrollY()
		return Event{Kind: EventHandled, Cell: g.cursor}
	case input.MouseWheelDown:
		g.scrollY += input.WheelLines
		g.syncScrollY()
		return Event{Kind: EventHandled, Cell: g.cursor}
	case input.MouseDown:
		body := g.bodyArea(area)
		if !body.Contains(ev.X, ev.Y) {
			return Event{}
		}
		row := g.rows.IndexAtOffset(g.scrollY + ev.Y - body.Y)
		col := g.cols.IndexAtOffset(g.scrollX + ev.X - body.X)
		g.cursor = Cell{Row: row, Col: col}
		g.clampCursor()
		g.selectSingle(g.cursor)
		return Event{Kind: EventSelectionChanged, Cell: g.cursor}
	}
	return Event{}
}

func (g *Grid) bodyArea(area core.Rect) core.Rect {
	top := 0
	if g.opts.ShowHeader {
		top = 1
	}
	right := 0
	if g.opts.ShowScrollbar {
		right = 1
	}
	return core.NewRect(area.X, area.Y+top, area.W-right, area.H-top)
}

// syncVirtualizers pushes the viewport and scroll into both
// virtualizers and reads the clamped offsets back.
func (g *Grid) syncVirtualizers(body core.Rect) {
	g.rows.SetCount(g.src.RowCount())
	g.cols.SetCount(g.src.ColCount())
	g.rows.SetOverscan(g.opts.OverscanRows)
	g.cols.SetOverscan(g.opts.OverscanCols)
	g.rows.SetViewport(body.H)
	g.cols.SetViewport(body.W)
	g.rows.SetScroll(g.scrollY)
	g.cols.SetScroll(g.scrollX)
	g.scrollY = g.rows.ScrollOffset()
	g.scrollX = g.cols.ScrollOffset()
	g.lastBodyH = body.H
}

// Render draws the grid into area.
func (g *Grid) Render(area core.Rect, buf core.Buffer, th theme.Theme) {
	if area.Empty() {
		return
	}
	body := g.bodyArea(area)
	g.syncVirtualizers(body)

	visCols := g.cols.VisibleItems()

	if g.opts.ShowHeader {
		headStyle := th.Accent.Bold(true)
		for _, c := range visCols {
			x := body.X + c.Start - g.scrollX
			cellRect, ok := clipRectX(x, area.Y, c.Size, body)
			if ok {
				core.RenderStrClipped(buf, cellRect.X, area.Y, maxInt(0, body.X-x), cellRect.W, g.src.Header(c.Index), headStyle)
			}
			g.drawColSeparator(buf, c, body, area.Y, area.Y+1, th)
		}
	}

	for _, c := range visCols {
		x := body.X + c.Start - g.scrollX
		for _, r := range g.rows.VisibleItems() {
			y := body.Y + r.Start - g.scrollY
			cellRect, ok := clipRect(core.NewRect(x, y, c.Size, r.Size), body)
			if !ok {
				continue
			}
			g.src.RenderCell(buf, cellRect, CellContext{
				Row:      r.Index,
				Col:      c.Index,
				Selected: g.selected(r.Index, c.Index),
				ClipTop:  cellRect.Y - y,
				ClipLeft: cellRect.X - x,
			}, th)
			if r.Index == g.cursor.Row && c.Index == g.cursor.Col {
				buf.SetStyle(cellRect, th.Selection)
			}
		}
		g.drawColSeparator(buf, c, body, body.Y, body.Y+body.H, th)
	}

	if g.opts.ShowScrollbar {
		core.RenderScrollbar(buf, area, g.scrollY, body.H, g.rows.TotalSize(), th.ScrollTrack, th.ScrollThumb)
	}
}

// drawColSeparator draws the "│" divider in the gap after a non-last
// column.
func (g *Grid) drawColSeparator(buf core.Buffer, c virtualizer.Item, body core.Rect, yFrom, yTo int, th theme.Theme) {
	if g.opts.ColGap < 1 || c.Index == g.cols.Count()-1 {
		return
	}
	x := body.X + c.Start + c.Size + g.opts.ColGap - 1 - g.scrollX
	if x < body.X || x >= body.X+body.W {
		return
	}
	for y := yFrom; y < yTo; y++ {
		buf.SetCell(x, y, '│', th.TextMuted)
	}
}

// clipRect intersects r with bounds; ok is false when nothing remains.
func clipRect(r, bounds core.Rect) (core.Rect, bool) {
	x1 := maxInt(r.X, bounds.X)
	y1 := maxInt(r.Y, bounds.Y)
	x2 := minInt(r.X+r.W, bounds.X+bounds.W)
	y2 := minInt(r.Y+r.H, bounds.Y+bounds.H)
	if x2 <= x1 || y2 <= y1 {
		return core.Rect{}, false
	}
	return core.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, true
}

// clipRectX clips horizontally only, for the single-row header.
func clipRectX(x, y, w int, bounds core.Rect) (core.Rect, bool) {
	r, ok := clipRect(core.NewRect(x, y, w, 1), core.NewRect(bounds.X, y, bounds.W, 1))
	return r, ok
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
