// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/table.go
// Summary: Table layout in glow and box styles.

package markdown

import (
	"strings"

	"github.com/framegrace/texelview/theme"
)

func layoutTable(b *Block, width int, opts Options, th theme.Theme) []RenderedLine {
	cols := len(b.Head)
	for _, row := range b.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}
	if opts.TableStyle == TableBox {
		return layoutBoxTable(b, cols, width, opts, th)
	}
	return layoutGlowTable(b, cols, width, opts, th)
}

func (b *Block) cell(row [][]Segment, i int) []Segment {
	if i < len(row) {
		return row[i]
	}
	return nil
}

func (b *Block) align(i int) Alignment {
	if i < len(b.Aligns) {
		return b.Aligns[i]
	}
	return AlignNone
}

// solveWidths finds column widths: start each at its widest cell, then
// shrink the largest column until the table fits, or fall back to an
// even split when even all-minimum columns overflow.
func solveWidths(b *Block, cols, avail, chrome, minW int) []int {
	w := make([]int, cols)
	for i := 0; i < cols; i++ {
		w[i] = minW
		if i < len(b.Head) {
			if cw := segmentsWidth(b.Head[i]); cw > w[i] {
				w[i] = cw
			}
		}
		for _, row := range b.Rows {
			if cw := segmentsWidth(b.cell(row, i)); cw > w[i] {
				w[i] = cw
			}
		}
	}
	sum := func() int {
		s := chrome
		for _, x := range w {
			s += x
		}
		return s
	}
	if cols*minW+chrome > avail {
		even := (avail - chrome) / cols
		if even < 1 {
			even = 1
		}
		for i := range w {
			w[i] = even
		}
		return w
	}
	for sum() > avail {
		largest := 0
		for i := 1; i < cols; i++ {
			if w[i] > w[largest] {
				largest = i
			}
		}
		if w[largest] <= minW {
			break
		}
		w[largest]--
	}
	return w
}

func layoutGlowTable(b *Block, cols, width int, opts Options, th theme.Theme) []RenderedLine {
	prefixW := segmentsWidth(b.SubsequentPrefix)
	avail := width - prefixW - 2
	chrome := (cols - 1) + 2*cols
	w := solveWidths(b, cols, avail, chrome, 1)

	var out []RenderedLine
	emit := func(prefix []Segment, segs []Segment) {
		all := append(append([]Segment{}, prefix...), segs...)
		out = append(out, RenderedLine{Spans: segmentsToSpans(all, th)})
	}

	// Header: single line, bold, truncated with an ellipsis.
	var head []Segment
	for i := 0; i < cols; i++ {
		if i > 0 {
			head = append(head, mutedSeg("│"))
		}
		cell := truncateSegmentsWithEllipsis(b.cell(b.Head, i), w[i])
		for j := range cell {
			cell[j].Bold = true
		}
		head = append(head, seg(" "))
		head = append(head, padSegments(cell, w[i], b.align(i))...)
		head = append(head, seg(" "))
	}
	emit(b.InitialPrefix, head)

	var sep []Segment
	for i := 0; i < cols; i++ {
		if i > 0 {
			sep = append(sep, mutedSeg("┼"))
		}
		sep = append(sep, mutedSeg(strings.Repeat("─", w[i]+2)))
	}
	emit(b.SubsequentPrefix, sep)

	for _, row := range b.Rows {
		out = append(out, glowRow(b, row, cols, w, th)...)
	}
	return out
}

// glowRow wraps each cell to its column width and emits the row's
// visual lines, one per wrapped height.
func glowRow(b *Block, row [][]Segment, cols int, w []int, th theme.Theme) []RenderedLine {
	wrapped := make([][][]Segment, cols)
	height := 1
	for i := 0; i < cols; i++ {
		wrapped[i] = wrapSegments(b.cell(row, i), nil, nil, w[i])
		if len(wrapped[i]) > height {
			height = len(wrapped[i])
		}
	}
	var out []RenderedLine
	for v := 0; v < height; v++ {
		var segs []Segment
		for i := 0; i < cols; i++ {
			if i > 0 {
				segs = append(segs, mutedSeg("│"))
			}
			var cell []Segment
			if v < len(wrapped[i]) {
				cell = wrapped[i][v]
			}
			segs = append(segs, seg(" "))
			segs = append(segs, padSegments(cell, w[i], b.align(i))...)
			segs = append(segs, seg(" "))
		}
		all := append(append([]Segment{}, b.SubsequentPrefix...), segs...)
		out = append(out, RenderedLine{Spans: segmentsToSpans(all, th)})
	}
	return out
}

func layoutBoxTable(b *Block, cols, width int, opts Options, th theme.Theme) []RenderedLine {
	prefixW := segmentsWidth(b.SubsequentPrefix)
	avail := width - prefixW
	chrome := 3*cols + 1
	w := solveWidths(b, cols, avail, chrome, 3)

	var out []RenderedLine
	emit := func(prefix []Segment, segs []Segment) {
		all := append(append([]Segment{}, prefix...), segs...)
		out = append(out, RenderedLine{Spans: segmentsToSpans(all, th)})
	}
	border := func(left, mid, right string) []Segment {
		var segs []Segment
		segs = append(segs, mutedSeg(left))
		for i := 0; i < cols; i++ {
			if i > 0 {
				segs = append(segs, mutedSeg(mid))
			}
			segs = append(segs, mutedSeg(strings.Repeat("─", w[i]+2)))
		}
		return append(segs, mutedSeg(right))
	}
	cellsLine := func(cells [][]Segment, bold bool) []Segment {
		var segs []Segment
		segs = append(segs, mutedSeg("│"))
		for i := 0; i < cols; i++ {
			if i > 0 {
				segs = append(segs, mutedSeg("│"))
			}
			var cell []Segment
			if i < len(cells) {
				cell = cells[i]
			}
			if bold {
				cell = truncateSegmentsWithEllipsis(cell, w[i])
				for j := range cell {
					cell[j].Bold = true
				}
			}
			segs = append(segs, seg(" "))
			segs = append(segs, padSegments(cell, w[i], b.align(i))...)
			segs = append(segs, seg(" "))
		}
		return append(segs, mutedSeg("│"))
	}

	emit(b.InitialPrefix, border("┌", "┬", "┐"))
	emit(b.SubsequentPrefix, cellsLine(b.Head, true))
	emit(b.SubsequentPrefix, border("├", "┼", "┤"))
	for _, row := range b.Rows {
		wrapped := make([][][]Segment, cols)
		height := 1
		for i := 0; i < cols; i++ {
			wrapped[i] = wrapSegments(b.cell(row, i), nil, nil, w[i])
			if len(wrapped[i]) > height {
				height = len(wrapped[i])
			}
		}
		for v := 0; v < height; v++ {
			cells := make([][]Segment, cols)
			for i := 0; i < cols; i++ {
				if v < len(wrapped[i]) {
					cells[i] = wrapped[i][v]
				}
			}
			emit(b.SubsequentPrefix, cellsLine(cells, false))
		}
	}
	emit(b.SubsequentPrefix, border("└", "┴", "┘"))
	return out
}
