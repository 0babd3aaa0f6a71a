// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtualizer/virtualizer.go
// Summary: 1-D list virtualizer with estimated and measured item sizes.

package virtualizer

// Align says where ScrollToIndex should place the target item.
type Align int

const (
	// AlignAuto scrolls the minimum distance that makes the item fully
	// visible, and not at all if it already is.
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// Item is one visible entry: its index, its offset from the content
// start, and its current size.
type Item struct {
	Index int
	Start int
	Size  int
}

// Virtualizer maps item indices to offsets along one axis. Sizes come
// from the estimate function until Measure records a real one. A gap is
// inserted between adjacent items; padding sits before the first and
// after the last.
type Virtualizer struct {
	count     int
	estimate  func(i int) int
	measured  map[int]int
	overscan  int
	viewport  int
	scroll    int
	gap       int
	padStart  int
	padEnd    int
	scrollPad int
}

// New returns a virtualizer over count items. estimate may be nil, in
// which case every unmeasured item has size 1.
func New(count int, estimate func(i int) int) *Virtualizer {
	if count < 0 {
		count = 0
	}
	return &Virtualizer{count: count, estimate: estimate, measured: make(map[int]int)}
}

// SetCount changes the item count, dropping measurements past the end.
func (v *Virtualizer) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	for i := range v.measured {
		if i >= count {
			delete(v.measured, i)
		}
	}
	v.count = count
	v.clampScroll()
}

// Count returns the item count.
func (v *Virtualizer) Count() int { return v.count }

// SetViewport records the visible extent along the axis.
func (v *Virtualizer) SetViewport(size int) {
	if size < 0 {
		size = 0
	}
	v.viewport = size
	v.clampScroll()
}

// SetOverscan sets how many extra items VisibleItems yields on each side.
func (v *Virtualizer) SetOverscan(n int) {
	if n < 0 {
		n = 0
	}
	v.overscan = n
}

// SetGap sets the spacing between adjacent items.
func (v *Virtualizer) SetGap(n int) {
	if n < 0 {
		n = 0
	}
	v.gap = n
	v.clampScroll()
}

// SetPadding sets the space before the first item and after the last.
func (v *Virtualizer) SetPadding(start, end int) {
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	v.padStart, v.padEnd = start, end
	v.clampScroll()
}

// SetScrollPadding makes AlignAuto scrolls keep the target at least n
// units away from the viewport edges.
func (v *Virtualizer) SetScrollPadding(n int) {
	if n < 0 {
		n = 0
	}
	v.scrollPad = n
}

// SetScroll sets the scroll offset, clamped to the content.
func (v *Virtualizer) SetScroll(off int) {
	v.scroll = off
	v.clampScroll()
}

// ScrollOffset returns the clamped scroll offset.
func (v *Virtualizer) ScrollOffset() int { return v.scroll }

// Measure records the real size of item i. A non-positive size clamps
// to zero. Measuring an out-of-range index is a no-op.
func (v *Virtualizer) Measure(i, size int) {
	if i < 0 || i >= v.count {
		return
	}
	if size < 0 {
		size = 0
	}
	v.measured[i] = size
}

// ClearMeasurements forgets all measured sizes.
func (v *Virtualizer) ClearMeasurements() {
	v.measured = make(map[int]int)
}

// Size returns the current size of item i.
func (v *Virtualizer) Size(i int) int {
	if s, ok := v.measured[i]; ok {
		return s
	}
	if v.estimate != nil {
		s := v.estimate(i)
		if s < 0 {
			return 0
		}
		return s
	}
	return 1
}

// Start returns the offset of item i from the content start, leading
// padding and preceding gaps included.
func (v *Virtualizer) Start(i int) int {
	off := v.padStart
	for j := 0; j < i && j < v.count; j++ {
		off += v.Size(j) + v.gap
	}
	return off
}

// TotalSize returns the full content extent: item sizes, one gap per
// adjacent pair, and the padding on both ends.
func (v *Virtualizer) TotalSize() int {
	if v.count == 0 {
		return v.padStart + v.padEnd
	}
	total := v.padStart + v.padEnd + v.gap*(v.count-1)
	for i := 0; i < v.count; i++ {
		total += v.Size(i)
	}
	return total
}

// IndexAtOffset returns the index of the item containing offset. The
// gap after an item counts as part of it; offsets in the leading
// padding map to 0, offsets past the end to the last item.
func (v *Virtualizer) IndexAtOffset(off int) int {
	if v.count == 0 || off <= v.padStart {
		return 0
	}
	pos := v.padStart
	for i := 0; i < v.count; i++ {
		pos += v.Size(i) + v.gap
		if off < pos {
			return i
		}
	}
	return v.count - 1
}

// VisibleItems returns the items intersecting the viewport at the
// current scroll offset, extended by the overscan on both sides.
func (v *Virtualizer) VisibleItems() []Item {
	if v.count == 0 || v.viewport <= 0 {
		return nil
	}
	first := v.IndexAtOffset(v.scroll)
	last := v.IndexAtOffset(v.scroll + v.viewport - 1)
	first -= v.overscan
	if first < 0 {
		first = 0
	}
	last += v.overscan
	if last >= v.count {
		last = v.count - 1
	}
	out := make([]Item, 0, last-first+1)
	start := v.Start(first)
	for i := first; i <= last; i++ {
		size := v.Size(i)
		out = append(out, Item{Index: i, Start: start, Size: size})
		start += size + v.gap
	}
	return out
}

// ScrollToIndex scrolls so item i sits at the given alignment and
// returns the resulting offset.
func (v *Virtualizer) ScrollToIndex(i int, align Align) int {
	if v.count == 0 {
		return v.scroll
	}
	if i < 0 {
		i = 0
	}
	if i >= v.count {
		i = v.count - 1
	}
	start := v.Start(i)
	size := v.Size(i)
	switch align {
	case AlignStart:
		v.scroll = start
	case AlignCenter:
		v.scroll = start - (v.viewport-size)/2
	case AlignEnd:
		v.scroll = start + size - v.viewport
	default: // AlignAuto
		if start-v.scrollPad < v.scroll {
			v.scroll = start - v.scrollPad
		} else if start+size+v.scrollPad > v.scroll+v.viewport {
			v.scroll = start + size + v.scrollPad - v.viewport
		}
	}
	v.clampScroll()
	return v.scroll
}

func (v *Virtualizer) clampScroll() {
	max := v.TotalSize() - v.viewport
	if max < 0 {
		max = 0
	}
	if v.scroll > max {
		v.scroll = max
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}
