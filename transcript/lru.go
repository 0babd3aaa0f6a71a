// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transcript/lru.go
// Summary: LRU cache of rendered entry lines.

package transcript

import "github.com/framegrace/texelview/core"

// linesLRU caches rendered lines per entry index. Capacity 0 means the
// cache stores nothing. Order tracks recency, oldest first.
type linesLRU struct {
	cap   int
	order []int
	m     map[int][]core.Line
}

func newLinesLRU(cap int) *linesLRU {
	if cap < 0 {
		cap = 0
	}
	return &linesLRU{cap: cap, m: make(map[int][]core.Line)}
}

func (c *linesLRU) get(idx int) ([]core.Line, bool) {
	lines, ok := c.m[idx]
	if ok {
		c.touch(idx)
	}
	return lines, ok
}

func (c *linesLRU) put(idx int, lines []core.Line) {
	if c.cap == 0 {
		return
	}
	if _, ok := c.m[idx]; !ok && len(c.m) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.m, oldest)
	}
	c.m[idx] = lines
	c.touch(idx)
}

func (c *linesLRU) touch(idx int) {
	for i, v := range c.order {
		if v == idx {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, idx)
}

// removeFrom drops every cached entry with index >= start.
func (c *linesLRU) removeFrom(start int) {
	kept := c.order[:0]
	for _, idx := range c.order {
		if idx >= start {
			delete(c.m, idx)
			continue
		}
		kept = append(kept, idx)
	}
	c.order = kept
}

func (c *linesLRU) clear() {
	c.order = nil
	c.m = make(map[int][]core.Line)
}
