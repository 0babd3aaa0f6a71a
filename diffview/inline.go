// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: diffview/inline.go
// Summary: Character-level emphasis for paired delete/add runs.

package diffview

import (
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// computeInline pairs each maximal run of deletes with the add run that
// immediately follows it, 1-to-1 up to the shorter run, and records the
// changed byte ranges of each paired line.
func computeInline(lines []Line) {
	i := 0
	for i < len(lines) {
		if lines[i].Kind != Del {
			i++
			continue
		}
		delStart := i
		for i < len(lines) && lines[i].Kind == Del {
			i++
		}
		addStart := i
		for i < len(lines) && lines[i].Kind == Add {
			i++
		}
		dels := addStart - delStart
		adds := i - addStart
		n := dels
		if adds < n {
			n = adds
		}
		for j := 0; j < n; j++ {
			d := &lines[delStart+j]
			a := &lines[addStart+j]
			d.Emphasis, a.Emphasis = charDiffRanges(d.Content, a.Content)
		}
	}
}

// charDiffRanges diffs two strings and returns merged byte ranges of the
// deleted parts of old and the inserted parts of new.
func charDiffRanges(old, new string) (delRanges, addRanges [][2]int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, new, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	oldPos, newPos := 0, 0
	for _, d := range diffs {
		n := len(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			delRanges = append(delRanges, [2]int{oldPos, oldPos + n})
			oldPos += n
		case diffmatchpatch.DiffInsert:
			addRanges = append(addRanges, [2]int{newPos, newPos + n})
			newPos += n
		default:
			oldPos += n
			newPos += n
		}
	}
	return mergeRanges(delRanges), mergeRanges(addRanges)
}

// mergeRanges sorts ranges by start and merges overlapping or touching
// intervals.
func mergeRanges(ranges [][2]int) [][2]int {
	if len(ranges) < 2 {
		return ranges
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if r[0] <= last[1] {
			if r[1] > last[1] {
				last[1] = r[1]
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
