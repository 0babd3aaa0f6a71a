// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: mdstream/stream.go
// Summary: Incremental markdown block splitter.

package mdstream

import "strings"

// Update is the result of feeding a stream. Committed carries block raws
// that just became final; Pending is the still-growing tail. Reset tells
// consumers to drop prior state first.
type Update struct {
	Reset bool
	// Committed holds newly committed block raw texts, in order.
	Committed []string
	// Pending is the raw text of the unfinished tail block, "" for none.
	Pending string
	// PendingDisplay optionally overrides what the pending block shows
	// while its raw text keeps accumulating.
	PendingDisplay string
}

// Stream splits an append-only markdown text into committed blocks and a
// pending tail. A block commits once a blank line separates it from
// later content, except inside an open code fence where blank lines
// belong to the block.
type Stream struct {
	tail           string
	pendingDisplay string
}

// Append feeds a delta and reports what changed.
func (s *Stream) Append(delta string) Update {
	s.tail += delta
	committed, rest := splitCommitted(s.tail)
	s.tail = rest
	return Update{
		Committed:      committed,
		Pending:        strings.TrimRight(rest, "\n"),
		PendingDisplay: s.pendingDisplay,
	}
}

// SetPendingDisplay overrides the pending block's displayed text until
// the next commit. An empty string removes the override.
func (s *Stream) SetPendingDisplay(display string) Update {
	s.pendingDisplay = display
	return Update{
		Pending:        strings.TrimRight(s.tail, "\n"),
		PendingDisplay: display,
	}
}

// Finalize commits whatever is buffered and clears the stream.
func (s *Stream) Finalize() Update {
	committed, rest := splitCommitted(s.tail)
	if t := strings.TrimRight(rest, "\n"); strings.TrimSpace(t) != "" {
		committed = append(committed, t)
	}
	s.tail = ""
	s.pendingDisplay = ""
	return Update{Committed: committed}
}

// Reset drops all buffered state.
func (s *Stream) Reset() Update {
	s.tail = ""
	s.pendingDisplay = ""
	return Update{Reset: true}
}

// splitCommitted cuts text into blank-line separated chunks whose end is
// certain, returning them plus the undecided rest. A chunk's end is
// certain only once non-blank content follows the separating blank, so
// late-arriving continuation lines can never mutate a committed block.
func splitCommitted(text string) (committed []string, rest string) {
	chunkStart := 0
	pos := 0
	sawContent := false
	sawBlank := false
	inFence := false
	var fence fenceInfo

	remaining := text
	for remaining != "" {
		nl := strings.IndexByte(remaining, '\n')
		var line string
		if nl < 0 {
			line = remaining
			remaining = ""
		} else {
			line = remaining[:nl]
			remaining = remaining[nl+1:]
		}
		lineEnd := pos + len(line)
		if nl >= 0 {
			lineEnd++
		}

		blank := strings.TrimSpace(line) == ""
		switch {
		case inFence:
			if fence.closes(line) {
				inFence = false
			}
		case blank:
			if sawContent {
				sawBlank = true
			}
		default:
			if sawBlank {
				committed = append(committed, strings.TrimRight(text[chunkStart:pos], "\n"))
				chunkStart = pos
				sawBlank = false
				sawContent = false
			}
			sawContent = true
			if f, ok := parseFenceOpening(line); ok {
				inFence = true
				fence = f
			}
		}
		pos = lineEnd
	}
	return committed, text[chunkStart:]
}

// State accumulates applied updates: the committed block raws plus the
// current pending block.
type State struct {
	Committed      []string
	Pending        string
	PendingDisplay string
}

// Apply folds an update into the state.
func (st *State) Apply(u Update) {
	if u.Reset {
		*st = State{}
		return
	}
	st.Committed = append(st.Committed, u.Committed...)
	st.Pending = u.Pending
	st.PendingDisplay = u.PendingDisplay
}

// PendingText returns the display override when set, the raw pending
// text otherwise.
func (st *State) PendingText() string {
	if st.PendingDisplay != "" {
		return st.PendingDisplay
	}
	return st.Pending
}
