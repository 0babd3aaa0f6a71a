// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/bindings.go
// Summary: Shared key and wheel bindings for scrolling views.

package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/scroll"
)

// HScrollStep is how many columns horizontal keys scroll.
const HScrollStep = 4

// Action is what a shared binding decided.
type Action int

const (
	// ActionNone means the event was not handled.
	ActionNone Action = iota
	// ActionHandled means the view scrolled or otherwise consumed the event.
	ActionHandled
	// ActionCopy means the host should copy the current selection.
	ActionCopy
	// ActionSelectionCleared means the selection was just cleared.
	ActionSelectionCleared
)

// HandleViewKey applies the shared binding set. Escape clears an active
// selection before anything else; y and c request a copy while a
// selection exists; everything else falls through to scrolling.
func HandleViewKey(ev KeyEvent, st *scroll.State, sel *Selection) Action {
	if ev.Key == tcell.KeyEscape && sel != nil && sel.Active {
		sel.Clear()
		return ActionSelectionCleared
	}
	if (ev.IsRune('y') || ev.IsRune('c')) && sel != nil && sel.Active {
		return ActionCopy
	}
	if HandleScrollKey(ev, st) {
		return ActionHandled
	}
	return ActionNone
}

// HandleScrollKey applies the vi-flavored scroll bindings to st.
func HandleScrollKey(ev KeyEvent, st *scroll.State) bool {
	switch {
	case ev.IsRune('j') || ev.Key == tcell.KeyDown:
		st.ScrollYBy(1)
	case ev.IsRune('k') || ev.Key == tcell.KeyUp:
		st.ScrollYBy(-1)
	case ev.Key == tcell.KeyPgDn:
		st.PageDown()
	case ev.Key == tcell.KeyPgUp:
		st.PageUp()
	case ev.IsCtrl('d'):
		st.HalfPageDown()
	case ev.IsCtrl('u'):
		st.HalfPageUp()
	case ev.IsRune('g') || ev.Key == tcell.KeyHome:
		st.ToTop()
	case ev.IsRune('G') || ev.Key == tcell.KeyEnd:
		st.ToBottom()
	case ev.IsRune('h') || ev.Key == tcell.KeyLeft:
		st.ScrollXBy(-HScrollStep)
	case ev.IsRune('l') || ev.Key == tcell.KeyRight:
		st.ScrollXBy(HScrollStep)
	default:
		return false
	}
	return true
}

// HandleWheel applies wheel scrolling to st.
func HandleWheel(ev MouseEvent, st *scroll.State) bool {
	switch ev.Kind {
	case MouseWheelUp:
		st.ScrollYBy(-WheelLines)
	case MouseWheelDown:
		st.ScrollYBy(WheelLines)
	default:
		return false
	}
	return true
}
