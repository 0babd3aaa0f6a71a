// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/events.go
// Summary: Host-independent key, mouse and paste events.

package input

import "github.com/gdamore/tcell/v2"

// WheelLines is how many lines one wheel notch scrolls.
const WheelLines = 3

// KeyEvent is a normalized key press.
type KeyEvent struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// KeyFromTcell converts a tcell key event.
func KeyFromTcell(ev *tcell.EventKey) KeyEvent {
	return KeyEvent{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
}

// IsRune reports whether the event is the plain rune r with no modifiers
// beyond shift.
func (k KeyEvent) IsRune(r rune) bool {
	return k.Key == tcell.KeyRune && k.Rune == r && k.Mod&^tcell.ModShift == 0
}

// IsCtrl reports whether the event is Ctrl plus the letter r.
func (k KeyEvent) IsCtrl(r rune) bool {
	switch r {
	case 'd':
		return k.Key == tcell.KeyCtrlD
	case 'u':
		return k.Key == tcell.KeyCtrlU
	case 'c':
		return k.Key == tcell.KeyCtrlC
	}
	return k.Key == tcell.KeyRune && k.Rune == r && k.Mod&tcell.ModCtrl != 0
}

// MouseKind classifies a mouse event.
type MouseKind int

const (
	MouseDown MouseKind = iota
	MouseDrag
	MouseUp
	MouseWheelUp
	MouseWheelDown
	MouseMove
)

// MouseEvent is a normalized mouse event in buffer coordinates.
type MouseEvent struct {
	X, Y int
	Kind MouseKind
	Mod  tcell.ModMask
}

// MouseTracker turns tcell's stateless button masks into down/drag/up
// transitions. One tracker per input source.
type MouseTracker struct {
	held bool
}

// Translate converts a tcell mouse event, using the tracker's held state
// to classify presses, drags and releases.
func (t *MouseTracker) Translate(ev *tcell.EventMouse) MouseEvent {
	x, y := ev.Position()
	out := MouseEvent{X: x, Y: y, Mod: ev.Modifiers()}
	btns := ev.Buttons()
	switch {
	case btns&tcell.WheelUp != 0:
		out.Kind = MouseWheelUp
	case btns&tcell.WheelDown != 0:
		out.Kind = MouseWheelDown
	case btns&tcell.Button1 != 0:
		if t.held {
			out.Kind = MouseDrag
		} else {
			out.Kind = MouseDown
			t.held = true
		}
	default:
		if t.held {
			out.Kind = MouseUp
			t.held = false
		} else {
			out.Kind = MouseMove
		}
	}
	return out
}

// PasteEvent carries bracketed-paste text.
type PasteEvent struct {
	Text string
}
