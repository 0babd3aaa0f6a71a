// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/highlight.go
// Summary: Syntax highlighter contract and language detection.

package highlight

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texelview/core"
)

// Highlighter turns source text into styled lines. Implementations must
// be safe for concurrent use; code views call them from worker
// goroutines.
type Highlighter interface {
	// HighlightText highlights text as the given language. ok=false means
	// the highlighter could not handle the input and callers should fall
	// back to plain rendering.
	HighlightText(language, text string) (lines []core.Line, ok bool)
	// BackgroundColor returns the background the highlighted styles
	// assume, when the backend defines one.
	BackgroundColor() (tcell.Color, bool)
}

// HighlightLines highlights pre-split lines by joining them with "\n".
// On success the result has exactly one entry per input line.
func HighlightLines(h Highlighter, language string, lines []string) ([]core.Line, bool) {
	out, ok := h.HighlightText(language, strings.Join(lines, "\n"))
	if !ok {
		return nil, false
	}
	for len(out) < len(lines) {
		out = append(out, core.Line{})
	}
	return out[:len(lines)], true
}

// DetectLanguage guesses a language name from a filename and content.
// Either argument may be empty. Returns "" when nothing matches.
func DetectLanguage(filename string, content []byte) string {
	lang := enry.GetLanguage(filename, content)
	if lang == "" {
		return ""
	}
	return strings.ToLower(lang)
}

// LanguageForExtension maps a bare file extension such as ".go" to a
// language name, or "" when unknown.
func LanguageForExtension(ext string) string {
	langs := enry.GetLanguagesByExtension("x"+ext, nil, nil)
	if len(langs) == 0 {
		return ""
	}
	return strings.ToLower(langs[0])
}
