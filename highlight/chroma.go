// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/chroma.go
// Summary: Chroma-backed highlighter producing styled lines.

package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
)

const defaultStyleName = "catppuccin-mocha"

// Chroma highlights with the Chroma lexer set and a named Chroma style.
type Chroma struct {
	style *chroma.Style
}

// NewChroma returns a highlighter using the named style, falling back to
// the default style when name is empty or unknown.
func NewChroma(styleName string) *Chroma {
	if styleName == "" {
		styleName = defaultStyleName
	}
	return &Chroma{style: styles.Get(styleName)}
}

// HighlightText tokenizes text as language and maps token colors to
// styled spans. Tokens carrying the style's base text color stay
// unstyled so the caller's fallback shows through.
func (c *Chroma) HighlightText(language, text string) ([]core.Line, bool) {
	lexer := getLexer(language, text)
	lexer = chroma.Coalesce(lexer)
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return nil, false
	}

	baseColour := c.style.Get(chroma.Text).Colour
	lines := []core.Line{{}}
	cur := &lines[len(lines)-1]

	flush := func(run []rune, st tcell.Style, styled bool) {
		if len(run) == 0 {
			return
		}
		sp := core.Span{Text: string(run)}
		if styled {
			sp.Style = st
		}
		cur.Spans = append(cur.Spans, sp)
	}

	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st, styled := c.tokenStyle(tok.Type, baseColour)
		var run []rune
		for _, r := range tok.Value {
			if r == '\n' {
				flush(run, st, styled)
				run = run[:0]
				lines = append(lines, core.Line{})
				cur = &lines[len(lines)-1]
				continue
			}
			run = append(run, r)
		}
		flush(run, st, styled)
	}
	// Chroma's trailing newline produces one empty line too many.
	if n := len(lines); n > 1 && len(lines[n-1].Spans) == 0 {
		lines = lines[:n-1]
	}
	return lines, true
}

// BackgroundColor returns the style's background when it defines one.
func (c *Chroma) BackgroundColor() (tcell.Color, bool) {
	bg := c.style.Get(chroma.Background).Background
	if !bg.IsSet() {
		return 0, false
	}
	return tcell.NewRGBColor(int32(bg.Red()), int32(bg.Green()), int32(bg.Blue())), true
}

// tokenStyle maps a token type to a tcell style. styled=false means the
// token matches the base text color and carries no attributes.
func (c *Chroma) tokenStyle(t chroma.TokenType, baseColour chroma.Colour) (tcell.Style, bool) {
	entry := c.style.Get(t)
	st := tcell.StyleDefault
	styled := false
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
		styled = true
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
		styled = true
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
		styled = true
	}
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
		styled = true
	}
	return st, styled
}

// getLexer resolves a lexer by name, or auto-detects from content.
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}
