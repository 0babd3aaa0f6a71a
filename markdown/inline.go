// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/inline.go
// Summary: Inline AST walking into segment lines.

package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

type inlineCtx struct {
	bold, italic, strike, code bool
	link                       string
	heading                    int
}

func (c inlineCtx) segment(text string) Segment {
	return Segment{
		Text:    text,
		Bold:    c.bold,
		Italic:  c.italic,
		Strike:  c.strike,
		Code:    c.code,
		Link:    c.link,
		Heading: c.heading,
	}
}

// inlineWriter accumulates segments into logical lines.
type inlineWriter struct {
	lines [][]Segment
	cur   []Segment
	// trimNext drops one leading space from the next segment, used after
	// a task checkbox whose trailing space stays in the source text.
	trimNext bool
}

func (w *inlineWriter) add(s Segment) {
	if w.trimNext {
		s.Text = strings.TrimPrefix(s.Text, " ")
		w.trimNext = false
	}
	if s.Text == "" {
		return
	}
	w.cur = append(w.cur, s)
}

// addTight appends text to the previous segment when it does not end in
// whitespace, so references stay glued to the word before them.
func (w *inlineWriter) addTight(s Segment) {
	if n := len(w.cur); n > 0 {
		prev := &w.cur[n-1]
		if prev.Text != "" && !strings.HasSuffix(prev.Text, " ") && !strings.HasSuffix(prev.Text, "\t") {
			prev.Text += s.Text
			return
		}
	}
	w.add(s)
}

func (w *inlineWriter) newline() {
	w.lines = append(w.lines, w.cur)
	w.cur = nil
}

func (w *inlineWriter) finish() [][]Segment {
	w.lines = append(w.lines, w.cur)
	return w.lines
}

// inlineLines renders parent's inline children into logical lines.
func (b *builder) inlineLines(parent ast.Node, heading int) [][]Segment {
	w := &inlineWriter{}
	b.walkInlines(parent, inlineCtx{heading: heading}, w)
	return w.finish()
}

func (b *builder) walkInlines(parent ast.Node, ctx inlineCtx, w *inlineWriter) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			w.add(ctx.segment(string(n.Segment.Value(b.src))))
			if n.HardLineBreak() {
				w.newline()
			} else if n.SoftLineBreak() {
				if b.opts.PreserveNewLines {
					w.newline()
				} else {
					w.add(ctx.segment(" "))
				}
			}
		case *ast.String:
			w.add(ctx.segment(string(n.Value)))
		case *ast.CodeSpan:
			sub := ctx
			sub.code = true
			b.walkInlines(n, sub, w)
		case *ast.Emphasis:
			sub := ctx
			if n.Level >= 2 {
				sub.bold = true
			} else {
				sub.italic = true
			}
			b.walkInlines(n, sub, w)
		case *east.Strikethrough:
			sub := ctx
			sub.strike = true
			b.walkInlines(n, sub, w)
		case *ast.Link:
			b.link(n, ctx, w)
		case *ast.AutoLink:
			url := string(n.URL(b.src))
			link := url
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(link, "mailto:") {
				link = "mailto:" + link
			}
			sub := ctx
			sub.link = link
			w.add(sub.segment(string(n.Label(b.src))))
		case *ast.Image:
			b.image(n, ctx, w)
		case *ast.RawHTML:
			var sb strings.Builder
			for i := 0; i < n.Segments.Len(); i++ {
				s := n.Segments.At(i)
				sb.Write(s.Value(b.src))
			}
			w.add(ctx.segment(htmlToText(sb.String())))
		case *east.TaskCheckBox:
			// The list builder already replaced the bullet.
			w.trimNext = true
		case *east.FootnoteLink:
			w.addTight(Segment{
				Text: fmt.Sprintf("[^%d]", n.Index),
				Link: fmt.Sprintf("#footnote-%d", n.Index),
			})
		default:
			if n.HasChildren() {
				b.walkInlines(n, ctx, w)
			}
		}
	}
}

func (b *builder) link(n *ast.Link, ctx inlineCtx, w *inlineWriter) {
	dest := string(n.Destination)
	resolved := ResolveURL(b.opts.BaseURL, dest, b.opts.GlowCompatRelativePaths)
	sub := ctx
	sub.link = resolved
	b.walkInlines(n, sub, w)
	if !b.opts.ShowLinkDestinations {
		return
	}
	text := strings.TrimSpace(plainTextOf(n, b.src))
	if text == "" || text == dest || text == strings.TrimPrefix(dest, "mailto:") {
		return
	}
	switch b.opts.LinkDestinationStyle {
	case LinkDestSpace:
		w.add(mutedSeg(" " + resolved))
	default:
		w.add(mutedSeg(" (" + resolved + ")"))
	}
}

func (b *builder) image(n *ast.Image, ctx inlineCtx, w *inlineWriter) {
	dest := string(n.Destination)
	resolved := ResolveURL(b.opts.BaseURL, dest, b.opts.GlowCompatRelativePaths)
	alt := plainTextOf(n, b.src)
	if alt == "" {
		alt = "[image]"
	}
	w.add(mutedSeg("Image: "))
	w.add(Segment{Text: alt, Link: resolved, Muted: true})
	w.add(mutedSeg(" → "))
	w.add(mutedSeg(resolved))
}

// plainTextOf concatenates the text content of n's subtree.
func plainTextOf(n ast.Node, src []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch n := n.(type) {
		case *ast.Text:
			sb.Write(n.Segment.Value(src))
		case *ast.String:
			sb.Write(n.Value)
		default:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}
