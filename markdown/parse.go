// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/parse.go
// Summary: Goldmark AST to block model conversion.

package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/framegrace/texelview/core"
)

var mdParser = goldmark.New(goldmark.WithExtensions(
	extension.Table,
	extension.Strikethrough,
	extension.TaskList,
	extension.Footnote,
))

// ParseBlocks parses markdown source into the block model.
func ParseBlocks(source string, opts Options) []Block {
	src := []byte(source)
	doc := mdParser.Parser().Parse(text.NewReader(src))
	b := &builder{src: src, opts: opts}
	b.children(doc, true)
	for len(b.blocks) > 0 && b.blocks[len(b.blocks)-1].Kind == BlockBlank {
		b.blocks = b.blocks[:len(b.blocks)-1]
	}
	return b.blocks
}

// prefixFrame is one level of accumulated indentation. The initial
// segments are consumed by the first block rendered at this level; every
// later block at the level uses the subsequent segments instead.
type prefixFrame struct {
	initial     []Segment
	subsequent  []Segment
	initialUsed bool
}

type builder struct {
	src      []byte
	opts     Options
	blocks   []Block
	prefixes []prefixFrame
	// listDepth and itemDepth track open lists and list items, for the
	// glow-compat adjustments that only apply in or after lists.
	listDepth int
	itemDepth int
}

func (b *builder) push(f prefixFrame) { b.prefixes = append(b.prefixes, f) }
func (b *builder) pop()               { b.prefixes = b.prefixes[:len(b.prefixes)-1] }

// prefixPair materializes the initial and subsequent prefixes for the
// next block and consumes pending initial segments.
func (b *builder) prefixPair() (ini, sub []Segment) {
	for i := range b.prefixes {
		f := &b.prefixes[i]
		if f.initialUsed {
			ini = append(ini, f.subsequent...)
		} else {
			ini = append(ini, f.initial...)
			f.initialUsed = true
		}
		sub = append(sub, f.subsequent...)
	}
	return ini, sub
}

// subPrefix materializes only the continuation prefix, for blank lines.
func (b *builder) subPrefix() []Segment {
	var sub []Segment
	for _, f := range b.prefixes {
		sub = append(sub, f.subsequent...)
	}
	return sub
}

func (b *builder) emit(blk Block) {
	blk.InitialPrefix, blk.SubsequentPrefix = b.prefixPair()
	if b.dropsQuoteBars(blk.Kind) {
		blk.SubsequentPrefix = withoutQuoteBars(blk.SubsequentPrefix)
	}
	b.blocks = append(b.blocks, blk)
}

// dropsQuoteBars reports whether continuation lines of this block lose
// their blockquote bars (prose inside a list item, glow-compat).
func (b *builder) dropsQuoteBars(kind BlockKind) bool {
	if !b.opts.GlowCompatQuoteListWrap || b.itemDepth == 0 {
		return false
	}
	return kind == BlockParagraph || kind == BlockHeading
}

// withoutQuoteBars removes non-whitespace quote segments, keeping list
// indentation (which is all spaces).
func withoutQuoteBars(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Quote && strings.TrimSpace(s.Text) != "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// children walks parent's block children, inserting blank separators
// between siblings when separate is set.
func (b *builder) children(parent ast.Node, separate bool) {
	first := true
	var prev ast.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if !first && separate {
			if b.joinsLooseParagraph(c) {
				b.joinParagraph(c)
				prev = c
				continue
			}
			b.blocks = append(b.blocks, blank(b.subPrefix()))
			b.postListBlanks(prev, c)
		}
		first = false
		b.block(c)
		prev = c
	}
}

// joinsLooseParagraph reports whether c should be folded into the
// previous paragraph instead of starting its own block.
func (b *builder) joinsLooseParagraph(c ast.Node) bool {
	if !b.opts.GlowCompatLooseListJoin || b.itemDepth == 0 {
		return false
	}
	if _, ok := c.(*ast.Paragraph); !ok {
		return false
	}
	return len(b.blocks) > 0 && b.blocks[len(b.blocks)-1].Kind == BlockParagraph
}

func (b *builder) joinParagraph(c ast.Node) {
	prev := &b.blocks[len(b.blocks)-1]
	prev.Lines = append(prev.Lines, b.inlineLines(c, 0)...)
}

// postListBlanks inserts extra blank lines between a top-level list and
// a following paragraph.
func (b *builder) postListBlanks(prev, cur ast.Node) {
	if b.opts.GlowCompatPostListBlankLines <= 0 || b.listDepth > 0 {
		return
	}
	if _, ok := prev.(*ast.List); !ok {
		return
	}
	if _, ok := cur.(*ast.Paragraph); !ok {
		return
	}
	for i := 0; i < b.opts.GlowCompatPostListBlankLines; i++ {
		b.blocks = append(b.blocks, blank(b.subPrefix()))
	}
}

func (b *builder) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		lines := b.inlineLines(n, n.Level)
		if b.opts.ShowHeadingMarkers && len(lines) > 0 {
			marker := Segment{Text: strings.Repeat("#", n.Level) + " ", Heading: n.Level}
			lines[0] = append([]Segment{marker}, lines[0]...)
		}
		b.emit(Block{Kind: BlockHeading, Level: n.Level, Lines: lines})
	case *ast.Paragraph:
		b.emit(Block{Kind: BlockParagraph, Lines: b.inlineLines(n, 0)})
	case *ast.TextBlock:
		b.emit(Block{Kind: BlockParagraph, Lines: b.inlineLines(n, 0)})
	case *ast.ThematicBreak:
		b.emit(Block{Kind: BlockRule})
	case *ast.Blockquote:
		b.push(prefixFrame{
			initial:    []Segment{quoteSeg(b.opts.BlockquotePrefix)},
			subsequent: []Segment{quoteSeg(b.opts.BlockquotePrefix)},
		})
		b.children(n, true)
		b.pop()
	case *ast.FencedCodeBlock:
		lang := ""
		if n.Info != nil {
			lang = normalizeFencedLang(string(n.Info.Value(b.src)))
		}
		b.emit(Block{Kind: BlockCode, Language: lang, Code: b.codeLines(n)})
	case *ast.CodeBlock:
		b.emit(Block{Kind: BlockCode, Code: b.codeLines(n)})
	case *ast.List:
		b.list(n)
	case *ast.HTMLBlock:
		var sb strings.Builder
		for i := 0; i < n.Lines().Len(); i++ {
			s := n.Lines().At(i)
			sb.Write(s.Value(b.src))
		}
		if t := htmlToText(sb.String()); t != "" {
			b.emit(Block{Kind: BlockParagraph, Lines: [][]Segment{{seg(t)}}})
		}
	case *east.Table:
		b.table(n)
	case *east.FootnoteList:
		b.footnoteList(n)
	case *east.Footnote:
		// Handled through the footnote list.
	default:
		// Unknown containers still contribute their children.
		if n.Type() == ast.TypeBlock && n.HasChildren() {
			b.children(n, false)
		}
	}
}

func (b *builder) list(n *ast.List) {
	ordered := n.IsOrdered()
	start := n.Start
	if start == 0 {
		start = 1
	}
	b.listDepth++
	itemNo := 0
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		if itemNo > 0 && !n.IsTight {
			b.blocks = append(b.blocks, blank(b.subPrefix()))
		}
		bullet := b.opts.BulletMarker
		if ordered {
			bullet = fmt.Sprintf("%d. ", start+itemNo)
		}
		if checked, ok := taskMarker(item); ok {
			if checked {
				bullet = "[✓] "
			} else {
				bullet = "[ ] "
			}
		}
		pad := strings.Repeat(" ", core.StringWidth(bullet))
		b.push(prefixFrame{
			initial:    []Segment{quoteSeg(bullet)},
			subsequent: []Segment{quoteSeg(pad)},
		})
		b.itemDepth++
		b.children(item, !n.IsTight)
		b.itemDepth--
		b.pop()
		itemNo++
	}
	b.listDepth--
}

// taskMarker looks for a task-list checkbox at the start of the item's
// first paragraph.
func taskMarker(item ast.Node) (checked, ok bool) {
	first := item.FirstChild()
	if first == nil {
		return false, false
	}
	if cb, isCb := first.FirstChild().(*east.TaskCheckBox); isCb {
		return cb.IsChecked, true
	}
	return false, false
}

func (b *builder) codeLines(n interface {
	Lines() *text.Segments
}) []string {
	var lines []string
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		s := segs.At(i)
		line := strings.TrimSuffix(string(s.Value(b.src)), "\n")
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", core.TabWidth))
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (b *builder) table(n *east.Table) {
	blk := Block{Kind: BlockTable}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		switch row := row.(type) {
		case *east.TableHeader:
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				blk.Head = append(blk.Head, b.cellSegments(cell))
				if tc, ok := cell.(*east.TableCell); ok {
					blk.Aligns = append(blk.Aligns, tableAlign(tc.Alignment))
				} else {
					blk.Aligns = append(blk.Aligns, AlignNone)
				}
			}
		case *east.TableRow:
			var cells [][]Segment
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, b.cellSegments(cell))
			}
			blk.Rows = append(blk.Rows, cells)
		}
	}
	b.emit(blk)
}

func (b *builder) cellSegments(cell ast.Node) []Segment {
	lines := b.inlineLines(cell, 0)
	var out []Segment
	for i, l := range lines {
		if i > 0 {
			out = append(out, seg(" "))
		}
		out = append(out, l...)
	}
	return out
}

func tableAlign(a east.Alignment) Alignment {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	}
	return AlignNone
}

func (b *builder) footnoteList(n *east.FootnoteList) {
	b.blocks = append(b.blocks, blank(b.subPrefix()))
	first := true
	for fn := n.FirstChild(); fn != nil; fn = fn.NextSibling() {
		f, ok := fn.(*east.Footnote)
		if !ok {
			continue
		}
		if !first {
			b.blocks = append(b.blocks, blank(b.subPrefix()))
		}
		first = false
		label := fmt.Sprintf("[^%d]: ", f.Index)
		if len(f.Ref) > 0 {
			label = fmt.Sprintf("[^%s]: ", string(f.Ref))
		}
		var sub []Segment
		if b.opts.FootnoteHangingIndent {
			sub = []Segment{quoteSeg(strings.Repeat(" ", core.StringWidth(label)))}
		}
		b.push(prefixFrame{
			initial:    []Segment{mutedSeg(label)},
			subsequent: sub,
		})
		b.children(f, true)
		b.pop()
	}
}

// normalizeFencedLang reduces a fence info string to a language name:
// first whitespace token, with "language-" prefixes, braces and commas
// stripped.
func normalizeFencedLang(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	lang := fields[0]
	lang = strings.TrimPrefix(lang, "language-")
	lang = strings.Trim(lang, "{},")
	return lang
}
