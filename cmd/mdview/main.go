// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/mdview/main.go
// Summary: Render a markdown file to styled terminal output.
// Usage: mdview [-w width] [-style name] [file]; reads stdin without a file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/texelview/highlight"
	"github.com/framegrace/texelview/markdown"
	"github.com/framegrace/texelview/theme"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("mdview", flag.ContinueOnError)
	width := fs.Int("w", 0, "Render width (default: terminal width, else 80)")
	styleName := fs.String("style", "", "Chroma style for code blocks")
	baseURL := fs.String("base-url", "", "Base URL for relative links")
	tableStyle := fs.String("table", "glow", "Table style: glow or box")
	noWrap := fs.Bool("no-wrap", false, "Disable prose wrapping")
	plain := fs.Bool("plain", false, "Disable syntax highlighting")
	urls := fs.Bool("urls", false, "Show link destinations after link text")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one file argument, got %d", fs.NArg())
	}

	src, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := markdown.DefaultOptions()
	opts.ShowScrollbar = false
	opts.WrapText = !*noWrap
	opts.BaseURL = *baseURL
	opts.ShowLinkDestinations = *urls
	switch *tableStyle {
	case "glow":
		opts.TableStyle = markdown.TableGlow
	case "box":
		opts.TableStyle = markdown.TableBox
	default:
		return fmt.Errorf("unknown table style %q", *tableStyle)
	}

	w := *width
	if w <= 0 {
		w = 80
		if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
			w = tw
		}
	}

	doc := markdown.NewDocument(opts)
	if !*plain {
		doc.SetHighlighter(highlight.NewChroma(*styleName))
	}
	doc.SetText(src)

	th := theme.Default()
	out := os.Stdout
	for _, line := range doc.LinesForWidth(w, th) {
		writeLineANSI(out, line, th)
	}
	return nil
}

func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
