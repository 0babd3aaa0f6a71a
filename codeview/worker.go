// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: codeview/worker.go
// Summary: Per-view async highlight worker.

package codeview

import (
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/highlight"
)

type highlightRequest struct {
	hash     uint64
	language string
	lines    []string
}

type highlightResult struct {
	hash  uint64
	lines []core.Line
	ok    bool
}

// worker is a single long-lived highlight goroutine. Requests supersede
// each other; results are tagged with the input hash so the view can
// discard stale ones.
type worker struct {
	req chan highlightRequest
	res chan highlightResult
}

func newWorker(h highlight.Highlighter) *worker {
	w := &worker{
		req: make(chan highlightRequest, 1),
		res: make(chan highlightResult, 4),
	}
	go func() {
		for r := range w.req {
			lines, ok := highlight.HighlightLines(h, r.language, r.lines)
			select {
			case w.res <- highlightResult{hash: r.hash, lines: lines, ok: ok}:
			default:
				// The view stopped draining; the result is stale anyway.
			}
		}
	}()
	return w
}

// submit hands the worker a request, displacing any queued one.
func (w *worker) submit(r highlightRequest) bool {
	for {
		select {
		case w.req <- r:
			return true
		default:
		}
		select {
		case <-w.req:
		default:
			return false
		}
	}
}

// drain returns all pending results without blocking.
func (w *worker) drain() []highlightResult {
	var out []highlightResult
	for {
		select {
		case r := <-w.res:
			out = append(out, r)
		default:
			return out
		}
	}
}

func (w *worker) stop() { close(w.req) }
