// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: diffview/worker.go
// Summary: Per-view async highlight worker.

package diffview

import (
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/highlight"
)

type highlightRequest struct {
	hash  uint64
	lines []Line
}

type highlightResult struct {
	hash  uint64
	spans map[int][]core.Span
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
			select {
			case w.res <- highlightResult{hash: r.hash, spans: highlightAll(r.lines, h)}:
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
