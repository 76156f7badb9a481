// Package progress implements a periodic, human-readable diagnostic counter
// for the build pipeline's long-running phases.
//
// A Reporter never affects the outcome of a build or query, only what gets
// printed while one runs: safe to omit entirely, and safe to call from
// multiple goroutines concurrently reporting the same counter.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// Reporter emits one line for each call to Tick whose count n is a non-zero
// multiple of every, plus a final unconditional line from Done.
type Reporter struct {
	label   string
	every   uint64
	w       io.Writer
	start   time.Time
	lastPrinted atomic.Uint64
}

// New creates a Reporter labeled label, writing to w, printing one line
// for each Tick whose count is a non-zero multiple of every. A zero every
// disables all Tick output (Done still prints).
func New(w io.Writer, label string, every uint64) *Reporter {
	r := &Reporter{
		label: label,
		every: every,
		w:     w,
		start: time.Now(),
	}
	r.lastPrinted.Store(^uint64(0))
	return r
}

// NewStderr is a convenience constructor writing to os.Stderr, the
// diagnostic stream the build package's reporters default to.
func NewStderr(label string, every uint64) *Reporter {
	return New(os.Stderr, label, every)
}

// Tick reports progress at count n. It is a no-op unless n is a non-zero
// multiple of the configured modulus; among concurrent callers reporting the
// same n, only one line is printed (an atomic swap on the last-printed value
// coalesces the rest).
func (r *Reporter) Tick(n uint64, extra string) {
	if n == 0 || r.every == 0 || n%r.every != 0 {
		return
	}
	if prev := r.lastPrinted.Swap(n); prev == n {
		return
	}
	r.println(n, extra, "")
}

// Done emits a terminal line unconditionally, regardless of n's relation to
// the modulus.
func (r *Reporter) Done(n uint64, extra string) {
	r.println(n, extra, "DONE  ")
}

func (r *Reporter) println(n uint64, extra, tag string) {
	fmt.Fprintf(r.w, "[%-14s] %12d  t=%7.2fs  %s%s\n",
		r.label, n, time.Since(r.start).Seconds(), tag, extra)
}
