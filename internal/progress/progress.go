// Package progress reports phase completion counts to stderr. No
// progress-bar library appears anywhere in the example corpus, so this
// is the smallest possible stdlib stand-in, not a library substitute.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Reporter prints a single overwritten status line as work completes.
// Disabled entirely by --quiet.
type Reporter struct {
	out     io.Writer
	quiet   bool
	label   string
	total   int64
	done    int64
}

func New(out io.Writer, quiet bool, label string, total int) *Reporter {
	return &Reporter{out: out, quiet: quiet, label: label, total: int64(total)}
}

// Advance marks n more units of work complete and redraws the status line.
func (r *Reporter) Advance(n int) {
	if r == nil || r.quiet {
		return
	}
	done := atomic.AddInt64(&r.done, int64(n))
	fmt.Fprintf(r.out, "\r%s: %d/%d", r.label, done, r.total)
}

// Done finishes the status line with a trailing newline.
func (r *Reporter) Done() {
	if r == nil || r.quiet {
		return
	}
	fmt.Fprintln(r.out)
}
