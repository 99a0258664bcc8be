// Package sink implements the pipeline.Sink that spec.md §6 describes: a
// tab-separated writer, one solution per line, with an optional header
// row. Callers are the pipeline's single aggregator goroutine (spec.md §5's
// single-writer rule), matching how shiva.go/krishna.go wrap an *os.File in
// a single bufio.Writer that only one goroutine ever touches.
package sink

import (
	"bufio"
	"fmt"
	"io"

	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/overlap"
)

// Header is the optional TSV header row spec.md §6 names.
const Header = "idA\tidB\tO\tOHA\tOHB\tOLA\tOLB\tK"

// Writer buffers TSV-formatted solution rows to an underlying io.Writer.
type Writer struct {
	maps *corpus.Maps
	w    *bufio.Writer

	// failed latches true on the first write error; once set, the CLI
	// marks the run failed at exit. The Writer itself keeps accepting
	// rows, but internal/pipeline stops aggregating on the first error a
	// Write or Flush returns, so later tasks' solutions are not written.
	failed  bool
	lastErr error
}

// New wraps out in a buffered Writer. If formatLine is true, the header row
// is written immediately.
func New(out io.Writer, maps *corpus.Maps, formatLine bool) (*Writer, error) {
	w := &Writer{maps: maps, w: bufio.NewWriter(out)}
	if formatLine {
		if _, err := w.w.WriteString(Header + "\n"); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Write appends one TSV row for sol. A write failure is recorded (see
// Failed) and also returned; both of internal/pipeline's output modes
// stop on the first returned error.
func (w *Writer) Write(sol overlap.Solution) error {
	nameA := w.maps.Name(sol.IDA)
	nameB := w.maps.Name(sol.IDB)
	_, err := fmt.Fprintf(w.w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
		nameA, nameB, sol.Orientation, sol.OverhangLeftA, sol.OverhangRightB,
		sol.OverlapA, sol.OverlapB, sol.Errors)
	if err != nil {
		w.failed = true
		w.lastErr = err
	}
	return err
}

// Flush pushes buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		w.failed = true
		w.lastErr = err
		return err
	}
	return nil
}

// Failed reports whether any Write or Flush call has ever failed, for the
// CLI to decide the aggregate run's exit status.
func (w *Writer) Failed() bool { return w.failed }

// LastError returns the most recent write/flush error, if any.
func (w *Writer) LastError() error { return w.lastErr }
