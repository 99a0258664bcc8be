// Package progress implements the ETA progress tracker of spec.md §4.7: a
// single dedicated goroutine, started only when enabled, that redraws a
// fixed-width terminal bar from a shared atomic task counter.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

const (
	barCells       = 30
	tickPeriod     = 500 * time.Millisecond
	ticksPerRedraw = 8 // redraw at least once every ~4s even without advancing a cell
)

// Tracker polls a shared tasks-done counter and redraws a bar to out.
type Tracker struct {
	done  *uint64
	total int
	out   io.Writer

	stop chan struct{}
	wg   doneWaiter
}

type doneWaiter chan struct{}

// New returns a Tracker over done (the pipeline's shared counter) and
// total (pipeline.NumTasks()), writing to out.
func New(done *uint64, total int, out io.Writer) *Tracker {
	return &Tracker{done: done, total: total, out: out, stop: make(chan struct{}), wg: make(doneWaiter)}
}

// Start launches the tracker goroutine. Only meaningful when the run's
// Config has TrackProgress enabled; callers that don't want a tracker
// simply never call Start.
func (t *Tracker) Start() {
	go t.run()
}

// Stop signals the tracker to draw one final full bar and exit, and
// blocks until it has. The final bar is drawn as total/total whatever
// the counter holds; cmd/overlaps calls Stop after the pipeline's Run
// returns, whether or not Run failed, and does not write the counter.
func (t *Tracker) Stop() {
	close(t.stop)
	<-t.wg
}

func (t *Tracker) run() {
	defer close(t.wg)
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	start := time.Now()
	lastCells := -1
	ticksSinceRedraw := 0

	draw := func(final bool) {
		done := atomic.LoadUint64(t.done)
		if final {
			done = uint64(t.total)
		}
		cells := barCells
		if t.total > 0 {
			cells = int(float64(barCells) * float64(done) / float64(t.total))
			if cells > barCells {
				cells = barCells
			}
		}
		if cells == lastCells && ticksSinceRedraw < ticksPerRedraw && !final {
			ticksSinceRedraw++
			return
		}
		lastCells = cells
		ticksSinceRedraw = 0

		bar := make([]byte, barCells)
		for i := range bar {
			if i < cells {
				bar[i] = '#'
			} else {
				bar[i] = '-'
			}
		}

		remaining := t.total - int(done)
		elapsed := time.Since(start).Seconds()
		eta := elapsed * float64(remaining) / (float64(done) + 0.2)

		if final {
			fmt.Fprintf(t.out, "\r[%s] %d/%d\n", bar, int(done), t.total)
			return
		}
		fmt.Fprintf(t.out, "\r[%s] %d/%d ETA %.1fs", bar, int(done), t.total, eta)
	}

	for {
		select {
		case <-ticker.C:
			draw(false)
		case <-t.stop:
			draw(true)
			return
		}
	}
}
