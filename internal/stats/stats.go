// Package stats implements the optional --histogram run summary: a QC
// artifact (distribution of emitted overlap lengths) that the distilled
// spec omits but any real assembly pre-processing step would produce
// (SPEC_FULL.md's supplemented-feature list). It is the only consumer of
// the teacher's otherwise-unused gonum.org/v1/plot and
// gonum.org/v1/gonum/stat dependencies.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/biogo-overlaps/overlaps/internal/overlap"
)

// Collector accumulates the overlap lengths of every solution a run
// emits, for a final histogram and summary. It is written to only by the
// pipeline's aggregator goroutine (the same single-writer discipline as
// internal/sink), so it needs no locking.
type Collector struct {
	lengths []float64
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Add records the overlap length of one emitted solution. The longer of
// OverlapA/OverlapB is used, matching how Verify computes an overlap's
// representative length for the error budget.
func (c *Collector) Add(sol overlap.Solution) {
	l := sol.OverlapA
	if sol.OverlapB > l {
		l = sol.OverlapB
	}
	c.lengths = append(c.lengths, float64(l))
}

// Summary is the printable numeric digest of a run's overlap lengths.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize reduces the collected lengths to a Summary. The zero Summary
// is returned if nothing was collected.
func (c *Collector) Summarize() Summary {
	if len(c.lengths) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(c.lengths, nil)
	min, max := c.lengths[0], c.lengths[0]
	for _, v := range c.lengths {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Summary{Count: len(c.lengths), Mean: mean, StdDev: std, Min: min, Max: max}
}

// WriteHistogram renders a histogram of collected overlap lengths to path
// as a PNG, the --histogram flag's artifact.
func (c *Collector) WriteHistogram(path string) error {
	if len(c.lengths) == 0 {
		return fmt.Errorf("stats: no overlaps collected, nothing to plot")
	}

	values := make(plotter.Values, len(c.lengths))
	copy(values, c.lengths)

	p := plot.New()
	p.Title.Text = "overlap length distribution"
	p.X.Label.Text = "overlap length (bp)"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(values, 50)
	if err != nil {
		return fmt.Errorf("stats: building histogram: %w", err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("stats: saving histogram to %q: %w", path, err)
	}
	return nil
}
