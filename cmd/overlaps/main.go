// overlaps discovers approximate suffix-prefix overlaps between every pair
// of records in a FASTA file, the computational core of an all-vs-all
// overlap step in sequence assembly. See spec.md / SPEC_FULL.md.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/biogo-overlaps/overlaps/internal/config"
	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/fmindex"
	"github.com/biogo-overlaps/overlaps/internal/ingest"
	"github.com/biogo-overlaps/overlaps/internal/mode"
	"github.com/biogo-overlaps/overlaps/internal/overlap"
	"github.com/biogo-overlaps/overlaps/internal/pipeline"
	"github.com/biogo-overlaps/overlaps/internal/progress"
	"github.com/biogo-overlaps/overlaps/internal/search"
	"github.com/biogo-overlaps/overlaps/internal/sink"
	"github.com/biogo-overlaps/overlaps/internal/stats"
	"github.com/biogo-overlaps/overlaps/internal/verify"
)

// indexSampleRate is the FM-index's occurrence-sampling factor, fixed per
// spec.md §4.2 ("Occurrence sampling factor: 3") and matching
// original_source/src/main.rs's Occ::new(&bwt, 3, &alphabet).
const indexSampleRate = 3

var (
	errRate       = flag.Float64("err-rate", 0.1, "maximum error rate tolerated in a confirmed overlap")
	thresh        = flag.Int("thresh", 20, "minimum overlap length")
	workerThreads = flag.Int("worker-threads", 4, "number of concurrent worker goroutines")
	modeName      = flag.String("mode", "kucherov", "block-partitioning mode name")
	reversals     = flag.Bool("reversals", false, "process each record twice: stored and reversed")
	inclusions    = flag.Bool("inclusions", false, "emit containment overlaps")
	editDistance  = flag.Bool("edit-distance", false, "use banded edit distance instead of Hamming distance")
	nAlphabet     = flag.Bool("n-alphabet", false, "accept N as a 5th symbol; otherwise strip N")
	greedy        = flag.Bool("greedy", false, "stream output as each task finishes, unsorted")
	sorted        = flag.Bool("sorted", false, "force deterministic, sorted and deduplicated output")
	formatLine    = flag.Bool("format-line", false, "write a TSV header row")
	printAlign    = flag.Bool("print", false, "print an alignment visualization of every confirmed overlap to stdout")
	trackProgress = flag.Bool("track-progress", false, "show an ETA progress bar on stderr")
	verbose       = flag.Int("verbose", 0, "log verbosity level")
	histogram     = flag.String("histogram", "", "write a PNG histogram of overlap lengths to this path")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] input.fasta output.tsv [mode-arg ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.New(os.Stderr, fmt.Sprintf("%s: ", filepath.Base(os.Args[0])), log.LstdFlags)

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &config.Config{
		Input:         args[0],
		Output:        args[1],
		ErrRate:       *errRate,
		Thresh:        *thresh,
		WorkerThreads: *workerThreads,
		Sorted:        *sorted,
		GreedyOutput:  *greedy,
		Reversals:     *reversals,
		Inclusions:    *inclusions,
		EditDistance:  *editDistance,
		NAlphabet:     *nAlphabet,
		FormatLine:    *formatLine,
		Print:         *printAlign,
		TrackProgress: *trackProgress,
		Verbosity:     *verbose,
		ModeName:      *modeName,
		ModeArgs:      args[2:],
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("%v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("opening input %q: %w", cfg.Input, err)
	}
	defer in.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output %q: %w", cfg.Output, err)
	}
	defer out.Close()

	builder := corpus.NewBuilder()
	if err := ingest.Load(in, builder, cfg.NAlphabet, cfg.Reversals); err != nil {
		return err
	}
	maps := builder.Finish()
	logger.Printf("loaded %d ids from %s", maps.NumIDs(), cfg.Input)

	md, err := mode.New(cfg.ModeName, cfg.ModeArgs)
	if err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	logger.Printf("mode = %s", md)

	start := time.Now()
	idx, err := fmindex.Build(maps.Text(), cfg.IndexAlphabet(), indexSampleRate)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	logger.Printf("built FM-index over %d bytes in %s", len(maps.Text()), time.Since(start))

	sr := search.New(idx, md, maps, cfg)
	vf := verify.New(maps, cfg)
	pl := pipeline.New(maps, sr, vf, cfg)

	w, err := sink.New(out, maps, cfg.FormatLine)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}

	col := stats.NewCollector()
	var tr *progress.Tracker
	if cfg.TrackProgress {
		tr = progress.New(pl.TasksDone(), pl.NumTasks(), os.Stderr)
		tr.Start()
	}

	runErr := pl.Run(&collectingSink{w: w, col: col, printAlign: cfg.Print, maps: maps})

	if tr != nil {
		tr.Stop()
	}
	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}
	if w.Failed() {
		return fmt.Errorf("output write failed: %w", w.LastError())
	}

	sum := col.Summarize()
	logger.Printf("emitted %d overlaps (mean length %.1f, range [%.0f,%.0f])", sum.Count, sum.Mean, sum.Min, sum.Max)

	if *histogram != "" {
		if err := col.WriteHistogram(*histogram); err != nil {
			logger.Printf("histogram: %v", err)
		}
	}
	return nil
}

// collectingSink wraps the TSV sink so every written solution also feeds
// the run's stats.Collector, and optionally prints its debug alignment —
// both side effects spec.md §5's single-writer rule allows since only the
// pipeline's aggregator goroutine ever calls Write.
type collectingSink struct {
	w          *sink.Writer
	col        *stats.Collector
	printAlign bool
	maps       *corpus.Maps
}

func (c *collectingSink) Write(sol overlap.Solution) error {
	c.col.Add(sol)
	if c.printAlign {
		printDebugAlignment(c.maps, sol)
	}
	return c.w.Write(sol)
}

func (c *collectingSink) Flush() error { return c.w.Flush() }

// printDebugAlignment renders the --print visualization for one confirmed
// solution, per SPEC_FULL.md's supplemented-feature note. It is purely
// cosmetic: reslicing the canonicalized overhang back into per-string
// offsets using the same left-overhang arithmetic internal/overlap.Candidate
// uses, then handing the two regions to verify.DebugAlignment.
func printDebugAlignment(maps *corpus.Maps, sol overlap.Solution) {
	logicalA := reverseOf(maps.String(sol.IDA))
	logicalB := reverseOf(maps.String(sol.IDB))

	a1 := 0
	if sol.OverhangLeftA > 0 {
		a1 = sol.OverhangLeftA
	}
	b1 := 0
	if sol.OverhangLeftA < 0 {
		b1 = -sol.OverhangLeftA
	}
	if a1+sol.OverlapA > len(logicalA) || b1+sol.OverlapB > len(logicalB) {
		fmt.Fprintf(os.Stdout, "# print: %s/%s overlap geometry out of range, skipping alignment\n",
			maps.Name(sol.IDA), maps.Name(sol.IDB))
		return
	}
	regionA := logicalA[a1 : a1+sol.OverlapA]
	regionB := logicalB[b1 : b1+sol.OverlapB]

	out, err := verify.DebugAlignment(regionA, regionB)
	fmt.Fprintf(os.Stdout, "# %s (%c) %s  overhangs=[%d,%d] errors=%d\n",
		maps.Name(sol.IDA), sol.Orientation.String()[0], maps.Name(sol.IDB),
		sol.OverhangLeftA, sol.OverhangRightB, sol.Errors)
	if err != nil {
		fmt.Fprintf(os.Stdout, "# print: %v\n", err)
		return
	}
	fmt.Fprint(os.Stdout, out)
}

func reverseOf(s []byte) []byte {
	out := make([]byte, len(s))
	for i, c := range s {
		out[len(s)-1-i] = c
	}
	return out
}
