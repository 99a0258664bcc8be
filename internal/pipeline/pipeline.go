// Package pipeline implements the orchestrator of spec.md §4.6: a worker
// pool that dispatches solve_an_id across every corpus id, aggregates
// solutions either greedily or deterministically, and exposes the shared
// tasks_done counter the progress tracker polls.
package pipeline

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/biogo-overlaps/overlaps/internal/config"
	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/overlap"
)

// Searcher is the subset of *search.Searcher the pipeline depends on.
type Searcher interface {
	GenerateCandidates(id int) []overlap.Candidate
}

// Verifier is the subset of *verify.Verifier the pipeline depends on.
type Verifier interface {
	Confirm(idA int, cand overlap.Candidate) (overlap.Solution, bool)
}

// Sink receives confirmed solutions. Write is only ever called from the
// pipeline's single aggregator goroutine (spec.md §5's single-writer
// rule), so implementations need no internal locking of their own.
type Sink interface {
	Write(sol overlap.Solution) error
	Flush() error
}

// Pipeline ties one corpus, searcher and verifier to a run Config.
type Pipeline struct {
	maps     *corpus.Maps
	searcher Searcher
	verifier Verifier
	cfg      *config.Config
	done     uint64
}

// New returns a ready-to-run Pipeline.
func New(maps *corpus.Maps, searcher Searcher, verifier Verifier, cfg *config.Config) *Pipeline {
	return &Pipeline{maps: maps, searcher: searcher, verifier: verifier, cfg: cfg}
}

// TasksDone returns the shared counter the progress tracker polls. It is
// incremented by the aggregator, once per completed id, after that id's
// solutions have been aggregated (written, for greedy output; folded into
// the accumulator, for deterministic output) — matching main.rs's counter
// placement rather than incrementing from the worker goroutines.
func (p *Pipeline) TasksDone() *uint64 { return &p.done }

// NumTasks is the total task count: one per corpus id.
func (p *Pipeline) NumTasks() int { return p.maps.NumIDs() }

// Run dispatches solve_an_id(id) for every id in the corpus across
// cfg.WorkerThreads workers and writes the results to sink, following
// cfg.Deterministic() to choose between greedy streaming and sorted,
// deduplicated batch output.
func (p *Pipeline) Run(sink Sink) error {
	numIDs := p.maps.NumIDs()
	ids := make(chan int, numIDs)
	for i := 0; i < numIDs; i++ {
		ids <- i
	}
	close(ids)

	results := make(chan []overlap.Solution, p.cfg.WorkerThreads*2+1)
	var wg sync.WaitGroup
	workers := p.cfg.WorkerThreads
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				results <- p.solveAnID(id)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	if p.cfg.Deterministic() {
		return p.runDeterministic(results, sink)
	}
	return p.runGreedy(results, sink)
}

func (p *Pipeline) runGreedy(results <-chan []overlap.Solution, sink Sink) error {
	for sols := range results {
		for _, sol := range sols {
			if err := sink.Write(sol); err != nil {
				return err
			}
		}
		if err := sink.Flush(); err != nil {
			return err
		}
		atomic.AddUint64(&p.done, 1)
	}
	return nil
}

func (p *Pipeline) runDeterministic(results <-chan []overlap.Solution, sink Sink) error {
	var all []overlap.Solution
	for sols := range results {
		all = append(all, sols...)
		atomic.AddUint64(&p.done, 1)
	}
	sortSolutions(p.maps, all)
	for _, sol := range dedupeAdjacent(p.maps, all) {
		if err := sink.Write(sol); err != nil {
			return err
		}
	}
	return sink.Flush()
}

// solveAnID runs the search -> verify chain for id and deduplicates its
// own solutions by identity tuple (spec.md §4.5's "returned as a set").
func (p *Pipeline) solveAnID(id int) []overlap.Solution {
	cands := p.searcher.GenerateCandidates(id)
	seen := make(map[overlap.Key]bool, len(cands))
	var out []overlap.Solution
	for _, cand := range cands {
		sol, ok := p.verifier.Confirm(id, cand)
		if !ok {
			continue
		}
		k := sol.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, sol)
	}
	return out
}

// sortSolutions orders by the name-based comparator of spec.md §3,
// matching original_source/src/main.rs's solution_comparator (DESIGN.md
// records this as the Open Question 4 resolution: names, not raw ids,
// since ids are an implementation artifact of corpus build order).
func sortSolutions(maps *corpus.Maps, sols []overlap.Solution) {
	sort.SliceStable(sols, func(i, j int) bool {
		a, b := sols[i], sols[j]
		if na, nb := maps.Name(a.IDA), maps.Name(b.IDA); na != nb {
			return na < nb
		}
		if na, nb := maps.Name(a.IDB), maps.Name(b.IDB); na != nb {
			return na < nb
		}
		if a.Orientation != b.Orientation {
			return a.Orientation < b.Orientation
		}
		if a.OverhangLeftA != b.OverhangLeftA {
			return a.OverhangLeftA < b.OverhangLeftA
		}
		if a.OverhangRightB != b.OverhangRightB {
			return a.OverhangRightB < b.OverhangRightB
		}
		if a.OverlapA != b.OverlapA {
			return a.OverlapA < b.OverlapA
		}
		return a.OverlapB < b.OverlapB
	})
}

// dedupeAdjacent drops adjacent solutions sharing the same name-based
// identity tuple; sortSolutions must have run first.
func dedupeAdjacent(maps *corpus.Maps, sols []overlap.Solution) []overlap.Solution {
	out := make([]overlap.Solution, 0, len(sols))
	for i, sol := range sols {
		if i > 0 && sameIdentity(maps, sols[i-1], sol) {
			continue
		}
		out = append(out, sol)
	}
	return out
}

func sameIdentity(maps *corpus.Maps, a, b overlap.Solution) bool {
	return maps.Name(a.IDA) == maps.Name(b.IDA) &&
		maps.Name(a.IDB) == maps.Name(b.IDB) &&
		a.Orientation == b.Orientation &&
		a.OverhangLeftA == b.OverhangLeftA &&
		a.OverhangRightB == b.OverhangRightB &&
		a.OverlapA == b.OverlapA &&
		a.OverlapB == b.OverlapB
}
