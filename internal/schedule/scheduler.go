// Package schedule partitions a batch of Projects by language, forms the
// template/non-template pairing the comparison engine requires, and runs
// every pairwise comparison across a bounded worker pool, adapted from
// detection/parallelization.py's process-pool map and core.FileWalker's
// worker-pool shape.
package schedule

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oxhq/detectsim/internal/entity"
	"github.com/oxhq/detectsim/internal/report"
)

// Pair is one unordered comparison task: two same-language Projects, never
// both templates.
type Pair struct {
	First  *entity.Project
	Second *entity.Project
}

// Result carries the outcome of comparing one Pair. Err is set when the
// comparison panicked; the pair is otherwise discarded from the batch rather
// than aborting it (§4.8 failure semantics).
type Result struct {
	Pair   Pair
	Report report.Report
	Err    error
}

// Progress reports a snapshot of batch completion; Scheduler.Run calls it
// after every finished comparison.
type Progress struct {
	Done, Total int
	Elapsed     time.Duration
	ETA         time.Duration
}

// BuildPairs partitions projects by LanguageTag and enumerates, within each
// partition, every template-vs-non-template pair plus every unordered
// non-template-vs-non-template pair. Template-vs-template pairs are never
// formed (§4.8 step 2).
func BuildPairs(projects []*entity.Project) []Pair {
	byLanguage := make(map[string][]*entity.Project)
	for _, p := range projects {
		byLanguage[p.LanguageTag] = append(byLanguage[p.LanguageTag], p)
	}

	languages := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	var pairs []Pair
	for _, lang := range languages {
		group := byLanguage[lang]
		var templates, submissions []*entity.Project
		for _, p := range group {
			if p.IsTemplate {
				templates = append(templates, p)
			} else {
				submissions = append(submissions, p)
			}
		}

		for _, t := range templates {
			for _, s := range submissions {
				pairs = append(pairs, Pair{First: t, Second: s})
			}
		}
		for i := 0; i < len(submissions); i++ {
			for j := i + 1; j < len(submissions); j++ {
				pairs = append(pairs, Pair{First: submissions[i], Second: submissions[j]})
			}
		}
	}
	return pairs
}

// Scheduler runs a batch of Pairs across a bounded goroutine pool.
type Scheduler struct {
	Workers  int
	FastScan bool
	// OnProgress, if set, is invoked after every completed comparison. It
	// must not block for long; Run does not buffer progress events.
	OnProgress func(Progress)
}

// New returns a Scheduler sized to runtime.NumCPU()-1 workers (clamped to at
// least 1) when workers <= 0, matching detection/definitions.py's
// number_of_unused_cores convention.
func New(workers int, fastScan bool) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
		if workers < 1 {
			workers = 1
		}
	}
	return &Scheduler{Workers: workers, FastScan: fastScan}
}

// Run compares every pair concurrently and returns one Result per pair:
// results[i] is the outcome of pairs[i], whatever order the workers finish in.
func (s *Scheduler) Run(pairs []Pair) []Result {
	total := len(pairs)
	results := make([]Result, total)

	jobs := make(chan int, total)
	for i := range pairs {
		jobs <- i
	}
	close(jobs)

	var done atomic.Int64
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < s.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.compareOne(pairs[i])

				n := done.Add(1)
				if s.OnProgress != nil {
					elapsed := time.Since(start)
					var eta time.Duration
					if n > 0 {
						perItem := elapsed / time.Duration(n)
						eta = perItem * time.Duration(int64(total)-n)
					}
					s.OnProgress(Progress{Done: int(n), Total: total, Elapsed: elapsed, ETA: eta})
				}
			}
		}()
	}
	wg.Wait()

	return results
}

// compareOne isolates a single comparison's panic, the per-pair failure
// containment §4.8 requires: a worker exception must not abort the batch.
func (s *Scheduler) compareOne(pair Pair) (result Result) {
	result.Pair = pair
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("schedule: comparison of %q vs %q panicked: %v",
				pair.First.Name(), pair.Second.Name(), r)
		}
	}()
	result.Report = pair.First.Compare(pair.Second, s.FastScan)
	return result
}
