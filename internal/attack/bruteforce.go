// Package attack implements cifra's cryptanalysis: a generic brute-force
// harness over lazy key streams, per-cipher attack frontends, the Kasiski
// statistical Vigenere attack and the substitution mapping solver.
package attack

import (
	"context"
	"errors"
	"iter"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dante-signal31/cifra/internal/dictionary"
)

// ErrEmptyKeySpace reports a brute-force run whose key stream yielded
// nothing.
var ErrEmptyKeySpace = errors.New("no keys to try")

// closeEnough is the early-exit margin: a winner probability within this
// distance of certainty stops a sequential search immediately.
const closeEnough = 0.01

// Result pairs a tried key with the language identification of the text
// it deciphered.
type Result[K comparable] struct {
	Key        K
	Identified dictionary.IdentifiedLanguage
}

// AssessFunc deciphers with one key and scores the outcome. Returned
// errors abort the whole search; keys that merely fail to decipher must
// score zero instead (an empty Identified).
type AssessFunc[K comparable] func(ctx context.Context, key K) (Result[K], error)

// BruteForce assesses every key in order and returns the best result.
// A winner probability within closeEnough of certainty short-circuits
// the search. When no key produced a winner the first key tried is
// returned, so callers always get a deterministic candidate; an empty
// stream yields ErrEmptyKeySpace. The optional progress callback runs
// after every assessment with the number of keys done.
func BruteForce[K comparable](ctx context.Context, keys iter.Seq[K], assess AssessFunc[K], progress func(done int)) (Result[K], error) {
	var zero Result[K]
	var first, best Result[K]
	haveFirst, haveBest := false, false
	done := 0
	for key := range keys {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		result, err := assess(ctx, key)
		if err != nil {
			return zero, err
		}
		done++
		if progress != nil {
			progress(done)
		}
		if !haveFirst {
			first, haveFirst = result, true
		}
		identified := result.Identified
		if identified.Winner == "" {
			continue
		}
		if 1-identified.WinnerProbability <= closeEnough {
			return result, nil
		}
		if !haveBest || identified.WinnerProbability > best.Identified.WinnerProbability {
			best, haveBest = result, true
		}
	}
	if !haveFirst {
		return zero, ErrEmptyKeySpace
	}
	if !haveBest {
		return first, nil
	}
	return best, nil
}

// BruteForceParallel assesses keys on a fixed worker pool. Results are
// reordered by submission index before selection, so the outcome matches
// the sequential search over the same stream, except that no early exit
// happens: every key gets assessed. Zero or negative workers means one
// per CPU. The progress callback may run concurrently.
func BruteForceParallel[K comparable](ctx context.Context, keys iter.Seq[K], assess AssessFunc[K], workers int, progress func(done int)) (Result[K], error) {
	var zero Result[K]
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type job struct {
		index int
		key   K
	}
	type indexed struct {
		index  int
		result Result[K]
	}

	group, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job, workers*2)
	group.Go(func() error {
		defer close(jobs)
		index := 0
		for key := range keys {
			select {
			case jobs <- job{index: index, key: key}:
				index++
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	var results []indexed
	var done atomic.Int64
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case j, ok := <-jobs:
					if !ok {
						return nil
					}
					result, err := assess(ctx, j.key)
					if err != nil {
						return err
					}
					mu.Lock()
					results = append(results, indexed{index: j.index, result: result})
					mu.Unlock()
					if progress != nil {
						progress(int(done.Add(1)))
					}
				}
			}
		})
	}
	if err := group.Wait(); err != nil {
		return zero, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })
	ordered := make([]Result[K], len(results))
	for i, r := range results {
		ordered[i] = r.result
	}
	return selectResult(ordered)
}

// selectResult picks the strictly best winner from already ordered
// results; the first result is the fallback when nothing won.
func selectResult[K comparable](results []Result[K]) (Result[K], error) {
	if len(results) == 0 {
		var zero Result[K]
		return zero, ErrEmptyKeySpace
	}
	best := results[0]
	haveBest := best.Identified.Winner != ""
	for _, result := range results[1:] {
		identified := result.Identified
		if identified.Winner == "" {
			continue
		}
		if !haveBest || identified.WinnerProbability > best.Identified.WinnerProbability {
			best, haveBest = result, true
		}
	}
	return best, nil
}
