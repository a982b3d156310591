package attack

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dante-signal31/cifra/internal/dictionary"
)

// scoreAssess scores keys from a fixed table; keys without an entry stay
// winnerless.
func scoreAssess(scores map[int]float64) AssessFunc[int] {
	return func(_ context.Context, key int) (Result[int], error) {
		result := Result[int]{Key: key}
		if score, ok := scores[key]; ok && score > 0 {
			result.Identified = dictionary.IdentifiedLanguage{
				Winner:            "english",
				WinnerProbability: score,
				Candidates:        map[string]float64{"english": score},
			}
		}
		return result, nil
	}
}

func TestBruteForcePicksStrictlyBestWinner(t *testing.T) {
	scores := map[int]float64{1: 0.2, 2: 0.7, 3: 0.5, 4: 0.7}
	result, err := BruteForce(context.Background(), IntegerKeys(1, 6), scoreAssess(scores), nil)
	if err != nil {
		t.Fatalf("brute force: %v", err)
	}
	if result.Key != 2 {
		t.Fatalf("expected first best key 2, got %d", result.Key)
	}
	if result.Identified.WinnerProbability != 0.7 {
		t.Fatalf("unexpected probability: %v", result.Identified.WinnerProbability)
	}
}

func TestBruteForceEarlyExit(t *testing.T) {
	assessed := 0
	assess := func(ctx context.Context, key int) (Result[int], error) {
		assessed++
		return scoreAssess(map[int]float64{2: 0.995})(ctx, key)
	}
	result, err := BruteForce(context.Background(), IntegerKeys(1, 100), assess, nil)
	if err != nil {
		t.Fatalf("brute force: %v", err)
	}
	if result.Key != 2 {
		t.Fatalf("expected key 2, got %d", result.Key)
	}
	if assessed != 2 {
		t.Fatalf("expected the search to stop after 2 keys, got %d", assessed)
	}
}

func TestBruteForceFallsBackToFirstKey(t *testing.T) {
	var progressed []int
	progress := func(done int) { progressed = append(progressed, done) }
	result, err := BruteForce(context.Background(), IntegerKeys(7, 10), scoreAssess(nil), progress)
	if err != nil {
		t.Fatalf("brute force: %v", err)
	}
	if result.Key != 7 {
		t.Fatalf("expected first key 7, got %d", result.Key)
	}
	if result.Identified.Winner != "" {
		t.Fatalf("expected no winner, got %q", result.Identified.Winner)
	}
	if len(progressed) != 3 || progressed[0] != 1 || progressed[2] != 3 {
		t.Fatalf("unexpected progress calls: %v", progressed)
	}
}

func TestBruteForceEmptyKeySpace(t *testing.T) {
	_, err := BruteForce(context.Background(), IntegerKeys(5, 5), scoreAssess(nil), nil)
	if !errors.Is(err, ErrEmptyKeySpace) {
		t.Fatalf("expected ErrEmptyKeySpace, got %v", err)
	}
	_, err = BruteForceParallel(context.Background(), IntegerKeys(5, 5), scoreAssess(nil), 4, nil)
	if !errors.Is(err, ErrEmptyKeySpace) {
		t.Fatalf("expected ErrEmptyKeySpace from parallel run, got %v", err)
	}
}

func TestBruteForcePropagatesAssessErrors(t *testing.T) {
	boom := errors.New("boom")
	assess := func(_ context.Context, key int) (Result[int], error) {
		if key == 7 {
			return Result[int]{}, boom
		}
		return Result[int]{Key: key}, nil
	}
	if _, err := BruteForce(context.Background(), IntegerKeys(1, 20), assess, nil); !errors.Is(err, boom) {
		t.Fatalf("expected assess error, got %v", err)
	}
	if _, err := BruteForceParallel(context.Background(), IntegerKeys(1, 20), assess, 4, nil); !errors.Is(err, boom) {
		t.Fatalf("expected assess error from parallel run, got %v", err)
	}
}

func TestBruteForceParallelMatchesSequentialSelection(t *testing.T) {
	// Deterministic synthetic scores, never close enough to certainty to
	// trigger the sequential early exit.
	scores := make(map[int]float64)
	for key := 1; key < 200; key++ {
		if key%3 == 0 {
			scores[key] = float64(key%7) / 10.0
		}
	}
	sequential, err := BruteForce(context.Background(), IntegerKeys(1, 200), scoreAssess(scores), nil)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	for _, workers := range []int{1, 2, 8} {
		parallel, err := BruteForceParallel(context.Background(), IntegerKeys(1, 200), scoreAssess(scores), workers, nil)
		if err != nil {
			t.Fatalf("parallel with %d workers: %v", workers, err)
		}
		if parallel.Key != sequential.Key {
			t.Fatalf("parallel with %d workers picked %d, sequential picked %d",
				workers, parallel.Key, sequential.Key)
		}
	}
}

func TestBruteForceParallelCountsProgress(t *testing.T) {
	var mu sync.Mutex
	var calls []int
	progress := func(done int) {
		mu.Lock()
		calls = append(calls, done)
		mu.Unlock()
	}
	if _, err := BruteForceParallel(context.Background(), IntegerKeys(1, 51), scoreAssess(nil), 4, progress); err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if len(calls) != 50 {
		t.Fatalf("expected 50 progress calls, got %d", len(calls))
	}
	seen := make(map[int]bool)
	for _, done := range calls {
		if done < 1 || done > 50 || seen[done] {
			t.Fatalf("unexpected progress value %d in %v", done, calls)
		}
		seen[done] = true
	}
}

func TestBruteForceHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assess := func(ctx context.Context, key int) (Result[int], error) {
		if key == 3 {
			cancel()
		}
		return Result[int]{Key: key}, nil
	}
	_, err := BruteForce(ctx, IntegerKeys(1, 1000), assess, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSelectResultSkipsWinnerless(t *testing.T) {
	results := []Result[int]{
		{Key: 1},
		{Key: 2, Identified: dictionary.IdentifiedLanguage{Winner: "english", WinnerProbability: 0.4}},
		{Key: 3, Identified: dictionary.IdentifiedLanguage{Winner: "spanish", WinnerProbability: 0.9}},
		{Key: 4, Identified: dictionary.IdentifiedLanguage{Winner: "english", WinnerProbability: 0.9}},
	}
	best, err := selectResult(results)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if best.Key != 3 {
		t.Fatalf("expected key 3, got %d", best.Key)
	}
}

func TestStringKeysStopEarly(t *testing.T) {
	keys := StringKeys([]string{"a", "b", "c"})
	var got []string
	for key := range keys {
		got = append(got, key)
		if len(got) == 2 {
			break
		}
	}
	if fmt.Sprint(got) != "[a b]" {
		t.Fatalf("unexpected keys: %v", got)
	}
}
