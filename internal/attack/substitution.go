package attack

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dante-signal31/cifra/internal/cipher"
	"github.com/dante-signal31/cifra/internal/dictionary"
	"github.com/dante-signal31/cifra/internal/logging"
)

// scoredKey is one proposed substitution key with its score against a
// single language.
type scoredKey struct {
	key   string
	score float64
}

// substitutionLanguageKeys attacks one language: it folds the word
// mappings of the sorted distinct ciphered words into one constraint
// mapping, cleans it, expands every concrete combination and scores the
// key each one renders.
func substitutionLanguageKeys(ctx context.Context, ciphered string, corpus *dictionary.Corpus, language, charset string, tick func()) ([]scoredKey, error) {
	words := dictionary.ExtractWords(ciphered)
	sort.Strings(words)

	mapping := NewMapping(charset)
	for _, word := range words {
		candidates := corpus.WordsWithPattern(language, dictionary.WordPattern(word))
		if len(candidates) == 0 {
			continue
		}
		mapping.Reduce(WordMapping(word, candidates, charset))
	}
	mapping.CleanRedundancies()

	possibles := mapping.PossibleMappings()
	logging.Debug().
		Str("language", language).
		Int("possible_mappings", len(possibles)).
		Msg("expanding substitution mappings")

	keys := make([]scoredKey, 0, len(possibles))
	for _, possible := range possibles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := possible.KeyString()
		var score float64
		deciphered, err := cipher.DecipherSubstitution(ciphered, key, charset)
		switch {
		case err == nil:
			score = corpus.WordsPresence(language, dictionary.ExtractWords(deciphered))
		case errors.Is(err, cipher.ErrInvalidKey):
			// Conflicting mappings render unusable keys; keep them at
			// zero so the fallback selection stays deterministic.
		default:
			return nil, err
		}
		keys = append(keys, scoredKey{key: key, score: score})
		if tick != nil {
			tick()
		}
	}
	return keys, nil
}

// reconcileSubstitution merges per-language proposals: every key keeps
// its best score across languages, keys stay in first-proposed order,
// and the strictly best key wins with the language that gave it that
// score. When nothing scored, the first proposed key is returned.
func reconcileSubstitution(languages []string, perLanguage map[string][]scoredKey) (Result[string], error) {
	bestScore := make(map[string]float64)
	bestLanguage := make(map[string]string)
	candidates := make(map[string]map[string]float64)
	var order []string
	for _, language := range languages {
		for _, proposal := range perLanguage[language] {
			if _, ok := bestScore[proposal.key]; !ok {
				order = append(order, proposal.key)
				bestScore[proposal.key] = proposal.score
				bestLanguage[proposal.key] = language
				candidates[proposal.key] = map[string]float64{}
			} else if proposal.score > bestScore[proposal.key] {
				bestScore[proposal.key] = proposal.score
				bestLanguage[proposal.key] = language
			}
			if proposal.score > candidates[proposal.key][language] {
				candidates[proposal.key][language] = proposal.score
			}
		}
	}
	if len(order) == 0 {
		return Result[string]{}, ErrEmptyKeySpace
	}
	bestKey := order[0]
	for _, key := range order[1:] {
		if bestScore[key] > bestScore[bestKey] {
			bestKey = key
		}
	}
	identified := dictionary.IdentifiedLanguage{Candidates: candidates[bestKey]}
	if bestScore[bestKey] > 0 {
		identified.Winner = bestLanguage[bestKey]
		identified.WinnerProbability = bestScore[bestKey]
	}
	return Result[string]{Key: bestKey, Identified: identified}, nil
}

// HackSubstitution recovers a substitution key by constraint propagation
// over word patterns, language by language, reconciling the proposals
// into the best scoring key. The progress callback counts assessed
// mappings.
func HackSubstitution(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, progress func(done int)) (Result[string], error) {
	var done atomic.Int64
	tick := func() {
		if progress != nil {
			progress(int(done.Add(1)))
		}
	}
	perLanguage := make(map[string][]scoredKey)
	for _, language := range corpus.Languages() {
		keys, err := substitutionLanguageKeys(ctx, ciphered, corpus, language, charset, tick)
		if err != nil {
			return Result[string]{}, err
		}
		perLanguage[language] = keys
	}
	return reconcileSubstitution(corpus.Languages(), perLanguage)
}

// HackSubstitutionParallel runs the per-language work of
// HackSubstitution concurrently. Reconciliation happens after every
// language finished, so the outcome matches the sequential run.
func HackSubstitutionParallel(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, workers int, progress func(done int)) (Result[string], error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var done atomic.Int64
	tick := func() {
		if progress != nil {
			progress(int(done.Add(1)))
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	var mu sync.Mutex
	perLanguage := make(map[string][]scoredKey)
	for _, language := range corpus.Languages() {
		group.Go(func() error {
			keys, err := substitutionLanguageKeys(ctx, ciphered, corpus, language, charset, tick)
			if err != nil {
				return err
			}
			mu.Lock()
			perLanguage[language] = keys
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Result[string]{}, err
	}
	return reconcileSubstitution(corpus.Languages(), perLanguage)
}
