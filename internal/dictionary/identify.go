package dictionary

import (
	"context"

	"github.com/dante-signal31/cifra/internal/store"
)

// IdentifiedLanguage is the outcome of a language identification scan.
// Winner stays empty when no candidate scored above zero.
type IdentifiedLanguage struct {
	Winner            string
	WinnerProbability float64
	Candidates        map[string]float64
}

// pickWinner scans candidates in the given language order keeping the
// first strictly highest probability. Order matters: later ties never
// displace an earlier winner.
func pickWinner(languages []string, candidates map[string]float64) IdentifiedLanguage {
	identified := IdentifiedLanguage{Candidates: candidates}
	for _, language := range languages {
		probability := candidates[language]
		if probability > identified.WinnerProbability {
			identified.Winner = language
			identified.WinnerProbability = probability
		}
	}
	return identified
}

// IdentifyLanguage scores text against every registered language and
// returns the best candidate. Probability is the ratio of the text's
// distinct words present in each dictionary.
func IdentifyLanguage(ctx context.Context, st *store.Store, text string) (IdentifiedLanguage, error) {
	languages, err := st.Languages(ctx)
	if err != nil {
		return IdentifiedLanguage{}, err
	}
	words := ExtractWords(text)
	candidates := make(map[string]float64, len(languages))
	for _, language := range languages {
		dict := &Dictionary{language: language, store: st}
		presence, err := dict.WordsPresence(ctx, words)
		if err != nil {
			return IdentifiedLanguage{}, err
		}
		candidates[language] = presence
	}
	return pickWinner(languages, candidates), nil
}
