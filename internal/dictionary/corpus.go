package dictionary

import (
	"context"

	"github.com/dante-signal31/cifra/internal/store"
)

// Corpus is an immutable in-memory snapshot of every dictionary. Attacks
// load it once and share it read-only across workers, so trying a key
// never touches the database.
type Corpus struct {
	languages []string
	words     map[string]map[string]bool
	patterns  map[string]map[string][]string
	ordered   map[string][]string
}

// LoadCorpus reads every language dictionary once, in registration
// order, and indexes its words by pattern.
func LoadCorpus(ctx context.Context, st *store.Store) (*Corpus, error) {
	languages, err := st.Languages(ctx)
	if err != nil {
		return nil, err
	}
	corpus := &Corpus{
		languages: languages,
		words:     make(map[string]map[string]bool, len(languages)),
		patterns:  make(map[string]map[string][]string, len(languages)),
		ordered:   make(map[string][]string, len(languages)),
	}
	for _, language := range languages {
		words, err := st.AllWords(ctx, language)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool, len(words))
		patterns := make(map[string][]string)
		for _, word := range words {
			if set[word] {
				continue
			}
			set[word] = true
			pattern := WordPattern(word)
			patterns[pattern] = append(patterns[pattern], word)
		}
		corpus.words[language] = set
		corpus.patterns[language] = patterns
		corpus.ordered[language] = words
	}
	return corpus, nil
}

// Languages returns every loaded language in registration order.
func (c *Corpus) Languages() []string {
	return c.languages
}

// HasLanguage reports whether the corpus holds a language.
func (c *Corpus) HasLanguage(language string) bool {
	_, ok := c.words[language]
	return ok
}

// WordExists reports whether a language holds word.
func (c *Corpus) WordExists(language, word string) bool {
	return c.words[language][word]
}

// WordsWithPattern returns the words of a language sharing a pattern, in
// dictionary insertion order.
func (c *Corpus) WordsWithPattern(language, pattern string) []string {
	return c.patterns[language][pattern]
}

// AllWords returns the words of a language in dictionary insertion order.
func (c *Corpus) AllWords(language string) []string {
	return c.ordered[language]
}

// WordsPresence returns the ratio of words a language contains, 0.0 for
// an empty slice.
func (c *Corpus) WordsPresence(language string, words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	found := 0
	for _, word := range words {
		if c.WordExists(language, word) {
			found++
		}
	}
	return float64(found) / float64(len(words))
}

// IdentifyWords scores an already extracted word list against every
// language, like IdentifyLanguage does against the store.
func (c *Corpus) IdentifyWords(words []string) IdentifiedLanguage {
	candidates := make(map[string]float64, len(c.languages))
	for _, language := range c.languages {
		candidates[language] = c.WordsPresence(language, words)
	}
	return pickWinner(c.languages, candidates)
}

// IdentifyText extracts the distinct words of text and scores them.
func (c *Corpus) IdentifyText(text string) IdentifiedLanguage {
	return c.IdentifyWords(ExtractWords(text))
}
