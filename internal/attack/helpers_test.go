package attack

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dante-signal31/cifra/internal/dictionary"
	"github.com/dante-signal31/cifra/internal/store"
)

// testCorpus seeds a temporary store with the given dictionaries, in
// order, and loads the corpus snapshot attacks run against.
func testCorpus(t *testing.T, languages []string, words map[string][]string) *dictionary.Corpus {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "cifra.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for _, language := range languages {
		dict, err := dictionary.OpenDictionary(ctx, st, language, true)
		if err != nil {
			t.Fatalf("open %s: %v", language, err)
		}
		if err := dict.AddWords(ctx, words[language]); err != nil {
			t.Fatalf("seed %s: %v", language, err)
		}
	}
	corpus, err := dictionary.LoadCorpus(ctx, st)
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	return corpus
}
