package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "cifra.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestCreateAndListLanguages(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, language := range []string{"english", "spanish", "french"} {
		if err := st.CreateLanguage(ctx, language); err != nil {
			t.Fatalf("create %s: %v", language, err)
		}
	}
	languages, err := st.Languages(ctx)
	if err != nil {
		t.Fatalf("list languages: %v", err)
	}
	if len(languages) != 3 ||
		languages[0] != "english" || languages[1] != "spanish" || languages[2] != "french" {
		t.Fatalf("expected creation order, got %v", languages)
	}

	if err := st.CreateLanguage(ctx, "english"); !errors.Is(err, ErrLanguageExists) {
		t.Fatalf("expected ErrLanguageExists, got %v", err)
	}
	exists, err := st.HasLanguage(ctx, "spanish")
	if err != nil || !exists {
		t.Fatalf("expected spanish to exist, got (%v, %v)", exists, err)
	}
	exists, err = st.HasLanguage(ctx, "klingon")
	if err != nil || exists {
		t.Fatalf("expected klingon to be absent, got (%v, %v)", exists, err)
	}
}

func TestAddAndQueryWords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.CreateLanguage(ctx, "english"); err != nil {
		t.Fatalf("create language: %v", err)
	}
	words := []Word{
		{Text: "that", Pattern: "0.1.2.0"},
		{Text: "aunt", Pattern: "0.1.2.0"},
		{Text: "dog", Pattern: "0.1.2"},
	}
	if err := st.AddWords(ctx, "english", words); err != nil {
		t.Fatalf("add words: %v", err)
	}
	// Re-adding must not duplicate.
	if err := st.AddWords(ctx, "english", words[:1]); err != nil {
		t.Fatalf("re-add words: %v", err)
	}

	count, err := st.WordCount(ctx, "english")
	if err != nil {
		t.Fatalf("word count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 words, got %d", count)
	}

	exists, err := st.WordExists(ctx, "english", "dog")
	if err != nil || !exists {
		t.Fatalf("expected dog to exist, got (%v, %v)", exists, err)
	}
	exists, err = st.WordExists(ctx, "english", "cat")
	if err != nil || exists {
		t.Fatalf("expected cat to be absent, got (%v, %v)", exists, err)
	}

	matches, err := st.WordsWithPattern(ctx, "english", "0.1.2.0")
	if err != nil {
		t.Fatalf("words with pattern: %v", err)
	}
	if len(matches) != 2 || matches[0] != "aunt" || matches[1] != "that" {
		t.Fatalf("expected [aunt that], got %v", matches)
	}

	all, err := st.AllWords(ctx, "english")
	if err != nil {
		t.Fatalf("all words: %v", err)
	}
	if len(all) != 3 || all[0] != "that" || all[1] != "aunt" || all[2] != "dog" {
		t.Fatalf("expected insertion order, got %v", all)
	}
}

func TestRemoveWord(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.CreateLanguage(ctx, "english"); err != nil {
		t.Fatalf("create language: %v", err)
	}
	if err := st.AddWords(ctx, "english", []Word{{Text: "dog", Pattern: "0.1.2"}}); err != nil {
		t.Fatalf("add words: %v", err)
	}
	if err := st.RemoveWord(ctx, "english", "dog"); err != nil {
		t.Fatalf("remove word: %v", err)
	}
	if err := st.RemoveWord(ctx, "english", "dog"); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}

func TestDeleteLanguageRemovesItsWords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, language := range []string{"english", "spanish"} {
		if err := st.CreateLanguage(ctx, language); err != nil {
			t.Fatalf("create %s: %v", language, err)
		}
	}
	if err := st.AddWords(ctx, "english", []Word{{Text: "dog", Pattern: "0.1.2"}}); err != nil {
		t.Fatalf("add english words: %v", err)
	}
	if err := st.AddWords(ctx, "spanish", []Word{{Text: "perro", Pattern: "0.1.2.2.3"}}); err != nil {
		t.Fatalf("add spanish words: %v", err)
	}

	if err := st.DeleteLanguage(ctx, "english"); err != nil {
		t.Fatalf("delete language: %v", err)
	}
	if err := st.DeleteLanguage(ctx, "english"); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}

	languages, err := st.Languages(ctx)
	if err != nil {
		t.Fatalf("list languages: %v", err)
	}
	if len(languages) != 1 || languages[0] != "spanish" {
		t.Fatalf("expected only spanish, got %v", languages)
	}
	count, err := st.WordCount(ctx, "spanish")
	if err != nil || count != 1 {
		t.Fatalf("expected spanish words untouched, got (%d, %v)", count, err)
	}

	if _, err := st.AllWords(ctx, "english"); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
}
