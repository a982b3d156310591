package dictionary

import (
	"context"
	"testing"

	"github.com/dante-signal31/cifra/internal/store"
)

func seedLanguages(t *testing.T, st *store.Store, dictionaries map[string][]string, order []string) {
	t.Helper()
	ctx := context.Background()
	for _, language := range order {
		dict, err := OpenDictionary(ctx, st, language, true)
		if err != nil {
			t.Fatalf("open %s: %v", language, err)
		}
		if err := dict.AddWords(ctx, dictionaries[language]); err != nil {
			t.Fatalf("seed %s: %v", language, err)
		}
	}
}

func TestIdentifyLanguage(t *testing.T) {
	st := openTestStore(t)
	seedLanguages(t, st, map[string][]string{
		"english": {"the", "quick", "brown", "fox", "jumps"},
		"spanish": {"el", "zorro", "marrón", "salta", "fox"},
	}, []string{"english", "spanish"})

	identified, err := IdentifyLanguage(context.Background(), st, "The quick brown fox!")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if identified.Winner != "english" {
		t.Fatalf("expected english winner, got %q", identified.Winner)
	}
	if identified.WinnerProbability != 1.0 {
		t.Fatalf("expected probability 1.0, got %v", identified.WinnerProbability)
	}
	if identified.Candidates["spanish"] != 0.25 {
		t.Fatalf("expected spanish candidate 0.25, got %v", identified.Candidates["spanish"])
	}
}

func TestIdentifyLanguageWithoutMatches(t *testing.T) {
	st := openTestStore(t)
	seedLanguages(t, st, map[string][]string{
		"english": {"yes", "no"},
	}, []string{"english"})

	identified, err := IdentifyLanguage(context.Background(), st, "xyzzy plugh 1234")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if identified.Winner != "" {
		t.Fatalf("expected no winner, got %q", identified.Winner)
	}
	if identified.WinnerProbability != 0 {
		t.Fatalf("expected probability 0, got %v", identified.WinnerProbability)
	}
	if identified.Candidates["english"] != 0 {
		t.Fatalf("expected english candidate 0, got %v", identified.Candidates["english"])
	}
}

func TestIdentifyLanguageTieKeepsFirstRegistered(t *testing.T) {
	st := openTestStore(t)
	seedLanguages(t, st, map[string][]string{
		"spanish": {"zorvane", "no"},
		"english": {"zorvane", "yes"},
	}, []string{"spanish", "english"})

	identified, err := IdentifyLanguage(context.Background(), st, "Zorvane!")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if identified.Winner != "spanish" {
		t.Fatalf("expected first registered language to win the tie, got %q", identified.Winner)
	}
}
