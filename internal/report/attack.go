package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dante-signal31/cifra/internal/model"
)

// decipheredSnippetLimit caps the deciphered text shown inline; the
// full text goes to a file when the caller asks for one.
const decipheredSnippetLimit = 500

// RenderAttack prints a finished attack as plain text.
func RenderAttack(w io.Writer, outcome model.AttackOutcome) error {
	if _, err := fmt.Fprintf(w, "Algorithm: %s\n", outcome.Algorithm); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Key: %s\n", outcome.Key); err != nil {
		return err
	}
	if outcome.Language == "" {
		if _, err := fmt.Fprintln(w, "Language: not identified"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Language: %s (probability %.2f)\n", outcome.Language, outcome.Probability); err != nil {
			return err
		}
	}
	tried := fmt.Sprintf("Keys tried: %d in %s", outcome.KeysTried, outcome.Elapsed.Round(time.Millisecond))
	if outcome.Workers > 1 {
		tried += fmt.Sprintf(" on %d workers", outcome.Workers)
	}
	if _, err := fmt.Fprintln(w, tried); err != nil {
		return err
	}
	if err := renderCandidates(w, outcome.Candidates); err != nil {
		return err
	}
	if outcome.Deciphered == "" {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Deciphered text:"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, snippet(outcome.Deciphered))
	return err
}

func renderCandidates(w io.Writer, candidates map[string]float64) error {
	if len(candidates) == 0 {
		return nil
	}
	type row struct {
		language    string
		probability float64
	}
	rows := make([]row, 0, len(candidates))
	for language, probability := range candidates {
		rows = append(rows, row{language: language, probability: probability})
	}
	// Sort by strongest candidate.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].probability == rows[j].probability {
			return rows[i].language < rows[j].language
		}
		return rows[i].probability > rows[j].probability
	})

	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Candidates:"); err != nil {
		return err
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{r.language, fmt.Sprintf("%.2f", r.probability)})
	}
	lines := FormatTable([]string{"Language", "Probability"}, tableRows, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= decipheredSnippetLimit {
		return text
	}
	return string(runes[:decipheredSnippetLimit]) + "..."
}
