package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/dante-signal31/cifra/internal/frequency"
)

const (
	barSeparator        = " │ "
	minChartBarWidth    = 10
	terminalWidthBackup = 80
)

// FrequencyChart writes a horizontal bar chart of letter counts in
// histogram order, bars scaled to the most frequent letter. A
// non-positive width fits the chart to the terminal, falling back to 80
// columns when stdout is not one.
func FrequencyChart(w io.Writer, histogram *frequency.LetterHistogram, width int) error {
	if width <= 0 {
		width = terminalWidth()
	}
	letters := histogram.Letters()

	labelWidth := 1
	maxCount := 0
	suffixWidth := 0
	for _, letter := range letters {
		if lw := runewidth.RuneWidth(letter); lw > labelWidth {
			labelWidth = lw
		}
		if c := histogram.Count(letter); c > maxCount {
			maxCount = c
		}
		if sw := len(suffix(histogram, letter)); sw > suffixWidth {
			suffixWidth = sw
		}
	}

	barWidth := width - labelWidth - len([]rune(barSeparator)) - suffixWidth
	if barWidth < minChartBarWidth {
		barWidth = minChartBarWidth
	}

	for _, letter := range letters {
		barLen := 0
		if maxCount > 0 {
			barLen = int(math.Round(float64(histogram.Count(letter)) / float64(maxCount) * float64(barWidth)))
		}
		line := runewidth.FillLeft(string(letter), labelWidth) + barSeparator +
			strings.Repeat("█", barLen) + strings.Repeat(" ", barWidth-barLen) +
			suffix(histogram, letter)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func suffix(histogram *frequency.LetterHistogram, letter rune) string {
	return fmt.Sprintf(" %d (%.2f%%)", histogram.Count(letter), histogram.Frequency(letter)*100)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
