package diagram

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// barWidth is the length in characters of the largest reaction bar
const barWidth = 30

// Bar is one labelled value of a bar diagram
type Bar struct {
	Label string
	Value float64
}

// DrawReactionBars renders signed values as horizontal bars scaled to the
// largest magnitude. Positive values use █, negative values use ░.
func DrawReactionBars(title string, bars []Bar, precision int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(title)))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(title))))

	if len(bars) == 0 {
		sb.WriteString("  (no reactions)\n")
		return sb.String()
	}

	labelWidth := 0
	peak := 0.0
	for _, b := range bars {
		labelWidth = maxOf(labelWidth, utf8.RuneCountInString(b.Label))
		peak = maxOf(peak, math.Abs(b.Value))
	}

	for _, b := range bars {
		n := 0
		if peak > 0 {
			n = int(math.Round(math.Abs(b.Value) / peak * barWidth))
		}
		fill := "█"
		if b.Value < 0 {
			fill = "░"
		}
		bar := strings.Repeat(fill, n)
		pad := strings.Repeat(" ", barWidth-n)
		sb.WriteString(fmt.Sprintf("  %-*s │%s%s %s\n", labelWidth, b.Label, bar, pad,
			strconv.FormatFloat(b.Value, 'f', precision, 64)))
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ███ = positive (along +x, +y, counter-clockwise)\n")
	sb.WriteString("  ░░░ = negative\n")

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = maxOf(width, utf8.RuneCountInString(line))
	}
	width += 4

	border := strings.Repeat("═", width)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(title, width-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(line, width-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// padRight pads s with spaces to n runes; fmt's %-*s counts bytes.
func padRight(s string, n int) string {
	if d := n - utf8.RuneCountInString(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
