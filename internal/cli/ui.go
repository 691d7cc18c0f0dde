package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/posetrank/posetrank/pkg/order/rank"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints relation statistics on a single line.
func printStats(elements int, comparable float64, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	line := "  " +
		StyleDim.Render(fmt.Sprintf("%d elements", elements)) +
		StyleDim.Render(" · ") +
		StyleDim.Render(fmt.Sprintf("%.1f%% comparable", 100*comparable)) +
		StyleDim.Render(" · ") +
		statusStyle.Render(status)
	fmt.Println(line)
}

// =============================================================================
// Tables
// =============================================================================

// newTable creates a bordered table with the shared header style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})
}

// matrixTable renders a probability matrix with row labels and the given
// column headers.
func matrixTable(rowLabels, colHeaders []string, matrix [][]float64) string {
	t := newTable(append([]string{""}, colHeaders...)...)
	for i, row := range matrix {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, rowLabels[i])
		for _, v := range row {
			cells = append(cells, formatProb(v))
		}
		t.Rows(cells)
	}
	return t.Render()
}

// rankProbTable renders the rank probability matrix, one column per rank.
func rankProbTable(res *rank.Result) string {
	cols := make([]string, len(res.Labels))
	for j := range cols {
		cols[j] = strconv.Itoa(j + 1)
	}
	return matrixTable(res.Labels, cols, res.RankProb)
}

// relativeRankTable renders the pairwise ranked-above probabilities.
func relativeRankTable(res *rank.Result) string {
	return matrixTable(res.Labels, res.Labels, res.RelativeRank)
}

// intervalsTable renders per-element rank intervals.
func intervalsTable(labels []string, intervals []rank.Interval) string {
	t := newTable("Element", "Min rank", "Max rank")
	for i, iv := range intervals {
		t.Rows([]string{labels[i], strconv.Itoa(iv.Min), strconv.Itoa(iv.Max)})
	}
	return t.Render()
}

// summaryTable renders expected rank and spread per element.
func summaryTable(res *rank.Result) string {
	t := newTable("Element", "Expected rank", "Spread")
	for i, label := range res.Labels {
		t.Rows([]string{
			label,
			fmt.Sprintf("%.3f", res.ExpectedRank[i]),
			fmt.Sprintf("%.3f", res.RankSpread[i]),
		})
	}
	return t.Render()
}

// formatProb renders a probability compactly, dimming exact zeros.
func formatProb(v float64) string {
	if v == 0 {
		return StyleDim.Render("·")
	}
	if v == 1 {
		return "1"
	}
	return fmt.Sprintf("%.3f", v)
}
