package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/posetrank/posetrank/pkg/order/rank"
)

// Viewer panes.
const (
	paneRankProb = iota
	paneRelative
	paneSummary
	paneCount
)

var paneTitles = [paneCount]string{"Rank probabilities", "Pairwise comparison", "Summary"}

// ResultModel is the bubbletea model for browsing rank statistics.
type ResultModel struct {
	Result *rank.Result
	Cursor int
	Pane   int
}

// NewResultModel creates a viewer over a computed result.
func NewResultModel(res *rank.Result) ResultModel {
	return ResultModel{Result: res}
}

func (m ResultModel) Init() tea.Cmd {
	return nil
}

func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Result.Labels)-1 {
				m.Cursor++
			}
		case "left", "h":
			m.Pane = (m.Pane + paneCount - 1) % paneCount
		case "right", "l", "tab":
			m.Pane = (m.Pane + 1) % paneCount
		}
	}
	return m, nil
}

func (m ResultModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rank Statistics"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s linear extensions", m.Result.Extensions)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ element  ←/→ pane  q quit"))
	b.WriteString("\n\n")

	for i, title := range paneTitles {
		if i > 0 {
			b.WriteString(StyleDim.Render("  ·  "))
		}
		if i == m.Pane {
			b.WriteString(StyleHighlight.Render(title))
		} else {
			b.WriteString(StyleDim.Render(title))
		}
	}
	b.WriteString("\n\n")

	switch m.Pane {
	case paneRelative:
		b.WriteString(m.renderMatrix(m.Result.Labels, m.Result.RelativeRank))
	case paneSummary:
		b.WriteString(m.renderSummary())
	default:
		cols := make([]string, len(m.Result.Labels))
		for j := range cols {
			cols[j] = strconv.Itoa(j + 1)
		}
		b.WriteString(m.renderMatrix(cols, m.Result.RankProb))
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Result.Labels))))
	return b.String()
}

// renderMatrix renders a matrix pane with the cursor row highlighted.
func (m ResultModel) renderMatrix(cols []string, matrix [][]float64) string {
	rows := make([][]string, len(matrix))
	for i, row := range matrix {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, m.rowLabel(i))
		for _, v := range row {
			cells = append(cells, formatProb(v))
		}
		rows[i] = cells
	}
	return m.styledTable(append([]string{""}, cols...), rows)
}

// renderSummary renders the expected rank and spread pane.
func (m ResultModel) renderSummary() string {
	rows := make([][]string, len(m.Result.Labels))
	for i := range m.Result.Labels {
		rows[i] = []string{
			m.rowLabel(i),
			fmt.Sprintf("%.3f", m.Result.ExpectedRank[i]),
			fmt.Sprintf("%.3f", m.Result.RankSpread[i]),
		}
	}
	return m.styledTable([]string{"", "Expected rank", "Spread"}, rows)
}

func (m ResultModel) rowLabel(i int) string {
	if i == m.Cursor {
		return "▸ " + m.Result.Labels[i]
	}
	return "  " + m.Result.Labels[i]
}

func (m ResultModel) styledTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})
	return t.Render()
}

// runResultViewer opens the interactive statistics viewer.
func runResultViewer(res *rank.Result) error {
	_, err := tea.NewProgram(NewResultModel(res)).Run()
	return err
}
