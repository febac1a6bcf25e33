package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/deckwerk/deckplan/pkg/export"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CircuitListModel - Interactive circuit browser
// =============================================================================

// CircuitListModel is the bubbletea model for browsing plan circuits.
type CircuitListModel struct {
	Plan   *export.Plan
	Cursor int
	Height int
	Offset int
}

// NewCircuitListModel creates a circuit browser for a plan.
func NewCircuitListModel(p *export.Plan) CircuitListModel {
	return CircuitListModel{
		Plan:   p,
		Height: 15,
	}
}

func (m CircuitListModel) Init() tea.Cmd {
	return nil
}

func (m CircuitListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Plan.Circuits)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CircuitListModel) View() string {
	var b strings.Builder

	stats := m.Plan.Stats()
	b.WriteString(StyleTitle.Render("Circuits"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%.1f m² · %d plates · %.1f m total",
		stats.AreaM2, stats.Plates, stats.TotalMM/1000)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Plan.Circuits) {
		end = len(m.Plan.Circuits)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Plan.Circuits[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("██")
		plates := formatPlateRange(c.Plates)

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			swatch,
			fmt.Sprintf("%.1f m", c.LengthMM/1000),
			fmt.Sprintf("%d", len(c.Plates)),
			plates,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Color", "Length", "Plates", "Serves").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Plan.Circuits))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// formatPlateRange compresses consecutive plate indices into ranges,
// e.g. [0 1 2 3 8 9] becomes "0-3, 8-9".
func formatPlateRange(plates []int) string {
	if len(plates) == 0 {
		return "—"
	}

	var parts []string
	start, prev := plates[0], plates[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}

	for _, p := range plates[1:] {
		if p != prev+1 {
			flush()
			start = p
		}
		prev = p
	}
	flush()

	return strings.Join(parts, ", ")
}
