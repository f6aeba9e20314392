package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/liquigraph/pkg/sim"
)

// Styles
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#00FFFF"))

	tableRuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	gainStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	lossStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))
)

// ComparisonTable renders the scenario sweep as a colored terminal table.
// Cells are padded before styling so ANSI codes never shift the columns.
func ComparisonTable(rows []sim.MatrixResult) string {
	var b strings.Builder

	header := fmt.Sprintf("%-12s %10s %12s %12s %10s %8s %10s",
		"Scenario", "Suspicion", "Unassisted", "Assisted", "Gain (pp)", "Cycles", "Injected")
	b.WriteString(tableHeaderStyle.Render(header))
	b.WriteByte('\n')
	b.WriteString(tableRuleStyle.Render(strings.Repeat("─", len(header))))
	b.WriteByte('\n')

	for _, row := range rows {
		gain := row.Delta.PaymentRateGain
		gainCell := fmt.Sprintf("%+10.1f", gain*100)
		switch {
		case gain > 0.005:
			gainCell = gainStyle.Render(gainCell)
		case gain < -0.005:
			gainCell = lossStyle.Render(gainCell)
		}

		b.WriteString(fmt.Sprintf("%-12s %10.2f %11.1f%% %11.1f%% %s %8d %10.0f",
			row.Scenario.Name,
			row.Scenario.BaseSuspicion,
			row.Unassisted.PaymentRate*100,
			row.Assisted.PaymentRate*100,
			gainCell,
			row.Delta.CyclesResolved,
			row.Delta.BankInjected))
		b.WriteByte('\n')
	}

	return b.String()
}
