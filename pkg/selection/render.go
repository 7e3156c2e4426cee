package selection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/settleops/disburse/pkg/models"
	"github.com/settleops/disburse/pkg/sheet"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	rowStyle    = lipgloss.NewStyle()
)

// Render formats rows as an aligned table for confirmation prompts.
func Render(rows []models.SettlementRow) string {
	headers := append([]string{"ROW"}, sheet.RequiredColumns...)

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			fmt.Sprintf("%d", r.SourceRow),
			r.ClientName,
			r.IoltaToOperating.StringFixed(2),
			r.OperatingToMarketing.StringFixed(2),
			r.OperatingToCashLoan.StringFixed(2),
			r.OperatingToBuildingBonus.StringFixed(2),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	line := func(row []string, style lipgloss.Style) string {
		parts := make([]string, len(row))
		for i, c := range row {
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		}
		return style.Render(strings.Join(parts, " | "))
	}

	var b strings.Builder
	b.WriteString(line(headers, headerStyle))
	for _, row := range cells {
		b.WriteString("\n")
		b.WriteString(line(row, rowStyle))
	}
	return b.String()
}
