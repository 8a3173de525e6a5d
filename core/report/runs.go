package report

import (
	"strconv"
	"time"

	"mailrecon/core/history"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RunTable renders recorded runs as a table, one row per run.
func RunTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		status := "OK"
		if !r.Success {
			status = "FAILED"
		}
		rows = append(rows, []string{
			r.RunID,
			r.Operation,
			r.StartedAt.UTC().Format(time.DateTime),
			status,
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Kept),
			strconv.Itoa(r.Removed),
			r.Source,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("RUN", "OPERATION", "STARTED", "STATUS", "TOTAL", "KEPT", "REMOVED", "SOURCE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			if col == 3 && rows[row][3] != "OK" {
				return failStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String()
}
