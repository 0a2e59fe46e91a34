package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderSummary formats the per-file batch results.
func renderSummary(results []fileResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Before", "After", "Time", "Status"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, res := range results {
		status := "ok"
		after := formatBytes(res.outSize)
		elapsed := res.duration.Round(10 * time.Millisecond).String()
		if res.err != nil {
			status = "failed"
			after = "-"
			elapsed = "-"
		}
		tw.AppendRow(table.Row{res.path, formatBytes(res.inSize), after, elapsed, status})
	}
	return tw.Render() + "\n"
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
