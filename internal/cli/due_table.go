package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

const maxFrontWidth = 40

// PrintDueTable writes items with their ranking priority and schedule, one row each.
// Review dates are shown in loc.
func PrintDueTable(w io.Writer, items []scheduling.DueItem, loc *time.Location) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "Nothing is due.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tID\tFRONT\tSTATUS\tDIFFICULTY\tNEXT REVIEW\tINTERVAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%dd\n",
			priorityColor(item.Priority).Sprintf("%3d", item.Priority),
			item.ID,
			truncate(item.Front, maxFrontWidth),
			item.Status,
			item.Difficulty,
			item.NextReviewDate.In(loc).Format("2006-01-02 15:04"),
			item.IntervalDays)
	}
	return tw.Flush()
}

func priorityColor(priority int) *color.Color {
	switch {
	case priority >= 80:
		return color.New(color.FgRed, color.Bold)
	case priority >= 60:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
