package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

// PrintItemTable writes one row per item. Dates are shown in loc.
func PrintItemTable(w io.Writer, items []scheduling.Item, loc *time.Location) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFRONT\tTOPIC\tSTATUS\tREVIEWS\tNEXT REVIEW\tCREATED")
	for _, item := range items {
		topic := item.Topic
		if topic == "" {
			topic = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			item.ID,
			truncate(item.Front, maxFrontWidth),
			topic,
			item.Status,
			item.CorrectReviews,
			item.TotalReviews,
			item.NextReviewDate.In(loc).Format("2006-01-02 15:04"),
			item.CreatedAt.In(loc).Format(time.DateOnly))
	}
	return tw.Flush()
}
