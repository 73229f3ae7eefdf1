package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashrev/internal/cli"
	"github.com/at-ishikawa/flashrev/internal/database"
	"github.com/at-ishikawa/flashrev/internal/datasync"
	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			applied, err := database.Migrate(cmd.Context(), db, cfg.Database.Driver)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(applied))
			return nil
		},
	}
}

func newItemCommand() *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Manage review items",
	}

	var topic, difficulty string
	createCmd := &cobra.Command{
		Use:   "create <front> <back>",
		Short: "Create an item that is due immediately",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				it, err := a.service.CreateItem(ctx, ownerID, scheduling.Content{
					Front:      args[0],
					Back:       args[1],
					Topic:      topic,
					Difficulty: scheduling.Difficulty(difficulty),
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), it.ID)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&topic, "topic", "", "topic of the item")
	createCmd.Flags().StringVar(&difficulty, "difficulty", string(scheduling.DifficultyMedium), "EASY, MEDIUM or HARD")

	restoreCmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Bring an archived item back into rotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				it, err := a.service.Restore(ctx, ownerID, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is %s and due now\n", it.ID, it.Status)
				return nil
			})
		},
	}

	var listFilter item.ListFilter
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				items, err := a.service.ListItems(ctx, ownerID, listFilter)
				if err != nil {
					return err
				}
				return cli.PrintItemTable(cmd.OutOrStdout(), items, time.Local)
			})
		},
	}
	listCmd.Flags().StringVar(&listFilter.Topic, "topic", "", "only items whose topic contains this text, ignoring case")
	listCmd.Flags().IntVar(&listFilter.Limit, "limit", 20, "page size, at most 100")
	listCmd.Flags().IntVar(&listFilter.Offset, "offset", 0, "number of items to skip")

	itemCmd.AddCommand(createCmd, listCmd, restoreCmd)
	return itemCmd
}

func newReviewCommand() *cobra.Command {
	var responseTimeMs int64
	var confidence int
	var environment string
	cmd := &cobra.Command{
		Use:   "review <id> <AGAIN|HARD|GOOD|EASY>",
		Short: "Record one review outcome",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := scheduling.ParseOutcome(args[1])
			if err != nil {
				return err
			}
			var input scheduling.ReviewInput
			if cmd.Flags().Changed("response-time") {
				input.ResponseTimeMs = &responseTimeMs
			}
			if cmd.Flags().Changed("confidence") {
				input.Confidence = &confidence
			}
			if environment != "" {
				input.StudyEnvironment = &environment
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				result, err := a.service.Review(ctx, ownerID, args[0], outcome, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: next review on %s (%d day(s), ease %.2f, %s)\n",
					result.Item.ID,
					result.Item.NextReviewDate.Local().Format(time.DateOnly),
					result.Item.IntervalDays,
					result.Item.EaseFactor,
					result.Item.Status)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&responseTimeMs, "response-time", 0, "response time in milliseconds")
	cmd.Flags().IntVar(&confidence, "confidence", 0, "self-rated confidence from 1 to 5")
	cmd.Flags().StringVar(&environment, "environment", "", "where the review happened, such as commute or desk")
	return cmd
}

func dueFlags(cmd *cobra.Command, todayOnly *bool, maxCount *int) {
	cmd.Flags().BoolVar(todayOnly, "today-only", false, "exclude items that were due before today")
	cmd.Flags().IntVar(maxCount, "max", -1, "maximum number of items, 0 for no limit (default from config)")
}

func dueOptions(a *app, todayOnly bool, maxCount int) scheduling.DueOptions {
	if maxCount < 0 {
		maxCount = a.cfg.Review.DefaultDueLimit
	}
	return scheduling.DueOptions{IncludeOverdue: !todayOnly, MaxCount: maxCount}
}

func newDueCommand() *cobra.Command {
	var todayOnly bool
	var maxCount int
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List due items in priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				items, err := a.service.DueQueue(ctx, ownerID, dueOptions(a, todayOnly, maxCount))
				if err != nil {
					return err
				}
				return cli.PrintDueTable(cmd.OutOrStdout(), items, time.Local)
			})
		},
	}
	dueFlags(cmd, &todayOnly, &maxCount)
	return cmd
}

func newStudyCommand() *cobra.Command {
	var todayOnly bool
	var maxCount int
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Review due items interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				studyCLI := cli.NewStudyCLI(a.service, ownerID, os.Stdin, cmd.OutOrStdout())
				n, err := studyCLI.Load(ctx, dueOptions(a, todayOnly, maxCount))
				if err != nil {
					return err
				}
				if n == 0 {
					color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Nothing is due. Come back later!")
					return nil
				}
				slog.Default().Debug("starting study session", "due", n)
				return studyCLI.Run(ctx, studyCLI)
			})
		},
	}
	dueFlags(cmd, &todayOnly, &maxCount)
	return cmd
}

func newStatsCommand() *cobra.Command {
	var year, month int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show deck and review statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				report, err := a.service.Stats(ctx, ownerID, year, month)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(report)
				}

				bold := color.New(color.Bold)
				deck := report.Deck
				bold.Fprintf(out, "Items: %d\n", deck.Total)
				for _, status := range scheduling.Statuses {
					fmt.Fprintf(out, "  %-9s %d\n", status, deck.ByStatus[status])
				}
				fmt.Fprintf(out, "Due today: %d, overdue: %d\n", deck.DueToday, deck.Overdue)
				fmt.Fprintf(out, "Average accuracy %.1f%%, ease %.2f, interval %.1f day(s)\n",
					deck.AverageAccuracy, deck.AverageEaseFactor, deck.AverageInterval)
				if rt := report.Reviews.ResponseTime; rt.Samples > 0 {
					fmt.Fprintf(out, "Response time: median %.0fms, p90 %.0fms\n", rt.Median, rt.P90)
				}

				bold.Fprintln(out, "Reviews")
				for _, p := range report.Reviews.Periods {
					fmt.Fprintf(out, "  %s  %4d reviews  %4d correct  %4d items  %4d new\n",
						p.Period, p.ReviewsCount, p.CorrectCount, p.UniqueItems, p.NewItemsCount)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "only count reviews in this year")
	cmd.Flags().IntVar(&month, "month", 0, "only count reviews in this month (requires --year)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export items and review history to a YAML snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				snapshot, err := datasync.NewExporter(a.repo, scheduling.SystemClock{}).Export(ctx, ownerID)
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return datasync.WriteYAML(cmd.OutOrStdout(), snapshot)
				}
				if err := datasync.WriteFile(output, snapshot); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %d item(s) and %d event(s) to %s\n", len(snapshot.Items), len(snapshot.Events), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	return cmd
}

func newImportCommand() *cobra.Command {
	var dryRun, updateExisting bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := datasync.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				importer := datasync.NewImporter(a.repo, cmd.OutOrStdout())
				result, err := importer.Import(ctx, ownerID, snapshot, datasync.ImportOptions{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				})
				if err != nil {
					return err
				}
				a.service.Invalidate(ctx, ownerID)
				fmt.Fprintf(cmd.OutOrStdout(), "items: %d new, %d updated, %d skipped; events: %d new, %d skipped, %d warnings\n",
					result.ItemsNew, result.ItemsUpdated, result.ItemsSkipped,
					result.EventsNew, result.EventsSkipped, result.EventWarnings)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "overwrite items that already exist")
	return cmd
}
