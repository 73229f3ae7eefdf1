// Package cli provides the interactive terminal front end.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

var errEnd = errors.New("end of study session")

//go:generate mockgen -source=study.go -destination=../mocks/cli/mock_study.go -package=mock_cli Reviewer,Session

// Reviewer is the part of review.Service a study session needs.
type Reviewer interface {
	DueQueue(ctx context.Context, ownerID string, opts scheduling.DueOptions) ([]scheduling.DueItem, error)
	Review(ctx context.Context, ownerID, itemID string, outcome scheduling.Outcome, input scheduling.ReviewInput) (*scheduling.ReviewResult, error)
}

type Session interface {
	Session(ctx context.Context) error
}

// StudyCLI walks a learner through their due items one card at a time.
type StudyCLI struct {
	reviewer     Reviewer
	ownerID      string
	sessionID    string
	deviceType   string
	now          func() time.Time
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color

	queue  []scheduling.Item
	counts map[scheduling.Outcome]int
}

// NewStudyCLI creates a study session for ownerID reading answers from stdin.
func NewStudyCLI(reviewer Reviewer, ownerID string, stdin io.Reader, stdout io.Writer) *StudyCLI {
	return &StudyCLI{
		reviewer:     reviewer,
		ownerID:      ownerID,
		sessionID:    uuid.NewString(),
		deviceType:   "cli",
		now:          time.Now,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		counts:       make(map[scheduling.Outcome]int),
	}
}

// Load fetches the due queue in priority order and returns its size.
func (cli *StudyCLI) Load(ctx context.Context, opts scheduling.DueOptions) (int, error) {
	due, err := cli.reviewer.DueQueue(ctx, cli.ownerID, opts)
	if err != nil {
		return 0, fmt.Errorf("DueQueue() > %w", err)
	}
	cli.queue = make([]scheduling.Item, len(due))
	for i, d := range due {
		cli.queue[i] = d.Item
	}
	return len(due), nil
}

// Session shows the next due card, reveals it on Enter and records the outcome the learner picks.
// It returns errEnd when the queue is empty or the learner quits.
func (cli *StudyCLI) Session(ctx context.Context) error {
	if len(cli.queue) == 0 {
		return errEnd
	}
	card := cli.queue[0]

	fmt.Fprintln(cli.stdoutWriter)
	if card.Topic != "" {
		cli.italic.Fprintf(cli.stdoutWriter, "[%s] ", card.Topic)
	}
	cli.bold.Fprintln(cli.stdoutWriter, card.Front)
	shownAt := cli.now()
	fmt.Fprint(cli.stdoutWriter, "Press Enter to reveal (q to quit): ")
	line, err := cli.readLine()
	if err != nil {
		return err
	}
	if line == "q" {
		return errEnd
	}
	responseTimeMs := cli.now().Sub(shownAt).Milliseconds()

	fmt.Fprintln(cli.stdoutWriter, card.Back)
	outcome, err := cli.askOutcome()
	if err != nil {
		return err
	}

	result, err := cli.reviewer.Review(ctx, cli.ownerID, card.ID, outcome, scheduling.ReviewInput{
		ResponseTimeMs: &responseTimeMs,
		SessionID:      &cli.sessionID,
		DeviceType:     &cli.deviceType,
	})
	if err != nil {
		return fmt.Errorf("Review(%s) > %w", card.ID, err)
	}
	cli.queue = cli.queue[1:]
	cli.counts[outcome]++

	c := color.New(color.FgGreen)
	if !outcome.IsCorrect() {
		c = color.New(color.FgRed)
	}
	c.Fprintf(cli.stdoutWriter, "%s: next review in %d day(s), %s\n", outcome, result.Item.IntervalDays, result.Item.Status)
	return nil
}

func (cli *StudyCLI) askOutcome() (scheduling.Outcome, error) {
	for {
		fmt.Fprint(cli.stdoutWriter, "[a]gain [h]ard [g]ood [e]asy: ")
		line, err := cli.readLine()
		if err != nil {
			return "", err
		}
		if line == "q" {
			return "", errEnd
		}
		if outcome, ok := parseAnswer(line); ok {
			return outcome, nil
		}
		fmt.Fprintf(cli.stdoutWriter, "unknown answer %q\n", line)
	}
}

func parseAnswer(s string) (scheduling.Outcome, bool) {
	switch s {
	case "a", "1":
		return scheduling.OutcomeAgain, true
	case "h", "2":
		return scheduling.OutcomeHard, true
	case "g", "3":
		return scheduling.OutcomeGood, true
	case "e", "4":
		return scheduling.OutcomeEasy, true
	}
	outcome, err := scheduling.ParseOutcome(s)
	return outcome, err == nil
}

func (cli *StudyCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return "", errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// Run repeats session until it ends, fails, or the process is interrupted.
func (cli *StudyCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	cli.PrintSummary()
	return nil
}

// PrintSummary writes how many cards were answered with each outcome.
func (cli *StudyCLI) PrintSummary() {
	total := 0
	for _, n := range cli.counts {
		total += n
	}
	fmt.Fprintf(cli.stdoutWriter, "\nReviewed %d card(s)", total)
	for _, outcome := range scheduling.Outcomes {
		if n := cli.counts[outcome]; n > 0 {
			fmt.Fprintf(cli.stdoutWriter, ", %s %d", outcome, n)
		}
	}
	fmt.Fprintf(cli.stdoutWriter, ". %d left in the queue.\n", len(cli.queue))
}
