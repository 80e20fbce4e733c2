package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
)

func newReevaluateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reevaluate",
		Short: "Re-evaluate every idea that is pending or failed, one at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := app.CommandContext(cmd, "command.reevaluate")
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			err = runReevaluate(ctx, logger, cmd, app)
			if err != nil {
				logger.Error(ctx, "reevaluate command failed", "error", err)
			}
			return err
		},
	}

	return cmd
}

func runReevaluate(ctx context.Context, logger ports.Logger, cmd *cobra.Command, app *AppContext) error {
	orch, err := app.Services()
	if err != nil {
		return err
	}
	if err := orch.Load(ctx); err != nil {
		return newCommandError("re-evaluate ideas", "loading ideas from "+app.Config.API.BaseURL, err, suggestionFor(err, connectionSuggestion))
	}

	candidates := orch.Candidates()
	out := cmd.OutOrStdout()
	if len(candidates) == 0 {
		fmt.Fprintln(out, "Nothing to re-evaluate: every idea has an evaluation.")
		return nil
	}
	fmt.Fprintf(out, "Re-evaluating %d idea(s)...\n", len(candidates))

	useUnicode := supportsUnicode(out)
	var mu sync.Mutex
	progress := 0
	sub, err := app.Events.Subscribe(ports.EventEvaluationCompleted, func(_ context.Context, event ports.DomainEvent) error {
		return printProgress(out, &mu, &progress, len(candidates), orch.Registry().Get, event, useUnicode)
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()
	failSub, err := app.Events.Subscribe(ports.EventEvaluationFailed, func(_ context.Context, event ports.DomainEvent) error {
		return printProgress(out, &mu, &progress, len(candidates), orch.Registry().Get, event, useUnicode)
	})
	if err != nil {
		return err
	}
	defer failSub.Unsubscribe()

	report, err := orch.ReevaluateAll(ctx)
	if err != nil {
		return newCommandError("re-evaluate ideas", "running batch", err, "Wait for the running batch to finish and retry.")
	}
	logger.Info(ctx, "batch finished", "candidates", report.Candidates, "evaluated", report.Evaluated, "failed", report.Failed, "skipped", report.Skipped)

	fmt.Fprintf(out, "\nRe-evaluated %d of %d idea(s): %d failed, %d skipped.\n",
		report.Evaluated, report.Candidates, report.Failed, report.Skipped)
	if report.Failed > 0 {
		fmt.Fprintln(out, "Run 'ideavault reevaluate' again to retry the failures.")
	}
	return nil
}

// printProgress writes one line per resolved batch candidate.
func printProgress(out io.Writer, mu *sync.Mutex, done *int, total int, lookup func(string) (idea.Record, bool), event ports.DomainEvent, useUnicode bool) error {
	fields, ok := event.Payload().(map[string]interface{})
	if !ok {
		return nil
	}
	id, _ := fields["idea_id"].(string)
	record, found := lookup(id)
	if !found {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	*done++
	fmt.Fprintf(out, "  [%d/%d] %s %s\n", *done, total, formatStatus(record.Status, useUnicode), record.Title)
	return nil
}
