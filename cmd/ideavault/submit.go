package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
)

type submitOptions struct {
	title       string
	description string
	category    string
	noWait      bool
}

func newSubmitCmd(app *AppContext) *cobra.Command {
	opts := &submitOptions{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new idea and wait for its AI evaluation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := app.CommandContext(cmd, "command.submit")
			if err != nil {
				return err
			}
			logger.Info(ctx, "submitting idea", "title", opts.title)
			err = runSubmit(ctx, logger, cmd, app, opts)
			if err != nil {
				logger.Error(ctx, "submit command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Idea title")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Idea description")
	cmd.Flags().StringVar(&opts.category, "category", "", "Optional category ("+categoryList()+")")
	cmd.Flags().BoolVar(&opts.noWait, "no-wait", false, "Return once the idea is stored without waiting for its evaluation")

	return cmd
}

func runSubmit(ctx context.Context, logger ports.Logger, cmd *cobra.Command, app *AppContext, opts *submitOptions) error {
	category, ok := idea.ParseCategory(opts.category)
	if !ok {
		return newCommandError("submit idea", "parsing --category", fmt.Errorf("unknown category %q", opts.category),
			"Use one of: "+categoryList()+".")
	}

	orch, err := app.Services()
	if err != nil {
		return err
	}

	draft := idea.Draft{Title: opts.title, Description: opts.description, Category: category}
	created, err := orch.Submit(ctx, draft)
	if err != nil {
		return newCommandError("submit idea", "storing the idea", err,
			suggestionFor(err, "Failed to submit idea. Please check your connection and try again."))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Submitted idea %q\n", created.Title)
	fmt.Fprintf(out, "  ID: %s\n", created.ID)

	if opts.noWait {
		fmt.Fprintln(out, "\nNot waiting for the evaluation. Run 'ideavault reevaluate' later if it does not appear in 'ideavault list'.")
		return nil
	}

	fmt.Fprintln(out, "AI evaluation in progress...")
	orch.Wait()

	record, ok := orch.Registry().Get(created.ID)
	if !ok {
		return nil
	}
	logger.Info(ctx, "submitted idea resolved", "idea_id", record.ID, "status", record.Status)

	fmt.Fprintln(out)
	renderEvaluation(out, record.Evaluation, "  ")
	if record.Status == idea.StatusError {
		fmt.Fprintln(out, "\nRun 'ideavault reevaluate' to retry.")
	}
	return nil
}

func categoryList() string {
	names := make([]string, 0, len(idea.Categories()))
	for _, category := range idea.Categories() {
		names = append(names, string(category))
	}
	return strings.Join(names, ", ")
}
