package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
	"github.com/alexisbeaulieu97/ideavault/internal/tui/dashboard"
	"github.com/alexisbeaulieu97/ideavault/internal/view"
)

type listOptions struct {
	jsonOutput bool
	full       bool
	sort       string
}

func newListCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas with their evaluation status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := app.CommandContext(cmd, "command.list")
			if err != nil {
				return err
			}
			err = runList(ctx, logger, cmd, app, opts)
			if err != nil {
				logger.Error(ctx, "list command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Show descriptions and evaluation details")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort order: newest, score, innovation or feasibility")

	return cmd
}

func runList(ctx context.Context, logger ports.Logger, cmd *cobra.Command, app *AppContext, opts *listOptions) error {
	rawSort := opts.sort
	if rawSort == "" {
		rawSort = app.Config.Display.Sort
	}
	order, ok := view.ParseSortOrder(rawSort)
	if !ok {
		return newCommandError("list ideas", "parsing --sort", fmt.Errorf("unknown sort order %q", rawSort),
			"Use one of: newest, score, innovation, feasibility.")
	}
	mode, _ := view.ParseDisplayMode(app.Config.Display.Mode)
	if opts.full {
		mode = view.DisplayFull
	}

	orch, err := app.Services()
	if err != nil {
		return err
	}
	if err := orch.Load(ctx); err != nil {
		return newCommandError("list ideas", "loading ideas from "+app.Config.API.BaseURL, err, suggestionFor(err, connectionSuggestion))
	}

	cards := view.NewController(view.WithSortOrder(order), view.WithDisplayMode(mode)).Cards(orch.Snapshot())
	logger.Info(ctx, "ideas listed", "count", len(cards), "sort", order)

	if opts.jsonOutput {
		return renderListJSON(cmd.OutOrStdout(), cards)
	}
	if len(cards) == 0 {
		return renderEmptyList(cmd.OutOrStdout())
	}

	useUnicode := supportsUnicode(cmd.OutOrStdout())
	if mode == view.DisplayFull {
		return renderListDetails(cmd.OutOrStdout(), cards, useUnicode)
	}
	return renderListTable(cmd.OutOrStdout(), cards, useUnicode)
}

func renderEmptyList(out io.Writer) error {
	fmt.Fprintln(out, "No ideas yet.")
	fmt.Fprintln(out, "\nRun 'ideavault submit --title <title> --description <text>' to add the first one.")
	return nil
}

func renderListTable(out io.Writer, cards []view.Card, useUnicode bool) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tSTATUS\tOVERALL\tCATEGORY\tSUBMITTED\tTITLE")

	now := time.Now()
	for _, card := range cards {
		record := card.Record
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			record.ID,
			formatStatus(record.Status, useUnicode),
			formatOverall(record.Evaluation),
			valueOrFallback(string(record.Category), "-"),
			dashboard.FormatAge(record.Timestamp, now),
			record.Title,
		)
	}

	return writer.Flush()
}

func renderListDetails(out io.Writer, cards []view.Card, useUnicode bool) error {
	now := time.Now()
	for i, card := range cards {
		record := card.Record
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s %s\n", formatStatus(record.Status, useUnicode), record.Title)
		fmt.Fprintf(out, "  ID: %s  Category: %s  Submitted: %s\n",
			record.ID, valueOrFallback(string(record.Category), "-"), dashboard.FormatAge(record.Timestamp, now))
		if record.Description != "" {
			fmt.Fprintf(out, "  %s\n", record.Description)
		}
		renderEvaluation(out, record.Evaluation, "  ")
	}
	return nil
}

// renderEvaluation prints scores and feedback. The failure placeholder only
// has a summary.
func renderEvaluation(out io.Writer, evaluation *idea.Evaluation, indent string) {
	if evaluation == nil {
		fmt.Fprintf(out, "%sAwaiting AI evaluation\n", indent)
		return
	}
	if scores := evaluation.Scores; scores != nil {
		fmt.Fprintf(out, "%sInnovation %d  Feasibility %d  Impact %d  Overall %d\n",
			indent, scores.Innovation, scores.Feasibility, scores.Impact, scores.Overall)
	}
	if evaluation.Summary != "" {
		fmt.Fprintf(out, "%s%s\n", indent, evaluation.Summary)
	}
	sections := []struct {
		title string
		items []string
	}{
		{"Strengths", evaluation.Strengths},
		{"Considerations", evaluation.Considerations},
		{"Next steps", evaluation.NextSteps},
	}
	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s%s:\n", indent, section.title)
		for _, item := range section.items {
			fmt.Fprintf(out, "%s  - %s\n", indent, item)
		}
	}
}

type listJSONScores struct {
	Innovation  int `json:"innovation"`
	Feasibility int `json:"feasibility"`
	Impact      int `json:"impact"`
	Overall     int `json:"overall"`
}

type listJSONEvaluation struct {
	Scores         *listJSONScores `json:"scores,omitempty"`
	Summary        string          `json:"summary"`
	Strengths      []string        `json:"strengths,omitempty"`
	Considerations []string        `json:"considerations,omitempty"`
	NextSteps      []string        `json:"next_steps,omitempty"`
}

type listJSONIdea struct {
	ID          string              `json:"id"`
	RowNumber   int                 `json:"row_number,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
	Status      idea.Status         `json:"status"`
	Evaluation  *listJSONEvaluation `json:"evaluation,omitempty"`
}

type listJSONPayload struct {
	Version string         `json:"version"`
	Count   int            `json:"count"`
	Ideas   []listJSONIdea `json:"ideas"`
}

func renderListJSON(out io.Writer, cards []view.Card) error {
	payload := listJSONPayload{
		Version: "1.0",
		Count:   len(cards),
		Ideas:   make([]listJSONIdea, len(cards)),
	}

	for i, card := range cards {
		record := card.Record
		entry := listJSONIdea{
			ID:          record.ID,
			RowNumber:   record.RowNumber,
			Title:       record.Title,
			Description: record.Description,
			Category:    string(record.Category),
			Timestamp:   record.Timestamp,
			Status:      record.Status,
		}
		if evaluation := record.Evaluation; evaluation != nil {
			entry.Evaluation = &listJSONEvaluation{
				Summary:        evaluation.Summary,
				Strengths:      evaluation.Strengths,
				Considerations: evaluation.Considerations,
				NextSteps:      evaluation.NextSteps,
			}
			if s := evaluation.Scores; s != nil {
				entry.Evaluation.Scores = &listJSONScores{Innovation: s.Innovation, Feasibility: s.Feasibility, Impact: s.Impact, Overall: s.Overall}
			}
		}
		payload.Ideas[i] = entry
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatStatus(status idea.Status, useUnicode bool) string {
	if useUnicode {
		return fmt.Sprintf("%s %s", status.Icon(), status.String())
	}

	return fmt.Sprintf("%s %s", status.IconFallback(), status.String())
}

func formatOverall(evaluation *idea.Evaluation) string {
	if !evaluation.Scored() {
		return "-"
	}
	return fmt.Sprintf("%d/10", evaluation.Scores.Overall)
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
