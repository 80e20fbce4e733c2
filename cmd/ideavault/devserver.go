package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/ideavault/internal/devserver"
)

type devserverOptions struct {
	addr            string
	failEvaluations bool
	delay           time.Duration
}

func newDevserverCmd(app *AppContext) *cobra.Command {
	opts := &devserverOptions{}

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory IdeaVault API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger, err := app.CommandContext(cmd, "command.devserver")
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			srv, err := devserver.New(devserver.Options{
				FailEvaluations: opts.failEvaluations,
				EvaluationDelay: opts.delay,
				Logger:          app.Logger,
			})
			if err != nil {
				return newCommandError("start devserver", "building server", err, "Check the devserver flags.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "IdeaVault dev API listening on http://%s/api (Ctrl+C to stop)\n", opts.addr)
			if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
				logger.Error(ctx, "devserver failed", "error", err)
				return newCommandError("start devserver", "listening on "+opts.addr, err, "Pick a free address with --addr.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", devserver.DefaultAddr, "Listen address")
	cmd.Flags().BoolVar(&opts.failEvaluations, "fail-evaluations", false, "Answer every evaluation request with an error")
	cmd.Flags().DurationVar(&opts.delay, "evaluation-delay", 0, "Delay before answering each evaluation request")

	return cmd
}
