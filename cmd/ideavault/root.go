package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	apiURL     string
	verbose    bool
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := newAppContext(flags)

	cmd := &cobra.Command{
		Use:           "ideavault",
		Short:         "IdeaVault collects ideas and tracks their AI evaluations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, launch the dashboard
			return runDashboardCommand(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default ~/.ideavault/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Base URL of the IdeaVault API")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSubmitCmd(app))
	cmd.AddCommand(newReevaluateCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newDevserverCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
