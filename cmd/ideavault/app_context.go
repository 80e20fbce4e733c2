package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/ideavault/internal/application/evaluation"
	"github.com/alexisbeaulieu97/ideavault/internal/config"
	"github.com/alexisbeaulieu97/ideavault/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/ideavault/internal/infrastructure/httpapi"
	"github.com/alexisbeaulieu97/ideavault/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
)

// AppContext bundles the services a command needs. Everything is built
// lazily on first use so commands that never talk to the API stay cheap.
type AppContext struct {
	flags  *rootFlags
	getenv func(string) string

	// logWriter receives structured logs; the command's stderr when nil.
	logWriter io.Writer

	Config       *config.Config
	Logger       ports.Logger
	Events       *events.LoggingPublisher
	Orchestrator *evaluation.Orchestrator
}

func newAppContext(flags *rootFlags) *AppContext {
	return &AppContext{flags: flags, getenv: os.Getenv}
}

// CommandContext resolves configuration and logging, then returns a context
// carrying a fresh correlation ID and a logger scoped to component.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger, error) {
	if err := a.setup(cmd); err != nil {
		return nil, nil, err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx := ports.WithCorrelationID(parent, ports.GenerateCorrelationID())
	return ctx, a.Logger.With("component", component), nil
}

func (a *AppContext) setup(cmd *cobra.Command) error {
	if a.Config != nil {
		return nil
	}

	overrides := config.Overrides{
		BaseURL:   a.flags.apiURL,
		LogFormat: a.flags.logFormat,
	}
	if a.flags.verbose {
		overrides.LogLevel = "debug"
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:      a.flags.configPath,
		Getenv:    a.getenv,
		Overrides: overrides,
	})
	if err != nil {
		return newCommandError("load configuration", "resolving settings", err,
			"Fix the config file or environment values shown above and try again.")
	}

	writer := a.logWriter
	if writer == nil {
		writer = cmd.ErrOrStderr()
	}
	logger, err := logging.New(logging.Options{
		Writer:    writer,
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Layer:     "infrastructure",
		Component: "cli",
	})
	if err != nil {
		return newCommandError("initialize logging", "building logger", err, "Use --log-format console or json.")
	}

	a.Config = cfg
	a.Logger = logger
	a.Events = events.NewLoggingPublisher(logger)
	return nil
}

// Services wires the gateways and the orchestrator against the configured API.
func (a *AppContext) Services() (*evaluation.Orchestrator, error) {
	if a.Orchestrator != nil {
		return a.Orchestrator, nil
	}

	opts := httpapi.Options{
		BaseURL: a.Config.API.BaseURL,
		Timeout: a.Config.API.Timeout,
		Logger:  a.Logger,
	}
	store, err := httpapi.NewStoreGateway(opts)
	if err != nil {
		return nil, newCommandError("connect", "building store gateway", err, "Set --api-url or IDEAVAULT_API_URL.")
	}
	evaluator, err := httpapi.NewEvaluationGateway(opts)
	if err != nil {
		return nil, newCommandError("connect", "building evaluation gateway", err, "Set --api-url or IDEAVAULT_API_URL.")
	}

	a.Orchestrator = evaluation.New(store, evaluator, nil, a.Logger, a.Events)
	return a.Orchestrator, nil
}
