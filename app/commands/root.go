// Package commands wires configuration, logging and the task collection
// into the todo command-line interface.
package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/spf13/cobra"

	"todo-cli/app/config"
	"todo-cli/app/logger"
	"todo-cli/app/services"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *log.Logger
}

// runtime is one tracker session: an empty collection plus the optional mirror.
type runtime struct {
	session uuid.UUID
	tasks   *services.TaskService
	mirror  *services.Neo4jMirror
	driver  neo4j.DriverWithContext
}

// NewRootCommand creates the todo command tree.
// Running it without a subcommand starts the interactive shell.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "todo",
		Short:        "Interactive in-memory task tracker",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "path to a config file (yaml, toml or json)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	root.AddCommand(
		newShellCommand(a),
		newServeCommand(a),
		newDemoCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	a.logger = logger.Setup(cfg.Log, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded",
		"log_level", cfg.Log.Level,
		"shell_pause", cfg.Shell.Pause,
		"neo4j_enabled", cfg.Neo4j.Enabled)
	return nil
}

func (a *app) newRuntime(ctx context.Context) (*runtime, error) {
	rt := &runtime{session: uuid.New()}

	var opts []services.Option
	if a.cfg.Neo4j.Enabled {
		driver, err := config.InitNeo4j(a.cfg.Neo4j)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Neo4j connection: %w", err)
		}
		if err := driver.VerifyConnectivity(ctx); err != nil {
			driver.Close(ctx)
			return nil, fmt.Errorf("failed to reach Neo4j at %s: %w", a.cfg.Neo4j.URI, err)
		}
		rt.driver = driver
		rt.mirror = services.NewNeo4jMirror(driver, a.cfg.Neo4j.Database, a.cfg.Neo4j.Buffer, a.logger)
		rt.session = rt.mirror.SessionID()
		opts = append(opts, services.WithListener(rt.mirror))
		a.logger.Info("mirroring tasks to Neo4j", "uri", a.cfg.Neo4j.URI, "session", rt.session)
	}

	rt.tasks = services.NewTaskService(opts...)
	return rt, nil
}

// runMirror drains the mirror until ctx is done. Mirror failures are logged
// and never end the session.
func (a *app) runMirror(ctx context.Context, rt *runtime) error {
	if rt.mirror == nil {
		return nil
	}
	if err := rt.mirror.Run(ctx); err != nil {
		a.logger.Error("neo4j mirror stopped", "err", err)
	}
	return nil
}

func (rt *runtime) close(ctx context.Context) error {
	if rt.driver == nil {
		return nil
	}
	return rt.driver.Close(ctx)
}
