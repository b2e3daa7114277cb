package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cdrlink/internal/adapters/sqlite"
	"cdrlink/internal/application"
	"cdrlink/internal/application/commands"
	"cdrlink/internal/config"
	"cdrlink/internal/domain"
	"cdrlink/internal/ports"
)

var (
	configPath string
	dbPath     string
	working    string

	cfg    *config.Config
	logger *zap.Logger
	store  ports.SnapshotStore
	ws     *application.Workspace
)

var rootCmd = &cobra.Command{
	Use:   "cdrlink-cli",
	Short: "Build link charts from call detail records",
	Long: `cdrlink-cli imports call detail records, aggregates them into a
graph of phones linked by calls, and lets you filter, annotate, lay out,
save and export that graph.

Every command works on a working snapshot (default "current") kept in the
snapshot database, so changes carry over between invocations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "snapshot database (overrides the config file)")
	rootCmd.PersistentFlags().StringVarP(&working, "workspace", "w", "current", "working snapshot name")
}

func setup(ctx context.Context) error {
	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if logger, err = config.NewLogger(cfg.Log); err != nil {
		return err
	}

	s := sqlite.NewStore()
	if err := s.Open(cfg.Database.Path); err != nil {
		return err
	}
	store = s
	ws = application.NewWorkspace(cfg.WorkspaceOptions(), logger)

	_, err = commands.NewLoadCommand(ws, store, working).Execute(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("starting empty workspace", zap.String("workspace", working))
		_, err = ws.Refresh(ctx)
		return err
	case err != nil:
		return err
	}
	logger.Debug("workspace loaded", zap.String("workspace", working), zap.String("db", cfg.Database.Path))
	return nil
}

func teardown() error {
	if logger != nil {
		_ = logger.Sync()
	}
	if store != nil {
		return store.Close()
	}
	return nil
}

// persist writes the workspace back to the working snapshot
func persist(ctx context.Context) error {
	if _, err := commands.NewSaveCommand(ws, store, working).Execute(ctx); err != nil {
		return fmt.Errorf("failed to persist workspace %s: %w", working, err)
	}
	return nil
}
