package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cdrlink/internal/adapters/editor"
	"cdrlink/internal/adapters/sqlite"
	"cdrlink/internal/adapters/svg"
	"cdrlink/internal/adapters/tui"
	"cdrlink/internal/application"
	"cdrlink/internal/application/commands"
	"cdrlink/internal/config"
	"cdrlink/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	workspace := flag.String("workspace", "current", "working snapshot, loaded at start and saved on exit")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	log, err := config.NewQuietLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	store := sqlite.NewStore()
	if err := store.Open(cfg.Database.Path); err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	ws := application.NewWorkspace(cfg.WorkspaceOptions(), log)
	if _, err := commands.NewLoadCommand(ws, store, *workspace).Execute(ctx); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	app := tui.NewApp(ws, store, svg.NewExporter(), editor.NewOpener(), log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	if _, err := commands.NewSaveCommand(ws, store, *workspace).Execute(ctx); err != nil {
		return err
	}
	log.Info("workspace saved", zap.String("workspace", *workspace))
	return nil
}
