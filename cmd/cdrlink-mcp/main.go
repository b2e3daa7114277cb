package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"cdrlink/internal/adapters/csvfile"
	mcpadapter "cdrlink/internal/adapters/mcp"
	"cdrlink/internal/adapters/sqlite"
	"cdrlink/internal/adapters/svg"
	"cdrlink/internal/application"
	"cdrlink/internal/application/commands"
	"cdrlink/internal/config"
	"cdrlink/internal/domain"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	workspace := flag.String("workspace", "", "snapshot to load at start (empty starts blank)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("cdrlink-mcp: %v", err)
	}
	// stdout carries the protocol, so logs always go to stderr or a file
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("cdrlink-mcp: %v", err)
	}
	defer logger.Sync()

	store := sqlite.NewStore()
	if err := store.Open(cfg.Database.Path); err != nil {
		logger.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer store.Close()

	ws := application.NewWorkspace(cfg.WorkspaceOptions(), logger)
	if *workspace != "" {
		_, err := commands.NewLoadCommand(ws, store, *workspace).Execute(context.Background())
		switch {
		case errors.Is(err, domain.ErrNotFound):
			logger.Warn("snapshot not found, starting blank", zap.String("workspace", *workspace))
		case err != nil:
			logger.Fatal("failed to load snapshot", zap.Error(err))
		}
	}

	mcpServer := server.NewMCPServer(
		"cdrlink-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{
		Workspace: ws,
		Store:     store,
		Rows:      csvfile.NewRows(),
		Exporter:  svg.NewExporter(),
	}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	logger.Info("serving on stdio", zap.String("db", cfg.Database.Path))
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
