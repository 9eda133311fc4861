package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/nexusai/nexus-crm/internal/agent"
	"github.com/nexusai/nexus-crm/internal/cli"
	"github.com/nexusai/nexus-crm/internal/config"
	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/intelligence"
	"github.com/nexusai/nexus-crm/internal/llm"
	"github.com/nexusai/nexus-crm/internal/metrics"
	"github.com/nexusai/nexus-crm/internal/seed"
	"github.com/nexusai/nexus-crm/internal/service"
	"github.com/nexusai/nexus-crm/internal/snapshot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	m := metrics.New()

	llmCfg := llm.LoadConfig()
	observers := llm.MultiObserver{m}
	if llmCfg.LogCalls {
		observers = append(observers, llm.NewLogObserver(logger))
	}
	client := llm.New(llmCfg, observers)

	profile := cfg.CompanyProfile()
	base := service.Dependencies{
		Reports:      intelligence.NewReportService(client, profile),
		Suggestions:  intelligence.NewSuggestionService(client, profile),
		Contracts:    intelligence.NewContractService(client, profile),
		Agent:        agent.New(agent.WithDelayRange(cfg.ChatMinDelay, cfg.ChatMaxDelay)),
		AIConfigured: llmCfg.Configured(),
		Model:        llmCfg.Model,
	}
	useCaseLog := service.NewSlogUseCaseObserver(logger)

	a := &cli.App{
		Metrics:     m,
		Logger:      logger,
		HTTPAddr:    cfg.HTTPAddr,
		CORSOrigins: cfg.CORSOriginList(),
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
	a.Open = func(ctx context.Context, snapshotPath string) (*cli.Backend, error) {
		if snapshotPath != "" {
			return openSnapshot(snapshotPath, base, useCaseLog)
		}
		return openDatabase(ctx, cfg.DBPath, base, useCaseLog, logger)
	}

	return cli.NewRootCmd(a).ExecuteContext(context.Background())
}

// openSnapshot serves a JSON or YAML snapshot file read-only.
func openSnapshot(path string, deps service.Dependencies, observer service.UseCaseObserver) (*cli.Backend, error) {
	snap, err := snapshot.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", path, err)
	}
	deps.Snapshots = service.NewStaticSnapshot(snap)
	return &cli.Backend{Service: service.NewCRMService(deps, observer)}, nil
}

// openDatabase opens the SQLite store, seeding the demo portfolio into a
// fresh database.
func openDatabase(ctx context.Context, path string, deps service.Dependencies, observer service.UseCaseObserver, logger *slog.Logger) (*cli.Backend, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".nexus", "nexus.db")
	}

	database, err := db.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	uow := db.NewSQLiteUnitOfWork(database)

	empty, err := seed.IsEmpty(ctx, database)
	if err != nil {
		database.Close()
		return nil, err
	}
	if empty {
		if err := seed.Apply(ctx, uow); err != nil {
			database.Close()
			return nil, fmt.Errorf("seeding database: %w", err)
		}
		logger.Info("seeded demo portfolio", "path", path)
	}

	deps.Snapshots = service.NewStoreSnapshotProvider(uow)
	deps.UoW = uow
	return &cli.Backend{
		Service: service.NewCRMService(deps, observer),
		UoW:     uow,
		Conn:    database,
		Close:   database.Close,
	}, nil
}
