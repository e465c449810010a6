package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/ai"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/history"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/server"
	"github.com/jonathan/career-coach/internal/session"
	"github.com/jonathan/career-coach/internal/store"
)

var serveJSONLogs bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the candidate journey and recruiter portal endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", true, "Emit logs as JSON")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(serveJSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var medium store.Medium
	switch cfg.StoreBackend {
	case config.BackendMemory:
		medium = store.NewMemoryMedium()
	case config.BackendPostgres:
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pg.Close()
		medium = pg
	default:
		fm, err := store.NewFileMedium(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open data dir: %w", err)
		}
		medium = fm
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	coach, err := ai.NewGeminiCoach(ctx, cfg.GeminiAPIKey, ai.GeminiConfig{
		FlashModel: cfg.FlashModel,
		ProModel:   cfg.ProModel,
	})
	if err != nil {
		return fmt.Errorf("failed to create AI coach: %w", err)
	}
	defer func() { _ = coach.Close() }()

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	st := store.New(medium, log)
	hist := history.New(st, log, cfg.HistoryLimit)
	controller := session.New(st, coach, hist, passwords, log)

	srv := server.New(server.Config{
		Port:       cfg.Port,
		Controller: controller,
		Store:      st,
		History:    hist,
		JWTService: server.NewJWTService(jwtConfig),
		Logger:     log,
	})
	return srv.Start()
}
