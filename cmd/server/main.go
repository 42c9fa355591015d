package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/dme-recommend-service/internal/adapter/cache"
	"github.com/example/dme-recommend-service/internal/adapter/httpapi"
	"github.com/example/dme-recommend-service/internal/adapter/natsstan"
	"github.com/example/dme-recommend-service/internal/adapter/oracle"
	"github.com/example/dme-recommend-service/internal/adapter/repo"
	"github.com/example/dme-recommend-service/internal/config"
	"github.com/example/dme-recommend-service/internal/domain"
	"github.com/example/dme-recommend-service/internal/usecase"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dme-server",
		Short: "DME partner recommendation service",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the order subscriber",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			policy, err := cfg.Policy()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()
			if err := repo.EnsureSchema(ctx, pool); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}

			roster := cache.NewMemoryRosterCache()
			partnerRepo := repo.NewPostgresPartnerRepo(pool)
			if err := (usecase.LoadRoster{Repo: partnerRepo, Cache: roster}).Execute(ctx); err != nil {
				return fmt.Errorf("load roster: %w", err)
			}
			logger.Info().Int("partners", len(roster.All())).Msg("roster loaded")

			gemini, err := oracle.NewGeminiOracle(ctx, oracle.Config{
				APIKey:  cfg.GeminiAPIKey,
				Model:   cfg.GeminiModel,
				Timeout: cfg.OracleTimeout,
			}, logger)
			if err != nil {
				return err
			}

			recommend := usecase.RecommendForOrder{
				Roster: roster,
				Oracle: gemini,
				Store:  repo.NewPostgresRecommendationStore(pool),
				Policy: policy,
				Log:    logger,
			}
			process := usecase.ProcessIncomingOrder{Recommend: recommend, Log: logger}

			clientID := cfg.StanClientID
			if clientID == "" {
				clientID = "dme-svc-" + uuid.NewString()
			}
			sub := &natsstan.Subscriber{
				ClusterID: cfg.StanClusterID,
				ClientID:  clientID,
				URL:       cfg.NATSURL,
				Subject:   cfg.StanSubject,
				Durable:   cfg.StanDurable,
				Log:       logger,
			}
			go func() {
				if err := sub.Subscribe(ctx, process.Execute); err != nil {
					logger.Error().Err(err).Msg("stan subscribe")
				}
			}()

			server := httpapi.NewServer(recommend, usecase.GetRecommendation{
				Store: repo.NewPostgresRecommendationStore(pool),
			}, roster, logger)

			srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.Router}
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("http listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("http server")
				}
			}()

			<-ctx.Done()
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a partner roster JSON file into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var partners []domain.Partner
			if err := json.Unmarshal(raw, &partners); err != nil {
				return fmt.Errorf("parse roster file: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()
			if err := repo.EnsureSchema(ctx, pool); err != nil {
				return err
			}

			partnerRepo := repo.NewPostgresPartnerRepo(pool)
			for _, p := range partners {
				if p.PartnerID == "" {
					logger.Warn().Str("partner_name", p.PartnerName).Msg("skipping partner without id")
					continue
				}
				if err := partnerRepo.Upsert(ctx, p); err != nil {
					return fmt.Errorf("upsert %s: %w", p.PartnerID, err)
				}
			}
			logger.Info().Int("partners", len(partners)).Str("file", file).Msg("roster seeded")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/dme_partners.json", "path to the roster JSON file")
	return cmd
}
