package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/backend/internal/auth"
	"github.com/vartaverse/varta/backend/internal/config"
	"github.com/vartaverse/varta/backend/internal/database"
	"github.com/vartaverse/varta/backend/internal/handlers"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/metrics"
	"github.com/vartaverse/varta/backend/internal/seed"
	"github.com/vartaverse/varta/backend/internal/telemetry"
	"go.uber.org/zap"
)

var (
	port       string
	fakePosts  int
	envFile    string
	verboseSQL bool
)

var rootCmd = &cobra.Command{
	Use:   "varta-server",
	Short: "VartaVerse mock dev server",
	Long: `varta-server serves the VartaVerse user and content endpoints from an
in-memory database. Every start begins from the same seeded posts;
nothing survives a restart.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	rootCmd.Flags().IntVar(&fakePosts, "fake-posts", 0, "Generate this many extra posts (overrides FAKE_POSTS)")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading settings")
	rootCmd.Flags().BoolVar(&verboseSQL, "verbose-sql", false, "Log every SQL statement")
}

func run(cmd *cobra.Command) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("fake-posts") {
		cfg.FakePosts = fakePosts
	}

	if err := logger.Initialize(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Log.Warn("JWT_SECRET not set, signing tokens with the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.InitTracer(ctx, telemetry.Config{
		ServiceName:  telemetry.ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.Telemetry.Endpoint,
		Enabled:      cfg.Telemetry.Enabled,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.Log.Warn("Tracing disabled", zap.Error(err))
		cfg.Telemetry.Enabled = false
	}

	metrics.Initialize()

	db, err := database.Open(verboseSQL)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := seed.NewSeeder(db).SeedDev(cfg.FakePosts); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	authService := auth.NewService(db, []byte(cfg.JWTSecret))
	h := handlers.NewHandlers(db, authService, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("VartaVerse dev server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Int("fake_posts", cfg.FakePosts),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
		logger.Log.Warn("Tracer shutdown warning", zap.Error(err))
	}

	logger.Log.Info("Server exited")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
