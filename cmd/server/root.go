package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seasurvey/transect-backend-go/internal/api"
	"github.com/seasurvey/transect-backend-go/internal/config"
	"github.com/seasurvey/transect-backend-go/internal/database"
	"github.com/seasurvey/transect-backend-go/internal/logger"
	"github.com/seasurvey/transect-backend-go/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "transect-server",
		Short:         "Marine survey transect and observation API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file (default config/config.*)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override log.level")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), flags)
			},
		},
		&cobra.Command{
			Use:   "schema",
			Short: "Create missing tables and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSchema(cmd.Context(), flags)
			},
		},
	)
	return cmd
}

// bootstrap loads configuration, builds the logger and opens the database
func bootstrap(ctx context.Context, flags *rootFlags) (*config.Config, *zap.Logger, *database.DB, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, nil, nil, err
	}
	zap.ReplaceGlobals(log)

	db, err := database.Open(ctx, database.Config{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Host:         cfg.Database.Bind,
		Port:         cfg.Database.Port,
		Name:         cfg.Database.Name,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, db, nil
}

func runSchema(ctx context.Context, flags *rootFlags) error {
	_, log, db, err := bootstrap(ctx, flags)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	return db.EnsureSchema(ctx)
}

func runServe(ctx context.Context, flags *rootFlags) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap(ctx, flags)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	if cfg.Database.AutoSchema {
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.SetupRouter(cfg, db, metrics.New(), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.Bool("api_validation", cfg.APIValidation))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
