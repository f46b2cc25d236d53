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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/go-staff-backend/config"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/logging"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/seed"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/service"
)

const serviceName = "go-staff-backend"

var (
	cfg    *config.Config
	logger *zap.Logger

	shutdownTimeout time.Duration
	seedFile        string
)

var rootCmd = &cobra.Command{
	Use:   "staffd",
	Short: "Staff directory API: employees, departments and projects",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = logging.New(cfg.App.LogLevel, cfg.App.Environment)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create missing tables and indexes in PostgreSQL, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.Storage == config.StorageMemory {
			return errors.New("schema: STORAGE=memory has no schema to apply")
		}
		store, err := bootstrap.OpenPostgres(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		logger.Info("schema applied", zap.String("database", cfg.Database.Name))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load departments, employees and projects from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := seed.ParseFile(seedFile)
		if err != nil {
			return err
		}
		if cfg.Database.Storage == config.StorageMemory {
			return errors.New("seed: STORAGE=memory does not outlive the command")
		}

		ctx := cmd.Context()
		store, err := bootstrap.OpenStore(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		publisher, closePublisher, err := bootstrap.NewPublisher(ctx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer closePublisher()

		res, err := seed.Apply(ctx, service.New(store, service.WithPublisher(publisher)), fixture)
		logger.Info("seed finished",
			zap.String("file", seedFile),
			zap.Int("departments", res.Departments),
			zap.Int("employees", res.Employees),
			zap.Int("projects", res.Projects),
			zap.Int("assignments", res.Assignments),
		)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "YAML fixture to load")
	rootCmd.AddCommand(serveCmd, schemaCmd, seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	bootstrap.SetGinMode(cfg.App.Environment)

	store, err := bootstrap.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, closePublisher, err := bootstrap.NewPublisher(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	svc := service.New(store, service.WithPublisher(publisher))

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Store:          store,
		Service:        svc,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
