package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/registry/internal/config"
	"github.com/ehr/registry/internal/domain/patient"
	"github.com/ehr/registry/internal/platform/db"
	"github.com/ehr/registry/internal/platform/middleware"
	"github.com/ehr/registry/internal/platform/sandbox"
	"github.com/ehr/registry/internal/platform/telemetry"
	"github.com/ehr/registry/migrations"
	"github.com/ehr/registry/pkg/envelope"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "registry-server",
		Short:        "Patient registry API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed an empty registry, and start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				count, err := db.NewMigrator(pool, migrationsFS(pickDir(dir, cfg))).Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (default: embedded migrations)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				statuses, err := db.NewMigrator(pool, migrationsFS(pickDir(dir, cfg))).Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}

				fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				for _, s := range statuses {
					status, appliedAt := "pending", ""
					if s.Applied {
						status = "applied"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (default: embedded migrations)")
	cmd.AddCommand(statusCmd)

	return cmd
}

// seedOptions prefers explicit flags over config. An explicit bad count is
// passed through so the seeder rejects it.
func seedOptions(cmd *cobra.Command, cfg *config.Config) (int, int64) {
	count, randomSeed := cfg.SeedCount, cfg.SeedRandom
	if cmd.Flags().Changed("count") {
		count, _ = cmd.Flags().GetInt("count")
	}
	if cmd.Flags().Changed("random-seed") {
		randomSeed, _ = cmd.Flags().GetInt64("random-seed")
	}
	return count, randomSeed
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty registry with synthetic patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				count, randomSeed := seedOptions(cmd, cfg)

				logger := newLogger(cfg)
				seeder := sandbox.NewSeeder(patient.NewRepo(pool), sandbox.NewGenerator(newRand(randomSeed)), logger)
				result, err := seeder.Seed(ctx, count)
				if err != nil {
					return err
				}
				if result.Skipped {
					fmt.Printf("Registry already holds %d patient(s); nothing seeded.\n", result.Existing)
					return nil
				}
				fmt.Printf("Seeded %d patient(s) in %s.\n", result.Inserted, result.Duration.Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().Int("count", 0, "Number of patients to generate (default: SEED_COUNT)")
	cmd.Flags().Int64("random-seed", 0, "Random seed for reproducible data; 0 uses the clock (default: SEED_RANDOM)")
	return cmd
}

// withPool loads config, opens the pool, runs fn and closes the pool.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, cfg, pool)
}

func pickDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.MigrationsDir
}

// migrationsFS reads from dir when set and from the embedded files otherwise.
func migrationsFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return migrations.FS
}

// newRand returns a source seeded with seed, or with the clock when seed is 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.Level())
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	if cfg.AutoMigrate {
		count, err := db.NewMigrator(pool, migrationsFS(cfg.MigrationsDir)).Up(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("migration failed")
			return err
		}
		logger.Info().Int("applied", count).Msg("migrations up to date")
	}

	var metrics *telemetry.Metrics
	if cfg.MetricsEnabled {
		metrics = telemetry.NewMetrics("registry")
	}

	repo := patient.NewRepo(pool)

	if cfg.SeedOnStart {
		var opts []sandbox.SeederOption
		if metrics != nil {
			opts = append(opts, sandbox.WithRecorder(metrics))
		}
		seeder := sandbox.NewSeeder(repo, sandbox.NewGenerator(newRand(cfg.SeedRandom)), logger, opts...)
		if _, err := seeder.Seed(ctx, cfg.SeedCount); err != nil {
			logger.Error().Err(err).Msg("seeding failed")
			return err
		}
	}

	svc := patient.NewService(patient.NewCachedRepo(repo, cfg.CacheTTL))
	health := db.HealthHandler(pool, func() *db.PoolStats { return db.GetPoolStats(pool) })
	e := newServer(cfg, logger, svc, health, metrics)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer wires middleware and routes. metrics may be nil.
func newServer(cfg *config.Config, logger zerolog.Logger, svc *patient.Service, health echo.HandlerFunc, metrics *telemetry.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = envelope.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	if metrics != nil {
		e.Use(metrics.Middleware())
	}
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	if cfg.RateLimitRPS > 0 {
		e.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			BurstSize:         cfg.RateLimitBurst,
		}))
	}
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	}

	e.GET("/health", health)
	if metrics != nil {
		e.GET("/metrics", metrics.Handler())
	}

	api := e.Group("/api/v1")
	patient.NewHandler(svc, logger).RegisterRoutes(api)
	return e
}
