package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/flashrev/internal/bootstrap"
	"github.com/at-ishikawa/flashrev/internal/cache"
	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/internal/database"
	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/review"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
	"github.com/at-ishikawa/flashrev/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("godotenv.Load() > %w", err)
	}
	debugMode, _ := strconv.ParseBool(os.Getenv("FLASHREV_DEBUG"))
	setupLogger(debugMode)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	profile, err := cfg.Scheduling.ActiveProfile()
	if err != nil {
		return err
	}

	ctx := context.Background()
	app := bootstrap.New(time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook("database", func(context.Context) error { return db.Close() })

	dueCache, closeCache, err := cache.FromConfig[[]scheduling.Item](ctx, cfg.Cache)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("cache.FromConfig() > %w", err)
	}
	app.AddShutdownHook("cache", func(context.Context) error { return closeCache() })

	service := review.NewService(
		item.NewDBRepository(db, cfg.Database.Retry),
		profile,
		cfg.Review,
		review.WithCache(dueCache),
	)
	handler := server.NewHandler(service, db, cfg.Server, cfg.Review)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(handler.Router(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			slog.Info("starting server", "addr", srv.Addr, "profile", cfg.Scheduling.Profile, "cache", cfg.Cache.Backend)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("srv.ListenAndServe() > %w", err)
			}
			return nil
		})
		if memory, ok := dueCache.(*cache.MemoryCache[[]scheduling.Item]); ok {
			interval := time.Duration(cfg.Cache.SweepIntervalSeconds) * time.Second
			eg.Go(func() error {
				return memory.Run(ctx, interval)
			})
		}
		return eg.Wait()
	})
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("FLASHREV_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
