package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/flashrev/internal/cache"
	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/internal/database"
	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/review"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

// app holds what a command needs once config, database and cache are set up.
type app struct {
	cfg     *config.Config
	db      *sqlx.DB
	repo    *item.DBRepository
	service *review.Service
	closers []func() error
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("loader.BindFlags() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loader.Load() > %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	if ownerID == "" {
		return nil, errors.New("--user or FLASHREV_USER is required")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	profile, err := cfg.Scheduling.ActiveProfile()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	a := &app{cfg: cfg, db: db, closers: []func() error{db.Close}}

	dueCache, closeCache, err := cache.FromConfig[[]scheduling.Item](ctx, cfg.Cache)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("cache.FromConfig() > %w", err)
	}
	a.closers = append(a.closers, closeCache)

	a.repo = item.NewDBRepository(db, cfg.Database.Retry)
	a.service = review.NewService(a.repo, profile, cfg.Review, review.WithCache(dueCache))
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// withApp runs fn with a ready app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(ctx, a)
}
