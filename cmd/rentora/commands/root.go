// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentora/rentora/internal/booking"
	"github.com/rentora/rentora/internal/contact"
	"github.com/rentora/rentora/internal/listing"
	"github.com/rentora/rentora/internal/platform/config"
	"github.com/rentora/rentora/internal/platform/gateway"
	"github.com/rentora/rentora/internal/session"
)

// appContext carries the wired services every command runs against.
type appContext struct {
	cfg      *config.Config
	log      *slog.Logger
	sessions *session.Manager
	listings *listing.Service
	bookings *booking.Service
	contacts *contact.Service
	cache    *listing.Cache
}

var (
	apiURL string
	debug  bool
	app    *appContext
)

func Execute() error {
	root := &cobra.Command{
		Use:           "rentora",
		Short:         "Rental property marketplace CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildApp()
			if err != nil {
				return err
			}
			app = ctx
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.cache != nil {
				app.cache.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api", "", "marketplace API base URL (default from RENTORA_API_URL)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	root.AddCommand(
		loginCmd(), registerCmd(), logoutCmd(), whoamiCmd(),
		propertiesCmd(), bookCmd(), contactCmd(), chatCmd(),
	)
	return root.Execute()
}

// buildApp wires config, logging, storage, transport, and the domain services.
func buildApp() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if debug {
		cfg.Debug = true
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("cli_data_dir_failed: %w", err)
	}

	gw, err := gateway.New(gateway.Options{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            log,
	})
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(gw, session.NewFileStore(cfg.SessionPath()), log)

	// A broken cache only disables offline browsing.
	cache, err := listing.OpenCache(cfg.CachePath())
	if err != nil {
		log.Warn("catalog_cache_unavailable", slog.Any("error", err))
		cache = nil
	}

	return &appContext{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		listings: listing.NewService(gw, sessions, cache, log),
		bookings: booking.NewService(gw, sessions, log),
		contacts: contact.NewService(gw, sessions, log),
		cache:    cache,
	}, nil
}
