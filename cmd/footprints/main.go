// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the footprints map viewer.
// It loads configuration, connects to services, starts the location load,
// sets up routing, and runs the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"footprints/internal/cache"
	"footprints/internal/config"
	"footprints/internal/database"
	"footprints/internal/handlers"
	"footprints/internal/locations"
	"footprints/internal/metrics"
	"footprints/internal/middleware"
	"footprints/internal/render"
	"footprints/internal/router"
	"footprints/internal/session"
	"footprints/internal/storage"
	"footprints/internal/store"
	"footprints/web"
)

func main() {
	importPath := flag.String("import", "", "append the records of a locations.json file to the database and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"base_path", cfg.BasePath,
	)

	if *importPath != "" {
		if err := importLocations(cfg, *importPath); err != nil {
			slog.Error("import failed", "error", err)
			os.Exit(1)
		}
		return
	}

	m := metrics.New()

	// Connect to Valkey (session state and response cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Location sources, tried in order until one yields data.
	var sources []locations.Source
	if cfg.LocationsURL != "" {
		sources = append(sources, locations.NewHTTPSource(cfg.LocationsURL, cfg.LocationsFetchTimeout))
	}
	if cfg.LocationsFile != "" {
		sources = append(sources, &locations.FileSource{Path: cfg.LocationsFile})
	}

	switch {
	case cfg.LocationsS3Key == "":
	case !cfg.S3Enabled():
		slog.Warn("s3 storage not configured, skipping LOCATIONS_S3_KEY")
	default:
		storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3BucketPublic)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
		sources = append(sources, &locations.ObjectSource{
			Storage: storageClient,
			Bucket:  storageClient.Bucket(),
			Key:     cfg.LocationsS3Key,
		})
	}

	if cfg.LocationsDB {
		db, err := openDB(cfg)
		if err != nil {
			slog.Error("failed to prepare database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		// Seed development data (no-op if the table has rows).
		if cfg.IsDev() {
			if err := database.Seed(context.Background(), db, locations.DefaultRecords()); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}
		sources = append(sources, &locations.DBSource{Store: store.NewLocationStore(db)})
	}

	// Start the one-time location load. Cached responses from an earlier
	// process may share this load's generation number, so drop them all.
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	locStore := locations.NewStore(sources...)
	locStore.OnLoad(m.ObserveLoad)
	locStore.OnLoad(func(locations.Snapshot) {
		responseCache.InvalidateAll(context.Background())
	})

	loadCtx, cancelLoad := context.WithCancel(context.Background())
	defer cancelLoad()
	locStore.Start(loadCtx)

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to open static assets", "error", err)
		os.Exit(1)
	}

	creatorLimiter := middleware.NewRateLimiter(cfg.RateLimitCreator, time.Minute)
	defer creatorLimiter.Stop()
	creatorLimiter.OnReject(func(*http.Request) {
		m.RateLimitRejects.WithLabelValues("creator").Inc()
	})

	opts := handlers.PageOptions{
		BasePath:    cfg.BasePath,
		DefaultLang: cfg.DefaultLang,
		Tiles: render.Tiles{
			Light:       cfg.TilesLight,
			Dark:        cfg.TilesDark,
			Attribution: cfg.MapAttribution,
		},
	}

	r := router.New(router.Deps{
		Sessions:       sessionStore,
		Viewer:         handlers.NewViewer(renderer, sessionStore, session.NewLocks(), locStore, m, opts),
		API:            handlers.NewAPI(locStore, responseCache, m, cfg.DefaultLang),
		Creator:        handlers.NewCreator(renderer, m, opts),
		Metrics:        m,
		CreatorLimiter: creatorLimiter,
		Static:         static,
		DefaultLang:    cfg.DefaultLang,
		SecureCookies:  secureCookies,
		BasePath:       cfg.BasePath,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openDB connects to PostgreSQL and runs pending migrations.
func openDB(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// importLocations appends every record of a locations.json file to the
// locations table, keeping file order.
func importLocations(cfg *config.Config, path string) error {
	records, err := (&locations.FileSource{Path: path}).Fetch(context.Background())
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ls := store.NewLocationStore(db)
	ctx := context.Background()
	for i, rec := range records {
		if err := ls.Append(ctx, rec); err != nil {
			return fmt.Errorf("record %d (%s): %w", i+1, rec.Name, err)
		}
	}

	total, err := ls.Count(ctx)
	if err != nil {
		return err
	}
	slog.Info("locations imported", "file", path, "imported", len(records), "total", total)
	return nil
}
