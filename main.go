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

	"drink-shop/api"
	"drink-shop/bot"
	"drink-shop/config"
	"drink-shop/db"
	"drink-shop/logger"
	"drink-shop/services"
	"drink-shop/store"
	"drink-shop/terminal"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		err = runMigrate(ctx, cfg, log)
	} else {
		err = run(ctx, cfg, log)
	}
	if err != nil {
		log.Error("exiting", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if err := db.Init(ctx, cfg.DB); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer db.Close()
	return applyMigrations(ctx, db.Pool, log)
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	var pool *pgxpool.Pool
	if cfg.NeedsDB() {
		if err := db.Init(ctx, cfg.DB); err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer db.Close()
		pool = db.Pool
		if cfg.AutoMigrate {
			if err := applyMigrations(ctx, pool, log); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
	}

	catalog := services.DefaultCatalog()
	if cfg.Catalog == config.CatalogPostgres {
		var err error
		if catalog, err = services.LoadCatalog(ctx, pool); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}

	sink, closeSink, err := store.New(ctx, cfg.Store, pool)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer closeSink()

	finalizer := services.NewFinalizer(sink, services.SystemClock{}, log)
	session := services.NewSession(catalog, finalizer)
	log.Info("drink shop ready",
		zap.String("frontend", cfg.Frontend),
		zap.String("store", cfg.Store.Backend),
		zap.Int("menu_items", catalog.Len()),
	)

	switch cfg.Frontend {
	case config.FrontendTelegram:
		b, err := bot.New(cfg, session, log)
		if err != nil {
			return err
		}
		b.Start(ctx)
		return nil
	case config.FrontendHTTP:
		return serveHTTP(ctx, cfg, session, log)
	default:
		return terminal.New(session, os.Stdin, os.Stdout, log).Run(ctx)
	}
}

func serveHTTP(ctx context.Context, cfg *config.Config, session *services.Session, log *zap.Logger) error {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(api.NewHandler(session, log), log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
