package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/fleetledger/internal/catalog/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/config"
	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/encoding"
	ledgerHttp "github.com/MrJamesThe3rd/fleetledger/internal/http"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/auth"
	billingHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/billing"
	catalogHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/catalog"
	importHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/matching"
	rentalHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/rental"
	settlementHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/settlement"
	"github.com/MrJamesThe3rd/fleetledger/internal/importer"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/fleetledger/internal/ledger/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/logging"
	"github.com/MrJamesThe3rd/fleetledger/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/fleetledger/internal/matching/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/metrics"
	"github.com/MrJamesThe3rd/fleetledger/internal/reconcile"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ownerRate, agentRate, err := cfg.PayoutRates()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	recorder, err := metrics.NewRecorder(nil)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	var decoderOpts []encoding.Option
	if charset, ok := encoding.Lookup(cfg.Import.FallbackCharset); ok {
		decoderOpts = append(decoderOpts, encoding.WithFallback(charset))
	} else {
		slog.Warn("unknown import fallback charset, using windows-1252", "charset", cfg.Import.FallbackCharset)
	}

	var (
		ledgerRepo      = ledgerStore.New(db)
		catalogService  = catalog.NewService(catalogStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService(encoding.NewDecoder(decoderOpts...))
	)

	books := ledger.New(ledgerRepo,
		ledger.WithObserver(recorder),
		ledger.WithPayoutRates(ownerRate, agentRate),
		ledger.WithLocation(loc),
	)
	reconcileService := reconcile.NewService(importService, ledgerRepo, matchingService, books.Billing)

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("AUTH_JWT_SECRET is empty, every request is anonymous")
	}

	router := ledgerHttp.New(ledgerHttp.Handlers{
		Rentals:    rentalHandler.NewHandler(books.Rentals, books.Finalizer),
		Billing:    billingHandler.NewHandler(books.Billing),
		Settlement: settlementHandler.NewHandler(books.Settlement),
		Catalog:    catalogHandler.NewHandler(catalogService),
		Import:     importHandler.NewHandler(reconcileService),
		Matching:   matchingHandler.NewHandler(matchingService),
	}, ledgerHttp.Options{
		Auth:           auth.New(cfg.Auth.JWTSecret),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		Metrics:        ledgerHttp.MetricsHandler(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
