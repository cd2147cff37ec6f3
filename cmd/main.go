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

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"medtrack/internal/address"
	"medtrack/internal/catalog"
	"medtrack/internal/config"
	httpapi "medtrack/internal/http"
	"medtrack/internal/kvstore"
	"medtrack/internal/logger"
	"medtrack/internal/reminder"
	"medtrack/internal/repository"
	"medtrack/internal/service"

	_ "medtrack/docs"
)

func main() {
	app := &cli.App{
		Name:  "medtrack",
		Usage: "medication tracking and pharmacy orders",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, overrides HTTP_ADDR"},
					&cli.StringFlag{Name: "store", Usage: "memory, redis or mongo, overrides STORE_BACKEND"},
					&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
					&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file to load"},
					&cli.BoolFlag{Name: "no-notifications", Usage: "deny notification permission"},
				},
				Action: serve,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	if c.IsSet("addr") {
		cfg.HTTPAddr = c.String("addr")
	}
	if c.IsSet("store") {
		if cfg.Store.Backend, err = kvstore.ParseBackend(c.String("store")); err != nil {
			return err
		}
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("no-notifications") {
		cfg.NotificationsEnabled = false
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := c.Context
	store, closeStore, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeStore(cctx); err != nil {
			log.Warn("close store", "error", err)
		}
	}()
	log.Info("store opened", "backend", cfg.Store.Backend)

	cat := catalog.Default()
	scheduler := reminder.NewLocalScheduler(reminder.LogSink(log), cfg.NotificationsEnabled)
	reminders := reminder.NewService(scheduler, repository.NewNotificationMappingStore(store), log)

	meds := service.NewMedicationService(repository.NewMedicationStore(store, cat.Medications()), reminders, log)
	orders := service.NewOrderService(repository.NewOrderStore(store))
	cart := service.NewCartService(repository.NewCartStore(store))
	users := service.NewUserService(repository.NewUserStore(store), service.NewTokens(cfg.JWTSecret, cfg.SessionTTL))

	// triggers live in memory, restore them for the stored registry
	restoreReminders(ctx, log, meds, reminders)

	srv := httpapi.NewServer(httpapi.Deps{
		Medications:    meds,
		Reconciliation: service.NewReconciliationService(meds, cat, orders, cart),
		Products:       service.NewProductService(cat, cat),
		Cart:           cart,
		Orders:         orders,
		Checkout:       service.NewCheckoutService(users, cart, orders, log),
		Users:          users,
		Reminders:      reminders,
		Scheduler:      scheduler,
		CEP:            address.NewClient(cfg.CEPBaseURL, nil),
		AllowedOrigins: cfg.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() {
		if err := scheduler.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("scheduler stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
	return nil
}

func restoreReminders(ctx context.Context, log *slog.Logger, meds *service.MedicationService, reminders *reminder.Service) {
	list, err := meds.List(ctx)
	if err != nil {
		log.Warn("restore reminders: list medications", "error", err)
		return
	}
	for _, m := range list {
		if !m.Active {
			continue
		}
		if _, err := reminders.ScheduleForMedication(ctx, reminder.Target{ID: m.ID, Name: m.Name, Times: m.Times}); err != nil {
			log.Warn("restore reminders", "medication_id", m.ID, "error", err)
		}
	}
}
