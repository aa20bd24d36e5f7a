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

	apphttp "whatsapp_gateway/internal/http"
	"whatsapp_gateway/internal/http/router"
	"whatsapp_gateway/internal/jids"
	"whatsapp_gateway/internal/scheduler"
	"whatsapp_gateway/internal/whatsapp"
	"whatsapp_gateway/platform/config"
	"whatsapp_gateway/platform/logger"
	"whatsapp_gateway/platform/phone"
	"whatsapp_gateway/platform/validator"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	val := validator.New()
	phones := phone.NewNormalizer(cfg.GetPhoneDefaultRegion())
	whatsappClient := whatsapp.NewClient(cfg, log)
	if whatsappClient == nil {
		log.Warn("WHATSAPP_URL not configured; message delivery disabled")
	}

	var (
		queue  *scheduler.Client
		worker *scheduler.Worker
		dedupe *whatsapp.Deduper
	)
	if cfg.IsQueueEnabled() {
		dedupe, err = whatsapp.NewDeduper(cfg)
		if err != nil {
			panic("failed to initialize idempotency store: " + err.Error())
		}
		defer func() { _ = dedupe.Close() }()

		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			return dedupe.Ping(ctx)
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}

		if whatsappClient != nil {
			queue, worker = initQueue(cfg, whatsappClient, dedupe, log)
			if queue != nil {
				defer func() { _ = queue.Close() }()
			}
		}
	} else {
		log.Warn("REDIS_URL not configured; idempotency keys ignored and messages sent inline")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	jidsModule := jids.NewModule(phones, val, log)
	whatsappModule, err := whatsapp.NewModule(jidsModule.Service(), whatsappClient, queue, dedupe, val, log)
	if err != nil {
		log.Error("failed to initialize whatsapp module", "error", err)
		panic("failed to initialize whatsapp module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			jidsModule,
			whatsappModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if worker != nil {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

func initQueue(cfg *config.Config, sender scheduler.MessageSender, keys scheduler.KeyReleaser, log *logger.Logger) (*scheduler.Client, *scheduler.Worker) {
	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize whatsapp queue client", "error", err)
		return nil, nil
	}

	worker, err := scheduler.NewWorker(cfg, sender, keys, log)
	if err != nil {
		log.Error("failed to initialize whatsapp queue worker", "error", err)
		_ = client.Close()
		return nil, nil
	}

	log.Info("whatsapp delivery queue enabled", "queue", cfg.GetAsynqQueueName())
	return client, worker
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
