package scheduler

import (
	"context"
	"fmt"

	"whatsapp_gateway/platform/config"
	"whatsapp_gateway/platform/logger"

	"github.com/hibiken/asynq"
)

// MessageSender delivers a WhatsApp message to a canonical JID.
type MessageSender interface {
	SendMessage(ctx context.Context, to string, message string) error
}

// KeyReleaser frees an idempotency key whose message was never delivered.
type KeyReleaser interface {
	Release(ctx context.Context, key string) error
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender MessageSender
	keys   KeyReleaser
	log    *logger.Logger

	// lastAttempt reports whether a failure exhausts the task's retries.
	lastAttempt func(ctx context.Context) bool
}

func NewWorker(cfg config.SchedulerConfig, sender MessageSender, keys KeyReleaser, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}
	if sender == nil {
		return nil, fmt.Errorf("whatsapp sender not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newWorker(sender, keys, log)
	w.server = server
	return w, nil
}

func newWorker(sender MessageSender, keys KeyReleaser, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:         mux,
		sender:      sender,
		keys:        keys,
		log:         log,
		lastAttempt: isLastAttempt,
	}
	mux.HandleFunc(TaskWhatsAppSend, w.handleWhatsAppSend)
	return w
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Start(w.mux); err != nil {
		w.log.Error("scheduler worker failed to start", "error", err)
		return err
	}

	<-ctx.Done()
	w.server.Shutdown()
	w.log.Info("scheduler worker stopped")
	return nil
}

func (w *Worker) handleWhatsAppSend(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseWhatsAppSendPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := w.sender.SendMessage(ctx, payload.To, payload.Message); err != nil {
		w.log.Warn("queued whatsapp send failed", "jid", payload.To, "error", err)
		if payload.IdempotencyKey != "" && w.keys != nil && w.lastAttempt(ctx) {
			if relErr := w.keys.Release(ctx, payload.IdempotencyKey); relErr != nil {
				w.log.Error("failed to release idempotency key", "jid", payload.To, "error", relErr)
			}
		}
		return err
	}

	w.log.MessageDispatched(payload.To, true)
	return nil
}

// isLastAttempt is false outside a running asynq server.
func isLastAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return false
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return false
	}
	return retried >= maxRetry
}
