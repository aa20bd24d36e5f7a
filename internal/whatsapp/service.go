package whatsapp

import (
	"context"

	"whatsapp_gateway/internal/scheduler"
	"whatsapp_gateway/platform/apperr"
	"whatsapp_gateway/platform/jid"
	"whatsapp_gateway/platform/logger"
	"whatsapp_gateway/platform/sanitize"
)

// RecipientResolver turns a raw recipient into a classified JID.
type RecipientResolver interface {
	Resolve(raw string, national bool) jid.Address
}

// Service dispatches outbound messages inline or through the queue.
type Service struct {
	resolver RecipientResolver
	sender   scheduler.MessageSender
	queue    scheduler.WhatsAppQueue
	dedupe   *Deduper
	log      *logger.Logger
}

// Dispatch is the outcome of Send.
type Dispatch struct {
	JID    string
	Class  jid.Class
	Queued bool
}

// NewService wires the dispatcher. sender and queue may be nil; with both
// nil every Send fails as unavailable.
func NewService(resolver RecipientResolver, sender scheduler.MessageSender, queue scheduler.WhatsAppQueue, dedupe *Deduper, log *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		sender:   sender,
		queue:    queue,
		dedupe:   dedupe,
		log:      log,
	}
}

// Recipient resolves raw as a recipient. Bare numbers are read in the
// default region.
func (s *Service) Recipient(raw string) jid.Address {
	return s.resolver.Resolve(raw, true)
}

// Send delivers message, reduced to plain text, to the resolved recipient. A repeated non-empty
// idempotencyKey within the dedupe window is rejected as a conflict.
func (s *Service) Send(ctx context.Context, to, message, idempotencyKey string) (Dispatch, error) {
	if s.sender == nil && s.queue == nil {
		return Dispatch{}, apperr.Unavailable("whatsapp gateway not configured").WithOp("whatsapp.Send")
	}

	addr := s.Recipient(to)
	if !addr.Class.Passthrough() && addr.User == "" {
		return Dispatch{}, apperr.Validation("recipient has no digits").WithOp("whatsapp.Send")
	}

	message = sanitize.Message(message)
	if message == "" {
		return Dispatch{}, apperr.Validation("message is empty").WithOp("whatsapp.Send")
	}

	claimed, err := s.dedupe.Claim(ctx, idempotencyKey)
	if err != nil {
		return Dispatch{}, apperr.Upstream("idempotency store unavailable", err).WithOp("whatsapp.Send")
	}
	if !claimed {
		return Dispatch{}, apperr.Conflict("message already sent").WithOp("whatsapp.Send")
	}

	result := Dispatch{JID: addr.String(), Class: addr.Class}
	log := s.log.WithContext(ctx)

	if s.queue != nil {
		err = s.queue.EnqueueWhatsApp(ctx, scheduler.WhatsAppSendPayload{
			To:             result.JID,
			Message:        message,
			IdempotencyKey: idempotencyKey,
		})
		result.Queued = true
	} else {
		err = s.sender.SendMessage(ctx, result.JID, message)
	}

	if err != nil {
		if releaseErr := s.dedupe.Release(ctx, idempotencyKey); releaseErr != nil {
			log.Warn("failed to release idempotency key", "error", releaseErr)
		}
		return Dispatch{}, apperr.Upstream("whatsapp dispatch failed", err).WithOp("whatsapp.Send")
	}

	log.MessageDispatched(result.JID, result.Queued)
	return result, nil
}
