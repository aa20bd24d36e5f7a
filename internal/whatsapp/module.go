// Package whatsapp provides outbound WhatsApp delivery: a GOWA gateway
// client, an optional asynq-backed queue and a Redis idempotency guard.
package whatsapp

import (
	"fmt"

	apphttp "whatsapp_gateway/internal/http"
	"whatsapp_gateway/internal/scheduler"
	"whatsapp_gateway/platform/logger"
	"whatsapp_gateway/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// Module is the whatsapp bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule wires the module. client, queue and dedupe may be nil.
func NewModule(resolver RecipientResolver, client *Client, queue *scheduler.Client, dedupe *Deduper, val *validator.Validator, log *logger.Logger) (*Module, error) {
	var sender scheduler.MessageSender
	if client != nil {
		sender = client
	}
	var q scheduler.WhatsAppQueue
	if queue != nil {
		q = queue
	}

	svc := NewService(resolver, sender, q, dedupe, log)

	if err := val.RegisterValidation("whatsapp_recipient", func(fl playground.FieldLevel) bool {
		addr := svc.Recipient(fl.Field().String())
		return addr.Class.Passthrough() || addr.User != ""
	}); err != nil {
		return nil, fmt.Errorf("register whatsapp_recipient validation: %w", err)
	}

	return &Module{
		handler: NewHandler(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "whatsapp"
}

// Service returns the service layer for external use.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the authenticated message routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/messages", m.handler.Send)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
