// Package jids provides the JID normalization module: it exposes the
// canonical identifier rules over HTTP for callers that store raw numbers.
package jids

import (
	apphttp "whatsapp_gateway/internal/http"
	"whatsapp_gateway/internal/jids/handler"
	"whatsapp_gateway/internal/jids/service"
	"whatsapp_gateway/platform/logger"
	"whatsapp_gateway/platform/phone"
	"whatsapp_gateway/platform/validator"
)

// Module is the jids bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the jids module with all its dependencies.
func NewModule(phones *phone.Normalizer, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(phones, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "jids"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public normalization routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/jids/normalize", m.handler.NormalizeBatch)
	ctx.V1.GET("/jids/:raw", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
