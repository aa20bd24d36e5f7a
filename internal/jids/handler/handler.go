package handler

import (
	"net/http"
	"strconv"
	"strings"

	"whatsapp_gateway/internal/jids/service"
	"whatsapp_gateway/internal/jids/transport"
	"whatsapp_gateway/platform/httpkit"
	"whatsapp_gateway/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for JID normalization.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest  = "invalid request"
	msgMissingRaw      = "identifier is required"
	msgInvalidNational = "national must be a boolean"
	maxIdentifierLen   = 256
)

// New creates a new JID handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Get normalizes a single identifier taken from the path.
// GET /api/v1/jids/:raw?national=true
func (h *Handler) Get(c *gin.Context) {
	raw := strings.TrimPrefix(c.Param("raw"), "/")
	if strings.TrimSpace(raw) == "" || len(raw) > maxIdentifierLen {
		httpkit.Error(c, http.StatusBadRequest, msgMissingRaw, nil)
		return
	}

	national := false
	if value := c.Query("national"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidNational, nil)
			return
		}
		national = parsed
	}

	httpkit.OK(c, h.svc.Normalize(c.Request.Context(), raw, national))
}

// NormalizeBatch normalizes a list of identifiers.
// POST /api/v1/jids/normalize
func (h *Handler) NormalizeBatch(c *gin.Context) {
	var req transport.NormalizeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); httpkit.HandleError(c, err) {
		return
	}

	result, err := h.svc.NormalizeBatch(c.Request.Context(), req.Identifiers, req.National)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
