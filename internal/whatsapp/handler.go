package whatsapp

import (
	"net/http"

	"whatsapp_gateway/platform/httpkit"
	"whatsapp_gateway/platform/validator"

	"github.com/gin-gonic/gin"
)

// SendMessageRequest is the body of POST /api/v1/messages.
type SendMessageRequest struct {
	To             string `json:"to" validate:"required,max=256,whatsapp_recipient"`
	Message        string `json:"message" validate:"required,max=4096"`
	IdempotencyKey string `json:"idempotencyKey,omitempty" validate:"omitempty,max=128"`
}

// SendMessageResponse reports where a message went.
type SendMessageResponse struct {
	JID    string `json:"jid"`
	Class  string `json:"class"`
	Queued bool   `json:"queued"`
}

// Handler handles HTTP requests for outbound messages.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a new message handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Send dispatches a message.
// POST /api/v1/messages
func (h *Handler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); httpkit.HandleError(c, err) {
		return
	}

	result, err := h.svc.Send(c.Request.Context(), req.To, req.Message, req.IdempotencyKey)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := SendMessageResponse{JID: result.JID, Class: result.Class.String(), Queued: result.Queued}
	if result.Queued {
		httpkit.Accepted(c, resp)
		return
	}
	httpkit.OK(c, resp)
}
