package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindUpstream, http.StatusBadGateway},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
		{KindUnknown, http.StatusBadRequest},
	}

	for _, tt := range tests {
		if got := New(tt.kind, "x").HTTPStatus(); got != tt.want {
			t.Fatalf("kind %d: got status %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestGetKindFollowsWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("send: %w", Upstream("whatsapp gateway failed", cause).WithOp("SendMessage"))

	if !Is(err, KindUpstream) {
		t.Fatalf("expected upstream kind, got %d", GetKind(err))
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if got := err.Error(); got != "send: SendMessage: whatsapp gateway failed: connection refused" {
		t.Fatalf("unexpected message %q", got)
	}
	if GetKind(cause) != KindUnknown {
		t.Fatal("plain errors should have unknown kind")
	}
}
