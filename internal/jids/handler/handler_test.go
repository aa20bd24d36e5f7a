package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"whatsapp_gateway/internal/jids/service"
	"whatsapp_gateway/internal/jids/transport"
	"whatsapp_gateway/platform/logger"
	"whatsapp_gateway/platform/phone"
	"whatsapp_gateway/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(phone.NewNormalizer("NL"), logger.Discard()), validator.New())

	engine := gin.New()
	engine.POST("/jids/normalize", h.NormalizeBatch)
	engine.GET("/jids/:raw", h.Get)
	return engine
}

func TestGet(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		raw    string
		query  string
		status int
		jid    string
	}{
		{raw: "+55 (88) 99689-4405", status: http.StatusOK, jid: "5588996894405@s.whatsapp.net"},
		{raw: "5511912345678@s.whatsapp.net", status: http.StatusOK, jid: "5511912345678@s.whatsapp.net"},
		{raw: "06 12345678", query: "?national=true", status: http.StatusOK, jid: "31612345678@s.whatsapp.net"},
		{raw: "06 12345678", query: "?national=maybe", status: http.StatusBadRequest},
		{raw: " ", status: http.StatusBadRequest},
		{raw: strings.Repeat("1", 300), status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/jids/"+url.PathEscape(tt.raw)+tt.query, nil)
		engine.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Fatalf("GET %q: status %d, want %d (body %s)", tt.raw, rec.Code, tt.status, rec.Body.String())
		}
		if tt.status != http.StatusOK {
			continue
		}

		var resp transport.JIDResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.JID != tt.jid {
			t.Fatalf("GET %q: jid %q, want %q", tt.raw, resp.JID, tt.jid)
		}
	}
}

func TestNormalizeBatch(t *testing.T) {
	engine := newTestEngine()

	body := `{"identifiers":["5215512345678","status@broadcast","120363025246125486"]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jids/normalize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp transport.NormalizeBatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []string{"525512345678@s.whatsapp.net", "status@broadcast", "120363025246125486@g.us"}
	if resp.Total != len(want) {
		t.Fatalf("unexpected total %d", resp.Total)
	}
	for i, w := range want {
		if resp.Items[i].JID != w {
			t.Fatalf("item %d: jid %q, want %q", i, resp.Items[i].JID, w)
		}
	}
}

func TestNormalizeBatchValidation(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"identifiers":`},
		{name: "empty list", body: `{"identifiers":[]}`},
		{name: "missing list", body: `{}`},
		{name: "identifier too long", body: `{"identifiers":["` + strings.Repeat("9", 257) + `"]}`},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/jids/normalize", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", tt.name, rec.Code)
		}
	}
}
