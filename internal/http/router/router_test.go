package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "whatsapp_gateway/internal/http"
	"whatsapp_gateway/platform/config"
	"whatsapp_gateway/platform/logger"

	"github.com/gin-gonic/gin"
)

type recordingModule struct {
	registered bool
}

func (m *recordingModule) Name() string { return "recording" }

func (m *recordingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.registered = true
	ctx.V1.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	ctx.Protected.GET("/secret", func(c *gin.Context) { c.String(http.StatusOK, "secret") })
}

func newTestApp(module apphttp.Module) *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config: &config.Config{
			CORSOrigins:     []string{"https://crm.example.com"},
			JWTAccessSecret: "secret",
			RateLimitRPS:    100,
			RateLimitBurst:  100,
		},
		Logger:  logger.Discard(),
		Modules: []apphttp.Module{module},
	}
}

func TestNewMountsModules(t *testing.T) {
	module := &recordingModule{}
	engine := New(newTestApp(module))

	if !module.registered {
		t.Fatal("expected module routes to be registered")
	}

	tests := []struct {
		path string
		want int
	}{
		{path: "/api/health", want: http.StatusOK},
		{path: "/api/v1/ping", want: http.StatusOK},
		{path: "/api/v1/secret", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.want {
			t.Fatalf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("GET %s: missing request id header", tt.path)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := New(newTestApp(&recordingModule{}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
	req.Header.Set("Origin", "https://crm.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://crm.example.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected forbidden preflight for unknown origin, got %d", rec.Code)
	}
}
