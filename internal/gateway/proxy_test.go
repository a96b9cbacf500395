package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tesseract-nexus/storefront-client/internal/config"
)

type capturedRequest struct {
	method  string
	path    string
	query   string
	body    string
	headers http.Header
}

func setupGateway(t *testing.T, apiKeyHash string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	captured := &capturedRequest{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.body = string(body)
		captured.headers = r.Header.Clone()
		w.Header().Set("X-Backend", "customers-service")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"cust-1"}`))
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		Environment: "test",
		Gateway: config.GatewayConfig{
			APIKeyHash: apiKeyHash,
			Services:   map[string]string{"customers": backend.URL},
		},
	}
	server := httptest.NewServer(NewRouter(cfg, zap.NewNop()))
	t.Cleanup(server.Close)
	return server, captured
}

func TestProxyForwardsMethodHeadersAndBody(t *testing.T) {
	server, captured := setupGateway(t, "")

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/customers/customers?limit=5", strings.NewReader(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", "tenant-1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected backend status relayed, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Backend") != "customers-service" {
		t.Error("expected backend response headers relayed")
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"id":"cust-1"}` {
		t.Errorf("expected backend body relayed, got %q", body)
	}

	if captured.method != http.MethodPost {
		t.Errorf("expected POST forwarded, got %s", captured.method)
	}
	if captured.path != "/customers" {
		t.Errorf("expected path /customers, got %s", captured.path)
	}
	if captured.query != "limit=5" {
		t.Errorf("expected query forwarded, got %q", captured.query)
	}
	if captured.body != `{"name":"Ada"}` {
		t.Errorf("expected body forwarded, got %q", captured.body)
	}
	if captured.headers.Get("X-Tenant-ID") != "tenant-1" {
		t.Error("expected tenant header forwarded")
	}
	if captured.headers.Get("X-Request-ID") == "" {
		t.Error("expected request id attached")
	}
}

func TestProxyDeleteForwardsIdentityHeaders(t *testing.T) {
	server, captured := setupGateway(t, "")

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/customers/customers/cust-1", nil)
	req.Header.Set("X-Tenant-ID", "tenant-1")
	req.Header.Set("X-User-ID", "user-9")
	req.Header.Set("X-User-Roles", "admin")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if captured.method != http.MethodDelete {
		t.Errorf("expected DELETE forwarded, got %s", captured.method)
	}
	if captured.headers.Get("X-Tenant-ID") != "tenant-1" ||
		captured.headers.Get("X-User-ID") != "user-9" ||
		captured.headers.Get("X-User-Roles") != "admin" {
		t.Errorf("expected identity headers forwarded, got %v", captured.headers)
	}
}

func TestProxyDeleteRequiresTenant(t *testing.T) {
	server, _ := setupGateway(t, "")

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/customers/customers/cust-1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without X-Tenant-ID, got %d", resp.StatusCode)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	server, _ := setupGateway(t, string(hash))

	// No key.
	resp, _ := http.Get(server.URL + "/api/customers/customers")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", resp.StatusCode)
	}

	// Wrong key.
	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/customers/customers", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", resp.StatusCode)
	}

	// Right key.
	req, _ = http.NewRequest(http.MethodGet, server.URL+"/api/customers/customers", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected proxied response with right key, got %d", resp.StatusCode)
	}

	// Health stays open.
	resp, _ = http.Get(server.URL + "/health")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected open health endpoint, got %d", resp.StatusCode)
	}
}
