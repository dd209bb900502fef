package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"monterhyra/frontend/events"
	"monterhyra/frontend/login"
	"monterhyra/frontend/orders"
	"monterhyra/frontend/pricing"
	"monterhyra/frontend/printfiles"
	"monterhyra/infrastructure/audit"
	"monterhyra/infrastructure/cache"
	"monterhyra/infrastructure/kvstore"
	"monterhyra/infrastructure/rbac"
	"monterhyra/infrastructure/sqlite"
	"monterhyra/models"
)

const (
	adminPassword     = "Admin123!Monter"
	warehousePassword = "Lager123!Monter"
)

type integrationEnv struct {
	server *httptest.Server
	db     *sqlite.DB
	srv    *Server
}

func setupIntegrationServer(t *testing.T) (*integrationEnv, *http.Client) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "server-integration.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if err := login.UpsertUserPasswordHash(context.Background(), db, "admin", rbac.RoleAdmin, adminPassword); err != nil {
		t.Fatalf("seed admin user: %v", err)
	}
	if err := login.UpsertUserPasswordHash(context.Background(), db, "lager", rbac.RoleWarehouse, warehousePassword); err != nil {
		t.Fatalf("seed warehouse user: %v", err)
	}

	rbacCache := cache.NewRbacRolesCache()
	auditSvc := audit.NewService(db)
	store := kvstore.New(db)
	eventSvc := events.NewService(store, auditSvc, "https://monterhyra.se/")

	s := NewServer("127.0.0.1:0", Options{
		DB:           db,
		SessionCache: cache.NewUserSessionCache(),
		UserCache:    cache.NewUserCache(),
		RbacCache:    rbacCache,
		Rbac:         rbac.New(rbacCache),
		Audit:        auditSvc,
		Events:       eventSvc,
		Orders:       orders.NewRepository(store, eventSvc, auditSvc, orders.DefaultBlobThreshold),
		Printer:      printfiles.NewGenerator(2),
		SessionTTL:   time.Hour,
	})
	ts := httptest.NewServer(s.Handler())
	env := &integrationEnv{server: ts, db: db, srv: s}
	t.Cleanup(func() {
		env.server.Close()
		_ = env.db.Close()
	})

	return env, newHTTPClient(t)
}

func newHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, baseURL, path string, data url.Values) *http.Response {
	t.Helper()
	if data == nil {
		data = url.Values{}
	}
	if token := csrfToken(t, client, baseURL); token != "" {
		data.Set("_csrf", token)
	}
	resp, err := client.PostForm(baseURL+path, data)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// sendJSON sends body as JSON. withCSRF copies the CSRF cookie into the header.
func sendJSON(t *testing.T, client *http.Client, baseURL, method, path string, body any, withCSRF bool) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withCSRF {
		req.Header.Set("X-CSRF-Token", csrfToken(t, client, baseURL))
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func get(t *testing.T, client *http.Client, baseURL, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func csrfToken(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "X-CSRF-Token" {
			return c.Value
		}
	}
	return ""
}

func loginAs(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()

	resp := get(t, client, baseURL, "/login")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login page 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = postForm(t, client, baseURL, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login 303, got %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != login.HomePath {
		t.Fatalf("unexpected login redirect: %s", location)
	}
	_ = resp.Body.Close()
}

func checkout(t *testing.T, client *http.Client, baseURL string, in orders.NewOrder) models.Order {
	t.Helper()
	resp := sendJSON(t, client, baseURL, http.MethodPost, "/api/orders", in, false)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected checkout 201, got %d", resp.StatusCode)
	}
	var order models.Order
	decode(t, resp, &order)
	return order
}

func TestHealth(t *testing.T) {
	env, client := setupIntegrationServer(t)
	resp := get(t, client, env.server.URL, "/health")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAssetsServed(t *testing.T) {
	env, client := setupIntegrationServer(t)
	resp := get(t, client, env.server.URL, "/assets/app.css")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected stylesheet 200, got %d", resp.StatusCode)
	}
}

func TestCSRFPostWithoutTokenRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)

	// No GET first: no CSRF token available in cookie or form.
	resp, err := client.PostForm(env.server.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {adminPassword},
	})
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for missing csrf, got %d", resp.StatusCode)
	}
}

func TestCSRFPostWithTokenAccepted(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)
}

func TestAdminRequiresSession(t *testing.T) {
	env, client := setupIntegrationServer(t)

	resp := get(t, client, env.server.URL, "/admin/orders")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = get(t, client, env.server.URL, "/api/admin/orders")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for api without session, got %d", resp.StatusCode)
	}
}

func TestAdminAPIMutationNeedsCSRFHeader(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)
	order := checkout(t, client, env.server.URL, orders.NewOrder{CustomerInfo: models.CustomerInfo{Name: "Anna"}})

	resp := sendJSON(t, client, env.server.URL, http.MethodDelete, "/api/admin/orders/"+order.ID, nil, false)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without csrf header, got %d", resp.StatusCode)
	}

	resp = sendJSON(t, client, env.server.URL, http.MethodDelete, "/api/admin/orders/"+order.ID, nil, true)
	var remaining []models.Order
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected delete 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &remaining)
	if len(remaining) != 0 {
		t.Fatalf("expected no orders left, got %d", len(remaining))
	}
}

func TestWarehouseCanReadButNotDelete(t *testing.T) {
	env, client := setupIntegrationServer(t)
	order := checkout(t, client, env.server.URL, orders.NewOrder{
		CustomerInfo: models.CustomerInfo{Name: "Anna", Company: "Acme"},
		Config:       models.BoothConfig{Floor: &models.FloorConfig{Width: 3, Depth: 3}},
		Packlista:    models.Packlist{models.CountEntry("Väggpaneler", 4)},
	})
	loginAs(t, client, env.server.URL, "lager", warehousePassword)

	for _, path := range []string{
		"/admin/orders",
		"/api/admin/orders",
		"/api/admin/orders/" + order.ID,
		"/api/admin/orders/" + order.ID + "/packing-slip.pdf",
		"/api/admin/orders/" + order.ID + "/summary.txt",
	} {
		resp := get(t, client, env.server.URL, path)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}

	resp := sendJSON(t, client, env.server.URL, http.MethodDelete, "/api/admin/orders/"+order.ID, nil, true)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for warehouse delete, got %d", resp.StatusCode)
	}

	resp = get(t, client, env.server.URL, "/api/admin/events")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for warehouse events, got %d", resp.StatusCode)
	}
}

func TestEventPricingFlowsIntoQuotesAndOrders(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)

	resp := sendJSON(t, client, env.server.URL, http.MethodPost, "/api/admin/events", events.NewEvent{Name: "Elmia"}, true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected event 201, got %d", resp.StatusCode)
	}
	var event events.Event
	decode(t, resp, &event)

	floor := int64(500)
	resp = sendJSON(t, client, env.server.URL, http.MethodPut, "/api/admin/events/"+event.ID+"/pricing",
		pricing.PriceTable{Floor: &pricing.FloorPrices{BasePricePerSqm: &floor}}, true)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected pricing update 200, got %d", resp.StatusCode)
	}

	booth := models.BoothConfig{Floor: &models.FloorConfig{Width: 3, Depth: 3}}
	anon := newHTTPClient(t)

	var global, local pricing.QuoteResponse
	resp = sendJSON(t, anon, env.server.URL, http.MethodPost, "/api/pricing/quote", pricing.QuoteRequest{Config: booth}, false)
	decode(t, resp, &global)
	resp = sendJSON(t, anon, env.server.URL, http.MethodPost, "/api/pricing/quote", pricing.QuoteRequest{EventID: event.ID, Config: booth}, false)
	decode(t, resp, &local)
	if global.Total != 9*pricing.DefaultFloorPerSqm || local.Total != 4500 {
		t.Fatalf("unexpected totals global=%v event=%v", global.Total, local.Total)
	}

	resp = sendJSON(t, anon, env.server.URL, http.MethodPost, "/api/pricing/quote", pricing.QuoteRequest{EventID: "missing", Config: booth}, false)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown event, got %d", resp.StatusCode)
	}

	order := checkout(t, anon, env.server.URL, orders.NewOrder{
		CustomerInfo: models.CustomerInfo{Name: "Anna"},
		EventID:      event.ID,
		Config:       booth,
	})
	if order.OrderData.TotalPrice != 4500 {
		t.Fatalf("expected frozen total 4500, got %v", order.OrderData.TotalPrice)
	}
}

func TestPublicAPIAllowsCrossOrigin(t *testing.T) {
	env, _ := setupIntegrationServer(t)

	req, err := http.NewRequest(http.MethodOptions, env.server.URL+"/api/pricing/quote", nil)
	if err != nil {
		t.Fatalf("build preflight: %v", err)
	}
	req.Header.Set("Origin", "https://configurator.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	_ = resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected CORS allow origin header")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)

	resp := postForm(t, client, env.server.URL, "/logout", nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected logout 303, got %d", resp.StatusCode)
	}

	resp = get(t, client, env.server.URL, "/api/admin/orders")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestAdminUsersPage(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)

	resp := postForm(t, client, env.server.URL, "/admin/users", url.Values{
		"username": {"lager2"},
		"password": {"Lager456!Monter"},
		"role":     {rbac.RoleWarehouse},
	})
	_ = resp.Body.Close()
	if !strings.Contains(resp.Header.Get("Location"), "status=") {
		t.Fatalf("expected success redirect, got %q", resp.Header.Get("Location"))
	}

	resp = get(t, client, env.server.URL, "/admin/users")
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), "lager2") {
		t.Fatalf("expected new user listed")
	}
}

func TestSweepSessionsRemovesExpired(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)

	env.srv.SweepSessions(context.Background(), time.Now().Add(2*time.Hour))

	resp := get(t, client, env.server.URL, "/api/admin/orders")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after sweep, got %d", resp.StatusCode)
	}
}
