package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apihttp "github.com/Ru28/complaint-management-system/internal/api/http"
	"github.com/Ru28/complaint-management-system/internal/api/http/handlers"
	"github.com/Ru28/complaint-management-system/internal/auth"
	"github.com/Ru28/complaint-management-system/internal/config"
	"github.com/Ru28/complaint-management-system/internal/events"
	"github.com/Ru28/complaint-management-system/internal/observability"
	"github.com/Ru28/complaint-management-system/internal/persistence"
	"github.com/Ru28/complaint-management-system/internal/repository/memory"
	"github.com/Ru28/complaint-management-system/internal/service"
)

func newTestServer() *fiber.App {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "e2e-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
	}

	users := memory.NewUserStore()
	resolutions := memory.NewResolutionStore()
	complaints := memory.NewComplaintStore(resolutions)
	dispatcher := events.NewInMemoryDispatcher()

	accounts := service.NewAccountService(cfg, service.AccountDependencies{
		UserRepo:   users,
		ResetStore: memory.NewResetTokenStore(),
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
	complaintSvc := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo:  complaints,
		ResolutionRepo: resolutions,
		UnitOfWork:     memory.UnitOfWork{},
		Dispatcher:     dispatcher,
	})

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:         handlers.NewHealthHandler("complaint-management-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Accounts:       handlers.NewAccountsHandler(accounts),
		Complaints:     handlers.NewComplaintsHandler(complaintSvc),
		Admin:          handlers.NewAdminHandler(complaintSvc, accounts),
		AuthMiddleware: auth.NewAuthMiddleware(accounts.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func signup(t *testing.T, app *fiber.App, email, phone, role string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/accounts/signup", "", map[string]string{
		"fullName":    "Test User",
		"email":       email,
		"phoneNumber": phone,
		"password":    "secret1",
		"role":        role,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%v)", status, body)
	}
	data := body["data"].(map[string]any)
	return data["auth"].(map[string]any)["token"].(string)
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	return errObj["code"].(string)
}

func TestComplaintLifecycle(t *testing.T) {
	app := newTestServer()

	citizenToken := signup(t, app, "citizen@x.com", "1111111111", "Citizen")

	// no complaints yet is still a 200 with an empty list
	status, body := doJSON(t, app, http.MethodGet, "/complaint/myComplaint", citizenToken, nil)
	if status != http.StatusOK {
		t.Fatalf("myComplaint: expected 200, got %d (%v)", status, body)
	}
	if list := body["data"].([]any); len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}

	status, body = doJSON(t, app, http.MethodPost, "/complaint/raiseComplaint", citizenToken, map[string]string{
		"firstName":       "Asha",
		"lastName":        "Rao",
		"email":           "citizen@x.com",
		"phoneNumber":     "1111111111",
		"complaintDetail": "street light broken",
	})
	if status != http.StatusCreated {
		t.Fatalf("raiseComplaint: expected 201, got %d (%v)", status, body)
	}
	complaintData := body["data"].(map[string]any)
	complaintID := complaintData["id"].(string)
	if complaintData["status"] != "OPEN" {
		t.Fatalf("expected OPEN, got %v", complaintData["status"])
	}

	adminToken := signup(t, app, "admin@x.com", "2222222222", "Admin")

	// admin surface is closed to citizens
	status, body = doJSON(t, app, http.MethodGet, "/admin/all-complaints", citizenToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for citizen on admin route, got %d (%v)", status, body)
	}
	if code := errorCode(t, body); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}

	status, body = doJSON(t, app, http.MethodPost, "/admin/resolve-complaint?complaintId="+complaintID, adminToken, map[string]string{
		"response": "fixed the light",
	})
	if status != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d (%v)", status, body)
	}
	resolveData := body["data"].(map[string]any)
	if resolveData["complaint"].(map[string]any)["status"] != "RESOLVED" {
		t.Fatalf("expected RESOLVED, got %v", resolveData)
	}
	if resolveData["resolution"].(map[string]any)["response"] != "fixed the light" {
		t.Fatalf("unexpected resolution payload %v", resolveData)
	}

	// the owner sees the new status
	status, body = doJSON(t, app, http.MethodGet, "/complaint/myComplaint", citizenToken, nil)
	if status != http.StatusOK {
		t.Fatalf("myComplaint: expected 200, got %d (%v)", status, body)
	}
	mine := body["data"].([]any)
	if len(mine) != 1 {
		t.Fatalf("expected one complaint, got %d", len(mine))
	}
	if mine[0].(map[string]any)["status"] != "RESOLVED" {
		t.Fatalf("expected RESOLVED in owner listing, got %v", mine[0])
	}

	// the admin overview carries the latest resolution
	status, body = doJSON(t, app, http.MethodGet, "/admin/all-complaints", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("all-complaints: expected 200, got %d (%v)", status, body)
	}
	all := body["data"].([]any)
	if len(all) != 1 {
		t.Fatalf("expected one complaint, got %d", len(all))
	}
	row := all[0].(map[string]any)
	if row["resolution"] == nil {
		t.Fatalf("expected joined resolution, got %v", row)
	}
	if row["resolution"].(map[string]any)["response"] != "fixed the light" {
		t.Fatalf("unexpected joined resolution %v", row)
	}
}

func TestSignupConflictAndLoginFailures(t *testing.T) {
	app := newTestServer()

	signup(t, app, "citizen@x.com", "1111111111", "Citizen")

	status, body := doJSON(t, app, http.MethodPost, "/accounts/signup", "", map[string]string{
		"fullName":    "Clone",
		"email":       "citizen@x.com",
		"phoneNumber": "9999999999",
		"password":    "other",
		"role":        "Citizen",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%v)", status, body)
	}
	if code := errorCode(t, body); code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", code)
	}

	status, body = doJSON(t, app, http.MethodPost, "/accounts/login", "", map[string]string{
		"email":    "citizen@x.com",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (%v)", status, body)
	}
	if code := errorCode(t, body); code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestServer()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/complaint/myComplaint"},
		{http.MethodPost, "/complaint/raiseComplaint"},
		{http.MethodGet, "/accounts/profile"},
		{http.MethodGet, "/admin/all-complaints"},
	} {
		status, body := doJSON(t, app, route.method, route.path, "", nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d (%v)", route.method, route.path, status, body)
		}
	}
}

func TestResolveUnknownComplaintReturns404(t *testing.T) {
	app := newTestServer()

	adminToken := signup(t, app, "admin@x.com", "2222222222", "Admin")

	status, body := doJSON(t, app, http.MethodPost, "/admin/resolve-complaint?complaintId=no-such-id", adminToken, map[string]string{
		"response": "done",
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%v)", status, body)
	}
	if code := errorCode(t, body); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestProfileUpdateKeepsEmail(t *testing.T) {
	app := newTestServer()

	token := signup(t, app, "citizen@x.com", "1111111111", "Citizen")

	status, body := doJSON(t, app, http.MethodPost, "/accounts/update-profile", token, map[string]string{
		"city": "Pune",
	})
	if status != http.StatusOK {
		t.Fatalf("update-profile: expected 200, got %d (%v)", status, body)
	}
	profile := body["data"].(map[string]any)
	if profile["city"] != "Pune" {
		t.Fatalf("expected city updated, got %v", profile)
	}
	if profile["email"] != "citizen@x.com" {
		t.Fatalf("email must not change, got %v", profile["email"])
	}
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestServer()

	status, body := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	if status != http.StatusOK {
		t.Fatalf("live: expected 200, got %d (%v)", status, body)
	}
	if body["status"] != "alive" {
		t.Fatalf("unexpected live payload %v", body)
	}

	// backing stores are not configured in this setup
	status, body = doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("ready: expected 503, got %d (%v)", status, body)
	}
}

func TestUpdateUserRoleEndpoint(t *testing.T) {
	app := newTestServer()

	citizenToken := signup(t, app, "citizen@x.com", "1111111111", "Citizen")
	adminToken := signup(t, app, "admin@x.com", "2222222222", "Admin")

	// fetch the citizen's id from the admin user listing
	status, body := doJSON(t, app, http.MethodGet, "/admin/users", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("users: expected 200, got %d (%v)", status, body)
	}
	var citizenID string
	for _, item := range body["data"].([]any) {
		user := item.(map[string]any)
		if user["email"] == "citizen@x.com" {
			citizenID = user["id"].(string)
		}
	}
	if citizenID == "" {
		t.Fatal("citizen not found in user listing")
	}

	path := fmt.Sprintf("/admin/users/%s/role", citizenID)
	status, body = doJSON(t, app, http.MethodPatch, path, adminToken, map[string]string{
		"role": "Employee",
	})
	if status != http.StatusOK {
		t.Fatalf("role update: expected 200, got %d (%v)", status, body)
	}
	if body["data"].(map[string]any)["role"] != "EMPLOYEE" {
		t.Fatalf("expected EMPLOYEE, got %v", body["data"])
	}

	// the citizen token still carries the old role claim
	status, _ = doJSON(t, app, http.MethodGet, "/complaint/myComplaint", citizenToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected existing token to keep working, got %d", status)
	}
}
