package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Ru28/complaint-management-system/internal/domain"
	apperrors "github.com/Ru28/complaint-management-system/pkg/util"
)

// newTestApp maps DomainError onto HTTP statuses the same way the
// transport middleware does, without pulling in the full stack.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code}})
		},
	})
}

func protectedApp(tm *TokenManager, extra ...fiber.Handler) *fiber.App {
	app := newTestApp()
	middleware := NewAuthMiddleware(tm)
	chain := append([]fiber.Handler{middleware.Handle}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no principal")
		}
		return c.JSON(fiber.Map{"role": principal.Role})
	})
	app.Get("/protected", chain...)
	return app
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := protectedApp(NewTokenManager("secret", 60))

	req := httptest.NewRequest("GET", "/protected", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestAuthMiddlewareBadPrefix(t *testing.T) {
	app := protectedApp(NewTokenManager("secret", 60))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app := protectedApp(NewTokenManager("secret", 60))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := protectedApp(tm)

	token, _, err := tm.GenerateToken(&domain.User{ID: "u1", Email: "a@x.com", PhoneNumber: "1", Role: domain.RoleCitizen})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestRequireAdminForbidsCitizen(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := protectedApp(tm, RequireAdmin())

	token, _, err := tm.GenerateToken(&domain.User{ID: "u1", Email: "a@x.com", PhoneNumber: "1", Role: domain.RoleCitizen})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := protectedApp(tm, RequireAdmin())

	token, _, err := tm.GenerateToken(&domain.User{ID: "u2", Email: "b@x.com", PhoneNumber: "2", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
