package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/utils"
)

func TestJWTAuthInjectsIdentity(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	at, err := utils.NewAccessToken(secret, 7, "alice", 24)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var gotID uint64
	var gotName string
	next := func(c echo.Context) error {
		gotID, _ = c.Get("user_id").(uint64)
		gotName, _ = c.Get("username").(string)
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/updateuser", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := run(t, JWTAuth(secret), req, next)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if gotID != 7 || gotName != "alice" {
		t.Fatalf("identity = (%d, %q), want (7, alice)", gotID, gotName)
	}
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	t.Parallel()

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodPut, "/api/updateuser", nil)
	rec := run(t, JWTAuth("secret"), req, next)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header code = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/updateuser", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec = run(t, JWTAuth("secret"), req, next)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token code = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	at, err := utils.NewAccessToken("right-secret", 7, "alice", 24)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodPut, "/api/updateuser", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := run(t, JWTAuth("wrong-secret"), req, next)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}
