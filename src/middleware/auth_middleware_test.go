package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/trpc/finance.categories.list", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	}
	return req
}

func adminClaims() jwt.MapClaims {
	return jwt.MapClaims{"role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix()}
}

func TestRoleFromRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid admin token", func(t *testing.T) {
		token := signToken(t, "test-secret", adminClaims())
		assert.Equal(t, RoleAdmin, RoleFromRequest(requestWithToken(token)))
	})

	t.Run("missing cookie", func(t *testing.T) {
		assert.Equal(t, RoleAnon, RoleFromRequest(requestWithToken("")))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", adminClaims())
		assert.Equal(t, RoleAnon, RoleFromRequest(requestWithToken(token)))
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"role": RoleAdmin,
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})
		assert.Equal(t, RoleAnon, RoleFromRequest(requestWithToken(token)))
	})

	t.Run("non-admin role", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"role": "viewer",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, RoleAnon, RoleFromRequest(requestWithToken(token)))
	})
}

func TestAdminOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("admin passes through", func(t *testing.T) {
		token := signToken(t, "test-secret", adminClaims())
		rec := httptest.NewRecorder()
		AdminOnly(next).ServeHTTP(rec, requestWithToken(token))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminOnly(next).ServeHTTP(rec, requestWithToken(""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})
}
