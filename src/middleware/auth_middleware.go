package middleware

import (
	"fmt"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"empadas-server/src/apperr"
)

// AdminCookieName carries the signed admin session token.
const AdminCookieName = "admin_session"

const (
	RoleAdmin = "admin"
	RoleAnon  = "anon"
)

// ParseTokenFromRequest extracts and validates the JWT from the session
// cookie, returning its claims if valid.
func ParseTokenFromRequest(r *http.Request) (jwt.MapClaims, error) {
	cookie, err := r.Cookie(AdminCookieName)
	if err != nil || cookie.Value == "" {
		return nil, fmt.Errorf("missing token")
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return nil, fmt.Errorf("variável de ambiente faltando: JWT_SECRET")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

// RoleFromRequest resolves the caller's role from the session cookie. Any
// verification failure (absent cookie, expired or tampered token) yields the
// anonymous role; admin operations then fail with UNAUTHORIZED.
func RoleFromRequest(r *http.Request) string {
	claims, err := ParseTokenFromRequest(r)
	if err != nil {
		return RoleAnon
	}
	if role, ok := claims["role"].(string); ok && role == RoleAdmin {
		return RoleAdmin
	}
	return RoleAnon
}

// AdminOnly gates admin-only operations on the session cookie role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromRequest(r) != RoleAdmin {
			apperr.Write(w, apperr.Unauthorized("sessão de administrador necessária"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetAdminCookie installs the session token as an HTTP-only cookie.
func SetAdminCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60 * 60 * 24 * 7, // 7 days
		Secure:   secure,
	})
}

// ClearAdminCookie expires the session cookie.
func ClearAdminCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Secure:   secure,
	})
}
