package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"empadas-server/src/apperr"
	"empadas-server/src/config"
	"empadas-server/src/middleware"
)

// passwordMatches compares the provided password against the configured one.
// A bcrypt hash in ADMIN_PASSWORD is honored; otherwise the comparison is
// constant-time plaintext.
func passwordMatches(configured, provided string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) == 1
}

func signAdminToken() (string, error) {
	secret, err := config.Required("JWT_SECRET")
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": middleware.RoleAdmin,
		"exp":  time.Now().Add(time.Hour * 168).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func Login(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		missing := config.MissingOf("JWT_SECRET", "ADMIN_USERNAME", "ADMIN_PASSWORD")
		if len(missing) > 0 {
			log.Printf("ERROR: Login attempted with missing env vars: %s", strings.Join(missing, ", "))
			apperr.Write(w, apperr.Internal(
				"Variáveis de ambiente faltando: "+strings.Join(missing, ", ")+
					". Crie um arquivo `.env` na raiz do projeto e reinicie o servidor."))
			return
		}

		usernameOK := subtle.ConstantTimeCompare(
			[]byte(os.Getenv("ADMIN_USERNAME")), []byte(credentials.Username)) == 1
		passwordOK := passwordMatches(os.Getenv("ADMIN_PASSWORD"), credentials.Password)
		if !usernameOK || !passwordOK {
			log.Printf("ERROR: Invalid admin login attempt from IP %s", r.RemoteAddr)
			apperr.Write(w, apperr.Unauthorized("credenciais inválidas"))
			return
		}

		token, err := signAdminToken()
		if err != nil {
			log.Printf("ERROR: Failed to sign admin token: %v", err)
			apperr.Write(w, apperr.Internal("falha ao gerar o token de sessão"))
			return
		}

		middleware.SetAdminCookie(w, token, cfg.IsProduction())
		log.Printf("INFO: Successful admin login from IP %s", r.RemoteAddr)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "role": middleware.RoleAdmin})
	}
}

func Logout(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.ClearAdminCookie(w, cfg.IsProduction())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.RoleFromRequest(r) != middleware.RoleAdmin {
			apperr.Write(w, apperr.Unauthorized("sessão de administrador necessária"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"role": middleware.RoleAdmin})
	}
}
