package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"empadas-server/src/config"
	"empadas-server/src/drive"
	"empadas-server/src/store"
)

// Health reports liveness. Outside production it also reports which required
// env vars are present (presence only, never values), and `?live=1` performs
// a real Drive connectivity check against the configured folder.
func Health(cfg config.Config, provider *store.Provider) http.HandlerFunc {
	authVars := []string{"ADMIN_USERNAME", "ADMIN_PASSWORD", "JWT_SECRET"}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"ok": true}

		if !cfg.IsProduction() {
			env := make(map[string]bool)
			for _, key := range append(authVars, drive.EnvVars()...) {
				_, present := os.LookupEnv(key)
				env[key] = present
			}
			resp["env"] = env
		}

		status := http.StatusOK
		if r.URL.Query().Get("live") == "1" {
			if err := provider.Ping(r.Context()); err != nil {
				log.Printf("ERROR: Drive connectivity check failed: %v", err)
				resp["ok"] = false
				resp["drive"] = "unreachable"
				status = http.StatusInternalServerError
			} else {
				resp["drive"] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
	}
}
