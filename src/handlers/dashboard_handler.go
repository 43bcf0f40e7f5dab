package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"empadas-server/src/apperr"
	"empadas-server/src/finance"
)

func DashboardSummary(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		summary, err := svc.DashboardSummary(r.Context(), q.Get("from"), q.Get("to"))
		if err != nil {
			log.Printf("ERROR: Failed to compute dashboard summary: %v", err)
			apperr.Write(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}
