package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"empadas-server/src/apperr"
	"empadas-server/src/finance"
)

func ListAccounts(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAccounts(r.Context())
		if err != nil {
			log.Printf("ERROR: Failed to list accounts: %v", err)
			apperr.Write(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

func CreateAccount(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input finance.AccountInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Printf("ERROR: Failed to decode create account request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.CreateAccount(r.Context(), input)
		if err != nil {
			log.Printf("ERROR: Failed to create account: %v", err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Created account %s (%s due %s)", item.ID, item.Kind, item.DueDateISO)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

func UpdateAccount(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID   string               `json:"id"`
			Data finance.AccountPatch `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update account request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.UpdateAccount(r.Context(), req.ID, req.Data)
		if err != nil {
			log.Printf("ERROR: Failed to update account %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Updated account %s", item.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

func DeleteAccount(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode delete account request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		if err := svc.DeleteAccount(r.Context(), req.ID); err != nil {
			log.Printf("ERROR: Failed to delete account %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Deleted account %s", req.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func PayAccount(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode pay account request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.PayAccount(r.Context(), req.ID)
		if err != nil {
			log.Printf("ERROR: Failed to pay account %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Marked account %s as paid", item.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}
