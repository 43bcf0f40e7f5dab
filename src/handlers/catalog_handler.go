package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"empadas-server/src/apperr"
	"empadas-server/src/catalog"
	"empadas-server/src/checkout"
	"empadas-server/src/models"
)

func ListProducts(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.List(r.Context())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

func UpdateProduct(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID           string                      `json:"id"`
			Price        *float64                    `json:"price,omitempty"`
			Availability *models.ProductAvailability `json:"availability,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode product update request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}
		if req.ID == "" {
			apperr.Write(w, apperr.BadRequest("id do produto é obrigatório"))
			return
		}

		err := svc.Update(r.Context(), models.CatalogProductOverride{
			ID:           req.ID,
			Price:        req.Price,
			Availability: req.Availability,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update catalog override for %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Updated catalog override for product %s", req.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func ResetProduct(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode product reset request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}
		if req.ID == "" {
			apperr.Write(w, apperr.BadRequest("id do produto é obrigatório"))
			return
		}

		if err := svc.Reset(r.Context(), req.ID); err != nil {
			log.Printf("ERROR: Failed to reset catalog override for %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Reset catalog override for product %s", req.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func Checkout(svc *checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input checkout.Input
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Printf("ERROR: Failed to decode checkout request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		result, err := svc.Place(r.Context(), input)
		if err != nil {
			log.Printf("ERROR: Checkout failed: %v", err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Checkout order placed, total %.2f", result.Total)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
