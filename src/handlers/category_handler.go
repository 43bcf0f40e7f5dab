package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"empadas-server/src/apperr"
	"empadas-server/src/finance"
	"empadas-server/src/models"
)

func ListCategories(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCategories(r.Context())
		if err != nil {
			log.Printf("ERROR: Failed to list categories: %v", err)
			apperr.Write(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

func CreateCategory(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string              `json:"name"`
			Kind models.CategoryKind `json:"kind"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.CreateCategory(r.Context(), req.Name, req.Kind)
		if err != nil {
			log.Printf("ERROR: Failed to create category %q: %v", req.Name, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Created category %s (%s)", item.ID, item.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

func UpdateCategory(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID   string                `json:"id"`
			Data finance.CategoryPatch `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.UpdateCategory(r.Context(), req.ID, req.Data)
		if err != nil {
			log.Printf("ERROR: Failed to update category %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Updated category %s", item.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

func DeleteCategory(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode delete category request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		if err := svc.DeleteCategory(r.Context(), req.ID); err != nil {
			log.Printf("ERROR: Failed to delete category %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Deleted category %s", req.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
