package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"empadas-server/src/apperr"
	"empadas-server/src/finance"
	"empadas-server/src/models"
)

func ListTransactions(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := finance.TransactionFilter{
			From:       q.Get("from"),
			To:         q.Get("to"),
			Status:     models.TransactionStatus(q.Get("status")),
			Type:       models.TransactionType(q.Get("type")),
			CategoryID: q.Get("categoryId"),
		}
		if filter.Status != "" && !filter.Status.Valid() {
			apperr.Write(w, apperr.BadRequest("status inválido"))
			return
		}
		if filter.Type != "" && !filter.Type.Valid() {
			apperr.Write(w, apperr.BadRequest("tipo inválido"))
			return
		}

		items, err := svc.ListTransactions(r.Context(), filter)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions: %v", err)
			apperr.Write(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

func CreateTransaction(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input finance.TransactionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.CreateTransaction(r.Context(), input)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction: %v", err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Created transaction %s (%s %s %.2f)", item.ID, item.Type, item.Status, item.Amount)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

func UpdateTransaction(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID   string                   `json:"id"`
			Data finance.TransactionPatch `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.UpdateTransaction(r.Context(), req.ID, req.Data)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Updated transaction %s", item.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

func DeleteTransaction(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode delete transaction request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		if err := svc.DeleteTransaction(r.Context(), req.ID); err != nil {
			log.Printf("ERROR: Failed to delete transaction %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Deleted transaction %s", req.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func ConfirmTransaction(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID            string                `json:"id"`
			PaymentMethod *models.PaymentMethod `json:"paymentMethod,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode confirm transaction request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.ConfirmTransaction(r.Context(), req.ID, req.PaymentMethod)
		if err != nil {
			log.Printf("ERROR: Failed to confirm transaction %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Confirmed transaction %s", item.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

func CancelTransaction(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode cancel transaction request body: %v", err)
			apperr.Write(w, apperr.BadRequest("requisição inválida"))
			return
		}

		item, err := svc.CancelTransaction(r.Context(), req.ID)
		if err != nil {
			log.Printf("ERROR: Failed to cancel transaction %s: %v", req.ID, err)
			apperr.Write(w, err)
			return
		}
		log.Printf("INFO: Canceled transaction %s", item.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"item": item})
	}
}

// ExportTransactionsCSV serves the RPC-style export, returning the CSV text
// inside a JSON envelope.
func ExportTransactionsCSV(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		csv, err := svc.ExportCSV(r.Context(), q.Get("from"), q.Get("to"))
		if err != nil {
			log.Printf("ERROR: Failed to export transactions CSV: %v", err)
			apperr.Write(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"csv": csv})
	}
}

// DownloadTransactionsCSV serves the plain CSV download endpoint.
func DownloadTransactionsCSV(svc *finance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		csv, err := svc.ExportCSV(r.Context(), q.Get("from"), q.Get("to"))
		if err != nil {
			log.Printf("ERROR: Failed to export transactions CSV: %v", err)
			apperr.Write(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
		w.Write([]byte(csv))
	}
}
