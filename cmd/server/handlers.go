package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"go.uber.org/zap"
)

type transactionRequest struct {
	Type   string      `json:"type"`
	Client json.Number `json:"client"`
	Tx     json.Number `json:"tx"`
	Amount json.Number `json:"amount,omitempty"`
}

type transactionResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func newMux(ledgerService *ledger.Ledger, log *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		tx, err := models.ParseRecord(models.RawRecord{
			Type:   req.Type,
			Client: req.Client.String(),
			Tx:     req.Tx.String(),
			Amount: req.Amount.String(),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = ledgerService.Apply(r.Context(), tx)
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, transactionResponse{Status: "applied"})
		case ledger.IsIgnored(err):
			// Ignored transactions are a normal outcome, not a client error.
			writeJSON(w, http.StatusOK, transactionResponse{Status: "ignored", Reason: errors.Unwrap(err).Error()})
		default:
			log.Error("apply transaction failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		writeJSON(w, http.StatusOK, slices.Collect(ledgerService.Snapshot()))
	})

	mux.HandleFunc("/accounts/balance", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		raw := r.URL.Query().Get("client_id")
		if raw == "" {
			http.Error(w, "client_id is a mandatory field", http.StatusBadRequest)
			return
		}
		client, err := models.ParseClientID(raw)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		snap, ok := ledgerService.Account(client)
		if !ok {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
