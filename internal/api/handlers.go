// Package api exposes a concurrent ledger over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sheikh-saqib/transaction-event-ledger/internal/ledger"
	"github.com/sheikh-saqib/transaction-event-ledger/internal/models"
	"go.uber.org/zap"
)

// Handler serves the ledger endpoints.
type Handler struct {
	ledger    *ledger.Ledger
	logger    *zap.Logger
	precision int32
}

func NewHandler(l *ledger.Ledger, logger *zap.Logger, precision int32) *Handler {
	return &Handler{ledger: l, logger: logger, precision: precision}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /transactions", h.postTransaction)
	mux.HandleFunc("GET /accounts", h.listAccounts)
	mux.HandleFunc("GET /accounts/balance", h.getBalance)
	return mux
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Debug("writing response", zap.Int("status", status), zap.Error(err))
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) postTransaction(w http.ResponseWriter, r *http.Request) {
	var rec models.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	ev, err := rec.ToEvent()
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_event", Message: err.Error()})
		return
	}

	if err := h.ledger.Process(ev); err != nil {
		var txErr *models.TransactionError
		if !errors.As(err, &txErr) {
			h.logger.Error("processing transaction event", zap.Error(err))
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: err.Error()})
			return
		}

		h.logger.Warn("transaction error",
			zap.String("type", string(ev.Kind())),
			zap.Uint16("client", ev.Client()),
			zap.Uint32("tx", ev.Transaction()),
			zap.String("kind", string(txErr.Kind)),
			zap.Error(txErr))
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: string(txErr.Kind), Message: txErr.Error()})
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "accepted"})
}

func (h *Handler) listAccounts(w http.ResponseWriter, _ *http.Request) {
	accounts := make([]models.ClientSummary, 0)
	for c := range h.ledger.Snapshot() {
		accounts = append(accounts, c.Rounded(h.precision))
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("client_id")
	if raw == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_query", Message: "client_id is a mandatory field"})
		return
	}

	id, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_query", Message: "client_id must be an integer in [0, 65535]"})
		return
	}

	c, ok := h.ledger.Client(models.ClientID(id))
	if !ok {
		h.writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   string(models.KindClientNotFound),
			Message: models.ClientNotFound(models.ClientID(id)).Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, c.Rounded(h.precision))
}
