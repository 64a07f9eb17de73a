package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/codehasanali/mywallet/internal/adapter/http/dto"
	"github.com/codehasanali/mywallet/internal/ledger"
)

// LimitService defines the ledger behavior needed by LimitHandler.
type LimitService interface {
	UpdateCategoryLimit(ctx context.Context, category string, limit decimal.Decimal) error
	Snapshot() ledger.Snapshot
}

// LimitHandler handles category limit requests.
type LimitHandler struct {
	wallet LimitService
}

// NewLimitHandler creates a new LimitHandler.
func NewLimitHandler(wallet LimitService) *LimitHandler {
	return &LimitHandler{wallet: wallet}
}

// List returns all category limits in their stored order.
func (h *LimitHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.wallet.Snapshot()
	writeJSON(w, http.StatusOK, dto.LimitsFromDomain(snap.CategoryLimits))
}

// Update sets the limit for a category, creating it when absent.
func (h *LimitHandler) Update(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "missing category", "")
		return
	}

	var req dto.UpdateLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.wallet.UpdateCategoryLimit(r.Context(), category, req.Limit); err != nil {
		writeError(w, mapDomainError(err), "failed to update limit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryLimitResponse{
		Name:  category,
		Limit: req.Limit,
	})
}
