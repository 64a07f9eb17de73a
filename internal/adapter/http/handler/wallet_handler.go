package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/codehasanali/mywallet/internal/adapter/http/dto"
	"github.com/codehasanali/mywallet/internal/domain"
	"github.com/codehasanali/mywallet/internal/ledger"
)

// WalletService defines the ledger behavior needed by WalletHandler.
type WalletService interface {
	AddTransaction(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	AddIncome(ctx context.Context, input ledger.AddIncomeInput) (domain.Transaction, error)
	Remove(ctx context.Context, id string) (domain.Transaction, error)
	RemoveAt(ctx context.Context, index int) (domain.Transaction, error)
	Load(ctx context.Context) error
	Clear(ctx context.Context) error
	Snapshot() ledger.Snapshot
}

// WalletHandler handles wallet state and transaction requests.
type WalletHandler struct {
	wallet WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallet WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

// Summary returns the wallet's aggregates.
func (h *WalletHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.WalletFromSnapshot(h.wallet.Snapshot()))
}

// ListTransactions returns the full transaction log in insertion order.
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	snap := h.wallet.Snapshot()
	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(snap.Transactions))
}

// AddExpense records an expense. Input validation lives here, in front of
// the ledger: the engine only re-checks the category limit.
func (h *WalletHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := domain.ValidateTransactionName(req.Name); err != nil {
		writeError(w, mapDomainError(err), "invalid transaction name", err.Error())
		return
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		writeError(w, mapDomainError(err), "invalid amount", err.Error())
		return
	}
	if err := domain.ValidateExpenseCategory(req.Category); err != nil {
		writeError(w, mapDomainError(err), "invalid category", err.Error())
		return
	}

	tx, err := h.wallet.AddTransaction(r.Context(), req.ToTransaction())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// AddIncome records an income entry.
func (h *WalletHandler) AddIncome(w http.ResponseWriter, r *http.Request) {
	var req dto.AddIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := domain.ValidateTransactionName(req.Name); err != nil {
		writeError(w, mapDomainError(err), "invalid transaction name", err.Error())
		return
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		writeError(w, mapDomainError(err), "invalid amount", err.Error())
		return
	}

	tx, err := h.wallet.AddIncome(r.Context(), req.ToLedgerInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add income", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Remove deletes a transaction by ID.
func (h *WalletHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.wallet.Remove(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to remove transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// RemoveAt deletes a transaction by its position in the current log.
// Kept for callers holding positional references; removal by ID is the
// primary path.
func (h *WalletHandler) RemoveAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid position", err.Error())
		return
	}

	tx, err := h.wallet.RemoveAt(r.Context(), index)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to remove transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// Reload rehydrates the wallet from the durable store.
func (h *WalletHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.wallet.Load(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "failed to reload wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromSnapshot(h.wallet.Snapshot()))
}

// Clear erases all wallet data and resets to the default state.
func (h *WalletHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.wallet.Clear(r.Context()); err != nil {
		// In-memory state is already reset; report the storage failure.
		writeError(w, http.StatusServiceUnavailable, "failed to erase stored data", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromSnapshot(h.wallet.Snapshot()))
}
