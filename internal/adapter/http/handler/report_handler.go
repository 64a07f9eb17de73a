package handler

import (
	"net/http"

	"github.com/codehasanali/mywallet/internal/adapter/http/dto"
	"github.com/codehasanali/mywallet/internal/ledger"
	"github.com/codehasanali/mywallet/internal/report"
)

// ReportService provides the transaction log for aggregation.
type ReportService interface {
	Snapshot() ledger.Snapshot
}

// ReportHandler handles history report requests.
type ReportHandler struct {
	wallet ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(wallet ReportService) *ReportHandler {
	return &ReportHandler{wallet: wallet}
}

// History returns the transaction log bucketed by period.
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("granularity")
	if raw == "" {
		raw = string(report.Daily)
	}

	granularity, err := report.ParseGranularity(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid granularity", err.Error())
		return
	}

	snap := h.wallet.Snapshot()
	buckets := report.GroupByPeriod(snap.Transactions, granularity)

	writeJSON(w, http.StatusOK, dto.HistoryFromBuckets(granularity, buckets))
}
