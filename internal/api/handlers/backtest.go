package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/niveshlabs/quantmomentum/internal/backtest"
	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// BacktestHandler serves persisted backtest runs. Summaries are
// recomputed from the trade log on every request.
type BacktestHandler struct {
	trades contracts.TradeRepository
	logger *logger.Logger
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(trades contracts.TradeRepository, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{
		trades: trades,
		logger: log,
	}
}

// RunSummaryResponse pairs a run with its recomputed statistics.
type RunSummaryResponse struct {
	RunID      string                     `json:"run_id"`
	TradeCount int                        `json:"trade_count"`
	Summary    *contracts.BacktestSummary `json:"summary"`
}

// GetSummary returns the summary statistics of a saved backtest run.
// GET /api/backtest/{run_id}
func (h *BacktestHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["run_id"]

	trades, err := h.trades.GetByRun(r.Context(), runID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load backtest run")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve run")
		return
	}

	summary, err := backtest.Summarize(trades)
	if errors.Is(err, contracts.ErrNoTrades) {
		respondError(w, http.StatusNotFound, "No trades recorded for run "+runID)
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to summarize backtest run")
		respondError(w, http.StatusInternalServerError, "Failed to summarize run")
		return
	}

	respondJSON(w, http.StatusOK, RunSummaryResponse{
		RunID:      runID,
		TradeCount: len(trades),
		Summary:    summary,
	})
}
