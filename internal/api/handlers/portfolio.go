package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/niveshlabs/quantmomentum/internal/calendar"
	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/internal/selection"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// PortfolioHandler serves persisted portfolio snapshots.
type PortfolioHandler struct {
	portfolios contracts.PortfolioRepository
	schedule   calendar.Schedule
	logger     *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(portfolios contracts.PortfolioRepository, schedule calendar.Schedule, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolios: portfolios,
		schedule:   schedule,
		logger:     log,
	}
}

// GetLatest returns the most recent portfolio snapshot.
// GET /api/portfolio/latest
func (h *PortfolioHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolios.GetLatest(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get latest portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve portfolio")
		return
	}
	if portfolio == nil {
		respondError(w, http.StatusNotFound, "No portfolio snapshot exists")
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// GetByDate returns the portfolio snapshot at a date.
// GET /api/portfolio/{date}
func (h *PortfolioHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	portfolio, err := h.portfolios.GetByDate(r.Context(), date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get portfolio by date")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve portfolio")
		return
	}
	if portfolio == nil {
		respondError(w, http.StatusNotFound, "No snapshot at "+dateStr)
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// TurnoverResponse pairs the snapshot dates with their diff.
type TurnoverResponse struct {
	PreviousDate string             `json:"previous_date,omitempty"`
	CurrentDate  string             `json:"current_date"`
	Turnover     selection.Turnover `json:"turnover"`
}

// GetTurnover returns the diff between the two most recent snapshots.
// GET /api/turnover
func (h *PortfolioHandler) GetTurnover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, err := h.portfolios.GetLatest(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get latest portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve portfolio")
		return
	}
	if current == nil {
		respondError(w, http.StatusNotFound, "No portfolio snapshot exists")
		return
	}

	// The previous snapshot is the latest one strictly before the
	// current date; probe backwards through the rebalance schedule.
	previous, err := h.previousSnapshot(r, current.Date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get previous portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve portfolio")
		return
	}

	resp := TurnoverResponse{
		CurrentDate: current.Date.Format("2006-01-02"),
		Turnover:    selection.ComputeTurnover(previous, current),
	}
	if previous != nil {
		resp.PreviousDate = previous.Date.Format("2006-01-02")
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *PortfolioHandler) previousSnapshot(r *http.Request, before time.Time) (*contracts.Portfolio, error) {
	// Snapshots land on scheduled rebalance dates, so walking the past
	// year of dates in reverse finds the predecessor if one exists.
	dates := h.schedule.Dates(before.AddDate(-1, 0, 0), before.AddDate(0, 0, -1))
	for i := len(dates) - 1; i >= 0; i-- {
		portfolio, err := h.portfolios.GetByDate(r.Context(), dates[i])
		if err != nil {
			return nil, err
		}
		if portfolio != nil {
			return portfolio, nil
		}
	}
	return nil, nil
}
