package handlers

import (
	"net/http"
	"time"

	"github.com/niveshlabs/quantmomentum/internal/calendar"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// CalendarHandler serves the rebalance schedule.
type CalendarHandler struct {
	schedule calendar.Schedule
	logger   *logger.Logger
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(schedule calendar.Schedule, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{schedule: schedule, logger: log}
}

// GetRebalances returns the rebalance dates within ?from=&to=
// (YYYY-MM-DD, default: the current year).
// GET /api/calendar/rebalances
func (h *CalendarHandler) GetRebalances(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if s := r.URL.Query().Get("from"); s != "" {
		if from, err = time.Parse("2006-01-02", s); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if to, err = time.Parse("2006-01-02", s); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
	}

	dates := h.schedule.Dates(from, to)
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"from":       from.Format("2006-01-02"),
		"to":         to.Format("2006-01-02"),
		"rebalances": formatted,
	})
}

// GetNext returns the next rebalance date after today.
// GET /api/calendar/next
func (h *CalendarHandler) GetNext(w http.ResponseWriter, r *http.Request) {
	next := h.schedule.Next(time.Now().UTC())
	respondJSON(w, http.StatusOK, map[string]string{
		"next_rebalance": next.Format("2006-01-02"),
	})
}
