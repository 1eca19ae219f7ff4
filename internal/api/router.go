package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/niveshlabs/quantmomentum/internal/api/handlers"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	portfolioHandler *handlers.PortfolioHandler,
	calendarHandler *handlers.CalendarHandler,
	backtestHandler *handlers.BacktestHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Portfolio endpoints
	api.HandleFunc("/portfolio/latest", portfolioHandler.GetLatest).Methods("GET")
	api.HandleFunc("/portfolio/{date}", portfolioHandler.GetByDate).Methods("GET")
	api.HandleFunc("/turnover", portfolioHandler.GetTurnover).Methods("GET")

	// Calendar endpoints
	api.HandleFunc("/calendar/rebalances", calendarHandler.GetRebalances).Methods("GET")
	api.HandleFunc("/calendar/next", calendarHandler.GetNext).Methods("GET")

	// Backtest endpoints
	api.HandleFunc("/backtest/{run_id}", backtestHandler.GetSummary).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "quantmomentum-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from handler panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
