package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter configures all API routes on a fresh router. Every endpoint
// lives under the /api prefix; OPTIONS is routed so the CORS middleware can
// answer preflight requests.
func NewRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(corsMiddleware)
	r.Use(handler.loggingMiddleware)
	r.Use(handler.recoveryMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/stock/{region}/{symbol}", handler.StockQuote).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/historical/{region}/{symbol}", handler.Historical).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/search/{query}", handler.Search).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/indices", handler.Indices).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/analyze/{region}/{symbol}", handler.Analyze).Methods(http.MethodGet, http.MethodOptions)

	return r
}
