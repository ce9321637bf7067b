// Package api exposes the service over HTTP: proxy endpoints for quotes,
// candlestick history, symbol search, and market indices, plus the
// AI-assisted analysis endpoint that orchestrates all of them.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/tickerlens/tickerlens/internal/ai"
	"github.com/tickerlens/tickerlens/internal/indicator"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/market"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
)

// Handler holds the dependencies behind the HTTP endpoints. The search and
// analyst fields may be nil when their API keys are not configured; the
// corresponding endpoints then answer 503.
type Handler struct {
	provider market.DataProvider
	search   market.SearchProvider
	analyst  ai.Analyst
	engine   *indicator.Engine
	version  string
	logger   *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(
	provider market.DataProvider,
	search market.SearchProvider,
	analyst ai.Analyst,
	engine *indicator.Engine,
	version string,
	l *logger.Logger,
) *Handler {
	return &Handler{
		provider: provider,
		search:   search,
		analyst:  analyst,
		engine:   engine,
		version:  version,
		logger:   l.Named("api"),
	}
}

var usageExamples = []string{
	"GET /api/stock/<region>/<symbol> (e.g., /api/stock/US/AAPL)",
	"GET /api/historical/<region>/<symbol> (e.g., /api/historical/US/AAPL?kType=8&limit=100)",
	"GET /api/search/<query> (e.g., /api/search/AAPL)",
	"GET /api/indices",
	"GET /api/analyze/<region>/<symbol> (e.g., /api/analyze/US/AAPL)",
}

type healthResponse struct {
	Message          string   `json:"message"`
	Status           string   `json:"status"`
	Version          string   `json:"version"`
	SupportedMarkets []string `json:"supported_markets"`
	Usage            []string `json:"usage"`
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Message:          "Stock Data API Backend is running.",
		Status:           "ok",
		Version:          h.version,
		SupportedMarkets: []string{"US"},
		Usage:            usageExamples,
	})
}

type quoteResponse struct {
	Status string          `json:"status"`
	Region string          `json:"region"`
	Symbol string          `json:"symbol"`
	Data   json.RawMessage `json:"data"`
}

// StockQuote handles GET /api/stock/{region}/{symbol}. The provider's data
// payload is passed through verbatim.
func (h *Handler) StockQuote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	region, symbol := vars["region"], vars["symbol"]

	quote, err := h.provider.StockQuote(r.Context(), region, symbol)
	if err != nil {
		h.logError(r, "quote fetch failed", err)

		switch errors.GetCode(err) {
		case errors.ErrCodeNoData:
			body := newErrorBody(fmt.Sprintf("No data available for %s:%s.", region, symbol))
			body.Code = "NO_DATA"
			respondJSON(w, http.StatusNotFound, body)
		case errors.ErrCodeUpstreamRejected:
			respondJSON(w, http.StatusBadRequest, rejectionBody(err))
		case errors.ErrCodeUpstreamTimeout:
			respondJSON(w, http.StatusGatewayTimeout, newErrorBody("Request to data provider timed out."))
		case errors.ErrCodeUpstreamUnreachable:
			respondJSON(w, http.StatusBadGateway, newErrorBody("Failed to fetch data: "+causeMessage(err)))
		default:
			respondJSON(w, http.StatusInternalServerError, newErrorBody("An unexpected server error occurred."))
		}

		return
	}

	respondJSON(w, http.StatusOK, quoteResponse{
		Status: "success",
		Region: region,
		Symbol: symbol,
		Data:   quote.Raw,
	})
}

type klineResponse struct {
	Status   string          `json:"status"`
	Region   string          `json:"region"`
	Symbol   string          `json:"symbol"`
	Interval string          `json:"interval"`
	Data     json.RawMessage `json:"data"`
}

// Historical handles GET /api/historical/{region}/{symbol}?kType=&limit=.
// Defaults are daily bars and 100 candles.
func (h *Handler) Historical(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	region, symbol := vars["region"], vars["symbol"]

	query := types.NewKlineQuery(region, symbol)
	if kType := r.URL.Query().Get("kType"); kType != "" {
		query.KType = types.KlineType(kType)
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respondJSON(w, http.StatusBadRequest,
				newErrorBody(fmt.Sprintf("Invalid limit parameter: %q. Expected a positive integer.", raw)))

			return
		}

		query.Limit = limit
	}

	batch, err := h.provider.Kline(r.Context(), query)
	if err != nil {
		h.logError(r, "kline fetch failed", err)

		switch errors.GetCode(err) {
		case errors.ErrCodeNoData, errors.ErrCodeNoHistoricalData:
			body := newErrorBody(fmt.Sprintf("No historical data available for %s:%s.", region, symbol))
			body.Code = "NO_HISTORICAL_DATA"
			respondJSON(w, http.StatusNotFound, body)
		case errors.ErrCodeUpstreamRejected:
			respondJSON(w, http.StatusBadRequest, rejectionBody(err))
		case errors.ErrCodeUpstreamTimeout:
			respondJSON(w, http.StatusGatewayTimeout, newErrorBody("Request to data provider timed out."))
		case errors.ErrCodeUpstreamUnreachable:
			respondJSON(w, http.StatusBadGateway, newErrorBody("Failed to fetch historical data: "+causeMessage(err)))
		default:
			respondJSON(w, http.StatusInternalServerError,
				newErrorBody("An unexpected server error occurred: "+causeMessage(err)))
		}

		return
	}

	respondJSON(w, http.StatusOK, klineResponse{
		Status:   "success",
		Region:   region,
		Symbol:   symbol,
		Interval: string(query.KType),
		Data:     batch.Raw,
	})
}

type searchResponse struct {
	Status  string             `json:"status"`
	Data    []types.Instrument `json:"data"`
	Message string             `json:"message"`
}

// Search handles GET /api/search/{query}, returning at most eight
// US-listed instruments.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	if h.search == nil {
		respondJSON(w, http.StatusServiceUnavailable, newErrorBody("Search API key not configured."))

		return
	}

	instruments, err := h.search.SymbolSearch(r.Context(), query)
	if err != nil {
		h.logError(r, "symbol search failed", err)

		switch errors.GetCode(err) {
		case errors.ErrCodeUpstreamRejected:
			respondJSON(w, http.StatusBadRequest, rejectionBody(err))
		case errors.ErrCodeUpstreamTimeout:
			respondJSON(w, http.StatusGatewayTimeout, newErrorBody("Request to data provider timed out."))
		case errors.ErrCodeUpstreamUnreachable:
			respondJSON(w, http.StatusBadGateway, newErrorBody("Search failed: "+causeMessage(err)))
		default:
			respondJSON(w, http.StatusInternalServerError, newErrorBody("Unexpected error: "+causeMessage(err)))
		}

		return
	}

	filtered := market.FilterUSInstruments(instruments)

	message := fmt.Sprintf("Found %d US stocks matching '%s'", len(filtered), query)
	if len(filtered) == 0 {
		message = fmt.Sprintf("No US stocks found for '%s'", query)
	}

	respondJSON(w, http.StatusOK, searchResponse{
		Status:  "success",
		Data:    filtered,
		Message: message,
	})
}

type indicesResponse struct {
	Status  string             `json:"status"`
	Data    []types.IndexEntry `json:"data"`
	Message string             `json:"message"`
}

// Indices handles GET /api/indices. Indices that fail to fetch are simply
// omitted, so the response is 200 even when every fetch failed.
func (h *Handler) Indices(w http.ResponseWriter, r *http.Request) {
	entries := market.FetchIndices(r.Context(), h.provider, h.logger)

	respondJSON(w, http.StatusOK, indicesResponse{
		Status:  "success",
		Data:    entries,
		Message: fmt.Sprintf("Found %d available index(es)", len(entries)),
	})
}

type analyzeResponse struct {
	Status              string                `json:"status"`
	Symbol              string                `json:"symbol"`
	Region              string                `json:"region"`
	TechnicalIndicators types.AnalysisContext `json:"technical_indicators"`
	AIAnalysis          types.AIAnalysis      `json:"ai_analysis"`
	Timestamp           string                `json:"timestamp"`
}

// Analyze handles GET /api/analyze/{region}/{symbol}: quote, then history,
// then indicators, then the AI call, strictly in that order so each failure
// maps to a distinct client-facing message.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	region, symbol := vars["region"], vars["symbol"]

	if h.analyst == nil {
		respondJSON(w, http.StatusServiceUnavailable,
			newErrorBody("AI analysis service is not configured. Check your DEEPSEEK_API_KEY in .env file."))

		return
	}

	h.logger.Info("analysis requested",
		zap.String("region", region),
		zap.String("symbol", symbol),
		zap.String("request_id", RequestIDFrom(r.Context())),
	)

	quote, err := h.provider.StockQuote(r.Context(), region, symbol)
	if err != nil && errors.GetCode(err) != errors.ErrCodeNoData {
		h.logError(r, "analysis quote fetch failed", err)

		switch errors.GetCode(err) {
		case errors.ErrCodeUpstreamRejected:
			message := "Unknown error"
			if rejection, ok := errors.AsUpstreamRejection(err); ok && rejection.Message != "" {
				message = rejection.Message
			}

			respondJSON(w, http.StatusBadRequest,
				newErrorBody(fmt.Sprintf("Could not fetch real-time data for %s: %s", symbol, message)))
		case errors.ErrCodeUpstreamTimeout:
			respondJSON(w, http.StatusGatewayTimeout, newErrorBody("Request to data provider timed out."))
		case errors.ErrCodeUpstreamUnreachable:
			respondJSON(w, http.StatusBadGateway, newErrorBody("Failed to fetch real-time data: "+causeMessage(err)))
		default:
			respondJSON(w, http.StatusInternalServerError, newErrorBody("An unexpected server error occurred."))
		}

		return
	}

	// A quote without a last trade price cannot anchor the indicators.
	if err != nil || !quote.HasLastPrice() {
		respondJSON(w, http.StatusNotFound,
			newErrorBody(fmt.Sprintf("No current price available for %s", symbol)))

		return
	}

	batch, err := h.provider.Kline(r.Context(), types.NewKlineQuery(region, symbol))
	if err != nil {
		h.logError(r, "analysis kline fetch failed", err)

		switch errors.GetCode(err) {
		case errors.ErrCodeNoData, errors.ErrCodeNoHistoricalData:
			respondJSON(w, http.StatusNotFound,
				newErrorBody(fmt.Sprintf("No historical data available for %s", symbol)))
		case errors.ErrCodeUpstreamRejected:
			respondJSON(w, http.StatusBadRequest,
				newErrorBody(fmt.Sprintf("Could not fetch historical data for %s", symbol)))
		case errors.ErrCodeUpstreamTimeout:
			respondJSON(w, http.StatusGatewayTimeout, newErrorBody("Request to data provider timed out."))
		case errors.ErrCodeUpstreamUnreachable:
			respondJSON(w, http.StatusBadGateway, newErrorBody("Failed to fetch historical data: "+causeMessage(err)))
		default:
			respondJSON(w, http.StatusInternalServerError, newErrorBody("An unexpected server error occurred."))
		}

		return
	}

	set, err := h.engine.Compute(batch.Bars, optional.Some(quote.LastPrice.Float64()))
	if err != nil {
		h.logError(r, "indicator computation failed", err)
		respondJSON(w, http.StatusInternalServerError,
			newErrorBody(fmt.Sprintf("Failed to calculate technical indicators for %s", symbol)))

		return
	}

	analysisCtx := buildAnalysisContext(region, symbol, quote, set)

	analysis, err := h.analyst.Analyze(r.Context(), analysisCtx)
	if err != nil {
		h.logError(r, "AI analysis failed", err)

		if errors.HasCode(err, errors.ErrCodeAIResponseInvalid) {
			body := newErrorBody("AI returned invalid JSON format")
			if invalid, ok := errors.AsInvalidAIResponse(err); ok {
				body.RawResponse = invalid.Raw
			}

			respondJSON(w, http.StatusInternalServerError, body)

			return
		}

		respondJSON(w, http.StatusInternalServerError, newErrorBody("AI analysis failed: "+causeMessage(err)))

		return
	}

	respondJSON(w, http.StatusOK, analyzeResponse{
		Status:              "success",
		Symbol:              symbol,
		Region:              region,
		TechnicalIndicators: analysisCtx,
		AIAnalysis:          analysis,
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
	})
}

// buildAnalysisContext merges the quote and the computed indicators into
// the document handed to the analyst and echoed back to the client.
func buildAnalysisContext(region, symbol string, quote types.Quote, set types.IndicatorSet) types.AnalysisContext {
	return types.AnalysisContext{
		Symbol:               symbol,
		Region:               region,
		CurrentPrice:         set.CurrentPrice,
		PriceChange:          quote.Change.OrZero(),
		PriceChangePercent:   quote.ChangePercent.OrZero(),
		MovingAverage20:      set.MA20,
		MovingAverage50:      set.MA50,
		MovingAverage200:     set.MA200,
		PositionVsMA50:       set.VsMA50,
		PositionVsMA200:      set.VsMA200,
		RSI:                  set.RSI,
		VolatilityAnnualized: set.Volatility30D,
		High52Week:           set.High52W,
		Low52Week:            set.Low52W,
		Volume:               quote.Volume.OrZero(),
		AnalysisTimestamp:    time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *Handler) logError(r *http.Request, message string, err error) {
	h.logger.Warn(message,
		zap.String("path", r.URL.Path),
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.Error(err),
	)
}
