// Package mockupstream provides a configurable stand-in for the three
// upstream HTTP APIs the service talks to: the iTick market data API, the
// Twelve Data symbol search API, and an OpenAI-compatible chat API. All
// three hang off one listener so a single base URL configures every client
// under test.
package mockupstream

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/tickerlens/tickerlens/internal/types"
)

// defaultChatContent is a well-formed analysis document so tests that do
// not care about the AI response get a parseable one.
const defaultChatContent = `{
	"trend_analysis": "The stock trades above its tracked moving averages.",
	"volatility_insight": "Volatility is unremarkable for the period.",
	"pattern_recognition": "No standout pattern in the supplied window.",
	"summary": "A steady series with no stress signals.",
	"risk_commentary": "RSI is inside its normal band.",
	"general_observation": "Price sits between the period extremes."
}`

// QuoteFixture is the payload served for one quote symbol.
type QuoteFixture struct {
	LastPrice     float64
	Change        float64
	ChangePercent float64
	Volume        float64
}

// Server is the fake upstream.
type Server struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	token string

	quotes  map[string]QuoteFixture
	klines  map[string]types.PriceSeries
	indices map[string]QuoteFixture
	search  map[string][]types.Instrument

	chatContent string
	chatStatus  int

	requestCounts map[string]int
}

// NewServer creates a mock upstream that accepts the given iTick token.
func NewServer(token string) *Server {
	return &Server{
		token:         token,
		quotes:        make(map[string]QuoteFixture),
		klines:        make(map[string]types.PriceSeries),
		indices:       make(map[string]QuoteFixture),
		search:        make(map[string][]types.Instrument),
		chatContent:   defaultChatContent,
		chatStatus:    http.StatusOK,
		requestCounts: make(map[string]int),
	}
}

// Start begins serving on the given address. Use "127.0.0.1:0" to let the
// OS pick a free port.
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	s.listener = listener

	router := mux.NewRouter()
	router.Use(s.countRequests)
	router.HandleFunc("/stock/quote", s.handleStockQuote).Methods("GET")
	router.HandleFunc("/stock/kline", s.handleKline).Methods("GET")
	router.HandleFunc("/indices/quote", s.handleIndexQuote).Methods("GET")
	router.HandleFunc("/symbol_search", s.handleSymbolSearch).Methods("GET")
	router.HandleFunc("/chat/completions", s.handleChatCompletion).Methods("POST")

	s.httpServer = &http.Server{Handler: router}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// URL returns the base URL clients should be pointed at.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s", s.listener.Addr().String())
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Close()
}

// SetQuote registers the quote served for region:code.
func (s *Server) SetQuote(region, code string, fixture QuoteFixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[fixtureKey(region, code)] = fixture
}

// SetKline registers the candlestick history served for region:code.
func (s *Server) SetKline(region, code string, series types.PriceSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.klines[fixtureKey(region, code)] = series
}

// SetIndex registers the index quote served for region:code.
func (s *Server) SetIndex(region, code string, fixture QuoteFixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indices[fixtureKey(region, code)] = fixture
}

// SetSearchResults registers the instruments returned for a search query.
func (s *Server) SetSearchResults(query string, items []types.Instrument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search[query] = items
}

// SetChatContent replaces the chat completion message content.
func (s *Server) SetChatContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatContent = content
}

// SetChatStatus makes the chat endpoint answer with the given HTTP status.
func (s *Server) SetChatStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatStatus = status
}

// RequestCount returns how many requests hit the given path.
func (s *Server) RequestCount(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.requestCounts[path]
}

func fixtureKey(region, code string) string {
	return region + ":" + code
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestCounts[r.URL.Path]++
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	return r.Header.Get("token") == s.token
}

// envelope is the iTick response wrapper.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusOK, envelope{Code: 40004, Msg: "token invalid", Data: nil})

		return
	}

	code := r.URL.Query().Get("code")

	s.mu.RLock()
	fixture, ok := s.quotes[fixtureKey(r.URL.Query().Get("region"), code)]
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusOK, envelope{Code: 0, Msg: "ok", Data: nil})

		return
	}

	writeJSON(w, http.StatusOK, envelope{Code: 0, Msg: "ok", Data: quotePayload(code, fixture)})
}

func (s *Server) handleKline(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusOK, envelope{Code: 40004, Msg: "token invalid", Data: nil})

		return
	}

	s.mu.RLock()
	series, ok := s.klines[fixtureKey(r.URL.Query().Get("region"), r.URL.Query().Get("code"))]
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusOK, envelope{Code: 0, Msg: "ok", Data: []any{}})

		return
	}

	// iTick serves the most recent limit bars.
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(series) {
		series = series[len(series)-limit:]
	}

	writeJSON(w, http.StatusOK, envelope{Code: 0, Msg: "ok", Data: series})
}

func (s *Server) handleIndexQuote(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusOK, envelope{Code: 40004, Msg: "token invalid", Data: nil})

		return
	}

	code := r.URL.Query().Get("code")

	s.mu.RLock()
	fixture, ok := s.indices[fixtureKey(r.URL.Query().Get("region"), code)]
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusOK, envelope{Code: 0, Msg: "ok", Data: nil})

		return
	}

	writeJSON(w, http.StatusOK, envelope{Code: 0, Msg: "ok", Data: quotePayload(code, fixture)})
}

func (s *Server) handleSymbolSearch(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("apikey") == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "error",
			"code":    401,
			"message": "api key missing",
		})

		return
	}

	s.mu.RLock()
	items := s.search[r.URL.Query().Get("symbol")]
	s.mu.RUnlock()

	if items == nil {
		items = []types.Instrument{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": items, "status": "ok"})
}

func (s *Server) handleChatCompletion(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := s.chatStatus
	content := s.chatContent
	s.mu.RUnlock()

	if status != http.StatusOK {
		writeJSON(w, status, map[string]any{
			"error": map[string]any{"message": "mock upstream failure", "type": "server_error"},
		})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      "chatcmpl-mock",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "deepseek-chat",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{"prompt_tokens": 250, "completion_tokens": 120, "total_tokens": 370},
	})
}

func quotePayload(symbol string, fixture QuoteFixture) map[string]any {
	return map[string]any{
		"s":   symbol,
		"ld":  fixture.LastPrice,
		"ch":  fixture.Change,
		"chp": fixture.ChangePercent,
		"v":   fixture.Volume,
		"t":   1700000000000,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
