// Package api exposes the small HTTP surface: health, the highest-scoring
// assets, and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thanesh002/Crypto-Note/internal/alert"
	"github.com/thanesh002/Crypto-Note/internal/scanner"
)

const defaultTopLimit = 20

// Server serves /health, /top and /metrics.
type Server struct {
	store   alert.StateStore
	scanner *scanner.Scanner
	srv     *http.Server
}

// New builds the server. registry may be nil to disable /metrics.
func New(addr string, store alert.StateStore, sc *scanner.Scanner, registry *prometheus.Registry) *Server {
	s := &Server{store: store, scanner: sc}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/top", s.handleTop)
	if registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start serves until Shutdown. Blocks; run in a goroutine.
func (s *Server) Start() {
	log.Printf("[INFO] http api listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("[ERROR] http api: %v", err)
	}
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"scan":   s.scanner.Status(),
	})
}

type topEntry struct {
	Symbol    string    `json:"symbol"`
	Call      string    `json:"signal"`
	Score     float64   `json:"score"`
	UpdatedAt time.Time `json:"last_checked"`
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	states, err := s.store.All(r.Context())
	if err != nil {
		log.Printf("[ERROR] list states for /top: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "store unavailable"})
		return
	}

	sort.Slice(states, func(i, j int) bool { return states[i].LastScore > states[j].LastScore })
	if len(states) > limit {
		states = states[:limit]
	}

	out := make([]topEntry, len(states))
	for i, st := range states {
		out[i] = topEntry{
			Symbol:    st.Symbol,
			Call:      string(st.LastCall),
			Score:     st.LastScore,
			UpdatedAt: st.UpdatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}
