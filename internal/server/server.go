package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/rateshop/internal/telemetry"
	"github.com/tournevent/rateshop/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server exposing the rate orchestrator.
type Server struct {
	port         int
	orchestrator *carrier.Orchestrator
	logger       *otelzap.Logger
	metrics      *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, orchestrator *carrier.Orchestrator, logger *otelzap.Logger) *Server {
	return &Server{
		port:         cfg.Port,
		orchestrator: orchestrator,
		logger:       logger,
		metrics:      telemetry.NewMetrics(),
	}
}

// Handler returns the HTTP handler; exposed separately from Run for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/v1/rates", s.handleRates)
	mux.HandleFunc("/v1/carriers", s.handleCarriers)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed, use GET")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"carriers": s.orchestrator.Names()})
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var dto rateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	requestID := uuid.New().String()
	start := time.Now()
	selection := dto.Carrier
	if selection == "" {
		selection = "all"
	}

	req := dto.toDomain()
	responses, err := s.orchestrator.GetRate(r.Context(), req, dto.Carrier)
	duration := time.Since(start).Seconds()

	if err != nil {
		kind := carrier.KindOf(err)
		s.metrics.RecordRequest(selection, "error", duration)
		s.metrics.RecordError(selection, string(kind))
		s.logger.Warn("Rate request failed",
			zap.String("request_id", requestID),
			zap.String("carrier", selection),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		writeError(w, statusForKind(kind), err.Error())
		return
	}

	s.metrics.RecordRequest(selection, "ok", duration)
	s.logger.Info("Rate request served",
		zap.String("request_id", requestID),
		zap.String("carrier", selection),
		zap.Int("responses", len(responses)),
		zap.Float64("duration_seconds", duration),
	)

	out := make([]rateResponseDTO, len(responses))
	for i, resp := range responses {
		out[i] = toResponseDTO(resp)
	}
	writeJSON(w, http.StatusOK, map[string]any{"responses": out})
}

// statusForKind maps the carrier error taxonomy onto HTTP statuses: bad
// input is the caller's fault, auth and rate failures are upstream faults,
// network failures are gateway timeouts.
func statusForKind(kind carrier.Kind) int {
	switch kind {
	case carrier.KindValidation:
		return http.StatusBadRequest
	case carrier.KindNetwork:
		return http.StatusGatewayTimeout
	case carrier.KindAuth, carrier.KindRate:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
