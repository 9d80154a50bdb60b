package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go-mrz-generator/document"
	"go-mrz-generator/generator"
	"go-mrz-generator/metrics"
	"go-mrz-generator/models"
	"go-mrz-generator/mrz"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ErrorInternal = "error:internal"
const ERR_MARSHAL = "failed to marshal response message"
const ERR_DECODE_REQUEST = "failed to decode generate request"
const ERR_INVALID_COUNT = "invalid record count"
const ERR_GENERATION = "failed to generate batch"
const ERR_BATCH_STORE = "failed to store batch"
const ERR_BATCH_RETRIEVAL = "failed to retrieve batch"
const ERR_BATCH_REMOVAL = "failed to remove batch"

const DefaultMaxBatchSize = 1000

type ServerConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	UseTls         bool   `json:"use_tls,omitempty"`
	TlsPrivKeyPath string `json:"tls_priv_key_path,omitempty"`
	TlsCertPath    string `json:"tls_cert_path,omitempty"`
}

type ServerState struct {
	batchStorage    BatchStorage
	generatorConfig mrz.Config
	workers         int
	maxBatchSize    int
	crossCheck      bool
	metrics         *metrics.Metrics
	gatherer        prometheus.Gatherer
}

type Server struct {
	server *http.Server
	config ServerConfig
}

func (s *Server) ListenAndServe() error {
	if s.config.UseTls {
		slog.Info("Starting server with TLS", "host", s.config.Host, "port", s.config.Port, "cert", s.config.TlsCertPath, "key", s.config.TlsPrivKeyPath)
		return s.server.ListenAndServeTLS(s.config.TlsCertPath, s.config.TlsPrivKeyPath)
	} else {
		slog.Info("Starting server without TLS", "host", s.config.Host, "port", s.config.Port)
		return s.server.ListenAndServe()
	}
}

func (s *Server) Stop() error {
	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("Error during server shutdown", "error", err)
	} else {
		slog.Info("Server shut down successfully")
	}
	return err
}

func NewServer(state *ServerState, config ServerConfig) (*Server, error) {
	if state.batchStorage == nil {
		return nil, fmt.Errorf("server state has no batch storage")
	}
	if state.metrics == nil || state.gatherer == nil {
		return nil, fmt.Errorf("server state has no metrics")
	}
	if state.maxBatchSize <= 0 {
		state.maxBatchSize = DefaultMaxBatchSize
	}

	slog.Info("Creating new server", "host", config.Host, "port", config.Port, "tls", config.UseTls)
	router := NewRouter(state)

	addr := fmt.Sprintf("%v:%v", config.Host, config.Port)
	srv := &http.Server{
		Handler:      router,
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	slog.Info("Server created successfully", "address", addr)
	return &Server{
		server: srv,
		config: config,
	}, nil
}

func NewRouter(state *ServerState) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("Health check request received")
		err := json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		if err != nil {
			slog.Error("failed to write body to http response", "error", err)
		}
	})
	router.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		handleGenerate(state, w, r)
	})
	router.HandleFunc("/api/batches/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetBatch(state, w, r)
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/batches/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteBatch(state, w, r)
	}).Methods(http.MethodDelete)
	router.Handle("/metrics", promhttp.HandlerFor(state.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	slog.Debug("Registered all API routes")
	return router
}

func handleGenerate(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	var request models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", ERR_DECODE_REQUEST, err)
		return
	}

	if request.Count < 1 || request.Count > state.maxBatchSize {
		respondWithErr(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", state.maxBatchSize), ERR_INVALID_COUNT, fmt.Errorf("count: %d", request.Count))
		return
	}

	slog.Info("Received request to generate batch", "count", request.Count, "seed", request.Seed)
	state.metrics.ObserveBatch(request.Count)

	opts := generator.Options{
		Count:   request.Count,
		Workers: state.workers,
		Seed:    request.Seed,
	}
	if state.crossCheck {
		opts.CrossCheck = document.CrossCheck
	}

	result, err := generator.Generate(r.Context(), state.generatorConfig, opts, state.metrics)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_GENERATION, err)
		return
	}

	records := make([]models.GeneratedRecord, len(result.Records))
	for i, rec := range result.Records {
		records[i] = document.ToGeneratedRecord(rec)
	}

	batchId := uuid.NewString()
	if err := state.batchStorage.StoreBatch(batchId, records); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_BATCH_STORE, err)
		return
	}
	state.metrics.IncrementBatchesStored()

	response := models.GenerateResponse{
		BatchId: batchId,
		Seed:    result.Seed,
		Records: records,
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}

	slog.Info("Batch generated successfully", "batch_id", batchId, "count", len(records))
}

func handleGetBatch(state *ServerState, w http.ResponseWriter, r *http.Request) {
	batchId := mux.Vars(r)["id"]
	slog.Debug("Received request to retrieve batch", "batch_id", batchId)

	records, err := state.batchStorage.RetrieveBatch(batchId)
	if errors.Is(err, ErrBatchNotFound) {
		respondWithErr(w, http.StatusNotFound, "batch not found", ERR_BATCH_RETRIEVAL, err)
		return
	}
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_BATCH_RETRIEVAL, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, records); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
	}
}

func handleDeleteBatch(state *ServerState, w http.ResponseWriter, r *http.Request) {
	batchId := mux.Vars(r)["id"]
	slog.Debug("Received request to remove batch", "batch_id", batchId)

	err := state.batchStorage.RemoveBatch(batchId)
	if errors.Is(err, ErrBatchNotFound) {
		respondWithErr(w, http.StatusNotFound, "batch not found", ERR_BATCH_REMOVAL, err)
		return
	}
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_BATCH_REMOVAL, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	slog.Info("Batch removed", "batch_id", batchId)
}

// helpers ------------

func respondWithErr(w http.ResponseWriter, code int, responseBody string, logMsg string, e error) {
	slog.Error(logMsg, "error", e, "status_code", code, "response_body", responseBody)
	w.WriteHeader(code)
	if _, err := w.Write([]byte(responseBody)); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

func closeRequestBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		slog.Error("failed to close request body", "error", err)
	}
}

func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		slog.Debug("Non-POST request rejected", "method", r.Method, "path", r.URL.Path)
		respondWithErr(w, http.StatusMethodNotAllowed, "method not allowed", "invalid method", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	slog.Debug("Writing JSON response", "status_code", status)
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal JSON payload", "error", err)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	if err != nil {
		slog.Error("failed to write body to http response", "error", err)
	} else {
		slog.Debug("JSON response written successfully", "status_code", status, "payload_size", len(payload))
	}
	return nil
}
