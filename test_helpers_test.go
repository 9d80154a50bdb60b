package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"go-mrz-generator/metrics"
	"go-mrz-generator/models"
	"go-mrz-generator/mrz"
	"go-mrz-generator/vocab"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8081"

var testConfig = ServerConfig{
	Host:           "localhost",
	Port:           8081,
	UseTls:         false,
	TlsCertPath:    "",
	TlsPrivKeyPath: "",
}

func newTestState(storage BatchStorage) *ServerState {
	registry := prometheus.NewRegistry()
	return &ServerState{
		batchStorage:    storage,
		generatorConfig: mrz.DefaultConfig(vocab.Default()),
		workers:         2,
		maxBatchSize:    50,
		crossCheck:      false,
		metrics:         metrics.New(registry),
		gatherer:        registry,
	}
}

func startTestServer(t *testing.T, storage BatchStorage) *Server {
	t.Helper()

	srv, err := NewServer(newTestState(storage), testConfig)
	require.NoError(t, err)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("server error: %v", err)
		}
	}()

	waitUntilHealthy(t, testBaseURL+"/api/health")
	t.Cleanup(func() {
		if err := srv.Stop(); err != nil {
			t.Logf("error shutting down server: %v", err)
		}
	})
	return srv
}

func waitUntilHealthy(t *testing.T, url string) {
	t.Helper()
	const maxAttempts = 50
	for i := 0; i < maxAttempts; i++ {
		if resp, err := http.Get(url); err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server did not start in time")
}

func postJSON[T any](t *testing.T, url string, payload any) (*http.Response, []byte, *T) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	resp, err := http.Post(url, "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v T
	_ = json.Unmarshal(respBody, &v)
	return resp, respBody, &v
}

func doRequest(t *testing.T, method, url string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func mustStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equalf(t, want, resp.StatusCode, "body: %s", body)
}

func generateBatch(t *testing.T, count int, seed uint64) models.GenerateResponse {
	t.Helper()
	resp, body, gr := postJSON[models.GenerateResponse](t, testBaseURL+"/api/generate", models.GenerateRequest{Count: count, Seed: seed})
	mustStatus(t, resp, http.StatusOK, body)
	require.NotEmpty(t, gr.BatchId)
	return *gr
}

// test doubles

type failingStorage struct{}

func (failingStorage) StoreBatch(string, []models.GeneratedRecord) error {
	return errors.New("storage unavailable")
}

func (failingStorage) RetrieveBatch(string) ([]models.GeneratedRecord, error) {
	return nil, errors.New("storage unavailable")
}

func (failingStorage) RemoveBatch(string) error {
	return errors.New("storage unavailable")
}
