package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/depot/internal/domain"
	"github.com/mmcdole/depot/internal/log"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 0, log.NullLogger()), server
}

func TestListModels(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/engine/models", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "llama3:8b", "name": "Llama 3 8B", "family": "llama", "size": "4.7GB",
			 "url": "https://ollama.com/library/llama3", "downloaded": true, "downloading": false},
			{"id": "custom-abc", "name": "", "is_custom": true, "downloaded": true,
			 "downloading": false, "local_path": "/models/custom-abc"}
		]`))
	})
	defer server.Close()

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, "llama3:8b", models[0].ID)
	assert.Equal(t, "Llama 3 8B", models[0].Name)
	assert.Equal(t, "llama", models[0].Family)
	assert.True(t, models[0].Downloaded)

	assert.Equal(t, "custom-abc", models[1].Name, "missing name falls back to id")
	assert.True(t, models[1].IsCustom)
	assert.Equal(t, "/models/custom-abc", models[1].LocalPath)
}

func TestDownloadModelSendsModelID(t *testing.T) {
	var gotBody map[string]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/engine/models/download", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"status": "download_started", "model_id": "llama3:8b"}`))
	})
	defer server.Close()

	require.NoError(t, client.DownloadModel(context.Background(), "llama3:8b"))
	assert.Equal(t, "llama3:8b", gotBody["model_id"])
}

func TestServiceErrorCarriesDetailVerbatim(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "Failed to start download: no space left on device"}`))
	})
	defer server.Close()

	err := client.DownloadModel(context.Background(), "llama3:8b")
	require.Error(t, err)

	var serr *domain.ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.Status)
	assert.Equal(t, "Failed to start download: no space left on device", serr.Detail)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Model not found"}`))
	})
	defer server.Close()

	err := client.DeleteModel(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestTransportFailureMapsToOffline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on
	client := NewClient(server.URL, 0, log.NullLogger())

	_, err := client.ListModels(context.Background())
	assert.ErrorIs(t, err, domain.ErrEngineOffline)
}

func TestHealth(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "ok", "service": "perimeter-engine"}`))
	})
	defer server.Close()

	assert.NoError(t, client.Health(context.Background()))
}

func TestHealthRejectsBadStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "degraded", "service": "perimeter-engine"}`))
	})
	defer server.Close()

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degraded")
}

func TestRegisterModel(t *testing.T) {
	var gotBody map[string]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/engine/models/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"id": "custom-my-model", "name": "My Model", "is_custom": true,
			"downloaded": true, "downloading": false, "local_path": "/models/my-model"}`))
	})
	defer server.Close()

	model, err := client.RegisterModel(context.Background(), "My Model", "/models/my-model", "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "My Model", gotBody["name"])
	assert.Equal(t, "/models/my-model", gotBody["path"])
	assert.Equal(t, "https://example.com", gotBody["url"])

	assert.Equal(t, "custom-my-model", model.ID)
	assert.True(t, model.IsCustom)
	assert.True(t, model.Downloaded)
}

func TestEngineStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/engine/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"engine": "mlx", "config_engine": "auto", "hardware": {"apple_silicon": true, "cuda": false}}`))
	})
	defer server.Close()

	status, err := client.EngineStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mlx", status.Engine)
	assert.Equal(t, "auto", status.ConfigEngine)
	assert.True(t, status.Hardware["apple_silicon"])
	assert.True(t, status.Active())
}
