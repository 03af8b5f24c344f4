// Package backend implements the HTTP client for the local fine-tuning
// engine service. The client is stateless transport: no retries, no
// coordination, no caching.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/depot/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Depot/1.0"
)

// Client implements domain.EngineClient against the engine's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new engine API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a JSON request against the engine.
// Transport failures map to domain.ErrEngineOffline; non-2xx responses map
// to domain.ErrModelNotFound (404) or *domain.ServiceError with the
// engine's detail string.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("engine request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("engine request failed", "error", err, "path", path)
		return nil, domain.ErrEngineOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrModelNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("engine request error", "status", resp.StatusCode, "body", string(body))
		var envelope errorPayload
		_ = json.Unmarshal(body, &envelope)
		return nil, &domain.ServiceError{Status: resp.StatusCode, Detail: envelope.Detail}
	}

	return body, nil
}

// Health checks engine availability via GET /health.
func (c *Client) Health(ctx context.Context) error {
	body, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	var health healthPayload
	if err := json.Unmarshal(body, &health); err != nil {
		return fmt.Errorf("failed to parse health response: %w", err)
	}
	if health.Status != "ok" {
		return &domain.ServiceError{Status: http.StatusOK, Detail: "engine reported status " + health.Status}
	}
	return nil
}

// EngineStatus fetches the active engine and hardware capabilities.
func (c *Client) EngineStatus(ctx context.Context) (domain.EngineStatus, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/engine/status", nil)
	if err != nil {
		return domain.EngineStatus{}, err
	}

	var status statusPayload
	if err := json.Unmarshal(body, &status); err != nil {
		return domain.EngineStatus{}, fmt.Errorf("failed to parse status response: %w", err)
	}
	return mapStatus(status), nil
}

// ListModels returns the full inventory snapshot.
func (c *Client) ListModels(ctx context.Context) ([]domain.Model, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/engine/models", nil)
	if err != nil {
		return nil, err
	}

	var payloads []modelPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse models response: %w", err)
	}
	return MapModels(payloads), nil
}

// DownloadModel asks the engine to begin a background download.
// The engine acknowledges acceptance; completion is observed via ListModels.
func (c *Client) DownloadModel(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/engine/models/download", downloadRequest{ModelID: id})
	return err
}

// DeleteModel removes a downloaded model's artifacts.
func (c *Client) DeleteModel(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/engine/models/delete", downloadRequest{ModelID: id})
	return err
}

// RegisterModel adds a custom model pointing at a local artifact directory.
func (c *Client) RegisterModel(ctx context.Context, name, path, referenceURL string) (domain.Model, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/engine/models/register", registerRequest{
		Name: name,
		Path: path,
		URL:  referenceURL,
	})
	if err != nil {
		return domain.Model{}, err
	}

	var payload modelPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Model{}, fmt.Errorf("failed to parse register response: %w", err)
	}
	return mapModel(payload), nil
}
