// Package api is the typed client for the Momentum REST backend. Every call
// carries the session bearer token; responses use the backend's
// {status, data, message} envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL matches the backend's development default.
const DefaultBaseURL = "http://localhost:5000"

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *log.Logger
}

func New(baseURL, token string, logger *log.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do executes one request and decodes the envelope's data into out (when out
// is non-nil). A non-2xx response or a non-success envelope status maps to
// StatusError; a failure to get any response maps to TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", method, "path", path, "code", resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportError{Op: method + " " + path, Err: err}
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the envelope stays zero and the
		// status-code checks below still apply.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StatusError{Code: resp.StatusCode, Status: env.Status, Message: env.Message}
	}
	if env.Status != "" && env.Status != "success" && env.Status != "ok" {
		return StatusError{Code: resp.StatusCode, Status: env.Status, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return err
		}
	}
	return nil
}

// idData is the create-response payload: the server-assigned id.
type idData struct {
	ID string `json:"ID"`
}
