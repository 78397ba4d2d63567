// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package service is the client side of the remote conversion service.
// A conversion is one multipart POST carrying a single file and the target
// format tag; the response is either the converted payload or a JSON
// {"error": "..."} body with a non-success status.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/extract-client/internal/httputil"
	"github.com/pdiddy/extract-client/pkg/types"
)

const (
	convertPath = "/api/convert"
	healthPath  = "/api/health"

	// DefaultBaseURL is used when ServiceConfig.BaseURL is empty.
	DefaultBaseURL = "http://localhost:5000"

	// fallbackMessage is reported when an error response carries no
	// readable "error" field.
	fallbackMessage = "Conversion failed"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// ConversionError is a non-success response from the conversion service.
type ConversionError struct {
	StatusCode int
	Message    string
}

func (e *ConversionError) Error() string {
	return e.Message
}

// Client submits files to the conversion service.
type Client struct {
	http       *http.Client
	cfg        types.ServiceConfig
	convertURL string
	healthURL  string
}

// NewClient returns a Client for cfg. If httpClient is nil one is built
// from cfg.HTTPConfig.
func NewClient(httpClient *http.Client, cfg types.ServiceConfig) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing service URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("service URL %q: scheme must be http or https", cfg.BaseURL)
	}
	if httpClient == nil {
		httpClient = httputil.NewClient(cfg.HTTPConfig)
	}
	return &Client{
		http:       httpClient,
		cfg:        cfg,
		convertURL: base + convertPath,
		healthURL:  base + healthPath,
	}, nil
}

// Convert submits f with the given format and returns the converted payload.
// A non-success status yields a *ConversionError; transport failures are
// wrapped and returned as-is. Conversions are never retried.
func (c *Client) Convert(ctx context.Context, f types.File, format types.Format) ([]byte, error) {
	body, contentType, err := encodeForm(f, format)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.convertURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

// HealthStatus is the body of the service health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health probes the service health endpoint, retrying on 429 and 503.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.HealthRetries)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, fmt.Errorf("health check returned HTTP %d", resp.StatusCode)
	}

	var hs HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("parsing health response: %w", err)
	}
	return hs, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}
}

// encodeForm builds the multipart body with the "file" and "format" fields.
func encodeForm(f types.File, format types.Format) (io.Reader, string, error) {
	src, err := f.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", f.Name)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", f.Name, err)
	}
	if err := mw.WriteField("format", string(format)); err != nil {
		return nil, "", fmt.Errorf("writing format field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// decodeError turns a non-success response into a *ConversionError, using
// the "error" field when present.
func decodeError(resp *http.Response) error {
	msg := fallbackMessage
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && strings.TrimSpace(payload.Error) != "" {
			msg = payload.Error
		}
	}
	return &ConversionError{StatusCode: resp.StatusCode, Message: msg}
}
