// Package cms reads blog content from the Sanity HTTP query API.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("document not found")

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	// BaseURL overrides the derived API host.
	BaseURL string
}

// Client is a read-only Sanity client.
type Client struct {
	http      *http.Client
	baseURL   string
	projectID string
	dataset   string
	logger    *zap.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("sanity project id is required")
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2026-02-25"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := cfg.BaseURL
	if base == "" {
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}
	base = strings.TrimSuffix(base, "/") + "/v" + strings.TrimPrefix(cfg.APIVersion, "v") + "/data/query/" + cfg.Dataset

	return &Client{
		http:      httpClient,
		baseURL:   base,
		projectID: cfg.ProjectID,
		dataset:   cfg.Dataset,
		logger:    logger,
	}, nil
}

// QueryError is a non-2xx answer from the query API.
type QueryError struct {
	Status      int
	Type        string
	Description string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("sanity query failed (%d %s): %s", e.Status, e.Type, e.Description)
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

type errorResponse struct {
	Error struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"error"`
}

// Query runs a GROQ query and decodes the result into out. Parameters are
// sent as JSON-encoded $name query values. A null result yields ErrNotFound.
func (c *Client) Query(ctx context.Context, query string, params map[string]any, out any) error {
	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(data))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build sanity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("failed to read sanity response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		qerr := &QueryError{Status: resp.StatusCode, Description: http.StatusText(resp.StatusCode)}
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error.Description != "" {
			qerr.Type = er.Error.Type
			qerr.Description = er.Error.Description
		}
		return qerr
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return fmt.Errorf("failed to decode sanity response: %w", err)
	}
	if len(qr.Result) == 0 || string(qr.Result) == "null" {
		return ErrNotFound
	}

	c.logger.Debug("sanity query", zap.Int("ms", qr.Ms), zap.Int("bytes", len(qr.Result)))

	if err := json.Unmarshal(qr.Result, out); err != nil {
		return fmt.Errorf("failed to decode sanity result: %w", err)
	}
	return nil
}

// ImageURL builds a CDN URL from an asset reference of the form
// image-<id>-<width>x<height>-<format>. Malformed references yield "".
func (c *Client) ImageURL(ref string, width int) string {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return ""
	}
	if width <= 0 {
		width = 800
	}
	id, dimensions, format := parts[1], parts[2], parts[3]
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s?w=%d&auto=format",
		c.projectID, c.dataset, id, dimensions, format, width)
}
