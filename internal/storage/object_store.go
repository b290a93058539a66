// Package storage provides a client for the hosted object store
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Entry is a single object or folder returned by a storage listing
type Entry struct {
	Name string `json:"name"`
}

// ObjectStore defines the storage operations the asset resolver needs.
// Public URLs are derived locally; signed URLs and listings hit the
// store's REST API.
type ObjectStore interface {
	// PublicURL returns the canonical public URL for an object. It does
	// not verify that the object exists.
	PublicURL(bucket, path string) string

	// SignedURL creates a time-limited URL for a private object.
	SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error)

	// List returns the entries under a prefix. An empty prefix lists the
	// bucket's top-level folders and objects.
	List(ctx context.Context, bucket, prefix string) ([]Entry, error)

	// Exists reports whether an object is publicly reachable.
	Exists(ctx context.Context, bucket, path string) (bool, error)
}

// Client talks to the hosted store's storage REST API
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	probeTimeout time.Duration
	logger       *zap.Logger
}

// NewClient creates a new object store client
func NewClient(baseURL, apiKey string, probeTimeout time.Duration, logger *zap.Logger) *Client {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: probeTimeout},
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

// PublicURL returns the canonical public URL for an object
func (c *Client) PublicURL(bucket, path string) string {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, url.PathEscape(bucket), escapePath(path))
}

// SignedURL creates a time-limited URL for a private object
func (c *Client) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	endpoint := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, url.PathEscape(bucket), escapePath(path))

	body, err := json.Marshal(map[string]int{"expiresIn": int(expiresIn.Seconds())})
	if err != nil {
		return "", fmt.Errorf("failed to encode sign request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create sign request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sign request failed: status=%d", resp.StatusCode)
	}

	var payload struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode sign response: %w", err)
	}
	if payload.SignedURL == "" {
		return "", fmt.Errorf("sign response contained no URL")
	}

	// The store returns a path relative to the storage API root
	if strings.HasPrefix(payload.SignedURL, "http://") || strings.HasPrefix(payload.SignedURL, "https://") {
		return payload.SignedURL, nil
	}
	return c.baseURL + "/storage/v1" + "/" + strings.TrimLeft(payload.SignedURL, "/"), nil
}

// List returns the entries under a prefix
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]Entry, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, url.PathEscape(bucket))

	body, err := json.Marshal(map[string]any{
		"prefix": prefix,
		"limit":  100,
		"offset": 0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode list request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list request failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}

	return entries, nil
}

// Exists reports whether an object is publicly reachable
func (c *Client) Exists(ctx context.Context, bucket, path string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.PublicURL(bucket, path), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create probe request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("probe request failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}
}

// escapePath escapes each path segment while keeping separators
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
