// Package store implements the read side of the content store protocol:
// parametrized structured queries over HTTP returning JSON documents.
// Authoring (create/patch) happens in the studio and never through this
// client.
package store

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

	"github.com/agrisite/cropsite/internal/logging"
	"github.com/agrisite/cropsite/pkg/interfaces"
)

const (
	defaultBaseDomain = "agcontent.io"
	defaultTimeout    = 10 * time.Second
)

var (
	// ErrProjectRequired and friends are configuration errors: fatal at
	// startup, never silently defaulted.
	ErrProjectRequired    = errors.New("store: project id is required")
	ErrDatasetRequired    = errors.New("store: dataset is required")
	ErrAPIVersionRequired = errors.New("store: api version is required")
)

// Config identifies one store project and dataset.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// UseCDN selects the edge-cached read host over the live one. CDN reads
	// may lag edits; the revalidation policy already tolerates that window.
	UseCDN     bool
	Token      string
	BaseDomain string
	Timeout    time.Duration
}

// Validate reports the first missing identity field.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.ProjectID) == "":
		return ErrProjectRequired
	case strings.TrimSpace(c.Dataset) == "":
		return ErrDatasetRequired
	case strings.TrimSpace(c.APIVersion) == "":
		return ErrAPIVersionRequired
	}
	return nil
}

// RequestError wraps any transport, status, or decode failure from the
// store. Callers map it to their unavailable taxonomy; it never masquerades
// as a not-found result.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("store: %s failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("store: %s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client issues read queries against the store's HTTP query endpoint.
type Client struct {
	http    *http.Client
	baseURL string
	dataset string
	token   string
	logger  interfaces.Logger
}

// ClientOption customises client construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithBaseURL overrides the derived endpoint entirely (tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient validates the store identity and constructs a read client.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	domain := cfg.BaseDomain
	if strings.TrimSpace(domain) == "" {
		domain = defaultBaseDomain
	}
	host := "api"
	if cfg.UseCDN {
		host = "apicdn"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: fmt.Sprintf("https://%s.%s.%s/v%s", strings.TrimSpace(cfg.ProjectID), host, domain, strings.TrimSpace(cfg.APIVersion)),
		dataset: strings.TrimSpace(cfg.Dataset),
		token:   strings.TrimSpace(cfg.Token),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type resultEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// Query executes a structured read query and decodes the result into out.
// Every failure mode — unreachable host, timeout, non-2xx status, undecodable
// body — surfaces as *RequestError so callers can classify it as a transient
// outage rather than an empty result.
func (c *Client) Query(ctx context.Context, query Query, out any) error {
	endpoint := fmt.Sprintf("%s/data/query/%s?query=%s", c.baseURL, c.dataset, url.QueryEscape(query.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &RequestError{Op: "build query request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("store.query", "doc_type", query.DocType)

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: "execute query", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &RequestError{Op: "execute query", StatusCode: resp.StatusCode}
	}

	var envelope resultEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &RequestError{Op: "decode query response", Err: err}
	}
	if out == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return &RequestError{Op: "decode query result", Err: err}
	}
	return nil
}
