// Package api is a typed client for the journal REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"journal-api/pkg/journalapi"
)

// ErrNotFound matches a StatusError carrying 404.
var ErrNotFound = errors.New("not found")

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is reports a 404 as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Token   string
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to /journals and /auth/token. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new journal API client.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		token:      cfg.Token,
	}
}

// SetToken replaces the bearer token attached to journal requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

/* ───────── API Methods ───────── */

// Token exchanges basic credentials for a bearer token and keeps it for
// later calls.
func (c *Client) Token(ctx context.Context, user, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(user, password)

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(body))
	c.SetToken(token)
	return token, nil
}

// List returns every journal in id order.
func (c *Client) List(ctx context.Context) ([]journalapi.JournalResponse, error) {
	var out []journalapi.JournalResponse
	if err := c.call(ctx, http.MethodGet, "/journals", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []journalapi.JournalResponse{}
	}
	return out, nil
}

// Get returns one journal. A missing journal yields an error matching ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (journalapi.JournalResponse, error) {
	var out journalapi.JournalResponse
	err := c.call(ctx, http.MethodGet, journalPath(id), nil, &out)
	return out, err
}

// Create stores a new journal and returns it with its assigned ids.
func (c *Client) Create(ctx context.Context, in journalapi.JournalRequest) (journalapi.JournalResponse, error) {
	var out journalapi.JournalResponse
	err := c.call(ctx, http.MethodPost, "/journals", in, &out)
	return out, err
}

// Update overwrites the journal id.
func (c *Client) Update(ctx context.Context, id int64, in journalapi.JournalRequest) (journalapi.JournalResponse, error) {
	var out journalapi.JournalResponse
	err := c.call(ctx, http.MethodPut, journalPath(id), in, &out)
	return out, err
}

// Delete removes the journal id and returns what was removed.
func (c *Client) Delete(ctx context.Context, id int64) (journalapi.JournalResponse, error) {
	var out journalapi.JournalResponse
	err := c.call(ctx, http.MethodDelete, journalPath(id), nil, &out)
	return out, err
}

func journalPath(id int64) string {
	return "/journals/" + strconv.FormatInt(id, 10)
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	respBody, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(respBody))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode, Body: text}
	}
	return respBody, nil
}
