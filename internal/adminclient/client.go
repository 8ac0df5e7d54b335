package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sumeshkk123/cloud-sub008/internal/editor"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

var (
	ErrBaseURLRequired    = errors.New("adminclient: base url is required")
	ErrMissingID          = errors.New("adminclient: create response has no id")
	ErrMissingTranslation = errors.New("adminclient: response has no translatedText")
)

// APIError is a non-success reply from the admin API. Message is the
// server-provided text, shown to editors unchanged.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("adminclient: server returned status %d", e.Status)
	}
	return fmt.Sprintf("adminclient: server returned status %d: %s", e.Status, e.Message)
}

// UserMessage returns the server-provided message.
func (e *APIError) UserMessage() string {
	return e.Message
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Client talks to the admin HTTP API. It implements editor.Backend and
// editor.Translator.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	headers    http.Header
	logger     interfaces.Logger
}

var (
	_ editor.Backend    = (*Client)(nil)
	_ editor.Translator = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithHeader adds a header to every request, e.g. an Authorization token.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithRateLimit bounds outgoing requests per second.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the client logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the admin API rooted at baseURL, e.g.
// "https://cms.example.com/admin/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("adminclient: parse base url: %w", err)
	}
	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 0),
		headers:    http.Header{},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Translations loads every locale row of a record.
func (c *Client) Translations(ctx context.Context, kind records.Kind, recordID string) ([]editor.Record, error) {
	query := url.Values{"id": {recordID}, "all": {"true"}}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, string(kind), query, nil, &raw); err != nil {
		return nil, err
	}

	// Some kinds answer with a bare array instead of {"translations": [...]}.
	var rows []editor.Record
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("adminclient: decode translations: %w", err)
		}
		return rows, nil
	}
	var envelope struct {
		Translations []editor.Record `json:"translations"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("adminclient: decode translations: %w", err)
	}
	return envelope.Translations, nil
}

// List returns one row per record of kind for locale.
func (c *Client) List(ctx context.Context, kind records.Kind, locale string) ([]editor.Record, error) {
	query := url.Values{}
	if locale != "" {
		query.Set("locale", locale)
	}
	var rows []editor.Record
	if err := c.do(ctx, http.MethodGet, string(kind), query, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Create starts a record from one locale's fields.
func (c *Client) Create(ctx context.Context, kind records.Kind, record editor.Record) (editor.Record, error) {
	record.ID = ""
	var created editor.Record
	if err := c.do(ctx, http.MethodPost, string(kind), nil, record, &created); err != nil {
		return editor.Record{}, err
	}
	if strings.TrimSpace(created.ID) == "" {
		return editor.Record{}, ErrMissingID
	}
	return created, nil
}

// Update writes one locale row of an existing record.
func (c *Client) Update(ctx context.Context, kind records.Kind, recordID string, record editor.Record) (editor.Record, error) {
	record.ID = ""
	var updated editor.Record
	if err := c.do(ctx, http.MethodPut, string(kind), url.Values{"id": {recordID}}, record, &updated); err != nil {
		return editor.Record{}, err
	}
	return updated, nil
}

// Delete removes one locale row, or the whole record when locale is blank.
func (c *Client) Delete(ctx context.Context, kind records.Kind, recordID, locale string) error {
	query := url.Values{"id": {recordID}}
	if locale != "" {
		query.Set("locale", locale)
	}
	return c.do(ctx, http.MethodDelete, string(kind), query, nil, nil)
}

// Translate machine-translates text through the admin API.
func (c *Client) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	payload := map[string]string{
		"text":         text,
		"sourceLocale": sourceLocale,
		"targetLocale": targetLocale,
	}
	var decoded struct {
		TranslatedText *string `json:"translatedText"`
	}
	if err := c.do(ctx, http.MethodPost, "translate", nil, payload, &decoded); err != nil {
		return "", err
	}
	if decoded.TranslatedText == nil {
		return "", ErrMissingTranslation
	}
	return *decoded.TranslatedText, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("adminclient: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("adminclient: build request: %w", err)
	}
	for key, values := range c.headers {
		req.Header[key] = values
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("adminclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("adminclient: read response: %w", err)
	}
	c.logger.WithContext(ctx).Debug("adminclient.response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var decoded errorBody
		_ = json.Unmarshal(raw, &decoded)
		message := strings.TrimSpace(decoded.Message)
		if message == "" {
			message = strings.TrimSpace(decoded.Error)
		}
		return &APIError{Status: resp.StatusCode, Code: decoded.Code, Message: message}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("adminclient: decode response: %w", err)
	}
	return nil
}
