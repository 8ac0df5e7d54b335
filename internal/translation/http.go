package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sumeshkk123/cloud-sub008/internal/locales"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// HTTPConfig configures a LibreTranslate-compatible upstream.
type HTTPConfig struct {
	Endpoint  string
	APIKey    string
	RateLimit float64 // requests per second, zero disables limiting
	Burst     int
	Timeout   time.Duration
	Client    *http.Client
	Logger    interfaces.Logger
}

// HTTPProvider posts translation requests to a remote service.
type HTTPProvider struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     interfaces.Logger
}

type upstreamRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type upstreamResponse struct {
	TranslatedText *string `json:"translatedText"`
	Error          string  `json:"error"`
}

// NewHTTPProvider creates an HTTP provider from cfg.
func NewHTTPProvider(cfg HTTPConfig) (*HTTPProvider, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("translation: http endpoint is required")
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &HTTPProvider{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		httpClient: client,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

func (p *HTTPProvider) Name() string { return "http" }

func (p *HTTPProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	payload, err := json.Marshal(upstreamRequest{
		Q:      text,
		Source: locales.Base(source),
		Target: locales.Base(target),
		Format: "text",
		APIKey: p.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("translation: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("translation: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}
	p.logger.WithContext(ctx).Debug("translation.upstream.response",
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	var decoded upstreamResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Status: resp.StatusCode, Message: decoded.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUpstream, decodeErr)
	}
	if decoded.TranslatedText == nil {
		return "", ErrEmptyResponse
	}
	return *decoded.TranslatedText, nil
}
