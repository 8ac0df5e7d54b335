package translation_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sumeshkk123/cloud-sub008/internal/runtimeconfig"
	"github.com/sumeshkk123/cloud-sub008/internal/translation"
)

func TestHTTPProviderTranslate(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Hallo"})
	}))
	t.Cleanup(server.Close)

	provider, err := translation.NewHTTPProvider(translation.HTTPConfig{Endpoint: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	got, err := provider.Translate(context.Background(), "Hello", "en", "de-at")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Hallo" {
		t.Fatalf("expected Hallo, got %q", got)
	}
	if received["q"] != "Hello" || received["source"] != "en" || received["target"] != "de" || received["api_key"] != "secret" {
		t.Fatalf("unexpected upstream payload %v", received)
	}
}

func TestHTTPProviderFailures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		check  func(error) bool
	}{
		"upstream error": {
			status: http.StatusBadRequest,
			body:   `{"error":"target language not supported"}`,
			check: func(err error) bool {
				var upstream *translation.UpstreamError
				return errors.As(err, &upstream) && upstream.Status == http.StatusBadRequest &&
					upstream.Message == "target language not supported" && errors.Is(err, translation.ErrUpstream)
			},
		},
		"missing translated text": {
			status: http.StatusOK,
			body:   `{"detectedLanguage":"en"}`,
			check:  func(err error) bool { return errors.Is(err, translation.ErrEmptyResponse) },
		},
		"malformed body": {
			status: http.StatusOK,
			body:   `not json`,
			check:  func(err error) bool { return errors.Is(err, translation.ErrUpstream) },
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)

			provider, err := translation.NewHTTPProvider(translation.HTTPConfig{Endpoint: server.URL})
			if err != nil {
				t.Fatalf("new provider: %v", err)
			}
			_, err = provider.Translate(context.Background(), "Hello", "en", "es")
			if !tc.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestHTTPProviderRateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"translatedText":"ok"}`))
	}))
	t.Cleanup(server.Close)

	provider, err := translation.NewHTTPProvider(translation.HTTPConfig{
		Endpoint:  server.URL,
		RateLimit: 0.01,
		Burst:     1,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, err := provider.Translate(context.Background(), "a", "en", "es"); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := provider.Translate(ctx, "b", "en", "es"); err == nil {
		t.Fatalf("expected the limiter to refuse a second request within the deadline")
	}
}

func TestNewProviderFromConfig(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"":         "none",
		"glossary": "glossary",
	}
	for providerName, want := range cases {
		provider, err := translation.NewProvider(ctx, runtimeconfig.TranslationConfig{Provider: providerName}, nil)
		if err != nil {
			t.Fatalf("provider %q: %v", providerName, err)
		}
		if provider.Name() != want {
			t.Fatalf("provider %q: want %s, got %s", providerName, want, provider.Name())
		}
	}

	if _, err := translation.NewProvider(ctx, runtimeconfig.TranslationConfig{Provider: "deepl"}, nil); !errors.Is(err, runtimeconfig.ErrTranslationProviderUnknown) {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
	if _, err := translation.NewProvider(ctx, runtimeconfig.TranslationConfig{Provider: "http"}, nil); err == nil {
		t.Fatalf("expected missing endpoint error")
	}
}
