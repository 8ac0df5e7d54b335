package translation

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrProviderUnavailable = errors.New("translation: no provider configured")
	ErrPhraseNotFound      = errors.New("translation: phrase not found in glossary")
	ErrUnsupportedPair     = errors.New("translation: locale pair is not supported")
	ErrUpstream            = errors.New("translation: upstream request failed")
	ErrEmptyResponse       = errors.New("translation: upstream response has no translatedText")
)

// Request asks for text to be translated between two locales.
type Request struct {
	Text         string `json:"text"`
	SourceLocale string `json:"sourceLocale"`
	TargetLocale string `json:"targetLocale"`
}

// Result carries the translated text and the provider that produced it.
type Result struct {
	TranslatedText string `json:"translatedText"`
	Provider       string `json:"provider,omitempty"`
}

// Provider translates a single piece of text. Locales arrive canonicalised.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// UpstreamError describes a non-success reply from a remote provider.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("translation: upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("translation: upstream returned status %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

type noneProvider struct{}

// NewNoneProvider returns a provider that always fails. It backs deployments
// without machine translation so auto-translate surfaces a clear error.
func NewNoneProvider() Provider {
	return noneProvider{}
}

func (noneProvider) Name() string { return "none" }

func (noneProvider) Translate(context.Context, string, string, string) (string, error) {
	return "", ErrProviderUnavailable
}
