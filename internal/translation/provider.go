package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sumeshkk123/cloud-sub008/internal/runtimeconfig"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// NewProvider builds the provider named by cfg.Provider.
func NewProvider(ctx context.Context, cfg runtimeconfig.TranslationConfig, logger interfaces.Logger) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "none":
		return NewNoneProvider(), nil
	case "glossary":
		var (
			glossary *Glossary
			err      error
		)
		if strings.TrimSpace(cfg.GlossaryPath) != "" {
			glossary, err = NewGlossaryLoader(cfg.GlossaryPath).Load(ctx)
		} else {
			glossary, err = DefaultGlossary()
		}
		if err != nil {
			return nil, err
		}
		return NewGlossaryProvider(glossary), nil
	case "http":
		return NewHTTPProvider(HTTPConfig{
			Endpoint:  cfg.Endpoint,
			APIKey:    cfg.APIKey,
			RateLimit: cfg.RateLimit,
			Burst:     cfg.Burst,
			Timeout:   cfg.Timeout,
			Logger:    logger,
		})
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrTranslationProviderUnknown, cfg.Provider)
	}
}
