package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrDefaultLocaleRequired       = errors.New("cms config: default locale is required")
	ErrDefaultLocaleNotConfigured  = errors.New("cms config: default locale must be listed in i18n locales")
	ErrStorageProviderUnknown      = errors.New("cms config: storage provider is invalid")
	ErrStorageDSNRequired          = errors.New("cms config: storage dsn is required for relational providers")
	ErrCacheTTLInvalid             = errors.New("cms config: cache ttl must be positive when cache is enabled")
	ErrAdminBasePathInvalid        = errors.New("cms config: admin base path must start with '/'")
	ErrTranslationProviderUnknown  = errors.New("cms config: translation provider is invalid")
	ErrTranslationEndpointRequired = errors.New("cms config: translation endpoint is required for the http provider")
	ErrTranslationRateLimitInvalid = errors.New("cms config: translation rate limit must be zero or positive")
	ErrSeedDirRequired             = errors.New("cms config: seed directory is required when seeding is enabled")
	ErrPublicAPIRequiresIconRender = errors.New("cms config: public api requires icon rendering to be enabled")
	ErrLoggingProviderRequired     = errors.New("cms config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown      = errors.New("cms config: logging provider is invalid")
	ErrLoggingLevelInvalid         = errors.New("cms config: logging level is invalid")
	ErrLoggingFormatInvalid        = errors.New("cms config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the CMS module.
type Config struct {
	DefaultLocale string            `env:"DEFAULT_LOCALE"`
	I18N          I18NConfig        `envPrefix:"I18N_"`
	Storage       StorageConfig     `envPrefix:"STORAGE_"`
	Cache         CacheConfig       `envPrefix:"CACHE_"`
	Admin         AdminConfig       `envPrefix:"ADMIN_"`
	Translation   TranslationConfig `envPrefix:"TRANSLATION_"`
	Icons         IconsConfig       `envPrefix:"ICONS_"`
	Seed          SeedConfig        `envPrefix:"SEED_"`
	Features      Features          `envPrefix:"FEATURE_"`
	Logging       LoggingConfig     `envPrefix:"LOG_"`
}

// I18NConfig lists the locales every localized record is edited in. The order
// drives editor tabs.
type I18NConfig struct {
	Locales []string `env:"LOCALES"`
}

// StorageConfig selects the record repository backend.
type StorageConfig struct {
	Provider string `env:"PROVIDER"` // memory, sqlite, postgres
	DSN      string `env:"DSN"`
}

type CacheConfig struct {
	Enabled    bool          `env:"ENABLED"`
	DefaultTTL time.Duration `env:"TTL"`
}

// AdminConfig controls the admin HTTP surface.
type AdminConfig struct {
	BasePath       string        `env:"BASE_PATH"`
	PublicBasePath string        `env:"PUBLIC_BASE_PATH"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// TranslationConfig configures the machine translation provider.
type TranslationConfig struct {
	Provider     string        `env:"PROVIDER"` // none, glossary, http
	Endpoint     string        `env:"ENDPOINT"`
	APIKey       string        `env:"API_KEY"`
	GlossaryPath string        `env:"GLOSSARY_PATH"`
	RateLimit    float64       `env:"RATE_LIMIT"` // requests per second, zero disables limiting
	Burst        int           `env:"BURST"`
	Timeout      time.Duration `env:"TIMEOUT"`
}

// IconsConfig captures icon catalog behaviour.
type IconsConfig struct {
	ValidateReferences bool `env:"VALIDATE_REFERENCES"`
	SearchLimit        int  `env:"SEARCH_LIMIT"`
}

// SeedConfig captures Markdown seed import options.
type SeedConfig struct {
	Enabled bool   `env:"ENABLED"`
	Dir     string `env:"DIR"`
	Pattern string `env:"PATTERN"`
}

// Features toggles module functionality.
type Features struct {
	PublicAPI  bool `env:"PUBLIC_API"`
	IconRender bool `env:"ICON_RENDER"`
	Audit      bool `env:"AUDIT"`
	Logger     bool `env:"LOGGER"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `env:"PROVIDER"`
	Level     string   `env:"LEVEL"`
	Format    string   `env:"FORMAT"`
	AddSource bool     `env:"ADD_SOURCE"`
	Focus     []string `env:"FOCUS"`
}

// DefaultConfig returns defaults suitable for local development.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		I18N: I18NConfig{
			Locales: []string{"en", "es", "it", "de", "pt", "zh"},
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Admin: AdminConfig{
			BasePath:       "/admin/api",
			PublicBasePath: "/api/public",
			RequestTimeout: 15 * time.Second,
		},
		Translation: TranslationConfig{
			Provider: "none",
			Burst:    1,
			Timeout:  10 * time.Second,
		},
		Icons: IconsConfig{
			SearchLimit: 200,
		},
		Seed: SeedConfig{
			Dir:     "seed",
			Pattern: "*.md",
		},
		Features: Features{
			IconRender: true,
			Audit:      true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	locale := strings.TrimSpace(cfg.DefaultLocale)
	if locale == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.I18N.Locales) > 0 && !slices.ContainsFunc(cfg.I18N.Locales, func(l string) bool {
		return strings.EqualFold(strings.TrimSpace(l), locale)
	}) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleNotConfigured, locale)
	}

	switch provider := normalizeProvider(cfg.Storage.Provider); provider {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	for _, path := range []string{cfg.Admin.BasePath, cfg.Admin.PublicBasePath} {
		if path = strings.TrimSpace(path); path != "" && !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%w: %s", ErrAdminBasePathInvalid, path)
		}
	}

	switch provider := normalizeProvider(cfg.Translation.Provider); provider {
	case "", "none", "glossary":
	case "http":
		if strings.TrimSpace(cfg.Translation.Endpoint) == "" {
			return ErrTranslationEndpointRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrTranslationProviderUnknown, provider)
	}
	if cfg.Translation.RateLimit < 0 {
		return ErrTranslationRateLimitInvalid
	}

	if cfg.Seed.Enabled && strings.TrimSpace(cfg.Seed.Dir) == "" {
		return ErrSeedDirRequired
	}
	if cfg.Features.PublicAPI && !cfg.Features.IconRender {
		return ErrPublicAPIRequiresIconRender
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLogger(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// Locales returns the configured locales, falling back to the default locale.
func (cfg Config) Locales() []string {
	out := make([]string, 0, len(cfg.I18N.Locales))
	for _, l := range cfg.I18N.Locales {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		out = append(out, strings.ToLower(strings.TrimSpace(cfg.DefaultLocale)))
	}
	return out
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLogger(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
