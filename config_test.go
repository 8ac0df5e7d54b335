package cms_test

import (
	"errors"
	"testing"

	"github.com/sumeshkk123/cloud-sub008"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := cms.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidateDefaultLocaleMustBeListed(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.DefaultLocale = "fr"

	if err := cfg.Validate(); !errors.Is(err, cms.ErrDefaultLocaleNotConfigured) {
		t.Fatalf("expected ErrDefaultLocaleNotConfigured, got %v", err)
	}
}

func TestConfigValidateStorageProvider(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Storage.Provider = "mongo"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}

	cfg.Storage.Provider = "postgres"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidateCacheTTL(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Cache.DefaultTTL = 0
	if err := cfg.Validate(); !errors.Is(err, cms.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}

	cfg.Cache.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled cache should ignore ttl: %v", err)
	}
}

func TestConfigValidateAdminPaths(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Admin.PublicBasePath = "api/public"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrAdminBasePathInvalid) {
		t.Fatalf("expected ErrAdminBasePathInvalid, got %v", err)
	}
}

func TestConfigValidateTranslation(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Translation.Provider = "deepl"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrTranslationProviderUnknown) {
		t.Fatalf("expected ErrTranslationProviderUnknown, got %v", err)
	}

	cfg.Translation.Provider = "http"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrTranslationEndpointRequired) {
		t.Fatalf("expected ErrTranslationEndpointRequired, got %v", err)
	}

	cfg.Translation.Endpoint = "https://translate.example.com"
	cfg.Translation.RateLimit = -1
	if err := cfg.Validate(); !errors.Is(err, cms.ErrTranslationRateLimitInvalid) {
		t.Fatalf("expected ErrTranslationRateLimitInvalid, got %v", err)
	}
}

func TestConfigValidateFeatureDependencies(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Features.PublicAPI = true
	cfg.Features.IconRender = false
	if err := cfg.Validate(); !errors.Is(err, cms.ErrPublicAPIRequiresIconRender) {
		t.Fatalf("expected ErrPublicAPIRequiresIconRender, got %v", err)
	}

	cfg = cms.DefaultConfig()
	cfg.Seed.Enabled = true
	cfg.Seed.Dir = " "
	if err := cfg.Validate(); !errors.Is(err, cms.ErrSeedDirRequired) {
		t.Fatalf("expected ErrSeedDirRequired, got %v", err)
	}
}

func TestConfigValidateLogging(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, cms.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "zap"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, cms.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
