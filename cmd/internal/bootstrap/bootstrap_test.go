package bootstrap

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigOverlaysEnvironment(t *testing.T) {
	cfg, err := LoadConfig(map[string]string{
		"CMS_DEFAULT_LOCALE":       "es",
		"CMS_I18N_LOCALES":         "es,en",
		"CMS_STORAGE_PROVIDER":     "sqlite",
		"CMS_STORAGE_DSN":          "file:cms.db",
		"CMS_CACHE_TTL":            "5m",
		"CMS_TRANSLATION_PROVIDER": "glossary",
		"CMS_FEATURE_PUBLIC_API":   "true",
		"CMS_LOG_FOCUS":            "records,http",
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.DefaultLocale != "es" {
		t.Fatalf("default locale = %q", cfg.DefaultLocale)
	}
	if !reflect.DeepEqual(cfg.I18N.Locales, []string{"es", "en"}) {
		t.Fatalf("locales = %v", cfg.I18N.Locales)
	}
	if cfg.Storage.Provider != "sqlite" || cfg.Storage.DSN != "file:cms.db" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %s", cfg.Cache.DefaultTTL)
	}
	if !cfg.Features.PublicAPI {
		t.Fatalf("expected public api feature")
	}
	if !reflect.DeepEqual(cfg.Logging.Focus, []string{"records", "http"}) {
		t.Fatalf("focus = %v", cfg.Logging.Focus)
	}
	// untouched values keep their defaults
	if cfg.Admin.BasePath != "/admin/api" || !cfg.Features.IconRender {
		t.Fatalf("defaults lost: %+v %+v", cfg.Admin, cfg.Features)
	}
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	if _, err := LoadConfig(map[string]string{"CMS_CACHE_TTL": "soon"}); err == nil {
		t.Fatalf("expected duration parse error")
	}
}

func TestBuildModuleAppliesOverrides(t *testing.T) {
	module, err := BuildModule(Options{
		DefaultLocale: "en",
		Locales:       []string{"en", "de"},
		SeedDir:       "testdata",
		EnableSeed:    true,
		Environment:   map[string]string{},
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() { _ = module.Module.Close() })

	cfg := module.Module.Container().Config
	if !cfg.Seed.Enabled || cfg.Seed.Dir != "testdata" {
		t.Fatalf("seed config = %+v", cfg.Seed)
	}
	if got := module.Module.Records().Locales(); !reflect.DeepEqual(got, []string{"en", "de"}) {
		t.Fatalf("record locales = %v", got)
	}
}

func TestSplitLocales(t *testing.T) {
	if got := SplitLocales(" en, ,es "); !reflect.DeepEqual(got, []string{"en", "es"}) {
		t.Fatalf("split = %v", got)
	}
	if SplitLocales("  ") != nil {
		t.Fatalf("blank input should yield nil")
	}
}
