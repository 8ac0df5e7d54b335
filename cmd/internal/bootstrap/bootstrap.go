package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sumeshkk123/cloud-sub008"
	"github.com/sumeshkk123/cloud-sub008/internal/di"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// EnvPrefix namespaces every configuration variable, e.g. CMS_STORAGE_DSN.
const EnvPrefix = "CMS_"

// Options captures command line overrides applied on top of the environment.
type Options struct {
	DefaultLocale  string
	Locales        []string
	SeedDir        string
	SeedPattern    string
	EnableSeed     bool
	LoggerProvider interfaces.LoggerProvider
	// Environment replaces os.Environ when set.
	Environment map[string]string
}

// Module wraps the cms module and a CLI-scoped logger.
type Module struct {
	Module *cms.Module
	Logger interfaces.Logger
}

// LoadConfig overlays CMS_* variables on the default configuration.
func LoadConfig(environment map[string]string) (cms.Config, error) {
	cfg := cms.DefaultConfig()
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BuildModule constructs a CMS module from the environment and opts.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts.Environment)
	if err != nil {
		return nil, err
	}

	if locale := strings.TrimSpace(opts.DefaultLocale); locale != "" {
		cfg.DefaultLocale = locale
	}
	if len(opts.Locales) > 0 {
		cfg.I18N.Locales = append([]string(nil), opts.Locales...)
	}
	if dir := strings.TrimSpace(opts.SeedDir); dir != "" {
		cfg.Seed.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.SeedPattern); pattern != "" {
		cfg.Seed.Pattern = pattern
	}
	if opts.EnableSeed {
		cfg.Seed.Enabled = true
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := cms.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise cms module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "cli"),
	}, nil
}

// SplitLocales parses a comma separated locale list into a trimmed slice.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	return locales
}

// Getenv reads key from environment, falling back to the process environment.
func Getenv(environment map[string]string, key string) string {
	if environment != nil {
		return environment[key]
	}
	return os.Getenv(key)
}
