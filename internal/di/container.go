package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	cmshttp "github.com/sumeshkk123/cloud-sub008/internal/http"
	"github.com/sumeshkk123/cloud-sub008/internal/icons"
	"github.com/sumeshkk123/cloud-sub008/internal/jobs"
	"github.com/sumeshkk123/cloud-sub008/internal/locales"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/logging/console"
	"github.com/sumeshkk123/cloud-sub008/internal/logging/gologger"
	"github.com/sumeshkk123/cloud-sub008/internal/markdown"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/runtimeconfig"
	"github.com/sumeshkk123/cloud-sub008/internal/seed"
	"github.com/sumeshkk123/cloud-sub008/internal/translation"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownedDB       *sql.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	locales *locales.Set
	icons   *icons.Catalog

	recordRepo records.Repository
	recordSvc  records.Service

	translationProvider translation.Provider
	translationSvc      translation.Service

	audit    jobs.AuditRecorder
	renderer *markdown.Renderer
	seeder   *seed.Importer
	adminAPI *cmshttp.AdminAPI
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB binds a caller-owned database. It takes precedence over
// Config.Storage and is never closed by the container.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRecordRepository overrides the storage-derived record repository.
func WithRecordRepository(repo records.Repository) Option {
	return func(c *Container) {
		c.recordRepo = repo
	}
}

// WithRecordService overrides the default record service binding.
func WithRecordService(svc records.Service) Option {
	return func(c *Container) {
		c.recordSvc = svc
	}
}

// WithTranslationProvider overrides the provider selected from Config.Translation.
func WithTranslationProvider(provider translation.Provider) Option {
	return func(c *Container) {
		c.translationProvider = provider
	}
}

// WithIconCatalog overrides the embedded icon catalog.
func WithIconCatalog(catalog *icons.Catalog) Option {
	return func(c *Container) {
		c.icons = catalog
	}
}

// WithAuditRecorder overrides the in-memory audit trail.
func WithAuditRecorder(recorder jobs.AuditRecorder) Option {
	return func(c *Container) {
		c.audit = recorder
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	set, err := locales.NewSet(cfg.DefaultLocale, cfg.Locales())
	if err != nil {
		return nil, err
	}
	c.locales = set

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if err := c.configureTranslation(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "console":
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure logging: %w", err)
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger("di").Warn("di.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}

	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() error {
	if c.recordRepo != nil || c.recordSvc != nil {
		return nil
	}

	if c.bunDB == nil {
		db, err := c.openDatabase()
		if err != nil {
			return err
		}
		if db == nil {
			c.recordRepo = records.NewMemoryRepository()
			return nil
		}
		c.bunDB = db
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := records.CreateSchema(ctx, c.bunDB); err != nil {
		c.Close()
		return fmt.Errorf("di: prepare record schema: %w", err)
	}
	c.recordRepo = records.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	return nil
}

// openDatabase returns nil for the memory provider.
func (c *Container) openDatabase() (*bun.DB, error) {
	storage := c.Config.Storage
	switch strings.ToLower(strings.TrimSpace(storage.Provider)) {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		c.ownedDB = sqlDB
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		c.ownedDB = sqlDB
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, nil
	}
}

func (c *Container) configureTranslation() error {
	if c.translationProvider == nil {
		provider, err := translation.NewProvider(context.Background(), c.Config.Translation, logging.TranslationLogger(c.loggerProvider))
		if err != nil {
			return fmt.Errorf("di: configure translation: %w", err)
		}
		c.translationProvider = provider
	}
	c.translationSvc = translation.NewService(c.translationProvider,
		translation.WithLocales(c.locales),
		translation.WithLogger(logging.TranslationLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureServices() error {
	if c.icons == nil {
		libs, err := icons.DefaultLibraries()
		if err != nil {
			return fmt.Errorf("di: load icon libraries: %w", err)
		}
		c.icons = icons.NewCatalog(libs, icons.WithLogger(logging.IconsLogger(c.loggerProvider)))
	}

	if c.audit == nil && c.Config.Features.Audit {
		c.audit = jobs.NewLoggingAuditRecorder(jobs.NewInMemoryAuditRecorder(), c.logger("audit"))
	}

	if c.recordSvc == nil {
		recordOpts := []records.ServiceOption{
			records.WithLocales(c.locales),
			records.WithLogger(logging.RecordsLogger(c.loggerProvider)),
		}
		if c.Config.Icons.ValidateReferences {
			recordOpts = append(recordOpts, records.WithIconValidation(c.icons))
		}
		if c.audit != nil {
			recordOpts = append(recordOpts, records.WithAuditRecorder(c.audit))
		}
		c.recordSvc = records.NewService(c.recordRepo, recordOpts...)
	}

	c.renderer = markdown.NewRenderer(markdown.Options{})

	seeder, err := seed.NewImporter(c.recordSvc, seed.WithLogger(logging.SeedLogger(c.loggerProvider)))
	if err != nil {
		return fmt.Errorf("di: configure seed importer: %w", err)
	}
	c.seeder = seeder

	adminOpts := []cmshttp.AdminOption{
		cmshttp.WithAdminConfig(c.Config.Admin),
		cmshttp.WithRecordService(c.recordSvc),
		cmshttp.WithTranslationService(c.translationSvc),
		cmshttp.WithSearchLimit(c.Config.Icons.SearchLimit),
		cmshttp.WithMarkdownRenderer(c.renderer),
		cmshttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.Config.Features.IconRender {
		adminOpts = append(adminOpts, cmshttp.WithIconCatalog(c.icons))
	}
	if c.Config.Features.PublicAPI {
		adminOpts = append(adminOpts, cmshttp.WithPublicBasePath(c.Config.Admin.PublicBasePath))
	}
	c.adminAPI = cmshttp.NewAdminAPI(adminOpts...)
	return nil
}

func (c *Container) logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// Close releases the database opened from Config.Storage. Databases supplied
// through WithBunDB are left to their owner.
func (c *Container) Close() error {
	if c == nil || c.ownedDB == nil {
		return nil
	}
	err := c.ownedDB.Close()
	c.ownedDB = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("di: close database: %w", err)
	}
	return nil
}

// LoggerProvider exposes the configured logger provider; nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the relational database, nil for the memory provider.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Locales returns the configured locale set.
func (c *Container) Locales() *locales.Set {
	return c.locales
}

// IconCatalog returns the icon catalog.
func (c *Container) IconCatalog() *icons.Catalog {
	return c.icons
}

// RecordRepository exposes the configured record repository.
func (c *Container) RecordRepository() records.Repository {
	return c.recordRepo
}

// RecordService returns the configured record service.
func (c *Container) RecordService() records.Service {
	return c.recordSvc
}

// TranslationService returns the machine translation service.
func (c *Container) TranslationService() translation.Service {
	return c.translationSvc
}

// AuditRecorder returns the audit trail, nil when the audit feature is off.
func (c *Container) AuditRecorder() jobs.AuditRecorder {
	return c.audit
}

func (c *Container) MarkdownRenderer() *markdown.Renderer {
	return c.renderer
}

// SeedImporter returns the Markdown seed importer bound to the record service.
func (c *Container) SeedImporter() *seed.Importer {
	return c.seeder
}

// AdminAPI returns the HTTP handler set for the admin and public routes.
func (c *Container) AdminAPI() *cmshttp.AdminAPI {
	return c.adminAPI
}
