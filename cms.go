package cms

import (
	"errors"
	"net/http"

	"github.com/sumeshkk123/cloud-sub008/commands"
	"github.com/sumeshkk123/cloud-sub008/internal/di"
	"github.com/sumeshkk123/cloud-sub008/internal/editor"
	cmshttp "github.com/sumeshkk123/cloud-sub008/internal/http"
	"github.com/sumeshkk123/cloud-sub008/internal/icons"
	"github.com/sumeshkk123/cloud-sub008/internal/jobs"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/seed"
	"github.com/sumeshkk123/cloud-sub008/internal/translation"
)

// RecordService exports the localized record service contract.
type RecordService = records.Service

// TranslationService exports the machine translation contract.
type TranslationService = translation.Service

// IconCatalog exports the icon resolver.
type IconCatalog = *icons.Catalog

// AuditRecorder exports the audit trail contract.
type AuditRecorder = jobs.AuditRecorder

// RecordKind names a localized content collection.
type RecordKind = records.Kind

// Editor exports the locale-merge form controller.
type Editor = *editor.Controller

// EditorBackend is the persistence surface an Editor saves through.
type EditorBackend = editor.Backend

var ErrModuleClosed = errors.New("cms: module is not initialised")

// Module represents the top level CMS runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a CMS module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Records returns the configured record service.
func (m *Module) Records() RecordService {
	return m.container.RecordService()
}

// Translation returns the configured translation service.
func (m *Module) Translation() TranslationService {
	return m.container.TranslationService()
}

// Icons returns the icon catalog.
func (m *Module) Icons() IconCatalog {
	return m.container.IconCatalog()
}

// Audit returns the audit trail, nil when the audit feature is disabled.
func (m *Module) Audit() AuditRecorder {
	return m.container.AuditRecorder()
}

// Seeder returns the Markdown seed importer.
func (m *Module) Seeder() *seed.Importer {
	return m.container.SeedImporter()
}

// AdminAPI returns the admin HTTP handler set.
func (m *Module) AdminAPI() *cmshttp.AdminAPI {
	return m.container.AdminAPI()
}

// RegisterRoutes mounts the admin routes, and the public routes when the
// public API feature is on, on mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	if m == nil || m.container == nil {
		return ErrModuleClosed
	}
	return m.container.AdminAPI().Register(mux)
}

// RegisterCommands builds the command handlers bound to this module's
// services. Config and LoggerProvider default to the module's own.
func (m *Module) RegisterCommands(opts commands.RegistrationOptions) (*commands.RegistrationResult, error) {
	if m == nil || m.container == nil {
		return nil, ErrModuleClosed
	}
	if opts.Config.DefaultLocale == "" {
		opts.Config = m.container.Config
	}
	if opts.LoggerProvider == nil {
		opts.LoggerProvider = m.container.LoggerProvider()
	}
	return commands.RegisterCommands(commands.Services{
		Records: m.container.RecordService(),
		Seeder:  m.container.SeedImporter(),
		Audit:   m.container.AuditRecorder(),
	}, opts)
}

// NewEditor builds a form controller for kind over the configured locales.
// Callers supply the backend, typically an admin API client.
func (m *Module) NewEditor(kind RecordKind, backend EditorBackend, opts ...editor.Option) (Editor, error) {
	if m == nil || m.container == nil {
		return nil, ErrModuleClosed
	}
	set := m.container.Locales()
	base := []editor.Option{
		editor.WithLocales(set.Codes()...),
		editor.WithDefaultLocale(set.Default()),
		editor.WithLogger(logging.EditorLogger(m.container.LoggerProvider())),
	}
	return editor.NewController(kind, backend, append(base, opts...)...)
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
