package logging

import (
	"context"

	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

const (
	rootModule        = "cms"
	iconsModule       = "cms.icons"
	recordsModule     = "cms.records"
	editorModule      = "cms.editor"
	translationModule = "cms.translation"
	httpModule        = "cms.http"
	seedModule        = "cms.seed"
)

const (
	fieldRecordKind = "record_kind"
	fieldRecordID   = "record_id"
	fieldLocale     = "locale"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per module.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// IconsLogger returns the logger namespace reserved for the icon catalog.
func IconsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, iconsModule)
}

// RecordsLogger returns the logger namespace reserved for localized record services.
func RecordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, recordsModule)
}

// EditorLogger returns the logger namespace reserved for the locale-merge editor.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// TranslationLogger returns the logger namespace reserved for machine translation.
func TranslationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translationModule)
}

// HTTPLogger returns the logger namespace reserved for the admin API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// SeedLogger returns the logger namespace reserved for seed imports.
func SeedLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seedModule)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
