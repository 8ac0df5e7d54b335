package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sumeshkk123/cloud-sub008/internal/icons"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/markdown"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/runtimeconfig"
	"github.com/sumeshkk123/cloud-sub008/internal/translation"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// IconCatalog is the icon lookup surface used by the icon and public routes.
type IconCatalog interface {
	Resolve(ref string) *icons.Icon
	Search(query string, filter icons.Filter) []icons.Entry
}

// AdminAPI registers admin endpoints for localized records, machine
// translation and the icon catalog, plus the optional public read routes.
type AdminAPI struct {
	basePath       string
	publicBasePath string
	records        records.Service
	translator     translation.Service
	icons          IconCatalog
	renderer       *markdown.Renderer
	logger         interfaces.Logger
	searchLimit    int
	requestTimeout time.Duration
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

const defaultSearchLimit = 200

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath:    "/admin/api",
		logger:      logging.NoOp(),
		searchLimit: defaultSearchLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPublicBasePath enables the public read routes under path.
func WithPublicBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.publicBasePath = strings.TrimSpace(path)
		}
	}
}

// WithAdminConfig applies the admin section of the runtime configuration.
func WithAdminConfig(cfg runtimeconfig.AdminConfig) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		WithBasePath(cfg.BasePath)(api)
		if cfg.RequestTimeout > 0 {
			api.requestTimeout = cfg.RequestTimeout
		}
	}
}

// WithRecordService wires the localized record service.
func WithRecordService(service records.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.records = service
		}
	}
}

// WithTranslationService wires the machine translation service.
func WithTranslationService(service translation.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.translator = service
		}
	}
}

// WithIconCatalog wires the icon catalog used for search, resolve and public rendering.
func WithIconCatalog(catalog IconCatalog) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.icons = catalog
		}
	}
}

// WithMarkdownRenderer renders record descriptions on the public routes.
func WithMarkdownRenderer(renderer *markdown.Renderer) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.renderer = renderer
		}
	}
}

// WithSearchLimit caps the number of icons returned by a search.
func WithSearchLimit(limit int) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && limit > 0 {
			api.searchLimit = limit
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerIconRoutes(mux, base)
	api.registerTranslationRoutes(mux, base)
	api.registerRecordRoutes(mux, base)
	if api.publicBasePath != "" {
		api.registerPublicRoutes(mux, joinPath(api.publicBasePath, ""))
	}

	return nil
}

func (api *AdminAPI) handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	mux.Handle(pattern, api.instrument(pattern, handler))
}

// instrument applies the request timeout and logs each request outcome.
func (api *AdminAPI) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if api.requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, api.requestTimeout)
			defer cancel()
		}
		ctx = logging.ContextWithFields(ctx, map[string]any{"route": route})

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(recorder, r.WithContext(ctx))

		logger := api.logger.WithContext(ctx)
		fields := []any{"method", r.Method, "path", r.URL.Path, "status", recorder.status, "duration", time.Since(start)}
		if recorder.status >= http.StatusInternalServerError {
			logger.Error("http.request.failed", fields...)
			return
		}
		logger.Debug("http.request.completed", fields...)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
