package translation

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/sumeshkk123/cloud-sub008/internal/locales"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

const maxTextLength = 5000

// Service validates translation requests and forwards them to a provider.
type Service interface {
	Translate(ctx context.Context, req Request) (Result, error)
}

// ServiceOption configures the translation service.
type ServiceOption func(*service)

// WithLogger overrides the logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocales restricts target locales to the configured set.
func WithLocales(set *locales.Set) ServiceOption {
	return func(s *service) {
		s.locales = set
	}
}

type service struct {
	provider Provider
	locales  *locales.Set
	logger   interfaces.Logger
}

// NewService constructs a translation service. A nil provider behaves like
// the none provider.
func NewService(provider Provider, opts ...ServiceOption) Service {
	if provider == nil {
		provider = NewNoneProvider()
	}
	s := &service{
		provider: provider,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Translate(ctx context.Context, req Request) (Result, error) {
	if err := s.validate(req); err != nil {
		return Result{}, err
	}

	source, _ := locales.Canonical(req.SourceLocale)
	target, _ := locales.Canonical(req.TargetLocale)
	if strings.TrimSpace(req.Text) == "" || source == target {
		return Result{TranslatedText: req.Text}, nil
	}

	logger := s.logger.WithContext(ctx)
	translated, err := s.provider.Translate(ctx, req.Text, source, target)
	if err != nil {
		logger.Warn("translation.failed", "provider", s.provider.Name(), "source", source, "target", target, "error", err)
		return Result{}, classify(err, s.provider.Name())
	}
	logger.Debug("translation.succeeded", "provider", s.provider.Name(), "source", source, "target", target)
	return Result{TranslatedText: translated, Provider: s.provider.Name()}, nil
}

func (s *service) validate(req Request) error {
	localeRule := validation.By(func(value any) error {
		code, _ := value.(string)
		if _, err := locales.Canonical(code); err != nil {
			return validation.NewError("validation_locale_invalid", "must be a valid locale code")
		}
		return nil
	})
	targetRule := validation.By(func(value any) error {
		code, _ := value.(string)
		if s.locales != nil && !s.locales.Contains(code) {
			return validation.NewError("validation_locale_unsupported", "is not a configured locale")
		}
		return nil
	})

	err := validation.ValidateStruct(&req,
		validation.Field(&req.Text, validation.Length(0, maxTextLength)),
		validation.Field(&req.SourceLocale, validation.Required, localeRule),
		validation.Field(&req.TargetLocale, validation.Required, localeRule, targetRule),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid translation request").WithTextCode("INVALID_TRANSLATION_REQUEST")
	}
	return nil
}

func classify(err error, provider string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	code := "TRANSLATION_FAILED"
	switch {
	case errors.Is(err, ErrProviderUnavailable):
		code = "TRANSLATION_UNAVAILABLE"
	case errors.Is(err, ErrPhraseNotFound), errors.Is(err, ErrUnsupportedPair):
		code = "TRANSLATION_UNSUPPORTED"
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "Translation failed").
		WithTextCode(code).
		WithMetadata(map[string]any{"provider": provider})
}
