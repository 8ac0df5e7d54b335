package translation_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/sumeshkk123/cloud-sub008/internal/locales"
	"github.com/sumeshkk123/cloud-sub008/internal/translation"
)

type recordingProvider struct {
	calls  []string
	result string
	err    error
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Translate(_ context.Context, text, source, target string) (string, error) {
	p.calls = append(p.calls, source+">"+target+":"+text)
	return p.result, p.err
}

func TestServiceTranslateCanonicalisesLocales(t *testing.T) {
	provider := &recordingProvider{result: "Hola"}
	svc := translation.NewService(provider)

	res, err := svc.Translate(context.Background(), translation.Request{
		Text:         "Hello",
		SourceLocale: "EN",
		TargetLocale: "es-MX",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if res.TranslatedText != "Hola" || res.Provider != "recording" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(provider.calls) != 1 || provider.calls[0] != "en>es-mx:Hello" {
		t.Fatalf("unexpected provider calls %v", provider.calls)
	}
}

func TestServiceTranslateShortCircuits(t *testing.T) {
	provider := &recordingProvider{result: "never"}
	svc := translation.NewService(provider)

	cases := []translation.Request{
		{Text: "   ", SourceLocale: "en", TargetLocale: "es"},
		{Text: "Hello", SourceLocale: "en", TargetLocale: "EN"},
	}
	for _, req := range cases {
		res, err := svc.Translate(context.Background(), req)
		if err != nil {
			t.Fatalf("translate %+v: %v", req, err)
		}
		if res.TranslatedText != req.Text {
			t.Fatalf("expected passthrough of %q, got %q", req.Text, res.TranslatedText)
		}
	}
	if len(provider.calls) != 0 {
		t.Fatalf("expected no provider calls, got %v", provider.calls)
	}
}

func TestServiceTranslateValidation(t *testing.T) {
	svc := translation.NewService(&recordingProvider{}, translation.WithLocales(locales.MustSet("en", "es")))

	cases := map[string]translation.Request{
		"missing target":      {Text: "Hi", SourceLocale: "en"},
		"invalid source":      {Text: "Hi", SourceLocale: "not a locale!", TargetLocale: "es"},
		"unconfigured target": {Text: "Hi", SourceLocale: "en", TargetLocale: "fr"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Translate(context.Background(), req)
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestServiceTranslateWrapsProviderFailures(t *testing.T) {
	svc := translation.NewService(nil)

	_, err := svc.Translate(context.Background(), translation.Request{Text: "Hi", SourceLocale: "en", TargetLocale: "de"})
	if !errors.Is(err, translation.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
	var typed *goerrors.Error
	if !errors.As(err, &typed) || typed.TextCode != "TRANSLATION_UNAVAILABLE" {
		t.Fatalf("unexpected text code in %v", err)
	}
}

func TestServiceTranslatePassesContextErrorsThrough(t *testing.T) {
	svc := translation.NewService(&recordingProvider{err: context.DeadlineExceeded})
	_, err := svc.Translate(context.Background(), translation.Request{Text: "Hi", SourceLocale: "en", TargetLocale: "de"})
	if !errors.Is(err, context.DeadlineExceeded) || goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected bare deadline error, got %v", err)
	}
}
