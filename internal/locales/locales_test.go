package locales_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/sumeshkk123/cloud-sub008/internal/locales"
)

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"en":     "en",
		" ES ":   "es",
		"pt-BR":  "pt-br",
		"zh":     "zh",
		"es-MX ": "es-mx",
	}
	for input, want := range cases {
		got, err := locales.Canonical(input)
		if err != nil {
			t.Fatalf("Canonical(%q) unexpected error: %v", input, err)
		}
		if got != want {
			t.Fatalf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := locales.Canonical("  "); !errors.Is(err, locales.ErrLocaleRequired) {
		t.Fatalf("expected ErrLocaleRequired, got %v", err)
	}
	if _, err := locales.Canonical("not a locale!"); !errors.Is(err, locales.ErrLocaleInvalid) {
		t.Fatalf("expected ErrLocaleInvalid, got %v", err)
	}
}

func TestBase(t *testing.T) {
	if got := locales.Base("es-mx"); got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
	if got := locales.Base("de"); got != "de" {
		t.Fatalf("expected de, got %q", got)
	}
}

func TestSetOrdersDefaultFirst(t *testing.T) {
	set, err := locales.NewSet("en", []string{"es", "EN", "it", "de"})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if got := set.Codes(); !slices.Equal(got, []string{"en", "es", "it", "de"}) {
		t.Fatalf("unexpected codes %v", got)
	}
	if set.Default() != "en" {
		t.Fatalf("expected default en, got %s", set.Default())
	}
	if !set.Contains("ES") || set.Contains("fr") {
		t.Fatalf("unexpected Contains results")
	}
}

func TestSetMatchFallsBackToBaseLanguage(t *testing.T) {
	set := locales.MustSet("en", "es", "it")

	if got, ok := set.Match("es-MX"); !ok || got != "es" {
		t.Fatalf("expected es-MX to match es, got %q (%v)", got, ok)
	}
	if got, ok := set.Match("it"); !ok || got != "it" {
		t.Fatalf("expected exact match, got %q (%v)", got, ok)
	}
	if _, ok := set.Match(""); ok {
		t.Fatalf("expected blank code not to match")
	}
}
