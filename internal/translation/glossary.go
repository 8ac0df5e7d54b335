package translation

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sumeshkk123/cloud-sub008/internal/locales"
)

// Glossary is a serialised set of phrase tables keyed by target locale.
type Glossary struct {
	SourceLocale string                       `json:"sourceLocale"`
	Phrases      map[string]map[string]string `json:"phrases"`
}

//go:embed data/glossary.json
var defaultGlossaryData embed.FS

// DefaultGlossary loads the built-in marketing glossary.
func DefaultGlossary() (*Glossary, error) {
	data, err := defaultGlossaryData.ReadFile("data/glossary.json")
	if err != nil {
		return nil, fmt.Errorf("translation: read embedded glossary: %w", err)
	}
	return decodeGlossary(bytes.NewReader(data))
}

// GlossaryLoader reads glossary files from disk.
type GlossaryLoader struct {
	path string
}

// NewGlossaryLoader constructs a loader that reads the provided file path.
func NewGlossaryLoader(path string) *GlossaryLoader {
	return &GlossaryLoader{path: path}
}

// Load parses the configured glossary file.
func (l *GlossaryLoader) Load(ctx context.Context) (*Glossary, error) {
	if l == nil || l.path == "" {
		return nil, errors.New("translation: glossary path cannot be empty")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("translation: open glossary %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeGlossary(file)
}

func decodeGlossary(r io.Reader) (*Glossary, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var g Glossary
	if err := decoder.Decode(&g); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("translation: decode glossary: %w", err)
	}

	source, err := locales.Canonical(g.SourceLocale)
	if err != nil {
		source = "en"
	}
	g.SourceLocale = source

	phrases := make(map[string]map[string]string, len(g.Phrases))
	for locale, table := range g.Phrases {
		canonical, err := locales.Canonical(locale)
		if err != nil {
			return nil, fmt.Errorf("translation: glossary locale %q: %w", locale, err)
		}
		normalized := make(map[string]string, len(table))
		for phrase, translated := range table {
			normalized[phraseKey(phrase)] = translated
		}
		phrases[canonical] = normalized
	}
	g.Phrases = phrases
	return &g, nil
}

// GlossaryProvider translates exact phrases from a Glossary. Regional
// targets fall back to their base language ("es-mx" reads "es").
type GlossaryProvider struct {
	glossary *Glossary
}

// NewGlossaryProvider wraps g as a Provider.
func NewGlossaryProvider(g *Glossary) *GlossaryProvider {
	if g == nil {
		g = &Glossary{SourceLocale: "en", Phrases: map[string]map[string]string{}}
	}
	return &GlossaryProvider{glossary: g}
}

func (p *GlossaryProvider) Name() string { return "glossary" }

func (p *GlossaryProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if locales.Base(source) != locales.Base(p.glossary.SourceLocale) {
		return "", fmt.Errorf("%w: %s -> %s", ErrUnsupportedPair, source, target)
	}

	key := phraseKey(text)
	for _, locale := range []string{target, locales.Base(target)} {
		table, ok := p.glossary.Phrases[locale]
		if !ok {
			continue
		}
		if translated, ok := table[key]; ok {
			return translated, nil
		}
	}
	return "", fmt.Errorf("%w: %q (%s)", ErrPhraseNotFound, strings.TrimSpace(text), target)
}

func phraseKey(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
