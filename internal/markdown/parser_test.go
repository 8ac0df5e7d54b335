package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

const pricingSource = `---
kind: meta-details
page: pricing
title: Pricing
features:
  - Unlimited members
  - Weekly payouts
showOnHomePage: true
---
# Pricing

Plans for every **network** size.
`

func TestParseFrontMatter(t *testing.T) {
	var meta struct {
		Kind           string   `yaml:"kind"`
		Page           string   `yaml:"page"`
		Features       []string `yaml:"features"`
		ShowOnHomePage bool     `yaml:"showOnHomePage"`
	}
	body, err := ParseFrontMatter([]byte(pricingSource), &meta)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Kind != "meta-details" || meta.Page != "pricing" || !meta.ShowOnHomePage {
		t.Fatalf("unexpected front matter %+v", meta)
	}
	if len(meta.Features) != 2 || meta.Features[1] != "Weekly payouts" {
		t.Fatalf("unexpected features %#v", meta.Features)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "# Pricing") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestBuildDocument(t *testing.T) {
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	doc, err := BuildDocument("es/pricing.md", "es", []byte(pricingSource), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.Meta["title"] != "Pricing" || doc.Locale != "es" || !doc.LastModified.Equal(modified) {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestRendererRender(t *testing.T) {
	r := NewRenderer(Options{})

	html, err := r.RenderString("Hello **world**\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	got := string(html)
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected strong tag, got %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected raw HTML to be omitted, got %q", got)
	}

	wrapped, err := NewRenderer(Options{HardWraps: true}).Render([]byte("line one\nline two"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(wrapped), "line one<br>") {
		t.Fatalf("expected hard wraps, got %q", wrapped)
	}

	if empty, err := r.RenderString("   "); err != nil || empty != "" {
		t.Fatalf("expected blank input to render empty, got %q (%v)", empty, err)
	}
}

func TestLoaderDetectsLocales(t *testing.T) {
	fsys := fstest.MapFS{
		"seed/es/pricing.md":         {Data: []byte(pricingSource)},
		"seed/features/tree.de.md":   {Data: []byte("---\ntitle: Stammbaum\n---\n")},
		"seed/features/tree.md":      {Data: []byte("---\ntitle: Genealogy Tree\n---\n")},
		"seed/features/notes.txt":    {Data: []byte("ignored")},
		"seed/features/broken.md.bk": {Data: []byte("ignored")},
	}
	loader := NewLoader(fsys, LoaderConfig{DefaultLocale: "en", Locales: []string{"en", "es", "de"}})

	docs, err := loader.LoadDirectory(context.Background(), "seed")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	got := map[string]string{}
	for _, doc := range docs {
		got[doc.Path] = doc.Locale
		if len(doc.Checksum) != 32 {
			t.Fatalf("expected sha256 checksum on %s", doc.Path)
		}
	}
	want := map[string]string{
		"seed/es/pricing.md":       "es",
		"seed/features/tree.de.md": "de",
		"seed/features/tree.md":    "en",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected documents %v", got)
	}
	for name, locale := range want {
		if got[name] != locale {
			t.Fatalf("%s: want locale %q, got %q", name, locale, got[name])
		}
	}
	if docs[0].Path != "seed/es/pricing.md" {
		t.Fatalf("expected sorted paths, got %s first", docs[0].Path)
	}
}
