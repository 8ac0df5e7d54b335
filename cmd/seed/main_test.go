package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sumeshkk123/cloud-sub008/cmd/internal/bootstrap"
)

func useEnvironment(t *testing.T) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		opts.Environment = map[string]string{}
		return bootstrap.BuildModule(opts)
	}
}

func writeSeed(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRunImportReportsSummary(t *testing.T) {
	useEnvironment(t)
	dir := t.TempDir()
	writeSeed(t, dir, "about.md", "---\nkind: page-titles\npage: about-us\nlocale: en\ntitle: About us\n---\nWho we are.\n")
	writeSeed(t, dir, "broken.md", "---\nkind: features\nlocale: en\ntitle: Missing bits\n---\n")

	var out bytes.Buffer
	if err := runImport(context.Background(), []string{"-dir", dir}, &out); err != nil {
		t.Fatalf("run import: %v", err)
	}
	summary := out.String()
	if !strings.Contains(summary, "created=1") || !strings.Contains(summary, "failed=1") {
		t.Fatalf("unexpected summary %q", summary)
	}
	if !strings.Contains(summary, "broken.md") {
		t.Fatalf("expected the failing file to be listed: %q", summary)
	}
}

func TestRunImportFailOnError(t *testing.T) {
	useEnvironment(t)
	dir := t.TempDir()
	writeSeed(t, dir, "broken.md", "---\nkind: features\nlocale: en\ntitle: Missing bits\n---\n")

	err := runImport(context.Background(), []string{"-dir", dir, "-fail-on-error"}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected failure")
	}
}

func TestRunImportDryRunPlansOnly(t *testing.T) {
	useEnvironment(t)
	dir := t.TempDir()
	writeSeed(t, dir, "about.md", "---\nkind: page-titles\npage: about-us\nlocale: en\ntitle: About us\n---\nWho we are.\n")

	var out bytes.Buffer
	if err := runImport(context.Background(), []string{"-dir", dir, "-dry-run"}, &out); err != nil {
		t.Fatalf("run import: %v", err)
	}
	if !strings.Contains(out.String(), "created=0") || !strings.Contains(out.String(), "planned=1") {
		t.Fatalf("unexpected summary %q", out.String())
	}
}
