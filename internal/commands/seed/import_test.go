package seedcmd_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
	seedcmd "github.com/sumeshkk123/cloud-sub008/internal/commands/seed"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/markdown"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/seed"
)

func newHandler(t *testing.T, enabled bool, files fstest.MapFS) (*seedcmd.ImportSeedHandler, records.Service) {
	t.Helper()
	svc := records.NewService(records.NewMemoryRepository())
	importer, err := seed.NewImporter(svc)
	if err != nil {
		t.Fatalf("importer: %v", err)
	}
	handler := seedcmd.NewImportSeedHandler(importer, logging.NoOp(), seedcmd.Config{
		Enabled: func() bool { return enabled },
		FS:      func(string) fs.FS { return files },
		Loader:  markdown.LoaderConfig{DefaultLocale: "en", Locales: []string{"en", "es"}},
	})
	return handler, svc
}

func TestImportSeedHandler(t *testing.T) {
	files := fstest.MapFS{
		"home.md":    {Data: []byte("---\nkind: page-titles\npage: home\ntitle: Home\n---\n")},
		"es/home.md": {Data: []byte("---\nkind: page-titles\npage: home\ntitle: Inicio\n---\n")},
		"bad.md":     {Data: []byte("---\nkind: banners\ntitle: Nope\n---\n")},
	}
	handler, svc := newHandler(t, true, files)
	ctx := context.Background()

	if err := handler.Execute(ctx, seedcmd.ImportSeedCommand{Directory: "seed"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res := handler.LastResult(); res == nil || res.Created != 2 || len(res.Errors) != 1 {
		t.Fatalf("unexpected result %+v", handler.LastResult())
	}
	rows, err := svc.List(ctx, records.KindPageTitles, "es")
	if err != nil || len(rows) != 1 || rows[0].Title != "Inicio" {
		t.Fatalf("unexpected rows %+v (%v)", rows, err)
	}

	err = handler.Execute(ctx, seedcmd.ImportSeedCommand{Directory: "seed", FailOnError: true})
	if err == nil || !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected per-file failures to fail the command, got %v", err)
	}
}

func TestImportSeedHandlerGuards(t *testing.T) {
	handler, _ := newHandler(t, false, fstest.MapFS{})

	err := handler.Execute(context.Background(), seedcmd.ImportSeedCommand{Directory: " "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	err = handler.Execute(context.Background(), seedcmd.ImportSeedCommand{Directory: "seed"})
	if !errors.Is(err, seedcmd.ErrSeedFeatureDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}
