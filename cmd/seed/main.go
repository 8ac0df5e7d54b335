package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sumeshkk123/cloud-sub008/cmd/internal/bootstrap"
	"github.com/sumeshkk123/cloud-sub008/commands"
	seedcmd "github.com/sumeshkk123/cloud-sub008/internal/commands/seed"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("seed import: %v", err)
	}
}

func runImport(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed-import", flag.ContinueOnError)
	directory := fs.String("dir", "seed", "Directory holding Markdown seed files")
	pattern := fs.String("pattern", "", "Glob pattern applied when discovering seed files (defaults to CMS_SEED_PATTERN)")
	locales := fs.String("locales", "", "Comma separated list of locales (defaults to CMS_I18N_LOCALES)")
	defaultLocale := fs.String("default-locale", "", "Locale assumed for files without one")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting records")
	failOnError := fs.Bool("fail-on-error", false, "Exit non-zero when any file fails to import")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		DefaultLocale: *defaultLocale,
		Locales:       bootstrap.SplitLocales(*locales),
		SeedDir:       *directory,
		SeedPattern:   *pattern,
		EnableSeed:    true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	registration, err := module.Module.RegisterCommands(commands.RegistrationOptions{})
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	var handler *seedcmd.ImportSeedHandler
	for _, candidate := range registration.Handlers {
		if h, ok := candidate.(*seedcmd.ImportSeedHandler); ok {
			handler = h
			break
		}
	}
	if handler == nil {
		return fmt.Errorf("seed import handler not configured")
	}

	cfg := module.Module.Container().Config
	msg := seedcmd.ImportSeedCommand{
		Directory:   cfg.Seed.Dir,
		Pattern:     cfg.Seed.Pattern,
		DryRun:      *dryRun,
		FailOnError: *failOnError,
	}
	if err := handler.Execute(ctx, msg); err != nil {
		return fmt.Errorf("execute seed command: %w", err)
	}

	result := handler.LastResult()
	if result == nil {
		return nil
	}
	fmt.Fprintf(out, "created=%d updated=%d skipped=%d planned=%d failed=%d\n",
		result.Created, result.Updated, result.Skipped, result.Planned, len(result.Errors))
	for _, fileErr := range result.Errors {
		fmt.Fprintf(out, "  %s\n", fileErr)
	}
	return nil
}
