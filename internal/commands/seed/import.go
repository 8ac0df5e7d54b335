package seedcmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/sumeshkk123/cloud-sub008/internal/commands"
	"github.com/sumeshkk123/cloud-sub008/internal/markdown"
	"github.com/sumeshkk123/cloud-sub008/internal/seed"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

const importSeedMessageType = "cms.seed.import"

// ErrSeedFeatureDisabled is returned when seeding is switched off at runtime.
var ErrSeedFeatureDisabled = errors.New("seed command: feature disabled")

// ImportSeedCommand imports Markdown seed files from Directory.
type ImportSeedCommand struct {
	Directory string `json:"directory"`
	Pattern   string `json:"pattern,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
	// FailOnError turns per-file failures into a command error.
	FailOnError bool `json:"fail_on_error,omitempty"`
}

// Type implements command.Message.
func (ImportSeedCommand) Type() string { return importSeedMessageType }

// Validate ensures a directory is present.
func (m ImportSeedCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("cms.seed.import.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// Config binds the handler to its environment.
type Config struct {
	Enabled func() bool
	// FS resolves directories; os.DirFS(Directory) is used when nil.
	FS     func(dir string) fs.FS
	Loader markdown.LoaderConfig
}

// ImportSeedHandler runs seed imports through the shared command handler.
type ImportSeedHandler struct {
	inner *commands.Handler[ImportSeedCommand]
	last  *seed.Result
}

// NewImportSeedHandler constructs a handler importing through importer.
func NewImportSeedHandler(importer *seed.Importer, logger interfaces.Logger, cfg Config, opts ...commands.HandlerOption[ImportSeedCommand]) *ImportSeedHandler {
	h := &ImportSeedHandler{}
	exec := func(ctx context.Context, msg ImportSeedCommand) error {
		if cfg.Enabled != nil && !cfg.Enabled() {
			return ErrSeedFeatureDisabled
		}

		root := "."
		fsys := os.DirFS(msg.Directory)
		if cfg.FS != nil {
			fsys = cfg.FS(msg.Directory)
		}
		loader := cfg.Loader
		if strings.TrimSpace(msg.Pattern) != "" {
			loader.Pattern = msg.Pattern
		}

		result, err := importer.ImportDirectory(ctx, fsys, loader, root, seed.Options{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		h.last = result
		if msg.FailOnError {
			return result.Err()
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportSeedCommand]{
		commands.WithLogger[ImportSeedCommand](logger),
		commands.WithOperation[ImportSeedCommand]("seed.import"),
		commands.WithMessageFields(func(msg ImportSeedCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportSeedCommand](nil)),
	}
	h.inner = commands.NewHandler(exec, append(handlerOpts, opts...)...)
	return h
}

// Execute satisfies command.Commander[ImportSeedCommand].
func (h *ImportSeedHandler) Execute(ctx context.Context, msg ImportSeedCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastResult returns the summary of the most recent successful run.
func (h *ImportSeedHandler) LastResult() *seed.Result {
	return h.last
}

// CLIHandler satisfies command.CLICommand.
func (h *ImportSeedHandler) CLIHandler() any { return h }

// CLIOptions describes the CLI metadata for seed imports.
func (h *ImportSeedHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"seed", "import"},
		Group:       "seed",
		Description: "Import localized records from Markdown seed files",
	}
}

var _ command.Commander[ImportSeedCommand] = (*ImportSeedHandler)(nil)
