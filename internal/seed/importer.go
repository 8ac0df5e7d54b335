package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/google/uuid"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/markdown"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/validation"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

var ErrImporterRequired = errors.New("seed: record importer is required")

//go:embed schema.json
var frontMatterSchemaDoc []byte

var frontMatterSchema = validation.MustCompile("seed-front-matter.json", frontMatterSchemaDoc)

// RecordImporter creates or updates one localized row.
type RecordImporter interface {
	Import(ctx context.Context, input records.Input) (*records.Row, error)
}

// FrontMatter is the accepted front matter of a seed file. Description falls
// back to the Markdown body.
type FrontMatter struct {
	Kind           string   `json:"kind"`
	ID             string   `json:"id"`
	Locale         string   `json:"locale"`
	Page           string   `json:"page"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Keywords       string   `json:"keywords"`
	Features       []string `json:"features"`
	Icon           string   `json:"icon"`
	Category       string   `json:"category"`
	ShowOnHomePage bool     `json:"showOnHomePage"`
	Draft          bool     `json:"draft"`
}

// Options tunes one import run.
type Options struct {
	DryRun bool
}

// FileError ties an import failure to its source file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("seed %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Result summarises an import run.
type Result struct {
	Created int
	Updated int
	Skipped int
	Planned int
	Errors  []*FileError
}

// Err joins the per-file errors, nil when every file imported.
func (r *Result) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, err := range r.Errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

// Importer turns Markdown seed files into localized records.
type Importer struct {
	target RecordImporter
	logger interfaces.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithLogger overrides the importer logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter builds an importer writing through target.
func NewImporter(target RecordImporter, opts ...ImporterOption) (*Importer, error) {
	if target == nil {
		return nil, ErrImporterRequired
	}
	imp := &Importer{target: target, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(imp)
	}
	return imp, nil
}

// ImportDirectory loads every matching file below dir and imports it.
func (i *Importer) ImportDirectory(ctx context.Context, fsys fs.FS, cfg markdown.LoaderConfig, dir string, opts Options) (*Result, error) {
	docs, err := markdown.NewLoader(fsys, cfg).LoadDirectory(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("seed: load %s: %w", dir, err)
	}
	return i.ImportDocuments(ctx, docs, opts)
}

// ImportDocuments imports docs in order. File-level failures are collected in
// the result; only context errors abort the run.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*markdown.Document, opts Options) (*Result, error) {
	result := &Result{}
	logger := i.logger.WithContext(ctx)

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		input, draft, err := DecodeDocument(doc)
		if err != nil {
			result.Errors = append(result.Errors, &FileError{Path: doc.Path, Err: err})
			logger.Warn("seed.document.invalid", "path", doc.Path, "error", err)
			continue
		}
		if draft {
			result.Skipped++
			continue
		}
		if opts.DryRun {
			result.Planned++
			continue
		}

		row, err := i.target.Import(ctx, input)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			result.Errors = append(result.Errors, &FileError{Path: doc.Path, Err: err})
			logger.Warn("seed.document.failed", "path", doc.Path, "error", err)
			continue
		}
		if row.CreatedAt.Equal(row.UpdatedAt) {
			result.Created++
		} else {
			result.Updated++
		}
	}

	logger.Info("seed.import.completed",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"planned", result.Planned,
		"failed", len(result.Errors),
		"dry_run", opts.DryRun,
	)
	return result, nil
}

// DecodeDocument validates doc's front matter and maps it to a record input.
// The second return value reports draft documents.
func DecodeDocument(doc *markdown.Document) (records.Input, bool, error) {
	raw, err := json.Marshal(doc.Meta)
	if err != nil {
		return records.Input{}, false, fmt.Errorf("front matter is not JSON compatible: %w", err)
	}
	if err := frontMatterSchema.ValidateJSON(raw); err != nil {
		return records.Input{}, false, err
	}

	var fm FrontMatter
	if err := json.Unmarshal(raw, &fm); err != nil {
		return records.Input{}, false, fmt.Errorf("decode front matter: %w", err)
	}

	locale := fm.Locale
	if strings.TrimSpace(locale) == "" {
		locale = doc.Locale
	}
	description := fm.Description
	if strings.TrimSpace(description) == "" {
		description = strings.TrimSpace(string(doc.Body))
	}

	input := records.Input{
		Kind:           records.Kind(fm.Kind),
		Locale:         locale,
		Page:           fm.Page,
		Title:          fm.Title,
		Description:    description,
		Keywords:       fm.Keywords,
		Features:       fm.Features,
		Icon:           fm.Icon,
		Category:       fm.Category,
		ShowOnHomePage: fm.ShowOnHomePage,
	}
	if fm.ID != "" {
		id, err := uuid.Parse(fm.ID)
		if err != nil {
			return records.Input{}, false, fmt.Errorf("id: %w", err)
		}
		input.RecordID = id
	}
	return input, fm.Draft, nil
}
