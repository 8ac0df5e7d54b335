package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// LoaderConfig configures Markdown discovery.
type LoaderConfig struct {
	// DefaultLocale applies when neither the directory nor the file name
	// names a locale.
	DefaultLocale string
	// Locales lists the locale codes recognised in paths.
	Locales []string
	// Pattern filters file names, "*.md" by default.
	Pattern string
}

// Loader discovers Markdown documents in an fs.FS. Locales come from the
// first directory segment ("es/pricing.md") or a file name suffix
// ("pricing.es.md").
type Loader struct {
	fs            fs.FS
	defaultLocale string
	locales       map[string]struct{}
	pattern       string
}

// NewLoader constructs a loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	known := make(map[string]struct{}, len(cfg.Locales))
	for _, code := range cfg.Locales {
		if code = strings.ToLower(strings.TrimSpace(code)); code != "" {
			known[code] = struct{}{}
		}
	}
	return &Loader{
		fs:            filesystem,
		defaultLocale: strings.ToLower(strings.TrimSpace(cfg.DefaultLocale)),
		locales:       known,
		pattern:       pattern,
	}
}

// LoadFile reads and parses one document. name is slash-separated and
// relative to the loader's filesystem root.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(name)

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}

	doc, err := BuildDocument(name, l.detectLocale(name), data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]
	return doc, nil
}

// LoadDirectory walks dir recursively and returns the matching documents
// sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	root := path.Clean(strings.TrimSpace(dir))
	if root == "" {
		root = "."
	}

	var docs []*Document
	err := fs.WalkDir(l.fs, root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !l.matches(name) {
			return nil
		}
		doc, err := l.LoadFile(ctx, name)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func (l *Loader) matches(name string) bool {
	ok, err := path.Match(l.pattern, path.Base(name))
	return err == nil && ok
}

func (l *Loader) detectLocale(name string) string {
	for _, segment := range strings.Split(path.Dir(name), "/") {
		if _, ok := l.locales[strings.ToLower(segment)]; ok {
			return strings.ToLower(segment)
		}
	}

	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		suffix := strings.ToLower(base[idx+1:])
		if _, ok := l.locales[suffix]; ok {
			return suffix
		}
	}
	return l.defaultLocale
}
