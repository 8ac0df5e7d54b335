package icons

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sumeshkk123/cloud-sub008/internal/validation"
)

var (
	ErrManifestInvalid = errors.New("icons: library manifest invalid")
	ErrDuplicateExport = errors.New("icons: duplicate export name")
)

// ExportKind mirrors how a library entry point is exposed.
type ExportKind string

const (
	KindComponent  ExportKind = "component"
	KindType       ExportKind = "type"
	KindFactory    ExportKind = "factory"
	KindObject     ExportKind = "object"
	KindConstant   ExportKind = "constant"
	KindDefinition ExportKind = "definition"
)

// Export is a single entry of a library manifest.
type Export struct {
	Name    string     `json:"name"`
	Kind    ExportKind `json:"kind"`
	ViewBox string     `json:"viewBox,omitempty"`
	Body    string     `json:"body,omitempty"`
}

// Renderable reports whether the export produces an icon (a component or an
// icon definition), as opposed to helpers, types and constants.
func (e Export) Renderable() bool {
	return (e.Kind == KindComponent || e.Kind == KindDefinition) && strings.TrimSpace(e.Body) != ""
}

// Library is a parsed icon library manifest.
type Library struct {
	Namespace Namespace `json:"namespace"`
	Version   string    `json:"version,omitempty"`
	Style     Style     `json:"style,omitempty"`
	ViewBox   string    `json:"viewBox,omitempty"`
	Exports   []Export  `json:"exports"`
	Fallback  []Export  `json:"fallback,omitempty"`

	index       map[string]int
	definitions []Export
	defIndex    map[string]int
}

//go:embed data/*.json
var manifestFS embed.FS

var manifestSchema = func() *validation.Schema {
	raw, err := manifestFS.ReadFile("data/schema.json")
	if err != nil {
		panic(fmt.Errorf("icons: read embedded schema: %w", err))
	}
	return validation.MustCompile("icon-manifest.json", raw)
}()

// LoadLibrary parses and validates a manifest.
func LoadLibrary(r io.Reader) (*Library, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("icons: read manifest: %w", err)
	}
	if err := manifestSchema.ValidateJSON(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}

	var lib Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}
	if lib.Style == "" {
		lib.Style = StyleFill
	}
	if lib.ViewBox == "" {
		lib.ViewBox = "0 0 24 24"
	}

	lib.index = make(map[string]int, len(lib.Exports))
	for i, export := range lib.Exports {
		if _, ok := lib.index[export.Name]; ok {
			return nil, fmt.Errorf("%w: %s:%s", ErrDuplicateExport, lib.Namespace, export.Name)
		}
		lib.index[export.Name] = i
	}
	lib.indexDefinitions()
	return &lib, nil
}

// indexDefinitions caches the icon definitions, falling back to the curated
// list when the manifest declares none.
func (l *Library) indexDefinitions() {
	defs := make([]Export, 0, len(l.Exports))
	for _, export := range l.Exports {
		if export.Kind == KindDefinition && export.Renderable() {
			defs = append(defs, export)
		}
	}
	if len(defs) == 0 {
		for _, export := range l.Fallback {
			if export.Renderable() {
				defs = append(defs, export)
			}
		}
	}
	l.definitions = defs
	l.defIndex = make(map[string]int, len(defs))
	for i, def := range defs {
		if _, ok := l.defIndex[def.Name]; !ok {
			l.defIndex[def.Name] = i
		}
	}
}

// DefaultLibraries loads the embedded lucide, remix and fontawesome manifests.
func DefaultLibraries() ([]*Library, error) {
	libs := make([]*Library, 0, len(Namespaces()))
	for _, ns := range Namespaces() {
		raw, err := manifestFS.ReadFile("data/" + string(ns) + ".json")
		if err != nil {
			return nil, fmt.Errorf("icons: read embedded manifest %s: %w", ns, err)
		}
		lib, err := LoadLibrary(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("icons: embedded manifest %s: %w", ns, err)
		}
		libs = append(libs, lib)
	}
	return libs, nil
}

// Lookup returns the export registered under name (exact match).
func (l *Library) Lookup(name string) (Export, bool) {
	if l == nil {
		return Export{}, false
	}
	idx, ok := l.index[name]
	if !ok {
		return Export{}, false
	}
	return l.Exports[idx], true
}

// Definitions returns the icon definitions of the library, falling back to the
// curated list when the manifest declares none.
func (l *Library) Definitions() []Export {
	if l == nil {
		return nil
	}
	return slices.Clone(l.definitions)
}

// Definition returns the icon definition registered under name.
func (l *Library) Definition(name string) (Export, bool) {
	if l == nil {
		return Export{}, false
	}
	idx, ok := l.defIndex[name]
	if !ok {
		return Export{}, false
	}
	return l.definitions[idx], true
}

func (l *Library) icon(export Export) *Icon {
	viewBox := export.ViewBox
	if viewBox == "" {
		viewBox = l.ViewBox
	}
	return &Icon{
		Namespace: l.Namespace,
		Name:      export.Name,
		ViewBox:   viewBox,
		Style:     l.Style,
		Body:      export.Body,
	}
}
