package icons

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// Catalog indexes the pickable icons of a set of libraries and resolves
// stored references against them. Entries are built lazily on first use.
type Catalog struct {
	libraries map[Namespace]*Library
	logger    interfaces.Logger

	once    sync.Once
	mu      sync.RWMutex
	entries []Entry
	known   map[string]struct{}
}

// CatalogOption configures a catalog.
type CatalogOption func(*Catalog)

// WithLogger attaches a logger used for catalog diagnostics.
func WithLogger(logger interfaces.Logger) CatalogOption {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog builds a catalog over libs. A later library replaces an earlier
// one registered for the same namespace.
func NewCatalog(libs []*Library, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		libraries: make(map[Namespace]*Library, len(libs)),
		logger:    logging.NoOp(),
	}
	for _, lib := range libs {
		if lib != nil && lib.Namespace.Valid() {
			c.libraries[lib.Namespace] = lib
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	libs, err := DefaultLibraries()
	if err != nil {
		panic(err)
	}
	return NewCatalog(libs)
})

// Default returns the process-wide catalog over the embedded libraries.
func Default() *Catalog {
	return defaultCatalog()
}

func (c *Catalog) build() {
	c.once.Do(func() {
		var entries []Entry
		for _, ns := range Namespaces() {
			entries = append(entries, c.namespaceEntries(ns)...)
		}
		known := make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			known[entry.Reference()] = struct{}{}
		}

		c.mu.Lock()
		c.entries = entries
		c.known = known
		c.mu.Unlock()

		c.logger.Debug("icons.catalog.built", "entries", len(entries))
	})
}

func (c *Catalog) namespaceEntries(ns Namespace) []Entry {
	lib := c.libraries[ns]
	if lib == nil {
		return nil
	}

	var names []string
	switch ns {
	case NamespaceLucide, NamespaceRemix:
		for _, export := range lib.Exports {
			if pickable(ns, export) {
				names = append(names, export.Name)
			}
		}
	case NamespaceFontAwesome:
		for _, def := range lib.Definitions() {
			names = append(names, def.Name)
		}
	}
	sort.Strings(names)

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, Entry{Name: name, Type: ns, DisplayName: displayName(ns, name)})
	}
	return out
}

// Entries returns a snapshot of the catalog in catalog order: lucide, remix,
// fontawesome, each sorted by name.
func (c *Catalog) Entries() []Entry {
	c.build()
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Search filters the catalog. See Search for the matching rules.
func (c *Catalog) Search(query string, filter Filter) []Entry {
	return Search(c.Entries(), query, filter)
}

// Resolve maps a stored reference onto an icon. It returns nil for blank,
// malformed or unknown references.
func (c *Catalog) Resolve(ref string) *Icon {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	c.build()

	prefix, name, ok := strings.Cut(ref, ":")
	if !ok {
		return c.lucideExact(ref)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	switch Namespace(strings.ToLower(strings.TrimSpace(prefix))) {
	case NamespaceLucide:
		if icon := c.lucideExact(name); icon != nil {
			return icon
		}
		return c.lucideFold(name)
	case NamespaceRemix:
		lib := c.libraries[NamespaceRemix]
		if export, ok := lib.Lookup(name); ok && pickable(NamespaceRemix, export) {
			return lib.icon(export)
		}
		return nil
	case NamespaceFontAwesome:
		return c.fontAwesome(name)
	default:
		return nil
	}
}

// Label returns the display label of the icon ref resolves to, or "".
func (c *Catalog) Label(ref string) string {
	return c.Resolve(ref).Label()
}

func (c *Catalog) lucideExact(name string) *Icon {
	lib := c.libraries[NamespaceLucide]
	if export, ok := lib.Lookup(name); ok && pickable(NamespaceLucide, export) {
		return lib.icon(export)
	}
	return nil
}

func (c *Catalog) lucideFold(name string) *Icon {
	lib := c.libraries[NamespaceLucide]
	if lib == nil {
		return nil
	}
	for _, export := range lib.Exports {
		if export.Kind != KindComponent || !export.Renderable() || !strings.EqualFold(export.Name, name) {
			continue
		}
		c.remember(Entry{Name: export.Name, Type: NamespaceLucide, DisplayName: displayName(NamespaceLucide, export.Name)})
		return lib.icon(export)
	}
	return nil
}

// remember appends an entry discovered through case-insensitive lookup.
// Repeated discoveries are ignored.
func (c *Catalog) remember(entry Entry) {
	key := entry.Reference()

	c.mu.RLock()
	_, seen := c.known[key]
	c.mu.RUnlock()
	if seen {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, seen := c.known[key]; seen {
		return
	}
	c.known[key] = struct{}{}
	c.entries = append(c.entries, entry)
	c.logger.Debug("icons.catalog.discovered", "reference", key)
}

func (c *Catalog) fontAwesome(name string) *Icon {
	lib := c.libraries[NamespaceFontAwesome]
	if lib == nil {
		return nil
	}
	for _, candidate := range fontAwesomeVariants(name) {
		if def, ok := lib.Definition(candidate); ok {
			return lib.icon(def)
		}
	}
	return nil
}

// fontAwesomeVariants lists at most five spellings tried against the solid
// set, in order: as given, fa+Capitalized, fa+Capitalized with the rest
// lower-cased, fa prefix normalised, and kebab-case folded into camel case.
func fontAwesomeVariants(name string) []string {
	stripped := trimPrefixFold(name, "fa")
	stripped = strings.TrimLeft(stripped, "-_")

	candidates := []string{
		name,
		"fa" + upperFirst(name),
		"fa" + upperFirst(strings.ToLower(name)),
		"fa" + upperFirst(stripped),
		"fa" + camelFromKebab(stripped),
	}

	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if candidate == "fa" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

func camelFromKebab(value string) string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(upperFirst(strings.ToLower(part)))
	}
	return b.String()
}

func trimPrefixFold(value, prefix string) string {
	if len(value) >= len(prefix) && strings.EqualFold(value[:len(prefix)], prefix) {
		return value[len(prefix):]
	}
	return value
}

func upperFirst(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// pickable reports whether a lucide or remix export is listed in the catalog.
// Exact lookups apply the same rule so nothing resolves that cannot be picked.
func pickable(ns Namespace, export Export) bool {
	if export.Kind != KindComponent || !export.Renderable() {
		return false
	}
	switch ns {
	case NamespaceLucide:
		return startsUpper(export.Name)
	case NamespaceRemix:
		return hasRemixPrefix(export.Name)
	default:
		return false
	}
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func hasRemixPrefix(name string) bool {
	if !strings.HasPrefix(name, "Ri") || len(name) <= 2 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name[2:])
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}
