package icons

import "strings"

// Namespace identifies one of the supported icon libraries.
type Namespace string

const (
	NamespaceLucide      Namespace = "lucide"
	NamespaceRemix       Namespace = "remix"
	NamespaceFontAwesome Namespace = "fontawesome"
)

// Namespaces lists the supported libraries in catalog order.
func Namespaces() []Namespace {
	return []Namespace{NamespaceLucide, NamespaceRemix, NamespaceFontAwesome}
}

// Valid reports whether ns names a supported library.
func (ns Namespace) Valid() bool {
	switch ns {
	case NamespaceLucide, NamespaceRemix, NamespaceFontAwesome:
		return true
	default:
		return false
	}
}

// Filter narrows search to a namespace. FilterAll (or empty) disables the filter.
type Filter string

const FilterAll Filter = "all"

// ParseFilter maps query values onto a filter, treating unknown values as all.
func ParseFilter(value string) Filter {
	value = strings.ToLower(strings.TrimSpace(value))
	if Namespace(value).Valid() {
		return Filter(value)
	}
	return FilterAll
}

// Entry is one pickable icon in the catalog.
type Entry struct {
	Name        string    `json:"name"`
	Type        Namespace `json:"type"`
	DisplayName string    `json:"displayName"`
}

// Reference returns the stored form of the entry, "<type>:<name>".
func (e Entry) Reference() string {
	return string(e.Type) + ":" + e.Name
}

// Style controls how a library's SVG bodies are painted.
type Style string

const (
	StyleStroke Style = "stroke"
	StyleFill   Style = "fill"
)

// Icon is a resolved, renderable icon.
type Icon struct {
	Namespace Namespace
	Name      string
	ViewBox   string
	Style     Style
	Body      string
}

// Reference returns the canonical "<namespace>:<name>" reference of the icon.
func (i *Icon) Reference() string {
	if i == nil {
		return ""
	}
	if i.Namespace == "" {
		return i.Name
	}
	return string(i.Namespace) + ":" + i.Name
}

// Label is the human-readable display label of the icon.
func (i *Icon) Label() string {
	if i == nil {
		return ""
	}
	return displayName(i.Namespace, i.Name)
}

func displayName(ns Namespace, name string) string {
	switch ns {
	case NamespaceLucide:
		return "Lucide: " + name
	case NamespaceRemix:
		return "Remix: " + name
	case NamespaceFontAwesome:
		return "FA: " + strings.TrimPrefix(name, "fa")
	default:
		return name
	}
}
