package icons

import (
	"html"
	"html/template"
	"strings"
)

// SVG renders the icon as inline markup. Bodies come from validated manifests;
// class is escaped.
func (i *Icon) SVG(class string) template.HTML {
	if i == nil {
		return Placeholder().SVG(class)
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="`)
	b.WriteString(html.EscapeString(i.ViewBox))
	b.WriteString(`"`)
	if class = strings.TrimSpace(class); class != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(class))
		b.WriteString(`"`)
	}
	if i.Style == StyleStroke {
		b.WriteString(` fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"`)
	} else {
		b.WriteString(` fill="currentColor"`)
	}
	b.WriteString(` data-icon="`)
	b.WriteString(html.EscapeString(i.Reference()))
	b.WriteString(`" aria-hidden="true">`)
	b.WriteString(i.Body)
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// Placeholder is the neutral icon rendered for references that do not resolve.
func Placeholder() *Icon {
	return &Icon{
		Namespace: "",
		Name:      "placeholder",
		ViewBox:   "0 0 24 24",
		Style:     StyleStroke,
		Body:      `<rect width="18" height="18" x="3" y="3" rx="2" stroke-dasharray="4 3"/>`,
	}
}
