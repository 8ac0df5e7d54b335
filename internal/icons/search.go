package icons

import "strings"

// Search returns the entries matching filter and query, preserving their
// order. A blank query keeps every entry of the namespace; otherwise an entry
// matches when its name or display name contains the trimmed query,
// ignoring case.
func Search(entries []Entry, query string, filter Filter) []Entry {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if filter != "" && filter != FilterAll && Namespace(filter) != entry.Type {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(entry.Name), needle) &&
			!strings.Contains(strings.ToLower(entry.DisplayName), needle) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
