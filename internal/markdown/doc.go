// Package markdown reads Markdown documents with YAML front matter from a
// filesystem and renders Markdown snippets (record descriptions) to HTML.
package markdown
