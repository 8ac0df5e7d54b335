// Package http provides optional HTTP adapters for the CMS admin and public APIs.
//
// Admin routes mount under /admin/api:
//   - Localized records: /{kind} where kind is features, page-titles or meta-details.
//     Rows are addressed with the id, locale and all query parameters.
//   - Machine translation: /translate
//   - Icon catalog: /icons, /icons/resolve
//
// Public read routes mount under /api/public/{kind} when enabled.
//
// Host applications can register handlers on their own mux/router as needed.
package http
