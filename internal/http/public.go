package http

import (
	"net/http"

	"github.com/sumeshkk123/cloud-sub008/internal/records"
)

// publicRow is the read model served to the marketing site.
type publicRow struct {
	ID              string   `json:"id"`
	Locale          string   `json:"locale"`
	Page            string   `json:"page,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"descriptionHtml,omitempty"`
	Keywords        string   `json:"keywords,omitempty"`
	Features        []string `json:"features,omitempty"`
	Category        string   `json:"category,omitempty"`
	Icon            string   `json:"icon,omitempty"`
	IconLabel       string   `json:"iconLabel,omitempty"`
	IconSVG         string   `json:"iconSvg,omitempty"`
	Fallback        bool     `json:"fallback,omitempty"`
}

func (api *AdminAPI) registerPublicRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	api.handle(mux, "GET "+joinPath(base, "{kind}"), api.handlePublicList)
}

func (api *AdminAPI) handlePublicList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.records == nil {
		serviceUnavailable(w)
		return
	}
	kind, err := records.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	query := r.URL.Query()
	rows, err := api.records.List(r.Context(), kind, query.Get("locale"))
	if err != nil {
		writeError(w, err)
		return
	}

	homepageOnly := parseBoolQuery(query.Get("homepage"), false) && kind.IsShared(records.SharedShowOnHomePage)
	out := make([]publicRow, 0, len(rows))
	for _, row := range rows {
		if homepageOnly && !row.ShowOnHomePage {
			continue
		}
		item, err := api.publicRow(row)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *AdminAPI) publicRow(row *records.Row) (publicRow, error) {
	item := publicRow{
		ID:          row.RecordID.String(),
		Locale:      row.Locale,
		Page:        row.Page,
		Title:       row.Title,
		Description: row.Description,
		Keywords:    row.Keywords,
		Features:    row.Features,
		Category:    row.Category,
		Icon:        row.Icon,
		Fallback:    row.Fallback,
	}
	if api.renderer != nil {
		rendered, err := api.renderer.RenderString(row.Description)
		if err != nil {
			return item, err
		}
		item.DescriptionHTML = string(rendered)
	}
	if api.icons != nil && row.Kind.IsShared(records.SharedIcon) {
		// Unresolvable references render the placeholder.
		icon := api.icons.Resolve(row.Icon)
		item.IconLabel = icon.Label()
		item.IconSVG = string(icon.SVG("icon"))
	}
	return item, nil
}
