package http

import (
	"net/http"
	"strings"

	"github.com/sumeshkk123/cloud-sub008/internal/icons"
)

type iconSearchResponse struct {
	Items []iconItem `json:"items"`
	Total int        `json:"total"`
}

type iconItem struct {
	icons.Entry
	Ref string `json:"ref"`
}

type resolvedIcon struct {
	Ref   string `json:"ref"`
	Label string `json:"label"`
	SVG   string `json:"svg"`
}

func (api *AdminAPI) registerIconRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "icons")
	api.handle(mux, "GET "+root, api.handleIconSearch)
	api.handle(mux, "GET "+root+"/resolve", api.handleIconResolve)
}

func (api *AdminAPI) handleIconSearch(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.icons == nil {
		serviceUnavailable(w)
		return
	}
	query := r.URL.Query()
	matches := api.icons.Search(query.Get("q"), icons.ParseFilter(query.Get("type")))

	limit := parseIntQuery(query.Get("limit"), api.searchLimit)
	if limit > api.searchLimit {
		limit = api.searchLimit
	}
	resp := iconSearchResponse{Total: len(matches), Items: make([]iconItem, 0, min(limit, len(matches)))}
	for _, entry := range matches {
		if len(resp.Items) == limit {
			break
		}
		resp.Items = append(resp.Items, iconItem{Entry: entry, Ref: entry.Reference()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (api *AdminAPI) handleIconResolve(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.icons == nil {
		serviceUnavailable(w)
		return
	}
	query := r.URL.Query()
	ref := strings.TrimSpace(query.Get("ref"))
	if ref == "" {
		badRequest(w, "ref is required")
		return
	}
	icon := api.icons.Resolve(ref)
	if icon == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "icon " + ref + " not found"})
		return
	}
	writeJSON(w, http.StatusOK, resolvedIcon{
		Ref:   icon.Reference(),
		Label: icon.Label(),
		SVG:   string(icon.SVG(query.Get("class"))),
	})
}
