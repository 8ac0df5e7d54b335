package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
)

type recordPayload struct {
	Locale         string   `json:"locale"`
	Page           string   `json:"page"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Keywords       string   `json:"keywords"`
	Features       []string `json:"features"`
	Icon           string   `json:"icon"`
	Category       string   `json:"category"`
	ShowOnHomePage bool     `json:"showOnHomePage"`
}

func (p recordPayload) input(kind records.Kind, id uuid.UUID) records.Input {
	return records.Input{
		Kind:           kind,
		RecordID:       id,
		Locale:         p.Locale,
		Page:           p.Page,
		Title:          p.Title,
		Description:    p.Description,
		Keywords:       p.Keywords,
		Features:       p.Features,
		Icon:           p.Icon,
		Category:       p.Category,
		ShowOnHomePage: p.ShowOnHomePage,
	}
}

type translationsResponse struct {
	Translations []*records.Row `json:"translations"`
}

func (api *AdminAPI) registerRecordRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "{kind}")
	api.handle(mux, "GET "+root, api.handleRecordsGet)
	api.handle(mux, "POST "+root, api.handleRecordCreate)
	api.handle(mux, "PUT "+root, api.handleRecordSave)
	api.handle(mux, "DELETE "+root, api.handleRecordDelete)
}

func (api *AdminAPI) handleRecordsGet(w http.ResponseWriter, r *http.Request) {
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
	locale := strings.TrimSpace(query.Get("locale"))

	if strings.TrimSpace(query.Get("id")) == "" {
		rows, err := api.records.List(r.Context(), kind, locale)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
		return
	}

	id, err := parseUUID(query.Get("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	if parseBoolQuery(query.Get("all"), false) || locale == "" {
		rows, err := api.records.Translations(r.Context(), kind, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, translationsResponse{Translations: rows})
		return
	}

	row, err := api.records.Get(r.Context(), kind, id, locale)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (api *AdminAPI) handleRecordCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.records == nil {
		serviceUnavailable(w)
		return
	}
	kind, err := records.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	var payload recordPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	row, err := api.records.Create(r.Context(), payload.input(kind, uuid.Nil))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (api *AdminAPI) handleRecordSave(w http.ResponseWriter, r *http.Request) {
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
	id, err := parseUUID(query.Get("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	var payload recordPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Locale) == "" {
		payload.Locale = query.Get("locale")
	}
	row, err := api.records.Save(r.Context(), payload.input(kind, id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (api *AdminAPI) handleRecordDelete(w http.ResponseWriter, r *http.Request) {
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
	id, err := parseUUID(query.Get("id"))
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	if err := api.records.Delete(r.Context(), kind, id, query.Get("locale")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
