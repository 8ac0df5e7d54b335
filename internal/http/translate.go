package http

import (
	"net/http"

	"github.com/sumeshkk123/cloud-sub008/internal/translation"
)

func (api *AdminAPI) registerTranslationRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	api.handle(mux, "POST "+joinPath(base, "translate"), api.handleTranslate)
}

func (api *AdminAPI) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.translator == nil {
		serviceUnavailable(w)
		return
	}
	var req translation.Request
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	result, err := api.translator.Translate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
