package handlers

import "net/http"

// BaseInfoHandler обрабатывает GET /api/base-info
func (h *Handler) BaseInfoHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.BaseInfo(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
