package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"coderr/models"
)

// Page - конверт постраничного списка
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ListOffersHandler обрабатывает GET /api/offers
func (h *Handler) ListOffersHandler(w http.ResponseWriter, r *http.Request) {
	q, err := models.ParseOfferQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.Offers.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results := make([]models.OfferListView, 0, len(page.Offers))
	for i := range page.Offers {
		results = append(results, page.Offers[i].ToListView())
	}
	writeJSON(w, http.StatusOK, Page[models.OfferListView]{
		Count:    page.Count,
		Next:     pageLink(r, page.HasNext(), q.Page+1),
		Previous: pageLink(r, page.HasPrevious(), q.Page-1),
		Results:  results,
	})
}

// pageLink строит абсолютную ссылку на соседнюю страницу с теми же параметрами
func pageLink(r *http.Request, ok bool, n int) *string {
	if !ok {
		return nil
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	values := r.URL.Query()
	if n <= 1 {
		values.Del("page")
	} else {
		values.Set("page", strconv.Itoa(n))
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: values.Encode()}
	link := u.String()
	return &link
}

// CreateOfferHandler обрабатывает POST /api/offers
func (h *Handler) CreateOfferHandler(w http.ResponseWriter, r *http.Request) {
	var in models.OfferInput
	if !h.decodeJSON(w, r, &in, false) {
		return
	}

	offer, err := h.Offers.Create(r.Context(), PrincipalFrom(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

// GetOfferHandler обрабатывает GET /api/offers/{id}: пакеты - ссылками
func (h *Handler) GetOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "offer")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	offer, err := h.Offers.Get(r.Context(), PrincipalFrom(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offer.ToDetailView())
}

// UpdateOfferHandler обрабатывает PATCH /api/offers/{id}
func (h *Handler) UpdateOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "offer")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.OfferInput
	if !h.decodeJSON(w, r, &in, false) {
		return
	}

	offer, err := h.Offers.Update(r.Context(), PrincipalFrom(r.Context()), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// DeleteOfferHandler обрабатывает DELETE /api/offers/{id}
func (h *Handler) DeleteOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "offer")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.Offers.Delete(r.Context(), PrincipalFrom(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetOfferDetailHandler обрабатывает GET /api/offerdetails/{id}
func (h *Handler) GetOfferDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "offer detail")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	detail, err := h.Offers.GetDetail(r.Context(), PrincipalFrom(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
