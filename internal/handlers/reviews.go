package handlers

import (
	"net/http"

	"coderr/models"
)

// ListReviewsHandler обрабатывает GET /api/reviews?business_user_id=&reviewer_id=&ordering=
func (h *Handler) ListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := models.ParseReviewQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	reviews, err := h.Reviews.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var in models.ReviewInput
	if !h.decodeJSON(w, r, &in, false) {
		return
	}

	review, err := h.Reviews.Create(r.Context(), PrincipalFrom(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) GetReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "review")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	review, err := h.Reviews.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// UpdateReviewHandler: PATCH и PUT требуют rating и description
func (h *Handler) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "review")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.ReviewInput
	if !h.decodeJSON(w, r, &in, false) {
		return
	}

	review, err := h.Reviews.Update(r.Context(), PrincipalFrom(r.Context()), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handler) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "review")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.Reviews.Delete(r.Context(), PrincipalFrom(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
