package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"coderr/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type detailBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError: ошибки валидации - карта по полям, остальные - {"detail": ...}
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *models.ValidationError
		aerr *models.AuthenticationError
		perr *models.PermissionError
		nerr *models.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.As(err, &aerr):
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		writeJSON(w, http.StatusUnauthorized, detailBody{aerr.Error()})
	case errors.As(err, &perr):
		writeJSON(w, http.StatusForbidden, detailBody{perr.Error()})
	case errors.As(err, &nerr):
		writeJSON(w, http.StatusNotFound, detailBody{nerr.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, detailBody{"internal server error"})
	}
}

// decodeJSON читает тело с ограничением размера; strict запрещает неизвестные поля
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, detailBody{"request body too large"})
	case errors.Is(err, io.EOF):
		writeJSON(w, http.StatusBadRequest, detailBody{"request body is empty"})
	default:
		writeJSON(w, http.StatusBadRequest, detailBody{"JSON parse error - " + err.Error()})
	}
	return false
}

// pathID разбирает числовой параметр пути; некорректный id - 404
func pathID(r *http.Request, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.NotFoundError{Resource: resource}
	}
	return id, nil
}
