package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// Services - прикладные сервисы, которые обслуживает HTTP-слой
type Services struct {
	Offers  OfferService
	Orders  OrderService
	Reviews ReviewService
	Stats   StatsService
	Store   Pinger
}

type Handler struct {
	Services
	logger       *zap.Logger
	maxBodyBytes int64
}

func NewHandler(svc Services, logger *zap.Logger, maxBodyBytes int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handler{Services: svc, logger: logger, maxBodyBytes: maxBodyBytes}
}

// PingHandler отвечает "ok", если хранилище доступно
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		if err := h.Store.Ping(r.Context()); err != nil {
			h.logger.Error("storage ping failed", zap.Error(err))
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
