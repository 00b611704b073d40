package handlers

import (
	"net/http"

	"coderr/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter собирает маршруты /api и /metrics
func NewRouter(h *Handler, auth *Authenticator, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(metrics.Middleware)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			// предложения
			r.Get("/offers", h.ListOffersHandler)
			r.Post("/offers", h.CreateOfferHandler)
			r.Get("/offers/{id}", h.GetOfferHandler)
			r.Patch("/offers/{id}", h.UpdateOfferHandler)
			r.Delete("/offers/{id}", h.DeleteOfferHandler)
			r.Get("/offerdetails/{id}", h.GetOfferDetailHandler)

			// заказы
			r.Get("/orders", h.ListOrdersHandler)
			r.Post("/orders", h.CreateOrderHandler)
			r.Get("/orders/{id}", h.GetOrderHandler)
			r.Patch("/orders/{id}", h.UpdateOrderStatusHandler)
			r.Delete("/orders/{id}", h.DeleteOrderHandler)
			r.Get("/orders/count/{business_user_id}", h.OrderCountHandler)
			r.Get("/orders/completed-count/{business_user_id}", h.CompletedOrderCountHandler)
			// прежние адреса счетчиков
			r.Get("/order-count/{business_user_id}", h.OrderCountHandler)
			r.Get("/completed-order-count/{business_user_id}", h.CompletedOrderCountHandler)

			// отзывы
			r.Get("/reviews", h.ListReviewsHandler)
			r.Post("/reviews", h.CreateReviewHandler)
			r.Get("/reviews/{id}", h.GetReviewHandler)
			r.Patch("/reviews/{id}", h.UpdateReviewHandler)
			r.Put("/reviews/{id}", h.UpdateReviewHandler)
			r.Delete("/reviews/{id}", h.DeleteReviewHandler)

			r.Get("/base-info", h.BaseInfoHandler)
		})
	})

	return r
}
