package service

import (
	"context"
	"net/http"

	"coderr/internal/policy"
	"coderr/models"

	"go.uber.org/zap"
)

// OfferStore - хранилище каталога. Предложение и его пакеты пишутся атомарно.
type OfferStore interface {
	CreateOffer(ctx context.Context, o *models.Offer) error
	GetOffer(ctx context.Context, id int64) (*models.Offer, error)
	// UpdateOffer блокирует предложение, применяет mutate и сохраняет результат в одной транзакции
	UpdateOffer(ctx context.Context, id int64, mutate func(*models.Offer) error) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id int64) error
	ListOffers(ctx context.Context, q models.OfferQuery) ([]models.Offer, int, error)
	GetOfferDetail(ctx context.Context, id int64) (*models.OfferDetail, error)
}

// OfferPage - одна страница списка и общее число совпадений
type OfferPage struct {
	Offers []models.Offer
	Count  int
	Query  models.OfferQuery
}

// HasNext и HasPrevious для ссылок пагинации
func (p OfferPage) HasNext() bool     { return p.Query.Page*p.Query.PageSize < p.Count }
func (p OfferPage) HasPrevious() bool { return p.Query.Page > 1 }

type OfferService struct {
	store OfferStore
	Deps
}

func NewOfferService(store OfferStore, deps Deps) *OfferService {
	return &OfferService{store: store, Deps: deps.withDefaults()}
}

// Create публикует предложение от имени бизнес-профиля вызывающего
func (s *OfferService) Create(ctx context.Context, p *models.Principal, in models.OfferInput) (*models.Offer, error) {
	if err := policy.RoleGate(p, http.MethodPost, policy.Offer); err != nil {
		return nil, s.denied(err, p, "offer")
	}

	offer, err := models.NewOffer(p.Profile.ID, in)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	offer.CreatedAt, offer.UpdatedAt = now, now

	if err := s.store.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}
	offer.SortTiers()

	s.Metrics.IncrOffer("created")
	s.Logger.Info("offer created",
		zap.Int64("offer_id", offer.ID),
		zap.Int64("profile_id", offer.OwnerID),
		zap.String("min_price", offer.MinPrice.StringFixed(2)),
	)
	return offer, nil
}

// Update частично обновляет предложение: владелец, администратор или демо-аккаунт
func (s *OfferService) Update(ctx context.Context, p *models.Principal, id int64, in models.OfferInput) (*models.Offer, error) {
	if err := policy.RoleGate(p, http.MethodPatch, policy.Offer); err != nil {
		return nil, s.denied(err, p, "offer")
	}

	current, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, notFound(err, "offer", id)
	}
	if err := policy.OwnershipGate(p, http.MethodPatch, policy.Offer, current.OwnerID); err != nil {
		return nil, s.denied(err, p, "offer")
	}
	if err := models.ValidateOfferPatch(in); err != nil {
		return nil, err
	}

	now := s.Now()
	updated, err := s.store.UpdateOffer(ctx, id, func(o *models.Offer) error {
		return o.ApplyPatch(in, now)
	})
	if err != nil {
		return nil, notFound(err, "offer", id)
	}
	updated.SortTiers()

	s.Metrics.IncrOffer("updated")
	s.Logger.Info("offer updated",
		zap.Int64("offer_id", updated.ID),
		zap.Int("details", len(in.Details)),
	)
	return updated, nil
}

// Delete удаляет предложение вместе с пакетами
func (s *OfferService) Delete(ctx context.Context, p *models.Principal, id int64) error {
	if err := policy.RoleGate(p, http.MethodDelete, policy.Offer); err != nil {
		return s.denied(err, p, "offer")
	}

	current, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return notFound(err, "offer", id)
	}
	if err := policy.OwnershipGate(p, http.MethodDelete, policy.Offer, current.OwnerID); err != nil {
		return s.denied(err, p, "offer")
	}
	if err := s.store.DeleteOffer(ctx, id); err != nil {
		return notFound(err, "offer", id)
	}

	s.Metrics.IncrOffer("deleted")
	s.Logger.Info("offer deleted", zap.Int64("offer_id", id))
	return nil
}

// Get доступен только аутентифицированным
func (s *OfferService) Get(ctx context.Context, p *models.Principal, id int64) (*models.Offer, error) {
	if err := policy.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	offer, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, notFound(err, "offer", id)
	}
	offer.SortTiers()
	return offer, nil
}

func (s *OfferService) GetDetail(ctx context.Context, p *models.Principal, id int64) (*models.OfferDetail, error) {
	if err := policy.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	detail, err := s.store.GetOfferDetail(ctx, id)
	if err != nil {
		return nil, notFound(err, "offer detail", id)
	}
	return detail, nil
}

// List открыт всем. Страница за пределами выборки - 404.
func (s *OfferService) List(ctx context.Context, q models.OfferQuery) (*OfferPage, error) {
	offers, count, err := s.store.ListOffers(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.Page > 1 && q.Offset() >= count {
		return nil, models.ErrInvalidPage
	}
	for i := range offers {
		offers[i].SortTiers()
	}
	return &OfferPage{Offers: offers, Count: count, Query: q}, nil
}
