package handlers

import (
	"context"

	"coderr/internal/service"
	"coderr/models"
)

type OfferService interface {
	Create(ctx context.Context, p *models.Principal, in models.OfferInput) (*models.Offer, error)
	Update(ctx context.Context, p *models.Principal, id int64, in models.OfferInput) (*models.Offer, error)
	Delete(ctx context.Context, p *models.Principal, id int64) error
	Get(ctx context.Context, p *models.Principal, id int64) (*models.Offer, error)
	GetDetail(ctx context.Context, p *models.Principal, id int64) (*models.OfferDetail, error)
	List(ctx context.Context, q models.OfferQuery) (*service.OfferPage, error)
}

type OrderService interface {
	Create(ctx context.Context, p *models.Principal, in models.OrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, p *models.Principal, id int64, in models.OrderStatusInput) (*models.Order, error)
	Get(ctx context.Context, p *models.Principal, id int64) (*models.Order, error)
	Delete(ctx context.Context, p *models.Principal, id int64) error
	List(ctx context.Context, p *models.Principal) ([]models.Order, error)
	OrderCount(ctx context.Context, p *models.Principal, businessID int64) (int, error)
	CompletedOrderCount(ctx context.Context, p *models.Principal, businessID int64) (int, error)
}

type ReviewService interface {
	Create(ctx context.Context, p *models.Principal, in models.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, p *models.Principal, id int64, in models.ReviewInput) (*models.Review, error)
	Delete(ctx context.Context, p *models.Principal, id int64) error
	Get(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context, q models.ReviewQuery) ([]models.Review, error)
}

type StatsService interface {
	BaseInfo(ctx context.Context) (*models.PlatformStats, error)
}

// Pinger - проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProfileLookup находит профиль по id пользователя из токена
type ProfileLookup interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}
