package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Базовый путь ссылок на пакеты
const OfferDetailPath = "/api/offerdetails/"

// Данные владельца для списка предложений
type UserDetails struct {
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Username  string `db:"username" json:"username"`
}

// Ссылка на пакет
type TierLink struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// Компактное представление для списка
type OfferListView struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	Title           string          `json:"title"`
	Image           *string         `json:"image"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Details         []TierLink      `json:"details"`
	MinPrice        decimal.Decimal `json:"min_price"`
	MinDeliveryTime int             `json:"min_delivery_time"`
	UserDetails     UserDetails     `json:"user_details"`
}

// Представление одного предложения: пакеты - ссылками
type OfferDetailView struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	Title           string          `json:"title"`
	Image           *string         `json:"image"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Details         []TierLink      `json:"details"`
	MinPrice        decimal.Decimal `json:"min_price"`
	MinDeliveryTime int             `json:"min_delivery_time"`
}

func (o *Offer) tierLinks() []TierLink {
	links := make([]TierLink, 0, len(o.Details))
	for _, d := range o.Details {
		links = append(links, TierLink{ID: d.ID, URL: fmt.Sprintf("%s%d/", OfferDetailPath, d.ID)})
	}
	return links
}

func (o *Offer) ToListView() OfferListView {
	v := OfferListView{
		ID:              o.ID,
		User:            o.OwnerID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         o.tierLinks(),
		MinPrice:        o.MinPrice,
		MinDeliveryTime: o.MinDeliveryTime,
	}
	if o.Owner != nil {
		v.UserDetails = *o.Owner
	}
	return v
}

func (o *Offer) ToDetailView() OfferDetailView {
	return OfferDetailView{
		ID:              o.ID,
		User:            o.OwnerID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         o.tierLinks(),
		MinPrice:        o.MinPrice,
		MinDeliveryTime: o.MinDeliveryTime,
	}
}
