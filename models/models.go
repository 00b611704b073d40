package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Роль профиля пользователя
type Role string

const (
	RoleBusiness Role = "business"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBusiness, RoleCustomer:
		return true
	}
	return false
}

// Демо-аккаунты с правами владельца
const (
	GuestBusinessUsername = "GuestBusiness"
	GuestCustomerUsername = "GuestCustomer"
)

// Профиль пользователя (проекция внешнего сервиса идентификации)
type UserProfile struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user"`
	Username  string    `db:"username" json:"username"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Role      Role      `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Principal - аутентифицированный вызывающий. Profile == nil, если профиль не найден.
type Principal struct {
	UserID      int64
	Username    string
	IsSuperuser bool
	Profile     *UserProfile
}

// ProfileID возвращает id профиля или 0
func (p *Principal) ProfileID() int64 {
	if p == nil || p.Profile == nil {
		return 0
	}
	return p.Profile.ID
}

// Тип пакета предложения
type OfferType string

const (
	OfferTypeBasic    OfferType = "basic"
	OfferTypeStandard OfferType = "standard"
	OfferTypePremium  OfferType = "premium"
)

// OfferTypes - допустимые типы в каноническом порядке
var OfferTypes = []OfferType{OfferTypeBasic, OfferTypeStandard, OfferTypePremium}

func (t OfferType) Valid() bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	}
	return false
}

// Сущность Предложения
type Offer struct {
	ID              int64           `db:"id" json:"id"`
	OwnerID         int64           `db:"profile_id" json:"user"`
	Title           string          `db:"title" json:"title"`
	Description     string          `db:"description" json:"description"`
	Image           *string         `db:"image" json:"image"`
	MinPrice        decimal.Decimal `db:"min_price" json:"min_price"`
	MinDeliveryTime int             `db:"min_delivery_time" json:"min_delivery_time"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
	Details         []OfferDetail   `db:"-" json:"details"`
	Owner           *UserDetails    `db:"-" json:"-"`
}

// Пакет (тир) предложения
type OfferDetail struct {
	ID                 int64           `db:"id" json:"id"`
	OfferID            int64           `db:"offer_id" json:"offer"`
	Title              string          `db:"title" json:"title"`
	Revisions          int             `db:"revisions" json:"revisions"`
	DeliveryTimeInDays int             `db:"delivery_time_in_days" json:"delivery_time_in_days"`
	Price              decimal.Decimal `db:"price" json:"price"`
	OfferType          OfferType       `db:"offer_type" json:"offer_type"`
	Features           []string        `db:"-" json:"features"`
}

// Статус заказа
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusCompleted  OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCancelled, OrderStatusCompleted:
		return true
	}
	return false
}

// Сущность Заказа: снимок пакета на момент заказа
type Order struct {
	ID                 int64           `db:"id" json:"id"`
	OfferDetailID      *int64          `db:"offer_detail_id" json:"offer_detail"`
	CustomerUserID     int64           `db:"customer_user_id" json:"customer_user"`
	BusinessUserID     int64           `db:"business_user_id" json:"business_user"`
	Title              string          `db:"title" json:"title"`
	Revisions          int             `db:"revisions" json:"revisions"`
	DeliveryTimeInDays int             `db:"delivery_time_in_days" json:"delivery_time_in_days"`
	Price              decimal.Decimal `db:"price" json:"price"`
	Features           []string        `db:"-" json:"features"`
	OfferType          OfferType       `db:"offer_type" json:"offer_type"`
	Status             OrderStatus     `db:"status" json:"status"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// Сущность Отзыва
type Review struct {
	ID             int64     `db:"id" json:"id"`
	BusinessUserID int64     `db:"business_user_id" json:"business_user"`
	ReviewerID     int64     `db:"reviewer_id" json:"reviewer"`
	Rating         int       `db:"rating" json:"rating"`
	Description    string    `db:"description" json:"description"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Сводная статистика платформы
type PlatformStats struct {
	BusinessProfileCount int     `db:"business_profile_count" json:"business_profile_count"`
	ReviewCount          int     `db:"review_count" json:"review_count"`
	AverageRating        float64 `db:"average_rating" json:"average_rating"`
	OfferCount           int     `db:"offer_count" json:"offer_count"`
}
