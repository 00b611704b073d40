package models

import (
	"time"

	"coderr/internal/validation"
)

// Входные данные заказа
type OrderInput struct {
	OfferDetailID *int64 `json:"offer_detail_id" validate:"required,gt=0"`
}

// Входные данные смены статуса; другие поля запрещены
type OrderStatusInput struct {
	Status *string `json:"status" validate:"required,oneof=in_progress cancelled completed"`
}

func ValidateOrderInput(in OrderInput) error {
	verr := &ValidationError{}
	verr.Merge(validation.Struct(validation.Create, in))
	return verr.Err()
}

func ValidateOrderStatus(in OrderStatusInput) (OrderStatus, error) {
	verr := &ValidationError{}
	verr.Merge(validation.Struct(validation.Create, in))
	if err := verr.Err(); err != nil {
		return "", err
	}
	return OrderStatus(*in.Status), nil
}

// NewOrderSnapshot копирует поля пакета на момент заказа.
// Дальнейшие изменения пакета на заказ не влияют.
func NewOrderSnapshot(tier *OfferDetail, businessUserID, customerUserID int64, now time.Time) *Order {
	detailID := tier.ID
	features := make([]string, len(tier.Features))
	copy(features, tier.Features)

	return &Order{
		OfferDetailID:      &detailID,
		CustomerUserID:     customerUserID,
		BusinessUserID:     businessUserID,
		Title:              tier.Title,
		Revisions:          tier.Revisions,
		DeliveryTimeInDays: tier.DeliveryTimeInDays,
		Price:              tier.Price,
		Features:           features,
		OfferType:          tier.OfferType,
		Status:             OrderStatusInProgress,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
