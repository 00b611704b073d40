package service

import (
	"context"
	"net/http"
	"time"

	"coderr/internal/policy"
	"coderr/models"

	"go.uber.org/zap"
)

// OrderStore - журнал заказов. Пара (customer, offer_detail) уникальна на уровне хранилища.
type OrderStore interface {
	ProfileStore
	// GetOfferDetailWithOwner возвращает пакет и id бизнес-профиля владельца предложения
	GetOfferDetailWithOwner(ctx context.Context, detailID int64) (*models.OfferDetail, int64, error)
	HasOrder(ctx context.Context, customerID, detailID int64) (bool, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus, now time.Time) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	ListOrders(ctx context.Context, profileID int64) ([]models.Order, error)
	CountOrders(ctx context.Context, businessID int64, status models.OrderStatus) (int, error)
}

const duplicateOrderMessage = "you have already ordered this offer detail"

type OrderService struct {
	store OrderStore
	Deps
}

func NewOrderService(store OrderStore, deps Deps) *OrderService {
	return &OrderService{store: store, Deps: deps.withDefaults()}
}

// Create оформляет заказ на пакет: снимок полей пакета на текущий момент
func (s *OrderService) Create(ctx context.Context, p *models.Principal, in models.OrderInput) (*models.Order, error) {
	if err := policy.RoleGate(p, http.MethodPost, policy.Order); err != nil {
		return nil, s.denied(err, p, "order")
	}
	if err := models.ValidateOrderInput(in); err != nil {
		return nil, err
	}

	detailID := *in.OfferDetailID
	tier, businessID, err := s.store.GetOfferDetailWithOwner(ctx, detailID)
	if err != nil {
		return nil, notFound(err, "offer detail", detailID)
	}

	customerID := p.Profile.ID
	exists, err := s.store.HasOrder(ctx, customerID, detailID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.Metrics.IncrConflict("order", "precheck")
		return nil, models.NewValidationError("offer_detail_id", duplicateOrderMessage)
	}

	order := models.NewOrderSnapshot(tier, businessID, customerID, s.Now())
	if err := s.store.CreateOrder(ctx, order); err != nil {
		if isDuplicate(err) {
			s.Metrics.IncrConflict("order", "constraint")
			return nil, models.NewValidationError("offer_detail_id", duplicateOrderMessage)
		}
		return nil, err
	}

	s.Metrics.IncrOrder("created")
	s.Logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("offer_detail_id", detailID),
		zap.Int64("customer_id", customerID),
		zap.Int64("business_id", businessID),
	)
	return order, nil
}

// UpdateStatus меняет только статус; разрешен переход из любого статуса в любой допустимый
func (s *OrderService) UpdateStatus(ctx context.Context, p *models.Principal, id int64, in models.OrderStatusInput) (*models.Order, error) {
	if err := policy.RoleGate(p, http.MethodPatch, policy.Order); err != nil {
		return nil, s.denied(err, p, "order")
	}

	current, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	if err := policy.OwnershipGate(p, http.MethodPatch, policy.Order, current.BusinessUserID); err != nil {
		return nil, s.denied(err, p, "order")
	}

	status, err := models.ValidateOrderStatus(in)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateOrderStatus(ctx, id, status, s.Now())
	if err != nil {
		return nil, notFound(err, "order", id)
	}

	s.Metrics.IncrOrder("status_" + string(status))
	s.Logger.Info("order status changed",
		zap.Int64("order_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)
	return updated, nil
}

// Get - участники заказа или администратор
func (s *OrderService) Get(ctx context.Context, p *models.Principal, id int64) (*models.Order, error) {
	if err := policy.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	if err := policy.ParticipantGate(p, policy.Order, order.CustomerUserID, order.BusinessUserID); err != nil {
		return nil, s.denied(err, p, "order")
	}
	return order, nil
}

// Delete только для администратора
func (s *OrderService) Delete(ctx context.Context, p *models.Principal, id int64) error {
	if err := policy.AdminGate(p, "delete this order"); err != nil {
		return s.denied(err, p, "order")
	}
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return notFound(err, "order", id)
	}

	s.Metrics.IncrOrder("deleted")
	s.Logger.Info("order deleted", zap.Int64("order_id", id), zap.Int64("admin_user_id", p.UserID))
	return nil
}

// List возвращает заказы, где вызывающий - покупатель или исполнитель
func (s *OrderService) List(ctx context.Context, p *models.Principal) ([]models.Order, error) {
	if err := policy.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	if p.Profile == nil {
		return []models.Order{}, nil
	}
	return s.store.ListOrders(ctx, p.Profile.ID)
}

// OrderCount - число заказов бизнеса в работе
func (s *OrderService) OrderCount(ctx context.Context, p *models.Principal, businessID int64) (int, error) {
	return s.count(ctx, p, businessID, models.OrderStatusInProgress)
}

// CompletedOrderCount - число завершенных заказов бизнеса
func (s *OrderService) CompletedOrderCount(ctx context.Context, p *models.Principal, businessID int64) (int, error) {
	return s.count(ctx, p, businessID, models.OrderStatusCompleted)
}

func (s *OrderService) count(ctx context.Context, p *models.Principal, businessID int64, status models.OrderStatus) (int, error) {
	if err := policy.RequireAuthenticated(p); err != nil {
		return 0, err
	}

	profile, err := s.store.GetProfile(ctx, businessID)
	if err != nil {
		return 0, notFound(err, "business user", businessID)
	}
	if profile.Role != models.RoleBusiness {
		return 0, &models.PermissionError{Action: "count orders of a non-business user"}
	}
	return s.store.CountOrders(ctx, businessID, status)
}
