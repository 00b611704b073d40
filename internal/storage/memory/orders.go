package memory

import (
	"context"
	"sort"
	"time"

	"coderr/models"
)

func cloneOrder(o models.Order) models.Order {
	out := o
	out.Features = append([]string{}, o.Features...)
	if o.OfferDetailID != nil {
		id := *o.OfferDetailID
		out.OfferDetailID = &id
	}
	return out
}

func (s *Store) HasOrder(ctx context.Context, customerID, detailID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasOrder(customerID, detailID), nil
}

func (s *Store) hasOrder(customerID, detailID int64) bool {
	for _, o := range s.orders {
		if o.CustomerUserID == customerID && o.OfferDetailID != nil && *o.OfferDetailID == detailID {
			return true
		}
	}
	return false
}

// CreateOrder проверяет уникальность (customer, offer_detail) под той же блокировкой, что и запись
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.OfferDetailID != nil && s.hasOrder(o.CustomerUserID, *o.OfferDetailID) {
		return &models.DuplicateError{Constraint: ConstraintOrderDetail}
	}
	s.orderSeq++
	o.ID = s.orderSeq
	s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus, now time.Time) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	o.Status = status
	o.UpdatedAt = now
	s.orders[id] = o

	out := cloneOrder(o)
	return &out, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(s.orders, id)
	return nil
}

// ListOrders - заказы, где профиль покупатель или исполнитель, новые первыми
func (s *Store) ListOrders(ctx context.Context, profileID int64) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.CustomerUserID == profileID || o.BusinessUserID == profileID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CountOrders(ctx context.Context, businessID int64, status models.OrderStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, o := range s.orders {
		if o.BusinessUserID == businessID && o.Status == status {
			n++
		}
	}
	return n, nil
}
