package db

import (
	"context"
	"time"

	"coderr/models"

	"github.com/lib/pq"
)

// orderRow - заказ со снимком фич в text[]
type orderRow struct {
	models.Order
	Features pq.StringArray `db:"features"`
}

func (r orderRow) toModel() models.Order {
	o := r.Order
	o.Features = []string(r.Features)
	if o.Features == nil {
		o.Features = []string{}
	}
	return o
}

const orderColumns = `id, offer_detail_id, customer_user_id, business_user_id, title, revisions,
        delivery_time_in_days, price, features, offer_type, status, created_at, updated_at`

func (s *Storage) HasOrder(ctx context.Context, customerID, detailID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE customer_user_id = $1 AND offer_detail_id = $2)`
	err := s.db.GetContext(ctx, &exists, query, customerID, detailID)
	return exists, translate(err, "check order")
}

// CreateOrder: нарушение orders_customer_detail_key возвращается как DuplicateError
func (s *Storage) CreateOrder(ctx context.Context, o *models.Order) error {
	query := `
        INSERT INTO orders
            (offer_detail_id, customer_user_id, business_user_id, title, revisions,
             delivery_time_in_days, price, features, offer_type, status, created_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id`
	err := s.db.QueryRowxContext(ctx, query,
		o.OfferDetailID, o.CustomerUserID, o.BusinessUserID, o.Title, o.Revisions,
		o.DeliveryTimeInDays, o.Price, pq.StringArray(o.Features), o.OfferType, o.Status, o.CreatedAt, o.UpdatedAt).
		Scan(&o.ID)
	return translate(err, "insert order")
}

func (s *Storage) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var row orderRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id); err != nil {
		return nil, translate(err, "get order")
	}
	o := row.toModel()
	return &o, nil
}

func (s *Storage) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus, now time.Time) (*models.Order, error) {
	var row orderRow
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + orderColumns
	if err := s.db.GetContext(ctx, &row, query, status, now, id); err != nil {
		return nil, translate(err, "update order status")
	}
	o := row.toModel()
	return &o, nil
}

func (s *Storage) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return requireAffected(res, err, "delete order")
}

func (s *Storage) ListOrders(ctx context.Context, profileID int64) ([]models.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + `
        FROM orders
        WHERE customer_user_id = $1 OR business_user_id = $1
        ORDER BY created_at DESC, id DESC`
	if err := s.db.SelectContext(ctx, &rows, query, profileID); err != nil {
		return nil, translate(err, "list orders")
	}
	out := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Storage) CountOrders(ctx context.Context, businessID int64, status models.OrderStatus) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM orders WHERE business_user_id = $1 AND status = $2`
	err := s.db.GetContext(ctx, &n, query, businessID, status)
	return n, translate(err, "count orders")
}
