package db

import (
	"context"
	"fmt"

	"coderr/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// offerRow - предложение с данными владельца из user_profile
type offerRow struct {
	models.Offer
	OwnerFirstName string `db:"owner_first_name"`
	OwnerLastName  string `db:"owner_last_name"`
	OwnerUsername  string `db:"owner_username"`
}

func (r offerRow) toModel() models.Offer {
	o := r.Offer
	o.Owner = &models.UserDetails{FirstName: r.OwnerFirstName, LastName: r.OwnerLastName, Username: r.OwnerUsername}
	return o
}

// detailRow - пакет с агрегированными фичами
type detailRow struct {
	models.OfferDetail
	Features pq.StringArray `db:"features"`
}

func (r detailRow) toModel() models.OfferDetail {
	d := r.OfferDetail
	d.Features = []string(r.Features)
	if d.Features == nil {
		d.Features = []string{}
	}
	return d
}

const offerSelect = `
        SELECT o.id, o.profile_id, o.title, o.description, o.image, o.min_price,
               o.min_delivery_time, o.created_at, o.updated_at,
               p.first_name AS owner_first_name, p.last_name AS owner_last_name, p.username AS owner_username
        FROM offer o
        JOIN user_profile p ON p.id = o.profile_id`

const detailSelect = `
        SELECT d.id, d.offer_id, d.title, d.revisions, d.delivery_time_in_days, d.price, d.offer_type,
               COALESCE(array_agg(f.name ORDER BY f.position) FILTER (WHERE f.name IS NOT NULL), '{}') AS features
        FROM offer_detail d
        LEFT JOIN offer_feature f ON f.offer_detail_id = d.id`

// CreateOffer пишет предложение, пакеты и фичи одной транзакцией
func (s *Storage) CreateOffer(ctx context.Context, o *models.Offer) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO offer (profile_id, title, description, image, min_price, min_delivery_time, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING id`
		err := tx.QueryRowxContext(ctx, query,
			o.OwnerID, o.Title, o.Description, o.Image, o.MinPrice, o.MinDeliveryTime, o.CreatedAt, o.UpdatedAt).
			Scan(&o.ID)
		if err != nil {
			return translate(err, "insert offer")
		}

		for i := range o.Details {
			d := &o.Details[i]
			d.OfferID = o.ID
			query := `
                INSERT INTO offer_detail (offer_id, title, revisions, delivery_time_in_days, price, offer_type)
                VALUES ($1, $2, $3, $4, $5, $6)
                RETURNING id`
			err := tx.QueryRowxContext(ctx, query,
				d.OfferID, d.Title, d.Revisions, d.DeliveryTimeInDays, d.Price, d.OfferType).
				Scan(&d.ID)
			if err != nil {
				return translate(err, "insert offer detail")
			}
			if err := insertFeatures(ctx, tx, d.ID, d.Features); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertFeatures(ctx context.Context, tx *sqlx.Tx, detailID int64, features []string) error {
	if len(features) == 0 {
		return nil
	}
	// позиции 1..n сохраняют порядок фич
	query := `
        INSERT INTO offer_feature (offer_detail_id, position, name)
        SELECT $1, f.ord, f.name FROM unnest($2::text[]) WITH ORDINALITY AS f(name, ord)`
	_, err := tx.ExecContext(ctx, query, detailID, pq.StringArray(features))
	return translate(err, "insert offer features")
}

func (s *Storage) GetOffer(ctx context.Context, id int64) (*models.Offer, error) {
	return s.getOffer(ctx, s.db, id, false)
}

func (s *Storage) getOffer(ctx context.Context, q sqlx.QueryerContext, id int64, forUpdate bool) (*models.Offer, error) {
	query := offerSelect + ` WHERE o.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF o`
	}

	var row offerRow
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		return nil, translate(err, "get offer")
	}
	offer := row.toModel()

	details, err := loadDetails(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	offer.Details = details[id]
	return &offer, nil
}

// loadDetails возвращает пакеты по id предложений
func loadDetails(ctx context.Context, q sqlx.QueryerContext, offerIDs []int64) (map[int64][]models.OfferDetail, error) {
	out := make(map[int64][]models.OfferDetail, len(offerIDs))
	if len(offerIDs) == 0 {
		return out, nil
	}

	var rows []detailRow
	query := detailSelect + ` WHERE d.offer_id = ANY($1) GROUP BY d.id ORDER BY d.offer_id, d.id`
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(offerIDs)); err != nil {
		return nil, translate(err, "load offer details")
	}
	for _, r := range rows {
		out[r.OfferID] = append(out[r.OfferID], r.toModel())
	}
	return out, nil
}

// UpdateOffer блокирует строку предложения, применяет mutate и сохраняет
// скалярные поля, пакеты и пересчитанные минимумы в одной транзакции
func (s *Storage) UpdateOffer(ctx context.Context, id int64, mutate func(*models.Offer) error) (*models.Offer, error) {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		offer, err := s.getOffer(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if err := mutate(offer); err != nil {
			return err
		}

		query := `
            UPDATE offer
            SET title = $1, description = $2, image = $3, min_price = $4, min_delivery_time = $5, updated_at = $6
            WHERE id = $7`
		_, err = tx.ExecContext(ctx, query,
			offer.Title, offer.Description, offer.Image, offer.MinPrice, offer.MinDeliveryTime, offer.UpdatedAt, id)
		if err != nil {
			return translate(err, "update offer")
		}

		for _, d := range offer.Details {
			query := `
                UPDATE offer_detail
                SET title = $1, revisions = $2, delivery_time_in_days = $3, price = $4, offer_type = $5
                WHERE id = $6 AND offer_id = $7`
			_, err := tx.ExecContext(ctx, query,
				d.Title, d.Revisions, d.DeliveryTimeInDays, d.Price, d.OfferType, d.ID, id)
			if err != nil {
				return translate(err, "update offer detail")
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM offer_feature WHERE offer_detail_id = $1`, d.ID); err != nil {
				return translate(err, "clear offer features")
			}
			if err := insertFeatures(ctx, tx, d.ID, d.Features); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetOffer(ctx, id)
}

// DeleteOffer: пакеты и фичи удаляются каскадом, заказы теряют ссылку на пакет
func (s *Storage) DeleteOffer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM offer WHERE id = $1`, id)
	return requireAffected(res, err, "delete offer")
}

func (s *Storage) ListOffers(ctx context.Context, q models.OfferQuery) ([]models.Offer, int, error) {
	filter := offerFilter(q)

	var total int
	countQuery := `SELECT COUNT(*) FROM offer o` + filter.where()
	if err := s.db.GetContext(ctx, &total, countQuery, filter.args...); err != nil {
		return nil, 0, translate(err, "count offers")
	}

	args := append(append([]any{}, filter.args...), q.Limit(), q.Offset())
	query := offerSelect + filter.where() +
		orderBy(q.Ordering, offerOrderColumns, "o.id") +
		limitOffset(len(filter.args))

	var rows []offerRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, translate(err, "list offers")
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	details, err := loadDetails(ctx, s.db, ids)
	if err != nil {
		return nil, 0, err
	}

	offers := make([]models.Offer, 0, len(rows))
	for _, r := range rows {
		o := r.toModel()
		o.Details = details[o.ID]
		offers = append(offers, o)
	}
	return offers, total, nil
}

func (s *Storage) GetOfferDetail(ctx context.Context, id int64) (*models.OfferDetail, error) {
	d, _, err := s.GetOfferDetailWithOwner(ctx, id)
	return d, err
}

func (s *Storage) GetOfferDetailWithOwner(ctx context.Context, detailID int64) (*models.OfferDetail, int64, error) {
	var row struct {
		detailRow
		OwnerID int64 `db:"owner_id"`
	}
	query := `
        SELECT d.id, d.offer_id, d.title, d.revisions, d.delivery_time_in_days, d.price, d.offer_type,
               COALESCE(array_agg(f.name ORDER BY f.position) FILTER (WHERE f.name IS NOT NULL), '{}') AS features,
               o.profile_id AS owner_id
        FROM offer_detail d
        JOIN offer o ON o.id = d.offer_id
        LEFT JOIN offer_feature f ON f.offer_detail_id = d.id
        WHERE d.id = $1
        GROUP BY d.id, o.profile_id`
	if err := s.db.GetContext(ctx, &row, query, detailID); err != nil {
		return nil, 0, translate(err, "get offer detail")
	}
	d := row.toModel()
	return &d, row.OwnerID, nil
}

// limitOffset нумерует LIMIT и OFFSET после n занятых параметров
func limitOffset(n int) string {
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
}
