package db

import (
	"database/sql"
	"errors"
	"testing"

	"coderr/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestOfferFilter(t *testing.T) {
	f := offerFilter(models.OfferQuery{})
	require.Equal(t, "", f.where())
	require.Empty(t, f.args)

	f = offerFilter(models.OfferQuery{
		CreatorID:       ptr(int64(4)),
		MaxDeliveryTime: ptr(7),
		Search:          "50%_off",
	})
	require.Equal(t,
		" WHERE o.profile_id = $1 AND o.min_delivery_time <= $2 AND (o.title ILIKE $3 OR o.description ILIKE $3)",
		f.where())
	require.Equal(t, []any{int64(4), 7, `%50\%\_off%`}, f.args)
	require.Equal(t, " LIMIT $4 OFFSET $5", limitOffset(len(f.args)))
}

func TestOrderBy(t *testing.T) {
	cases := map[string]string{
		"min_price":   " ORDER BY o.min_price ASC, o.id ASC",
		"-min_price":  " ORDER BY o.min_price DESC, o.id DESC",
		"updated_at":  " ORDER BY o.updated_at ASC, o.id ASC",
		"-updated_at": " ORDER BY o.updated_at DESC, o.id DESC",
		"-title":      " ORDER BY o.updated_at DESC, o.id DESC",
		"":            " ORDER BY o.updated_at DESC, o.id DESC",
	}
	for ordering, want := range cases {
		require.Equal(t, want, orderBy(ordering, offerOrderColumns, "o.id"), ordering)
	}
	require.Equal(t, " ORDER BY r.rating DESC, r.id DESC", orderBy("-rating", reviewOrderColumns, "r.id"))
}

func TestReviewFilter(t *testing.T) {
	f := reviewFilter(models.ReviewQuery{ReviewerID: ptr(int64(9))})
	require.Equal(t, " WHERE r.reviewer_id = $1", f.where())
	require.Equal(t, []any{int64(9)}, f.args)
}

func TestTranslate(t *testing.T) {
	require.NoError(t, translate(nil, "op"))
	require.ErrorIs(t, translate(sql.ErrNoRows, "get"), models.ErrRecordNotFound)

	err := translate(&pq.Error{Code: uniqueViolation, Constraint: "orders_customer_detail_key"}, "insert order")
	var dup *models.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "orders_customer_detail_key", dup.Constraint)

	err = translate(&pq.Error{Code: checkViolation, Constraint: "offer_detail_price_check"}, "insert offer detail")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"value violates constraint offer_detail_price_check"}, verr.Fields["non_field_errors"])

	boom := errors.New("boom")
	err = translate(boom, "insert order")
	require.ErrorIs(t, err, boom)
	require.EqualError(t, err, "insert order: boom")
}
