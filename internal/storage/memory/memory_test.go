package memory_test

import (
	"context"
	"testing"

	"coderr/internal/storage/memory"
	"coderr/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOffer(ownerID int64, types ...models.OfferType) *models.Offer {
	o := &models.Offer{OwnerID: ownerID, Title: "Offer", Description: "Offer description"}
	for i, t := range types {
		o.Details = append(o.Details, models.OfferDetail{
			Title:              string(t),
			DeliveryTimeInDays: i + 1,
			Price:              decimal.NewFromInt(int64(10 * (i + 1))),
			OfferType:          t,
			Features:           []string{"a"},
		})
	}
	o.RecomputeMinimums()
	return o
}

func TestProfiles_Unique(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.AddProfile(ctx, &models.UserProfile{UserID: 1, Username: "acme", Role: models.RoleBusiness}))

	err := s.AddProfile(ctx, &models.UserProfile{UserID: 2, Username: "acme"})
	var dup *models.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, memory.ConstraintProfileUsername, dup.Constraint)

	p := &models.UserProfile{UserID: 1, Username: "acme", FirstName: "Ann", Role: models.RoleBusiness}
	require.NoError(t, s.UpsertProfile(ctx, p))
	require.Equal(t, int64(1), p.ID)

	got, err := s.GetProfileByUserID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Ann", got.FirstName)

	_, err = s.GetProfile(ctx, 42)
	require.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestOffers_TierTypeConstraint(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.AddProfile(ctx, &models.UserProfile{UserID: 1, Username: "acme", Role: models.RoleBusiness}))

	err := s.CreateOffer(ctx, newOffer(1, models.OfferTypeBasic, models.OfferTypeBasic, models.OfferTypePremium))
	var dup *models.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, memory.ConstraintOfferType, dup.Constraint)

	o := newOffer(1, models.OfferTypes...)
	require.NoError(t, s.CreateOffer(ctx, o))

	_, err = s.UpdateOffer(ctx, o.ID, func(offer *models.Offer) error {
		offer.Details[1].OfferType = models.OfferTypeBasic
		return nil
	})
	require.ErrorAs(t, err, &dup)

	stored, err := s.GetOffer(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, models.OfferTypeStandard, stored.Details[1].OfferType)
}

func TestOffers_ReadsAreCopies(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.AddProfile(ctx, &models.UserProfile{UserID: 1, Username: "acme", Role: models.RoleBusiness}))

	o := newOffer(1, models.OfferTypes...)
	require.NoError(t, s.CreateOffer(ctx, o))
	o.Details[0].Features[0] = "mutated"

	got, err := s.GetOffer(ctx, o.ID)
	require.NoError(t, err)
	got.Details[0].Features[0] = "mutated again"

	again, err := s.GetOffer(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, again.Details[0].Features)
}

func TestOrders_UniqueAndDetachOnOfferDelete(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.AddProfile(ctx, &models.UserProfile{UserID: 1, Username: "acme", Role: models.RoleBusiness}))

	o := newOffer(1, models.OfferTypes...)
	require.NoError(t, s.CreateOffer(ctx, o))

	tier, owner, err := s.GetOfferDetailWithOwner(ctx, o.Details[0].ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), owner)

	order := models.NewOrderSnapshot(tier, owner, 2, o.CreatedAt)
	require.NoError(t, s.CreateOrder(ctx, order))

	err = s.CreateOrder(ctx, models.NewOrderSnapshot(tier, owner, 2, o.CreatedAt))
	var dup *models.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, memory.ConstraintOrderDetail, dup.Constraint)

	require.NoError(t, s.DeleteOffer(ctx, o.ID))

	stored, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Nil(t, stored.OfferDetailID)
	require.Equal(t, "basic", stored.Title)

	_, _, err = s.GetOfferDetailWithOwner(ctx, o.Details[0].ID)
	require.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestReviews_Unique(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.CreateReview(ctx, &models.Review{BusinessUserID: 1, ReviewerID: 2, Rating: 5}))
	err := s.CreateReview(ctx, &models.Review{BusinessUserID: 1, ReviewerID: 2, Rating: 1})
	var dup *models.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, memory.ConstraintReviewPair, dup.Constraint)

	ok, err := s.HasReview(ctx, 2, 1)
	require.NoError(t, err)
	require.True(t, ok)
}
