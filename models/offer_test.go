package models_test

import (
	"testing"
	"time"

	"coderr/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func tierInput(t models.OfferType, price string, days int) models.OfferDetailInput {
	p := decimal.RequireFromString(price)
	return models.OfferDetailInput{
		Title:              ptr(string(t) + " tier"),
		Revisions:          ptr(2),
		DeliveryTimeInDays: ptr(days),
		Price:              &p,
		OfferType:          ptr(string(t)),
		Features:           []string{"logo"},
	}
}

func validInput() models.OfferInput {
	return models.OfferInput{
		Title:       ptr("Logo design"),
		Description: ptr("Three packages"),
		Details: []models.OfferDetailInput{
			tierInput(models.OfferTypePremium, "500", 3),
			tierInput(models.OfferTypeBasic, "100", 7),
			tierInput(models.OfferTypeStandard, "200", 5),
		},
	}
}

func TestNewOffer_DerivesMinimums(t *testing.T) {
	o, err := models.NewOffer(4, validInput())
	require.NoError(t, err)

	require.Equal(t, int64(4), o.OwnerID)
	require.Len(t, o.Details, models.TiersPerOffer)
	require.True(t, o.MinPrice.Equal(decimal.NewFromInt(100)))
	require.Equal(t, 3, o.MinDeliveryTime)

	o.SortTiers()
	require.Equal(t, models.OfferTypeBasic, o.Details[0].OfferType)
	require.Equal(t, models.OfferTypeStandard, o.Details[1].OfferType)
	require.Equal(t, models.OfferTypePremium, o.Details[2].OfferType)
}

func TestValidateOfferCreate(t *testing.T) {
	t.Run("wrong tier count", func(t *testing.T) {
		in := validInput()
		in.Details = in.Details[:2]

		var verr *models.ValidationError
		require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
		require.Equal(t, []string{"an offer must contain exactly 3 details"}, verr.Fields["details"])
	})

	t.Run("duplicate tier type", func(t *testing.T) {
		in := validInput()
		in.Details[2].OfferType = ptr(string(models.OfferTypeBasic))

		var verr *models.ValidationError
		require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
		require.Contains(t, verr.Fields["details"], "offer_type 'basic' can only be used for a single detail")
	})

	t.Run("invalid tier type", func(t *testing.T) {
		in := validInput()
		in.Details[0].OfferType = ptr("gold")

		var verr *models.ValidationError
		require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
		require.Contains(t, verr.Fields["details"][0], "detail 1 is invalid")
	})

	t.Run("bad detail field", func(t *testing.T) {
		in := validInput()
		in.Details[1].DeliveryTimeInDays = ptr(0)

		var verr *models.ValidationError
		require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
		require.Equal(t,
			[]string{"detail 2: delivery_time_in_days: ensure this value is greater than 0"},
			verr.Fields["details"])
	})

	t.Run("missing title", func(t *testing.T) {
		in := validInput()
		in.Title = nil

		var verr *models.ValidationError
		require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
		require.Equal(t, []string{"this field is required"}, verr.Fields["title"])
	})
}

func TestApplyPatch(t *testing.T) {
	o, err := models.NewOffer(4, validInput())
	require.NoError(t, err)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cheap := decimal.RequireFromString("49.5")
	err = o.ApplyPatch(models.OfferInput{
		Title: ptr("  Updated  "),
		Details: []models.OfferDetailInput{
			{OfferType: ptr(string(models.OfferTypePremium)), Price: &cheap, DeliveryTimeInDays: ptr(1)},
		},
	}, now)
	require.NoError(t, err)

	require.Equal(t, "Updated", o.Title)
	require.Equal(t, "Three packages", o.Description)
	require.True(t, o.MinPrice.Equal(cheap))
	require.Equal(t, 1, o.MinDeliveryTime)
	require.Equal(t, now, o.UpdatedAt)

	premium := o.Tier(models.OfferTypePremium)
	require.Equal(t, "premium tier", premium.Title)
	require.Equal(t, []string{"logo"}, premium.Features)
}

func TestApplyPatch_Rejects(t *testing.T) {
	o, err := models.NewOffer(4, validInput())
	require.NoError(t, err)
	before := *o

	var verr *models.ValidationError
	err = o.ApplyPatch(models.OfferInput{
		Details: []models.OfferDetailInput{{Title: ptr("no type")}},
	}, time.Now())
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"offer_type is required in detail 1"}, verr.Fields["details"])
	require.Equal(t, before.Title, o.Title)
	require.True(t, before.MinPrice.Equal(o.MinPrice))

	err = o.ApplyPatch(models.OfferInput{Title: ptr("")}, time.Now())
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "title")
}

func TestValidateOfferCreate_PriceScale(t *testing.T) {
	in := validInput()
	subCent := decimal.RequireFromString("0.004")
	in.Details[1].Price = &subCent

	var verr *models.ValidationError
	require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
	require.Equal(t,
		[]string{"detail 2: price: ensure that there are no more than 2 decimal places"},
		verr.Fields["details"])

	huge := decimal.RequireFromString("10000000000")
	in.Details[1].Price = &huge
	require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
	require.Equal(t,
		[]string{"detail 2: price: ensure that there are no more than 12 digits in total"},
		verr.Fields["details"])

	// лишние нули не меняют значение
	padded := decimal.RequireFromString("99.900")
	in.Details[1].Price = &padded
	require.NoError(t, models.ValidateOfferCreate(in))
}

func TestValidateOfferCreate_BlankTitles(t *testing.T) {
	in := validInput()
	in.Title = ptr("   ")
	in.Description = ptr("\t")
	in.Details[0].Title = ptr("   ")

	var verr *models.ValidationError
	require.ErrorAs(t, models.ValidateOfferCreate(in), &verr)
	require.Equal(t, []string{"this field may not be blank"}, verr.Fields["title"])
	require.Equal(t, []string{"this field may not be blank"}, verr.Fields["description"])
	require.Equal(t, []string{"detail 1: title: this field may not be blank"}, verr.Fields["details"])
}

func TestApplyPatch_RejectsSubCentPriceAndBlankTitles(t *testing.T) {
	o, err := models.NewOffer(4, validInput())
	require.NoError(t, err)

	subCent := decimal.RequireFromString("0.004")
	var verr *models.ValidationError
	err = o.ApplyPatch(models.OfferInput{
		Details: []models.OfferDetailInput{{OfferType: ptr("basic"), Price: &subCent}},
	}, time.Now())
	require.ErrorAs(t, err, &verr)
	require.Equal(t,
		[]string{"detail 1: price: ensure that there are no more than 2 decimal places"},
		verr.Fields["details"])
	require.True(t, o.Tier(models.OfferTypeBasic).Price.Equal(decimal.NewFromInt(100)))
	require.True(t, o.MinPrice.Equal(decimal.NewFromInt(100)))

	err = o.ApplyPatch(models.OfferInput{
		Title:   ptr("  "),
		Details: []models.OfferDetailInput{{OfferType: ptr("premium"), Title: ptr("    ")}},
	}, time.Now())
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"this field may not be blank"}, verr.Fields["title"])
	require.Equal(t, []string{"detail 1: title: this field may not be blank"}, verr.Fields["details"])
	require.Equal(t, "Logo design", o.Title)
	require.Equal(t, "premium tier", o.Tier(models.OfferTypePremium).Title)
}
