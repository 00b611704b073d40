package validation_test

import (
	"testing"

	"coderr/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  *string          `json:"name" validate:"required,min=3" patch:"omitnil,min=3"`
	Price *decimal.Decimal `json:"price" validate:"required,gt=0" patch:"omitnil,gt=0"`
	Kind  string           `json:"kind" validate:"oneof=a b"`
}

func TestStruct_Create(t *testing.T) {
	name := "box"
	price := decimal.RequireFromString("9.99")

	require.Nil(t, validation.Struct(validation.Create, item{Name: &name, Price: &price, Kind: "a"}))

	errs := validation.Struct(validation.Create, item{Kind: "c"})
	require.Equal(t, []string{"this field is required"}, errs["name"])
	require.Equal(t, []string{"this field is required"}, errs["price"])
	require.Equal(t, []string{"must be one of: a, b"}, errs["kind"])
}

func TestStruct_DecimalComparedAsNumber(t *testing.T) {
	name := "box"
	zero := decimal.Zero

	errs := validation.Struct(validation.Create, item{Name: &name, Price: &zero, Kind: "a"})
	require.Equal(t, []string{"ensure this value is greater than 0"}, errs["price"])
}

func TestStruct_PatchSkipsMissingFields(t *testing.T) {
	require.Nil(t, validation.Struct(validation.Patch, item{}))

	short := "ab"
	errs := validation.Struct(validation.Patch, item{Name: &short})
	require.Equal(t, []string{"ensure this field has at least 3 characters"}, errs["name"])
}
