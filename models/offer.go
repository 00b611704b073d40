package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"coderr/internal/validation"

	"github.com/shopspring/decimal"
)

// Количество пакетов в каждом предложении
const TiersPerOffer = 3

// Входные данные пакета. Указатели различают "не передано" и нулевое значение.
type OfferDetailInput struct {
	Title              *string          `json:"title" validate:"required,min=3,max=255" patch:"omitnil,min=3,max=255"`
	Revisions          *int             `json:"revisions" validate:"required,gte=-1" patch:"omitnil,gte=-1"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" validate:"required,gt=0" patch:"omitnil,gt=0"`
	Price              *decimal.Decimal `json:"price" validate:"required,gt=0" patch:"omitnil,gt=0"`
	OfferType          *string          `json:"offer_type"`
	Features           []string         `json:"features" validate:"omitempty,dive,max=255" patch:"omitnil,dive,max=255"`
}

// Входные данные предложения (создание и частичное обновление)
type OfferInput struct {
	Title       *string            `json:"title" validate:"required,min=1,max=100" patch:"omitnil,min=1,max=100"`
	Description *string            `json:"description" validate:"required,min=1,max=1000" patch:"omitnil,min=1,max=1000"`
	Image       *string            `json:"image" validate:"omitempty,max=255" patch:"omitnil,max=255"`
	Details     []OfferDetailInput `json:"details" validate:"-" patch:"-"`
}

// Цена хранится как NUMERIC(12,2)
const (
	priceScale = 2
	maxPrice   = 10_000_000_000
)

// ValidateOfferCreate: ровно 3 пакета, типы - перестановка {basic, standard, premium}
func ValidateOfferCreate(in OfferInput) error {
	verr := &ValidationError{}
	verr.Merge(validation.Struct(validation.Create, in))
	checkNotBlank(verr, "title", in.Title)
	checkNotBlank(verr, "description", in.Description)

	if len(in.Details) != TiersPerOffer {
		verr.Add("details", fmt.Sprintf("an offer must contain exactly %d details", TiersPerOffer))
		return verr.Err()
	}

	validateTierTypes(verr, in.Details)
	for i, d := range in.Details {
		addDetailErrors(verr, i, validation.Struct(validation.Create, d))
		addDetailErrors(verr, i, detailValueErrors(d))
	}
	return verr.Err()
}

// ValidateOfferPatch: не больше 3 пакетов, тип обязателен и не повторяется
func ValidateOfferPatch(in OfferInput) error {
	verr := &ValidationError{}
	verr.Merge(validation.Struct(validation.Patch, in))
	checkNotBlank(verr, "title", in.Title)
	checkNotBlank(verr, "description", in.Description)

	if in.Details == nil {
		return verr.Err()
	}
	if len(in.Details) > TiersPerOffer {
		verr.Add("details", fmt.Sprintf("an offer may contain at most %d details", TiersPerOffer))
		return verr.Err()
	}

	validateTierTypes(verr, in.Details)
	for i, d := range in.Details {
		addDetailErrors(verr, i, validation.Struct(validation.Patch, d))
		addDetailErrors(verr, i, detailValueErrors(d))
	}
	return verr.Err()
}

func validateTierTypes(verr *ValidationError, details []OfferDetailInput) {
	seen := make(map[OfferType]int, len(details))
	for i, d := range details {
		if d.OfferType == nil || *d.OfferType == "" {
			verr.Add("details", fmt.Sprintf("offer_type is required in detail %d", i+1))
			continue
		}
		t := OfferType(*d.OfferType)
		if !t.Valid() {
			verr.Add("details", fmt.Sprintf("offer_type in detail %d is invalid, allowed values are: basic, standard, premium", i+1))
			continue
		}
		seen[t]++
	}
	for _, t := range OfferTypes {
		if seen[t] > 1 {
			verr.Add("details", fmt.Sprintf("offer_type '%s' can only be used for a single detail", t))
		}
	}
}

// detailValueErrors - правила, которые не выражаются тегами: пустой заголовок из
// пробелов и цена, теряющая значение при округлении до копеек
func detailValueErrors(d OfferDetailInput) map[string][]string {
	out := map[string][]string{}
	if isBlank(d.Title) {
		out["title"] = append(out["title"], blankMessage)
	}
	if d.Price != nil {
		if !d.Price.Equal(d.Price.Round(priceScale)) {
			out["price"] = append(out["price"], fmt.Sprintf("ensure that there are no more than %d decimal places", priceScale))
		}
		if d.Price.GreaterThanOrEqual(decimal.NewFromInt(maxPrice)) {
			out["price"] = append(out["price"], "ensure that there are no more than 12 digits in total")
		}
	}
	return out
}

func addDetailErrors(verr *ValidationError, index int, fields map[string][]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		verr.Add("details", fmt.Sprintf("detail %d: %s: %s", index+1, k, strings.Join(fields[k], "; ")))
	}
}

// NewOffer собирает предложение из проверенного ввода
func NewOffer(ownerID int64, in OfferInput) (*Offer, error) {
	if err := ValidateOfferCreate(in); err != nil {
		return nil, err
	}

	o := &Offer{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(*in.Title),
		Description: *in.Description,
		Image:       in.Image,
		Details:     make([]OfferDetail, 0, TiersPerOffer),
	}
	for _, d := range in.Details {
		features := d.Features
		if features == nil {
			features = []string{}
		}
		o.Details = append(o.Details, OfferDetail{
			Title:              *d.Title,
			Revisions:          *d.Revisions,
			DeliveryTimeInDays: *d.DeliveryTimeInDays,
			Price:              d.Price.Round(priceScale),
			OfferType:          OfferType(*d.OfferType),
			Features:           append([]string(nil), features...),
		})
	}
	o.RecomputeMinimums()
	return o, nil
}

// ApplyPatch частично обновляет предложение; пакеты ищутся по offer_type.
// Минимальные цена и срок пересчитываются по всем пакетам после слияния.
func (o *Offer) ApplyPatch(in OfferInput, now time.Time) error {
	if err := ValidateOfferPatch(in); err != nil {
		return err
	}

	if in.Title != nil {
		o.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		o.Description = *in.Description
	}
	if in.Image != nil {
		o.Image = in.Image
	}

	for _, d := range in.Details {
		tier := o.Tier(OfferType(*d.OfferType))
		if tier == nil {
			return &NotFoundError{Resource: fmt.Sprintf("offer detail with offer_type '%s'", *d.OfferType)}
		}
		if d.Title != nil {
			tier.Title = *d.Title
		}
		if d.Revisions != nil {
			tier.Revisions = *d.Revisions
		}
		if d.DeliveryTimeInDays != nil {
			tier.DeliveryTimeInDays = *d.DeliveryTimeInDays
		}
		if d.Price != nil {
			tier.Price = d.Price.Round(priceScale)
		}
		if d.Features != nil {
			tier.Features = append([]string(nil), d.Features...)
		}
	}

	o.RecomputeMinimums()
	o.UpdatedAt = now
	return nil
}

// Tier возвращает пакет заданного типа
func (o *Offer) Tier(t OfferType) *OfferDetail {
	for i := range o.Details {
		if o.Details[i].OfferType == t {
			return &o.Details[i]
		}
	}
	return nil
}

// RecomputeMinimums поддерживает min_price и min_delivery_time в согласии с пакетами
func (o *Offer) RecomputeMinimums() {
	if len(o.Details) == 0 {
		return
	}
	minPrice := o.Details[0].Price
	minDelivery := o.Details[0].DeliveryTimeInDays
	for _, d := range o.Details[1:] {
		if d.Price.LessThan(minPrice) {
			minPrice = d.Price
		}
		if d.DeliveryTimeInDays < minDelivery {
			minDelivery = d.DeliveryTimeInDays
		}
	}
	o.MinPrice = minPrice
	o.MinDeliveryTime = minDelivery
}

// SortTiers упорядочивает пакеты basic, standard, premium
func (o *Offer) SortTiers() {
	rank := func(t OfferType) int {
		for i, v := range OfferTypes {
			if v == t {
				return i
			}
		}
		return len(OfferTypes)
	}
	sort.SliceStable(o.Details, func(i, j int) bool {
		return rank(o.Details[i].OfferType) < rank(o.Details[j].OfferType)
	})
}
