package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Фиксированный размер страницы списка предложений
const OfferPageSize = 6

// ErrInvalidPage - номер страницы вне диапазона
var ErrInvalidPage = &NotFoundError{Resource: "page", Detail: "invalid page"}

// Параметры списка предложений: filter -> search -> order -> paginate
type OfferQuery struct {
	CreatorID       *int64
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
	PageSize        int
}

// Limit и Offset для текущей страницы
func (q OfferQuery) Limit() int  { return q.PageSize }
func (q OfferQuery) Offset() int { return (q.Page - 1) * q.PageSize }

// Параметры списка отзывов
type ReviewQuery struct {
	BusinessUserID *int64
	ReviewerID     *int64
	Ordering       string
}

var offerOrderings = map[string]bool{
	"min_price": true, "-min_price": true,
	"updated_at": true, "-updated_at": true,
}

var reviewOrderings = map[string]bool{
	"updated_at": true, "-updated_at": true,
	"rating": true, "-rating": true,
}

const defaultOrdering = "-updated_at"

// ParseOfferQuery разбирает query-параметры списка предложений
func ParseOfferQuery(v url.Values) (OfferQuery, error) {
	q := OfferQuery{
		Search:   strings.TrimSpace(v.Get("search")),
		Ordering: normalizeOrdering(v.Get("ordering"), offerOrderings),
		Page:     1,
		PageSize: OfferPageSize,
	}
	verr := &ValidationError{}

	if raw := v.Get("creator_id"); raw != "" {
		id, err := parsePositive(raw)
		if err != nil {
			verr.Add("creator_id", "must be an integer greater than 0")
		} else {
			id64 := int64(id)
			q.CreatorID = &id64
		}
	}
	if raw := v.Get("max_delivery_time"); raw != "" {
		days, err := parsePositive(raw)
		if err != nil {
			verr.Add("max_delivery_time", "must be an integer greater than 0")
		} else {
			q.MaxDeliveryTime = &days
		}
	}
	if raw := v.Get("page"); raw != "" {
		page, err := parsePositive(raw)
		if err != nil {
			return q, ErrInvalidPage
		}
		q.Page = page
	}
	// page_size принимается, но не больше фиксированного размера
	if raw := v.Get("page_size"); raw != "" {
		if size, err := parsePositive(raw); err == nil && size < OfferPageSize {
			q.PageSize = size
		}
	}

	return q, verr.Err()
}

// ParseReviewQuery разбирает query-параметры списка отзывов
func ParseReviewQuery(v url.Values) (ReviewQuery, error) {
	q := ReviewQuery{Ordering: normalizeOrdering(v.Get("ordering"), reviewOrderings)}
	verr := &ValidationError{}

	for field, dst := range map[string]**int64{
		"business_user_id": &q.BusinessUserID,
		"reviewer_id":      &q.ReviewerID,
	} {
		raw := v.Get(field)
		if raw == "" {
			continue
		}
		id, err := parsePositive(raw)
		if err != nil {
			verr.Add(field, "must be an integer greater than 0")
			continue
		}
		id64 := int64(id)
		*dst = &id64
	}
	return q, verr.Err()
}

// неизвестная сортировка игнорируется
func normalizeOrdering(raw string, allowed map[string]bool) string {
	raw = strings.TrimSpace(raw)
	if allowed[raw] {
		return raw
	}
	return defaultOrdering
}

func parsePositive(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
