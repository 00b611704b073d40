package memory

import (
	"context"
	"sort"
	"strings"

	"coderr/models"
)

func cloneOffer(o models.Offer) models.Offer {
	out := o
	out.Details = make([]models.OfferDetail, len(o.Details))
	for i, d := range o.Details {
		out.Details[i] = cloneDetail(d)
	}
	if o.Image != nil {
		img := *o.Image
		out.Image = &img
	}
	out.Owner = nil
	return out
}

func cloneDetail(d models.OfferDetail) models.OfferDetail {
	out := d
	out.Features = append([]string{}, d.Features...)
	return out
}

func checkTierTypes(o *models.Offer) error {
	seen := make(map[models.OfferType]bool, len(o.Details))
	for _, d := range o.Details {
		if seen[d.OfferType] {
			return &models.DuplicateError{Constraint: ConstraintOfferType}
		}
		seen[d.OfferType] = true
	}
	return nil
}

func (s *Store) withOwner(o models.Offer) models.Offer {
	if p, ok := s.profiles[o.OwnerID]; ok {
		o.Owner = &models.UserDetails{FirstName: p.FirstName, LastName: p.LastName, Username: p.Username}
	}
	return o
}

func (s *Store) CreateOffer(ctx context.Context, o *models.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkTierTypes(o); err != nil {
		return err
	}
	if _, ok := s.profiles[o.OwnerID]; !ok {
		return models.ErrRecordNotFound
	}

	s.offerSeq++
	o.ID = s.offerSeq
	for i := range o.Details {
		s.detailSeq++
		o.Details[i].ID = s.detailSeq
		o.Details[i].OfferID = o.ID
	}
	s.offers[o.ID] = cloneOffer(*o)
	return nil
}

func (s *Store) GetOffer(ctx context.Context, id int64) (*models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offers[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	out := s.withOwner(cloneOffer(o))
	return &out, nil
}

// UpdateOffer выполняет mutate под блокировкой записи; при ошибке состояние не меняется
func (s *Store) UpdateOffer(ctx context.Context, id int64, mutate func(*models.Offer) error) (*models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.offers[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	working := cloneOffer(current)
	if err := mutate(&working); err != nil {
		return nil, err
	}
	if err := checkTierTypes(&working); err != nil {
		return nil, err
	}
	s.offers[id] = cloneOffer(working)

	out := s.withOwner(cloneOffer(working))
	return &out, nil
}

// DeleteOffer удаляет предложение с пакетами; заказы сохраняют снимок, ссылка на пакет обнуляется
func (s *Store) DeleteOffer(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	removed := make(map[int64]bool, len(o.Details))
	for _, d := range o.Details {
		removed[d.ID] = true
	}
	for oid, order := range s.orders {
		if order.OfferDetailID != nil && removed[*order.OfferDetailID] {
			order.OfferDetailID = nil
			s.orders[oid] = order
		}
	}
	delete(s.offers, id)
	return nil
}

// ListOffers: фильтр -> поиск -> сортировка -> страница
func (s *Store) ListOffers(ctx context.Context, q models.OfferQuery) ([]models.Offer, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(q.Search)
	matched := make([]models.Offer, 0, len(s.offers))
	for _, o := range s.offers {
		if q.CreatorID != nil && o.OwnerID != *q.CreatorID {
			continue
		}
		if q.MaxDeliveryTime != nil && o.MinDeliveryTime > *q.MaxDeliveryTime {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Title), search) &&
			!strings.Contains(strings.ToLower(o.Description), search) {
			continue
		}
		matched = append(matched, o)
	}

	sortOffers(matched, q.Ordering)

	total := len(matched)
	start, end := q.Offset(), q.Offset()+q.Limit()
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]models.Offer, 0, end-start)
	for _, o := range matched[start:end] {
		page = append(page, s.withOwner(cloneOffer(o)))
	}
	return page, total, nil
}

func sortOffers(offers []models.Offer, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i], offers[j]
		var cmp int
		switch field {
		case "min_price":
			cmp = a.MinPrice.Cmp(b.MinPrice)
		default:
			cmp = a.UpdatedAt.Compare(b.UpdatedAt)
		}
		if cmp == 0 {
			cmp = compareIDs(a.ID, b.ID)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareIDs(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (s *Store) GetOfferDetail(ctx context.Context, id int64) (*models.OfferDetail, error) {
	d, _, err := s.GetOfferDetailWithOwner(ctx, id)
	return d, err
}

func (s *Store) GetOfferDetailWithOwner(ctx context.Context, detailID int64) (*models.OfferDetail, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.offers {
		for _, d := range o.Details {
			if d.ID == detailID {
				out := cloneDetail(d)
				return &out, o.OwnerID, nil
			}
		}
	}
	return nil, 0, models.ErrRecordNotFound
}
