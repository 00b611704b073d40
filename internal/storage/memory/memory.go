// Package memory - хранилище в памяти с теми же ограничениями уникальности
// и каскадами, что и PostgreSQL-схема. Используется в тестах и при STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"coderr/models"
)

// Имена ограничений совпадают с миграциями
const (
	ConstraintProfileUsername = "user_profile_username_key"
	ConstraintProfileUser     = "user_profile_user_id_key"
	ConstraintOfferType       = "offer_detail_offer_id_offer_type_key"
	ConstraintOrderDetail     = "orders_customer_detail_key"
	ConstraintReviewPair      = "review_reviewer_business_key"
)

type Store struct {
	mu sync.RWMutex

	profileSeq, offerSeq, detailSeq, orderSeq, reviewSeq int64

	profiles map[int64]models.UserProfile
	offers   map[int64]models.Offer
	orders   map[int64]models.Order
	reviews  map[int64]models.Review

	now func() time.Time
}

func New() *Store {
	return &Store{
		profiles: make(map[int64]models.UserProfile),
		offers:   make(map[int64]models.Offer),
		orders:   make(map[int64]models.Order),
		reviews:  make(map[int64]models.Review),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Ping для проверки готовности, как у SQL-хранилища
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error { return nil }

// AddProfile сохраняет новый профиль; username и user_id уникальны
func (s *Store) AddProfile(ctx context.Context, p *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkProfileUnique(p, 0); err != nil {
		return err
	}
	s.profileSeq++
	p.ID = s.profileSeq
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.profiles[p.ID] = *p
	return nil
}

// UpsertProfile создает профиль или обновляет существующий с тем же username
func (s *Store) UpsertProfile(ctx context.Context, p *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.profiles {
		if existing.Username != p.Username {
			continue
		}
		p.ID = id
		p.CreatedAt = existing.CreatedAt
		if err := s.checkProfileUnique(p, id); err != nil {
			return err
		}
		s.profiles[id] = *p
		return nil
	}

	if err := s.checkProfileUnique(p, 0); err != nil {
		return err
	}
	s.profileSeq++
	p.ID = s.profileSeq
	p.CreatedAt = s.now()
	s.profiles[p.ID] = *p
	return nil
}

func (s *Store) checkProfileUnique(p *models.UserProfile, self int64) error {
	for id, existing := range s.profiles {
		if id == self {
			continue
		}
		if existing.Username == p.Username {
			return &models.DuplicateError{Constraint: ConstraintProfileUsername}
		}
		if existing.UserID == p.UserID {
			return &models.DuplicateError{Constraint: ConstraintProfileUser}
		}
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return &p, nil
}

func (s *Store) GetProfileByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			out := p
			return &out, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (s *Store) PlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.PlatformStats{
		ReviewCount: len(s.reviews),
		OfferCount:  len(s.offers),
	}
	for _, p := range s.profiles {
		if p.Role == models.RoleBusiness {
			stats.BusinessProfileCount++
		}
	}
	if len(s.reviews) > 0 {
		sum := 0
		for _, r := range s.reviews {
			sum += r.Rating
		}
		stats.AverageRating = float64(sum) / float64(len(s.reviews))
	}
	return stats, nil
}
