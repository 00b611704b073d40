package memory

import (
	"context"
	"sort"
	"strings"

	"coderr/models"
)

func (s *Store) HasReview(ctx context.Context, reviewerID, businessID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasReview(reviewerID, businessID, 0), nil
}

func (s *Store) hasReview(reviewerID, businessID, self int64) bool {
	for id, r := range s.reviews {
		if id != self && r.ReviewerID == reviewerID && r.BusinessUserID == businessID {
			return true
		}
	}
	return false
}

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasReview(r.ReviewerID, r.BusinessUserID, 0) {
		return &models.DuplicateError{Constraint: ConstraintReviewPair}
	}
	s.reviewSeq++
	r.ID = s.reviewSeq
	s.reviews[r.ID] = *r
	return nil
}

func (s *Store) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return &r, nil
}

// UpdateReview меняет только rating, description и updated_at
func (s *Store) UpdateReview(ctx context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.reviews[r.ID]
	if !ok {
		return models.ErrRecordNotFound
	}
	current.Rating = r.Rating
	current.Description = r.Description
	current.UpdatedAt = r.UpdatedAt
	s.reviews[r.ID] = current
	return nil
}

func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *Store) ListReviews(ctx context.Context, q models.ReviewQuery) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		if q.BusinessUserID != nil && r.BusinessUserID != *q.BusinessUserID {
			continue
		}
		if q.ReviewerID != nil && r.ReviewerID != *q.ReviewerID {
			continue
		}
		out = append(out, r)
	}

	desc := strings.HasPrefix(q.Ordering, "-")
	field := strings.TrimPrefix(q.Ordering, "-")
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var cmp int
		switch field {
		case "rating":
			cmp = a.Rating - b.Rating
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
	return out, nil
}
