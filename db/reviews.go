package db

import (
	"context"

	"coderr/models"
)

const reviewColumns = `r.id, r.business_user_id, r.reviewer_id, r.rating, r.description, r.created_at, r.updated_at`

func (s *Storage) HasReview(ctx context.Context, reviewerID, businessID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM review WHERE reviewer_id = $1 AND business_user_id = $2)`
	err := s.db.GetContext(ctx, &exists, query, reviewerID, businessID)
	return exists, translate(err, "check review")
}

// CreateReview: нарушение review_reviewer_business_key возвращается как DuplicateError
func (s *Storage) CreateReview(ctx context.Context, r *models.Review) error {
	query := `
        INSERT INTO review (business_user_id, reviewer_id, rating, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	err := s.db.QueryRowxContext(ctx, query,
		r.BusinessUserID, r.ReviewerID, r.Rating, r.Description, r.CreatedAt, r.UpdatedAt).
		Scan(&r.ID)
	return translate(err, "insert review")
}

func (s *Storage) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	r := &models.Review{}
	if err := s.db.GetContext(ctx, r, `SELECT `+reviewColumns+` FROM review r WHERE r.id = $1`, id); err != nil {
		return nil, translate(err, "get review")
	}
	return r, nil
}

func (s *Storage) UpdateReview(ctx context.Context, r *models.Review) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE review SET rating = $1, description = $2, updated_at = $3 WHERE id = $4`,
		r.Rating, r.Description, r.UpdatedAt, r.ID)
	return requireAffected(res, err, "update review")
}

func (s *Storage) DeleteReview(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM review WHERE id = $1`, id)
	return requireAffected(res, err, "delete review")
}

func (s *Storage) ListReviews(ctx context.Context, q models.ReviewQuery) ([]models.Review, error) {
	filter := reviewFilter(q)
	query := `SELECT ` + reviewColumns + ` FROM review r` + filter.where() +
		orderBy(q.Ordering, reviewOrderColumns, "r.id")

	reviews := []models.Review{}
	if err := s.db.SelectContext(ctx, &reviews, query, filter.args...); err != nil {
		return nil, translate(err, "list reviews")
	}
	return reviews, nil
}
