package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"coderr/internal/policy"
	"coderr/models"

	"go.uber.org/zap"
)

// ReviewStore - журнал отзывов. Пара (reviewer, business_user) уникальна на уровне хранилища.
type ReviewStore interface {
	ProfileStore
	HasReview(ctx context.Context, reviewerID, businessID int64) (bool, error)
	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id int64) error
	ListReviews(ctx context.Context, q models.ReviewQuery) ([]models.Review, error)
}

const duplicateReviewMessage = "you have already reviewed this business user"

type ReviewService struct {
	store ReviewStore
	Deps
}

func NewReviewService(store ReviewStore, deps Deps) *ReviewService {
	return &ReviewService{store: store, Deps: deps.withDefaults()}
}

func (s *ReviewService) Create(ctx context.Context, p *models.Principal, in models.ReviewInput) (*models.Review, error) {
	if err := policy.RoleGate(p, http.MethodPost, policy.Review); err != nil {
		return nil, s.denied(err, p, "review")
	}
	if err := models.ValidateReviewCreate(in); err != nil {
		return nil, err
	}

	businessID := *in.BusinessUser
	target, err := s.store.GetProfile(ctx, businessID)
	switch {
	case err == nil && target.Role != models.RoleBusiness:
		return nil, models.NewValidationError("business_user", "the reviewed user must be a business user")
	case errors.Is(err, models.ErrRecordNotFound):
		return nil, models.NewValidationError("business_user", "invalid pk - object does not exist")
	case err != nil:
		return nil, err
	}

	reviewerID := p.Profile.ID
	exists, err := s.store.HasReview(ctx, reviewerID, businessID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.Metrics.IncrConflict("review", "precheck")
		return nil, models.NewValidationError("business_user", duplicateReviewMessage)
	}

	now := s.Now()
	review := &models.Review{
		BusinessUserID: businessID,
		ReviewerID:     reviewerID,
		Rating:         *in.Rating,
		Description:    strings.TrimSpace(*in.Description),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		if isDuplicate(err) {
			s.Metrics.IncrConflict("review", "constraint")
			return nil, models.NewValidationError("business_user", duplicateReviewMessage)
		}
		return nil, err
	}

	s.Metrics.IncrReview("created")
	s.Logger.Info("review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("reviewer_id", reviewerID),
		zap.Int64("business_id", businessID),
		zap.Int("rating", review.Rating),
	)
	return review, nil
}

// Update требует и rating, и description
func (s *ReviewService) Update(ctx context.Context, p *models.Principal, id int64, in models.ReviewInput) (*models.Review, error) {
	if err := policy.RoleGate(p, http.MethodPatch, policy.Review); err != nil {
		return nil, s.denied(err, p, "review")
	}

	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return nil, notFound(err, "review", id)
	}
	if err := policy.OwnershipGate(p, http.MethodPatch, policy.Review, review.ReviewerID); err != nil {
		return nil, s.denied(err, p, "review")
	}
	if err := models.ValidateReviewUpdate(in); err != nil {
		return nil, err
	}

	review.Rating = *in.Rating
	review.Description = strings.TrimSpace(*in.Description)
	review.UpdatedAt = s.Now()
	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, notFound(err, "review", id)
	}

	s.Metrics.IncrReview("updated")
	s.Logger.Info("review updated", zap.Int64("review_id", id), zap.Int("rating", review.Rating))
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, p *models.Principal, id int64) error {
	if err := policy.RoleGate(p, http.MethodDelete, policy.Review); err != nil {
		return s.denied(err, p, "review")
	}

	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return notFound(err, "review", id)
	}
	if err := policy.OwnershipGate(p, http.MethodDelete, policy.Review, review.ReviewerID); err != nil {
		return s.denied(err, p, "review")
	}
	if err := s.store.DeleteReview(ctx, id); err != nil {
		return notFound(err, "review", id)
	}

	s.Metrics.IncrReview("deleted")
	s.Logger.Info("review deleted", zap.Int64("review_id", id))
	return nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return nil, notFound(err, "review", id)
	}
	return review, nil
}

func (s *ReviewService) List(ctx context.Context, q models.ReviewQuery) ([]models.Review, error) {
	return s.store.ListReviews(ctx, q)
}
