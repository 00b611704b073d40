package models

import "coderr/internal/validation"

// Входные данные отзыва. При обновлении обязательны rating и description.
type ReviewInput struct {
	BusinessUser *int64  `json:"business_user" validate:"required,gt=0" patch:"-"`
	Rating       *int    `json:"rating" validate:"required,min=1,max=5" patch:"required,min=1,max=5"`
	Description  *string `json:"description" validate:"required,min=1,max=500" patch:"required,min=1,max=500"`
}

func ValidateReviewCreate(in ReviewInput) error {
	return validateReview(validation.Create, in)
}

func ValidateReviewUpdate(in ReviewInput) error {
	return validateReview(validation.Patch, in)
}

func validateReview(mode validation.Mode, in ReviewInput) error {
	verr := &ValidationError{}
	verr.Merge(validation.Struct(mode, in))
	checkNotBlank(verr, "description", in.Description)
	return verr.Err()
}
