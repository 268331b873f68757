package controllers

import (
	"net/http"
	"strings"

	"github.com/shopmart-io/shopmart-backend/api/responses"
	"github.com/shopmart-io/shopmart-backend/api/validators"
	reviewsvc "github.com/shopmart-io/shopmart-backend/internal/reviews"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
)

// ListProductReviews serves a product's approved reviews, newest first.
func ListProductReviews(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProductReviews(r.Context(), productID, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createReviewRequest struct {
	Rating  int      `json:"rating" validate:"required,min=1,max=5"`
	Title   *string  `json:"title,omitempty" validate:"omitempty,max=200"`
	Comment string   `json:"comment" validate:"required,max=2000"`
	Images  []string `json:"images,omitempty" validate:"omitempty,dive,max=500"`
}

// CreateReview posts a pending review on a product.
func CreateReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateReview(r.Context(), userID, reviewsvc.CreateReviewInput{
			ProductID: productID,
			Rating:    payload.Rating,
			Title:     payload.Title,
			Comment:   payload.Comment,
			Images:    payload.Images,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type moderateReviewRequest struct {
	Status string `json:"status" validate:"required"`
}

// ModerateReview approves or rejects a pending review.
func ModerateReview(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		reviewID, err := pathUUID(r, "reviewID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload moderateReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseReviewStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		updated, err := svc.ModerateReview(r.Context(), reviewID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
