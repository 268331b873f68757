package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	order "github.com/shopmart-io/shopmart-backend/internal/orders"
	product "github.com/shopmart-io/shopmart-backend/internal/products"
	"github.com/shopmart-io/shopmart-backend/pkg/db"
	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/pagination"
)

// Service exposes review creation, listing and moderation.
type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID, params pagination.Params) (*ListResult, error)
	ModerateReview(ctx context.Context, reviewID uuid.UUID, status enums.ReviewStatus) (*ReviewDTO, error)
}

// CreateReviewInput is the validated payload for posting a review.
type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Title     *string
	Comment   string
	Images    []string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	products *product.Repository
	orders   *order.Repository
}

// NewService constructs a review service instance.
func NewService(repo *Repository, dbClient *db.Client, products *product.Repository, orders *order.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		products: products,
		orders:   orders,
	}, nil
}

// CreateReview posts a pending review. The verified-purchase flag is derived
// from a delivered order containing the product.
func (s *service) CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}

	if _, err := s.products.FindByID(ctx, input.ProductID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load product")
	}

	verified, err := s.orders.HasDeliveredOrderWithProduct(ctx, userID, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check purchase history")
	}

	row := &models.Review{
		ProductID:          input.ProductID,
		UserID:             userID,
		Rating:             input.Rating,
		Title:              input.Title,
		Comment:            comment,
		Images:             input.Images,
		IsVerifiedPurchase: verified,
		Status:             enums.ReviewStatusPending,
	}
	if _, err := s.repo.Create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "reviews_product_user_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create review")
	}

	created, err := s.repo.FindByID(ctx, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to reload review")
	}
	return NewReviewDTO(created), nil
}

// ListProductReviews pages through a product's approved reviews.
func (s *service) ListProductReviews(ctx context.Context, productID uuid.UUID, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	rows, total, err := s.repo.ListApprovedByProduct(ctx, productID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list reviews")
	}
	return &ListResult{
		Items:       NewReviewDTOs(rows),
		Total:       total,
		Pages:       pagination.Pages(total, params.Limit),
		CurrentPage: params.Page,
		Limit:       params.Limit,
	}, nil
}

// ModerateReview approves or rejects a pending review and recomputes the
// product's rating aggregate in the same transaction.
func (s *service) ModerateReview(ctx context.Context, reviewID uuid.UUID, status enums.ReviewStatus) (*ReviewDTO, error) {
	if status != enums.ReviewStatusApproved && status != enums.ReviewStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected")
	}

	var updated *models.Review
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		row, err := repo.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load review")
		}
		if row.Status != enums.ReviewStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "review has already been moderated")
		}

		row.Status = status
		updated, err = repo.Update(ctx, row)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update review")
		}

		average, count, err := repo.ApprovedAggregate(ctx, row.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to aggregate ratings")
		}
		average = math.Round(average*100) / 100
		if err := s.products.WithTx(tx).SetRatingAggregate(ctx, row.ProductID, average, count); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store rating aggregate")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewReviewDTO(updated), nil
}
