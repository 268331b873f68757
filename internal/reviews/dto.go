package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/pkg/db/models"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
)

// ReviewerDTO is the public slice of the review author.
type ReviewerDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar,omitempty"`
}

// ReviewDTO is the review payload returned to clients.
type ReviewDTO struct {
	ID                 uuid.UUID          `json:"id"`
	ProductID          uuid.UUID          `json:"product_id"`
	Reviewer           *ReviewerDTO       `json:"reviewer,omitempty"`
	Rating             int                `json:"rating"`
	Title              *string            `json:"title,omitempty"`
	Comment            string             `json:"comment"`
	Images             []string           `json:"images"`
	IsVerifiedPurchase bool               `json:"is_verified_purchase"`
	Helpful            int                `json:"helpful"`
	Status             enums.ReviewStatus `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
}

// ListResult is a paginated slice of a product's approved reviews.
type ListResult struct {
	Items       []ReviewDTO `json:"items"`
	Total       int64       `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
	Limit       int         `json:"limit"`
}

// NewReviewDTO maps a review row onto the API payload, surfacing the joined
// reviewer when it loaded.
func NewReviewDTO(row *models.Review) *ReviewDTO {
	dto := &ReviewDTO{
		ID:                 row.ID,
		ProductID:          row.ProductID,
		Rating:             row.Rating,
		Title:              row.Title,
		Comment:            row.Comment,
		Images:             append([]string{}, row.Images...),
		IsVerifiedPurchase: row.IsVerifiedPurchase,
		Helpful:            row.Helpful,
		Status:             row.Status,
		CreatedAt:          row.CreatedAt,
	}
	if row.User != nil {
		dto.Reviewer = &ReviewerDTO{
			ID:     row.User.ID,
			Name:   row.User.Name,
			Avatar: row.User.Avatar,
		}
	}
	return dto
}

// NewReviewDTOs maps a slice of rows.
func NewReviewDTOs(rows []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewReviewDTO(&rows[i]))
	}
	return out
}
