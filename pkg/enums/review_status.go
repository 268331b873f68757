package enums

import "fmt"

// ReviewStatus tracks moderation of customer reviews.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

var validReviewStatuses = []ReviewStatus{
	ReviewStatusPending,
	ReviewStatusApproved,
	ReviewStatusRejected,
}

func (s ReviewStatus) String() string {
	return string(s)
}

func (s ReviewStatus) IsValid() bool {
	for _, candidate := range validReviewStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReviewStatus converts raw input into a ReviewStatus.
func ParseReviewStatus(value string) (ReviewStatus, error) {
	for _, candidate := range validReviewStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid review status %q", value)
}
