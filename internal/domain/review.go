package domain

import "time"

type Review struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	Product   string       `json:"product"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Approved  bool         `json:"approved"`
	User      *UserProfile `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ReviewRepository interface {
	CreateReview(review *Review) (*Review, error)
	GetReviewByID(id int64) (*Review, error)
	ListApprovedReviews() ([]Review, error)
	ListApprovedReviewsForProduct(productName string) ([]Review, error)
	ListPendingReviews() ([]Review, error)
	ApproveReview(id int64) (*Review, error)
	DeleteReview(id int64) error
	CountReviews() (int, error)
}

type ReviewUseCase interface {
	// SubmitReview resolves the target product by id (preferred) or name and
	// rejects the submission unless the user owns an order item for it.
	SubmitReview(userID int64, productID int64, productName string, rating int, comment string) (*Review, error)
	ListApprovedReviews() ([]Review, error)
	ListPendingReviews() ([]Review, error)
	ApproveReview(id int64) (*Review, error)
	DeleteReview(id int64) error
}
