package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

var _ domain.ReviewUseCase = (*reviewUseCase)(nil)

type reviewUseCase struct {
	reviewRepo  domain.ReviewRepository
	productRepo domain.ProductRepository
	orderRepo   domain.OrderRepository
	log         *logrus.Logger
}

func NewReviewUseCase(reviewRepo domain.ReviewRepository, productRepo domain.ProductRepository, orderRepo domain.OrderRepository, logger *logrus.Logger) domain.ReviewUseCase {
	return &reviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		log:         logger,
	}
}

// SubmitReview creates an unapproved review for a product the user has
// actually ordered. The review stays invisible in public listings until an
// admin approves it.
func (uc *reviewUseCase) SubmitReview(userID int64, productID int64, productName string, rating int, comment string) (*domain.Review, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	productName = strings.TrimSpace(productName)
	comment = strings.TrimSpace(comment)

	if productID <= 0 && productName == "" {
		uc.log.Warnf("Use Case: Review submission by user %d missing product reference", userID)
		return nil, errors.New("product reference is required")
	}
	if rating < 1 || rating > 5 {
		uc.log.Warnf("Use Case: Review submission by user %d has invalid rating %d", userID, rating)
		return nil, errors.New("rating must be between 1 and 5")
	}
	if comment == "" {
		uc.log.Warnf("Use Case: Review submission by user %d has empty comment", userID)
		return nil, errors.New("comment cannot be empty")
	}

	var product *domain.Product
	var err error
	if productID > 0 {
		product, err = uc.productRepo.GetProductByID(productID)
	} else {
		product, err = uc.productRepo.GetProductByName(productName)
	}
	if err != nil {
		uc.log.Warnf("Use Case: Review submission by user %d - product lookup failed: %v", userID, err)
		return nil, err
	}

	purchased, err := uc.orderRepo.HasOrderItem(userID, product.ID)
	if err != nil {
		uc.log.Errorf("Use Case: Purchase check failed for user %d, product %d: %v", userID, product.ID, err)
		return nil, fmt.Errorf("could not verify purchase: %w", err)
	}
	if !purchased {
		uc.log.Warnf("Use Case: Review rejected - user %d never ordered product '%s'", userID, product.Name)
		return nil, domain.ErrNotPurchased
	}

	review := &domain.Review{
		UserID:   userID,
		Product:  product.Name,
		Rating:   rating,
		Comment:  comment,
		Approved: false,
	}

	created, err := uc.reviewRepo.CreateReview(review)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create review for user %d: %v", userID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Review %d submitted by user %d for product '%s' (pending approval)", created.ID, userID, product.Name)
	return created, nil
}

func (uc *reviewUseCase) ListApprovedReviews() ([]domain.Review, error) {
	reviews, err := uc.reviewRepo.ListApprovedReviews()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list approved reviews: %v", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (uc *reviewUseCase) ListPendingReviews() ([]domain.Review, error) {
	reviews, err := uc.reviewRepo.ListPendingReviews()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list pending reviews: %v", err)
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (uc *reviewUseCase) ApproveReview(id int64) (*domain.Review, error) {
	if id <= 0 {
		return nil, errors.New("invalid review ID")
	}

	review, err := uc.reviewRepo.ApproveReview(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to approve review %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Review %d approved", id)
	return review, nil
}

func (uc *reviewUseCase) DeleteReview(id int64) error {
	if id <= 0 {
		return errors.New("invalid review ID")
	}

	if err := uc.reviewRepo.DeleteReview(id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete review %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Review %d deleted", id)
	return nil
}
