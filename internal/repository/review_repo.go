package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type postgresReviewRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresReviewRepository(db *sql.DB, logger *logrus.Logger) domain.ReviewRepository {
	return &postgresReviewRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresReviewRepository) CreateReview(review *domain.Review) (*domain.Review, error) {
	query := `
        INSERT INTO reviews (user_id, product, rating, comment, approved)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query, review.UserID, review.Product, review.Rating, review.Comment, review.Approved).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		r.log.Errorf("Repository: Failed to create review for product '%s' by user %d: %v", review.Product, review.UserID, err)
		return nil, fmt.Errorf("could not create review: %w", err)
	}

	r.log.Infof("Repository: Review %d created for product '%s' by user %d", review.ID, review.Product, review.UserID)
	return review, nil
}

func (r *postgresReviewRepository) GetReviewByID(id int64) (*domain.Review, error) {
	query := `
        SELECT id, user_id, product, rating, comment, approved, created_at, updated_at
        FROM reviews
        WHERE id = $1`
	review := &domain.Review{}

	err := r.db.QueryRow(query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.Product,
		&review.Rating,
		&review.Comment,
		&review.Approved,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Review with ID %d not found", id)
			return nil, domain.NewNotFoundError("review", id)
		}
		r.log.Errorf("Repository: Failed to get review by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve review: %w", err)
	}

	return review, nil
}

func (r *postgresReviewRepository) listReviews(where string, args ...interface{}) ([]domain.Review, error) {
	query := `
        SELECT rv.id, rv.user_id, rv.product, rv.rating, rv.comment, rv.approved, rv.created_at, rv.updated_at,
               u.id, u.name, u.email, u.role
        FROM reviews rv
        JOIN users u ON u.id = rv.user_id
        ` + where + `
        ORDER BY rv.id DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Errorf("Repository: Failed to list reviews: %v", err)
		return nil, fmt.Errorf("could not list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		review.User = &domain.UserProfile{}
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.Product,
			&review.Rating,
			&review.Comment,
			&review.Approved,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.User.ID,
			&review.User.Name,
			&review.User.Email,
			&review.User.Role,
		); err != nil {
			r.log.Errorf("Repository: Failed to scan review row: %v", err)
			return nil, fmt.Errorf("error scanning review data: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

func (r *postgresReviewRepository) ListApprovedReviews() ([]domain.Review, error) {
	return r.listReviews(`WHERE rv.approved = TRUE`)
}

func (r *postgresReviewRepository) ListApprovedReviewsForProduct(productName string) ([]domain.Review, error) {
	return r.listReviews(`WHERE rv.approved = TRUE AND rv.product = $1`, productName)
}

func (r *postgresReviewRepository) ListPendingReviews() ([]domain.Review, error) {
	return r.listReviews(`WHERE rv.approved = FALSE`)
}

func (r *postgresReviewRepository) ApproveReview(id int64) (*domain.Review, error) {
	query := `
        UPDATE reviews
        SET approved = TRUE, updated_at = NOW()
        WHERE id = $1
        RETURNING id, user_id, product, rating, comment, approved, created_at, updated_at`
	review := &domain.Review{}

	err := r.db.QueryRow(query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.Product,
		&review.Rating,
		&review.Comment,
		&review.Approved,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Review with ID %d not found for approval", id)
			return nil, domain.NewNotFoundError("review", id)
		}
		r.log.Errorf("Repository: Failed to approve review %d: %v", id, err)
		return nil, fmt.Errorf("could not approve review: %w", err)
	}

	r.log.Infof("Repository: Review %d approved", id)
	return review, nil
}

func (r *postgresReviewRepository) DeleteReview(id int64) error {
	result, err := r.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete review %d: %v", id, err)
		return fmt.Errorf("could not delete review: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm review delete: %w", err)
	}
	if affected == 0 {
		r.log.Warnf("Repository: Review with ID %d not found for delete", id)
		return domain.NewNotFoundError("review", id)
	}

	r.log.Infof("Repository: Review %d deleted", id)
	return nil
}

func (r *postgresReviewRepository) CountReviews() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		r.log.Errorf("Repository: Failed to count reviews: %v", err)
		return 0, fmt.Errorf("could not count reviews: %w", err)
	}
	return count, nil
}
