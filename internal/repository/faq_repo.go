package repository

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type postgresFAQRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresFAQRepository(db *sql.DB, logger *logrus.Logger) domain.FAQRepository {
	return &postgresFAQRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresFAQRepository) CreateFAQ(faq *domain.FAQ) (*domain.FAQ, error) {
	query := `
        INSERT INTO faqs (question, answer)
        VALUES ($1, $2)
        RETURNING id`

	if err := r.db.QueryRow(query, faq.Question, faq.Answer).Scan(&faq.ID); err != nil {
		r.log.Errorf("Repository: Failed to create FAQ: %v", err)
		return nil, fmt.Errorf("could not create faq: %w", err)
	}

	r.log.Infof("Repository: FAQ %d created", faq.ID)
	return faq, nil
}

func (r *postgresFAQRepository) ListFAQs() ([]domain.FAQ, error) {
	rows, err := r.db.Query(`SELECT id, question, answer FROM faqs ORDER BY id`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list FAQs: %v", err)
		return nil, fmt.Errorf("could not list faqs: %w", err)
	}
	defer rows.Close()

	var faqs []domain.FAQ
	for rows.Next() {
		var faq domain.FAQ
		if err := rows.Scan(&faq.ID, &faq.Question, &faq.Answer); err != nil {
			r.log.Errorf("Repository: Failed to scan FAQ row: %v", err)
			return nil, fmt.Errorf("error scanning faq data: %w", err)
		}
		faqs = append(faqs, faq)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faqs: %w", err)
	}

	return faqs, nil
}

func (r *postgresFAQRepository) CountFAQs() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM faqs`).Scan(&count); err != nil {
		r.log.Errorf("Repository: Failed to count FAQs: %v", err)
		return 0, fmt.Errorf("could not count faqs: %w", err)
	}
	return count, nil
}
