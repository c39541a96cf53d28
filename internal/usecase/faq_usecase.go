package usecase

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

var _ domain.FAQUseCase = (*faqUseCase)(nil)

type faqUseCase struct {
	faqRepo domain.FAQRepository
	log     *logrus.Logger
}

func NewFAQUseCase(repo domain.FAQRepository, logger *logrus.Logger) domain.FAQUseCase {
	return &faqUseCase{
		faqRepo: repo,
		log:     logger,
	}
}

func (uc *faqUseCase) ListFAQs() ([]domain.FAQ, error) {
	faqs, err := uc.faqRepo.ListFAQs()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list FAQs: %v", err)
		return nil, err
	}
	if faqs == nil {
		faqs = []domain.FAQ{}
	}
	return faqs, nil
}

func (uc *faqUseCase) CreateFAQ(question, answer string) (*domain.FAQ, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, errors.New("question and answer cannot be empty")
	}

	faq, err := uc.faqRepo.CreateFAQ(&domain.FAQ{Question: question, Answer: answer})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create FAQ: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: FAQ %d created", faq.ID)
	return faq, nil
}
