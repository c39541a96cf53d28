package domain

type FAQ struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQRepository interface {
	CreateFAQ(faq *FAQ) (*FAQ, error)
	ListFAQs() ([]FAQ, error)
	CountFAQs() (int, error)
}

type FAQUseCase interface {
	ListFAQs() ([]FAQ, error)
	CreateFAQ(question, answer string) (*FAQ, error)
}
