package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

var _ domain.ProductUseCase = (*productUseCase)(nil)

type productUseCase struct {
	productRepo domain.ProductRepository
	reviewRepo  domain.ReviewRepository
	log         *logrus.Logger
}

func NewProductUseCase(productRepo domain.ProductRepository, reviewRepo domain.ReviewRepository, logger *logrus.Logger) domain.ProductUseCase {
	return &productUseCase{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		log:         logger,
	}
}

func (uc *productUseCase) ListProducts(filter domain.ProductFilter) ([]domain.Product, error) {
	if filter.Category != "" && !domain.IsValidCategory(filter.Category) {
		return nil, fmt.Errorf("invalid category filter: %s", filter.Category)
	}

	products, err := uc.productRepo.ListProducts(filter)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// GetProduct returns a product together with its approved reviews.
func (uc *productUseCase) GetProduct(id int64) (*domain.Product, []domain.Review, error) {
	if id <= 0 {
		return nil, nil, errors.New("invalid product ID")
	}

	product, err := uc.productRepo.GetProductByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product %d: %v", id, err)
		return nil, nil, err
	}

	reviews, err := uc.reviewRepo.ListApprovedReviewsForProduct(product.Name)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list reviews for product '%s': %v", product.Name, err)
		return nil, nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return product, reviews, nil
}

func validateProduct(product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.Description = strings.TrimSpace(product.Description)

	if product.Name == "" {
		return errors.New("product name cannot be empty")
	}
	if !domain.IsValidCategory(product.Category) {
		return fmt.Errorf("invalid product category: %s", product.Category)
	}
	if product.Price.LessThanOrEqual(decimal.Zero) {
		return errors.New("price must be positive")
	}
	if product.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

func (uc *productUseCase) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		uc.log.Warnf("Use Case: Product creation failed validation: %v", err)
		return nil, err
	}
	if len(product.Sizes) == 0 {
		product.Sizes = domain.DefaultSizes
	}

	created, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product created with ID %d ('%s')", created.ID, created.Name)
	return created, nil
}

func (uc *productUseCase) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	if product.ID <= 0 {
		return nil, errors.New("invalid product ID")
	}
	if err := validateProduct(product); err != nil {
		uc.log.Warnf("Use Case: Product update failed validation: %v", err)
		return nil, err
	}

	updated, err := uc.productRepo.UpdateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product %d: %v", product.ID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product %d updated", updated.ID)
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(id int64) error {
	if id <= 0 {
		return errors.New("invalid product ID")
	}

	if err := uc.productRepo.DeleteProduct(id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Product %d deleted", id)
	return nil
}
