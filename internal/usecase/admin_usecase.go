package usecase

import (
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

var _ domain.AdminUseCase = (*adminUseCase)(nil)

type adminUseCase struct {
	userRepo    domain.UserRepository
	productRepo domain.ProductRepository
	orderRepo   domain.OrderRepository
	reviewRepo  domain.ReviewRepository
	log         *logrus.Logger
}

func NewAdminUseCase(
	userRepo domain.UserRepository,
	productRepo domain.ProductRepository,
	orderRepo domain.OrderRepository,
	reviewRepo domain.ReviewRepository,
	logger *logrus.Logger,
) domain.AdminUseCase {
	return &adminUseCase{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		reviewRepo:  reviewRepo,
		log:         logger,
	}
}

func (uc *adminUseCase) Stats() (*domain.DashboardStats, error) {
	users, err := uc.userRepo.CountUsers()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to count users: %v", err)
		return nil, err
	}
	products, err := uc.productRepo.CountProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to count products: %v", err)
		return nil, err
	}
	orders, err := uc.orderRepo.CountOrders()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to count orders: %v", err)
		return nil, err
	}
	reviews, err := uc.reviewRepo.CountReviews()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to count reviews: %v", err)
		return nil, err
	}

	return &domain.DashboardStats{
		Users:    users,
		Products: products,
		Orders:   orders,
		Reviews:  reviews,
	}, nil
}

func (uc *adminUseCase) ListUsers() ([]domain.UserProfile, error) {
	users, err := uc.userRepo.ListUsers()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list users: %v", err)
		return nil, err
	}
	if users == nil {
		users = []domain.UserProfile{}
	}
	return users, nil
}
