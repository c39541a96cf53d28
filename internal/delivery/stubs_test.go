package delivery

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

var errStubNotConfigured = errors.New("stub method not configured")

// The stubs below satisfy the use case interfaces with overridable function
// fields. A call to an unconfigured method fails loudly instead of passing
// silently.

type stubUserUseCase struct {
	registerFn       func(name, email, password string) (*domain.User, error)
	authenticateFn   func(email, password string) (*domain.AuthResponse, error)
	getProfileFn     func(id int64) (*domain.UserProfile, error)
	updateProfileFn  func(id int64, name, email string) (*domain.UserProfile, error)
	changePasswordFn func(id int64, currentPassword, newPassword string) error
}

func (s *stubUserUseCase) RegisterUser(name, email, password string) (*domain.User, error) {
	if s.registerFn == nil {
		return nil, errStubNotConfigured
	}
	return s.registerFn(name, email, password)
}

func (s *stubUserUseCase) AuthenticateUser(email, password string) (*domain.AuthResponse, error) {
	if s.authenticateFn == nil {
		return nil, errStubNotConfigured
	}
	return s.authenticateFn(email, password)
}

func (s *stubUserUseCase) GetUserProfile(id int64) (*domain.UserProfile, error) {
	if s.getProfileFn == nil {
		return nil, errStubNotConfigured
	}
	return s.getProfileFn(id)
}

func (s *stubUserUseCase) UpdateProfile(id int64, name, email string) (*domain.UserProfile, error) {
	if s.updateProfileFn == nil {
		return nil, errStubNotConfigured
	}
	return s.updateProfileFn(id, name, email)
}

func (s *stubUserUseCase) ChangePassword(id int64, currentPassword, newPassword string) error {
	if s.changePasswordFn == nil {
		return errStubNotConfigured
	}
	return s.changePasswordFn(id, currentPassword, newPassword)
}

type stubOrderUseCase struct {
	createFn       func(userID int64, lines []domain.CartLine) (*domain.Order, error)
	getFn          func(id int64) (*domain.Order, error)
	listByUserFn   func(userID int64, limit, offset int) ([]domain.Order, error)
	listAllFn      func() ([]domain.Order, error)
	approveFn      func(id int64) (*domain.Order, error)
	declineFn      func(id int64, reason string) (*domain.Order, error)
	completeFn     func(id int64) (*domain.Order, error)
	hasPurchasedFn func(userID, productID int64) (bool, error)
}

func (s *stubOrderUseCase) CreateOrder(_ context.Context, userID int64, lines []domain.CartLine) (*domain.Order, error) {
	if s.createFn == nil {
		return nil, errStubNotConfigured
	}
	return s.createFn(userID, lines)
}

func (s *stubOrderUseCase) GetOrderByID(id int64) (*domain.Order, error) {
	if s.getFn == nil {
		return nil, errStubNotConfigured
	}
	return s.getFn(id)
}

func (s *stubOrderUseCase) ListOrdersByUserID(userID int64, limit, offset int) ([]domain.Order, error) {
	if s.listByUserFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listByUserFn(userID, limit, offset)
}

func (s *stubOrderUseCase) ListAllOrders() ([]domain.Order, error) {
	if s.listAllFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listAllFn()
}

func (s *stubOrderUseCase) ApproveOrder(_ context.Context, id int64) (*domain.Order, error) {
	if s.approveFn == nil {
		return nil, errStubNotConfigured
	}
	return s.approveFn(id)
}

func (s *stubOrderUseCase) DeclineOrder(_ context.Context, id int64, reason string) (*domain.Order, error) {
	if s.declineFn == nil {
		return nil, errStubNotConfigured
	}
	return s.declineFn(id, reason)
}

func (s *stubOrderUseCase) CompleteOrder(_ context.Context, id int64) (*domain.Order, error) {
	if s.completeFn == nil {
		return nil, errStubNotConfigured
	}
	return s.completeFn(id)
}

func (s *stubOrderUseCase) HasPurchased(userID, productID int64) (bool, error) {
	if s.hasPurchasedFn == nil {
		return false, errStubNotConfigured
	}
	return s.hasPurchasedFn(userID, productID)
}

type stubReviewUseCase struct {
	submitFn       func(userID, productID int64, productName string, rating int, comment string) (*domain.Review, error)
	listApprovedFn func() ([]domain.Review, error)
	listPendingFn  func() ([]domain.Review, error)
	approveFn      func(id int64) (*domain.Review, error)
	deleteFn       func(id int64) error
}

func (s *stubReviewUseCase) SubmitReview(userID, productID int64, productName string, rating int, comment string) (*domain.Review, error) {
	if s.submitFn == nil {
		return nil, errStubNotConfigured
	}
	return s.submitFn(userID, productID, productName, rating, comment)
}

func (s *stubReviewUseCase) ListApprovedReviews() ([]domain.Review, error) {
	if s.listApprovedFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listApprovedFn()
}

func (s *stubReviewUseCase) ListPendingReviews() ([]domain.Review, error) {
	if s.listPendingFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listPendingFn()
}

func (s *stubReviewUseCase) ApproveReview(id int64) (*domain.Review, error) {
	if s.approveFn == nil {
		return nil, errStubNotConfigured
	}
	return s.approveFn(id)
}

func (s *stubReviewUseCase) DeleteReview(id int64) error {
	if s.deleteFn == nil {
		return errStubNotConfigured
	}
	return s.deleteFn(id)
}

type stubRecommendationUseCase struct {
	recommendFn func(preference string) ([]domain.Recommendation, error)
	chatFn      func(message string, history []domain.ChatTurn) (*domain.ChatReply, error)
}

func (s *stubRecommendationUseCase) Recommend(_ context.Context, preference string) ([]domain.Recommendation, error) {
	if s.recommendFn == nil {
		return nil, errStubNotConfigured
	}
	return s.recommendFn(preference)
}

func (s *stubRecommendationUseCase) Chat(_ context.Context, message string, history []domain.ChatTurn) (*domain.ChatReply, error) {
	if s.chatFn == nil {
		return nil, errStubNotConfigured
	}
	return s.chatFn(message, history)
}

type stubAdminUseCase struct {
	statsFn     func() (*domain.DashboardStats, error)
	listUsersFn func() ([]domain.UserProfile, error)
}

func (s *stubAdminUseCase) Stats() (*domain.DashboardStats, error) {
	if s.statsFn == nil {
		return nil, errStubNotConfigured
	}
	return s.statsFn()
}

func (s *stubAdminUseCase) ListUsers() ([]domain.UserProfile, error) {
	if s.listUsersFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listUsersFn()
}

type stubProductUseCase struct {
	listFn   func(filter domain.ProductFilter) ([]domain.Product, error)
	getFn    func(id int64) (*domain.Product, []domain.Review, error)
	createFn func(product *domain.Product) (*domain.Product, error)
	updateFn func(product *domain.Product) (*domain.Product, error)
	deleteFn func(id int64) error
}

func (s *stubProductUseCase) ListProducts(filter domain.ProductFilter) ([]domain.Product, error) {
	if s.listFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listFn(filter)
}

func (s *stubProductUseCase) GetProduct(id int64) (*domain.Product, []domain.Review, error) {
	if s.getFn == nil {
		return nil, nil, errStubNotConfigured
	}
	return s.getFn(id)
}

func (s *stubProductUseCase) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if s.createFn == nil {
		return nil, errStubNotConfigured
	}
	return s.createFn(product)
}

func (s *stubProductUseCase) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	if s.updateFn == nil {
		return nil, errStubNotConfigured
	}
	return s.updateFn(product)
}

func (s *stubProductUseCase) DeleteProduct(id int64) error {
	if s.deleteFn == nil {
		return errStubNotConfigured
	}
	return s.deleteFn(id)
}
