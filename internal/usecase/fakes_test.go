package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/clients"
	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// --- product repository fake ---

type fakeProductRepo struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1, products: make(map[int64]*domain.Product)}
}

func (r *fakeProductRepo) CreateProduct(product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *product
	stored.ID = r.nextID
	r.nextID++
	r.products[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeProductRepo) GetProductByID(id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("product", id)
	}
	out := *product
	return &out, nil
}

func (r *fakeProductRepo) GetProductByName(name string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.Name == name {
			out := *product
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "product", Key: name}
}

func (r *fakeProductRepo) ListProducts(filter domain.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []domain.Product
	for _, id := range ids {
		product := r.products[id]
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return nil, domain.NewNotFoundError("product", product.ID)
	}
	stored := *product
	r.products[product.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeProductRepo) DeleteProduct(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.NewNotFoundError("product", id)
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) CountProducts() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

func (r *fakeProductRepo) stockOf(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

// --- order repository fake ---

// fakeOrderRepo mirrors the transactional approval semantics of the real
// repository: a single lock guards the status check, the stock decrements
// and the status write, and a failed line rolls every decrement back.
type fakeOrderRepo struct {
	mu       sync.Mutex
	nextID   int64
	orders   map[int64]*domain.Order
	products *fakeProductRepo
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: make(map[int64]*domain.Order), products: products}
}

func (r *fakeOrderRepo) CreateOrder(order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *order
	stored.ID = r.nextID
	r.nextID++
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	for i := range stored.Items {
		stored.Items[i].OrderID = stored.ID
	}
	r.orders[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeOrderRepo) GetOrderByID(id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("order", id)
	}
	out := *order
	return &out, nil
}

func (r *fakeOrderRepo) ListOrdersByUserID(userID int64, limit, offset int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ListOrders() ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		out = append(out, *order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ApproveOrder(id int64, notification string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("order", id)
	}
	if !domain.IsApprovable(order.Status) {
		return nil, domain.ErrInvalidTransition
	}

	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	type decrement struct {
		product  *domain.Product
		quantity int
	}
	applied := make([]decrement, 0, len(order.Items))
	for _, item := range order.Items {
		product := r.products.products[item.ProductID]
		if product == nil || product.Stock < item.Quantity {
			for _, d := range applied {
				d.product.Stock += d.quantity
			}
			name := item.ProductName
			if product != nil {
				name = product.Name
			}
			return nil, &domain.InsufficientStockError{ProductName: name}
		}
		product.Stock -= item.Quantity
		applied = append(applied, decrement{product: product, quantity: item.Quantity})
	}

	order.Status = domain.StatusApproved
	order.Notification = notification
	out := *order
	return &out, nil
}

func (r *fakeOrderRepo) SetOrderStatus(id int64, allowedFrom []domain.OrderStatus, to domain.OrderStatus, notification string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("order", id)
	}
	allowed := false
	for _, from := range allowedFrom {
		if order.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrInvalidTransition
	}

	order.Status = to
	order.Notification = notification
	out := *order
	return &out, nil
}

func (r *fakeOrderRepo) HasOrderItem(userID, productID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) CountOrders() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders), nil
}

// --- review repository fake ---

type fakeReviewRepo struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1, reviews: make(map[int64]*domain.Review)}
}

func (r *fakeReviewRepo) CreateReview(review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *review
	stored.ID = r.nextID
	r.nextID++
	r.reviews[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeReviewRepo) GetReviewByID(id int64) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("review", id)
	}
	out := *review
	return &out, nil
}

func (r *fakeReviewRepo) listWhere(match func(*domain.Review) bool) []domain.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for _, review := range r.reviews {
		if match(review) {
			out = append(out, *review)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeReviewRepo) ListApprovedReviews() ([]domain.Review, error) {
	return r.listWhere(func(rv *domain.Review) bool { return rv.Approved }), nil
}

func (r *fakeReviewRepo) ListApprovedReviewsForProduct(productName string) ([]domain.Review, error) {
	return r.listWhere(func(rv *domain.Review) bool { return rv.Approved && rv.Product == productName }), nil
}

func (r *fakeReviewRepo) ListPendingReviews() ([]domain.Review, error) {
	return r.listWhere(func(rv *domain.Review) bool { return !rv.Approved }), nil
}

func (r *fakeReviewRepo) ApproveReview(id int64) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("review", id)
	}
	review.Approved = true
	out := *review
	return &out, nil
}

func (r *fakeReviewRepo) DeleteReview(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return domain.NewNotFoundError("review", id)
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) CountReviews() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews), nil
}

// --- user repository fake ---

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	stored := *user
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "user", Key: email}
}

func (r *fakeUserRepo) GetUserByID(id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	out := *user
	return &out, nil
}

func (r *fakeUserRepo) UpdateUser(user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.NewNotFoundError("user", user.ID)
	}
	stored := *user
	r.users[user.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeUserRepo) ListUsers() ([]domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.UserProfile
	for _, user := range r.users {
		out = append(out, user.Profile())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) CountUsers() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

// --- FAQ repository fake ---

type fakeFAQRepo struct {
	mu     sync.Mutex
	nextID int64
	faqs   []domain.FAQ
}

func newFakeFAQRepo() *fakeFAQRepo {
	return &fakeFAQRepo{nextID: 1}
}

func (r *fakeFAQRepo) CreateFAQ(faq *domain.FAQ) (*domain.FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *faq
	stored.ID = r.nextID
	r.nextID++
	r.faqs = append(r.faqs, stored)
	out := stored
	return &out, nil
}

func (r *fakeFAQRepo) ListFAQs() ([]domain.FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.FAQ(nil), r.faqs...), nil
}

func (r *fakeFAQRepo) CountFAQs() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.faqs), nil
}

// --- generation service fake ---

type fakeGenerator struct {
	reply string
	err   error
	// last captures the most recent request for assertions.
	last clients.GenerateRequest
}

func (g *fakeGenerator) Generate(_ context.Context, req clients.GenerateRequest) (string, error) {
	g.last = req
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}
