package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

// AdminHandler groups the moderation and dashboard endpoints. Every route it
// registers sits behind both the auth and the admin-only middleware.
type AdminHandler struct {
	adminUseCase  domain.AdminUseCase
	orderUseCase  domain.OrderUseCase
	reviewUseCase domain.ReviewUseCase
	log           *logrus.Logger
}

func NewAdminHandler(
	adminUC domain.AdminUseCase,
	orderUC domain.OrderUseCase,
	reviewUC domain.ReviewUseCase,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminUseCase:  adminUC,
		orderUseCase:  orderUC,
		reviewUseCase: reviewUC,
		log:           logger,
	}
}

func (h *AdminHandler) RegisterRoutes(router gin.IRouter, requireAuth, requireAdmin gin.HandlerFunc) {
	admin := router.Group("/admin", requireAuth, requireAdmin)
	{
		admin.GET("/stats", h.GetStats)
		admin.GET("/users", h.ListUsers)

		admin.GET("/orders", h.ListOrders)
		admin.PUT("/orders/:id/approve", h.ApproveOrder)
		admin.PUT("/orders/:id/decline", h.DeclineOrder)
		admin.PUT("/orders/:id/complete", h.CompleteOrder)

		admin.GET("/reviews/pending", h.ListPendingReviews)
		admin.PUT("/reviews/:id/approve", h.ApproveReview)
		admin.DELETE("/reviews/:id", h.DeleteReview)
	}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUseCase.Stats()
	if err != nil {
		h.log.Errorf("Failed to compute dashboard stats: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Stats retrieved successfully", stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUseCase.ListUsers()
	if err != nil {
		h.log.Errorf("Failed to list users: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderUseCase.ListAllOrders()
	if err != nil {
		h.log.Errorf("Failed to list orders: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// ApproveOrder decrements stock for every line of the order inside a single
// transaction. If any line cannot be covered the whole approval is rolled
// back and the conflict is reported to the caller.
func (h *AdminHandler) ApproveOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orderUseCase.ApproveOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to approve order %d: %v", id, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Order %d approved", id)
	SuccessResponse(c, http.StatusOK, "Order approved successfully", order)
}

func (h *AdminHandler) DeclineOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var requestBody struct {
		Reason string `json:"reason"`
	}
	// Body is optional; a missing reason falls back to the default notice.
	_ = c.ShouldBindJSON(&requestBody)

	order, err := h.orderUseCase.DeclineOrder(c.Request.Context(), id, requestBody.Reason)
	if err != nil {
		h.log.Warnf("Failed to decline order %d: %v", id, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Order %d declined", id)
	SuccessResponse(c, http.StatusOK, "Order declined", order)
}

func (h *AdminHandler) CompleteOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orderUseCase.CompleteOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to complete order %d: %v", id, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Order %d completed", id)
	SuccessResponse(c, http.StatusOK, "Order completed successfully", order)
}

func (h *AdminHandler) ListPendingReviews(c *gin.Context) {
	reviews, err := h.reviewUseCase.ListPendingReviews()
	if err != nil {
		h.log.Errorf("Failed to list pending reviews: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Pending reviews retrieved successfully", reviews)
}

func (h *AdminHandler) ApproveReview(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	review, err := h.reviewUseCase.ApproveReview(id)
	if err != nil {
		h.log.Warnf("Failed to approve review %d: %v", id, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Review %d approved", id)
	SuccessResponse(c, http.StatusOK, "Review approved successfully", review)
}

func (h *AdminHandler) DeleteReview(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	if err := h.reviewUseCase.DeleteReview(id); err != nil {
		h.log.Warnf("Failed to delete review %d: %v", id, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Review %d deleted", id)
	SuccessResponse(c, http.StatusOK, "Review deleted successfully", nil)
}
