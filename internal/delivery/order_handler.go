package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
	"github.com/eunwoo0701/cafe-delight/internal/middleware"
)

type OrderHandler struct {
	useCase domain.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	orders := router.Group("/orders", requireAuth)
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/mine", h.ListMyOrders)
		orders.GET("/has-item/:productId", h.HasItem)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID := middleware.UserID(c)

	var requestBody struct {
		Items []domain.CartLine `json:"items"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for create order (user %d): %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.useCase.CreateOrder(c.Request.Context(), userID, requestBody.Items)
	if err != nil {
		h.log.Warnf("Failed to create order for user %d: %v", userID, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Order %d created for user %d", order.ID, userID)
	SuccessResponse(c, http.StatusCreated, "Order created successfully", gin.H{
		"orderId": order.ID,
		"total":   order.Total,
	})
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID := middleware.UserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	orders, err := h.useCase.ListOrdersByUserID(userID, limit, offset)
	if err != nil {
		h.log.Errorf("Failed to list orders for user %d: %v", userID, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) HasItem(c *gin.Context) {
	userID := middleware.UserID(c)

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || productID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	purchased, err := h.useCase.HasPurchased(userID, productID)
	if err != nil {
		h.log.Errorf("Purchase check failed for user %d, product %d: %v", userID, productID, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Purchase check completed", gin.H{"purchased": purchased})
}
