package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type ProductHandler struct {
	useCase domain.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc domain.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter, requireAuth, requireAdmin gin.HandlerFunc) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", requireAuth, requireAdmin, h.CreateProduct)
		products.PUT("/:id", requireAuth, requireAdmin, h.UpdateProduct)
		products.DELETE("/:id", requireAuth, requireAdmin, h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Query:    c.Query("q"),
		Category: domain.Category(c.Query("category")),
	}
	if raw := c.Query("minPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid minPrice value")
			return
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("maxPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid maxPrice value")
			return
		}
		filter.MaxPrice = &price
	}

	products, err := h.useCase.ListProducts(filter)
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, reviews, err := h.useCase.GetProduct(id)
	if err != nil {
		h.log.Warnf("Failed to get product %d: %v", id, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", gin.H{
		"product": product,
		"reviews": reviews,
	})
}

type productRequest struct {
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Ingredients string          `json:"ingredients"`
	Sizes       []string        `json:"sizes"`
	Stock       *int            `json:"stock"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var requestBody productRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	stock := domain.DefaultStock
	if requestBody.Stock != nil {
		stock = *requestBody.Stock
	}
	product := &domain.Product{
		Name:        requestBody.Name,
		Category:    requestBody.Category,
		Description: requestBody.Description,
		Price:       requestBody.Price,
		ImageURL:    requestBody.ImageURL,
		Ingredients: requestBody.Ingredients,
		Sizes:       requestBody.Sizes,
		Stock:       stock,
	}

	created, err := h.useCase.CreateProduct(product)
	if err != nil {
		h.log.Warnf("Failed to create product '%s': %v", requestBody.Name, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Product %d created", created.ID)
	SuccessResponse(c, http.StatusCreated, "Product created successfully", created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var requestBody productRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for update product %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	stock := domain.DefaultStock
	if requestBody.Stock != nil {
		stock = *requestBody.Stock
	}
	product := &domain.Product{
		ID:          id,
		Name:        requestBody.Name,
		Category:    requestBody.Category,
		Description: requestBody.Description,
		Price:       requestBody.Price,
		ImageURL:    requestBody.ImageURL,
		Ingredients: requestBody.Ingredients,
		Sizes:       requestBody.Sizes,
		Stock:       stock,
	}

	updated, err := h.useCase.UpdateProduct(product)
	if err != nil {
		h.log.Warnf("Failed to update product %d: %v", id, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.useCase.DeleteProduct(id); err != nil {
		h.log.Warnf("Failed to delete product %d: %v", id, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}
