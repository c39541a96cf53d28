package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
	"github.com/eunwoo0701/cafe-delight/internal/middleware"
)

type ReviewHandler struct {
	useCase domain.ReviewUseCase
	log     *logrus.Logger
}

func NewReviewHandler(uc domain.ReviewUseCase, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ReviewHandler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.POST("", requireAuth, h.SubmitReview)
	}
}

// ListReviews returns approved reviews only; pending ones stay invisible
// until an admin approves them.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.useCase.ListApprovedReviews()
	if err != nil {
		h.log.Errorf("Failed to list approved reviews: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID := middleware.UserID(c)

	var requestBody struct {
		ProductID int64  `json:"productId"`
		Product   string `json:"product"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for review submission (user %d): %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.useCase.SubmitReview(userID, requestBody.ProductID, requestBody.Product, requestBody.Rating, requestBody.Comment)
	if err != nil {
		h.log.Warnf("Review submission failed for user %d: %v", userID, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Review %d submitted by user %d", review.ID, userID)
	SuccessResponse(c, http.StatusCreated, "Review submitted and pending approval", review)
}
