package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type FAQHandler struct {
	useCase domain.FAQUseCase
	log     *logrus.Logger
}

func NewFAQHandler(uc domain.FAQUseCase, logger *logrus.Logger) *FAQHandler {
	return &FAQHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *FAQHandler) RegisterRoutes(router gin.IRouter, requireAuth, requireAdmin gin.HandlerFunc) {
	faq := router.Group("/faq")
	{
		faq.GET("", h.ListFAQs)
		faq.POST("", requireAuth, requireAdmin, h.CreateFAQ)
	}
}

func (h *FAQHandler) ListFAQs(c *gin.Context) {
	faqs, err := h.useCase.ListFAQs()
	if err != nil {
		h.log.Errorf("Failed to list FAQs: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "FAQs retrieved successfully", faqs)
}

func (h *FAQHandler) CreateFAQ(c *gin.Context) {
	var requestBody struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	faq, err := h.useCase.CreateFAQ(requestBody.Question, requestBody.Answer)
	if err != nil {
		h.log.Warnf("Failed to create FAQ: %v", err)
		respondError(c, err)
		return
	}

	h.log.Infof("FAQ %d created", faq.ID)
	SuccessResponse(c, http.StatusCreated, "FAQ created successfully", faq)
}
