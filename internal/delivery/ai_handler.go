package delivery

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type AIHandler struct {
	useCase domain.RecommendationUseCase
	log     *logrus.Logger
}

func NewAIHandler(uc domain.RecommendationUseCase, logger *logrus.Logger) *AIHandler {
	return &AIHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AIHandler) RegisterRoutes(router gin.IRouter) {
	ai := router.Group("/ai")
	{
		ai.POST("/recommend", h.Recommend)
		ai.POST("/chat", h.Chat)
	}
}

func (h *AIHandler) Recommend(c *gin.Context) {
	var requestBody struct {
		Preference string `json:"preference"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	recs, err := h.useCase.Recommend(c.Request.Context(), requestBody.Preference)
	if err != nil {
		h.log.Errorf("Failed to build recommendations: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Recommendations retrieved successfully", gin.H{"recommendations": recs})
}

func (h *AIHandler) Chat(c *gin.Context) {
	var requestBody struct {
		Message string            `json:"message"`
		History []domain.ChatTurn `json:"history"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(requestBody.Message) == "" {
		ErrorResponse(c, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	reply, err := h.useCase.Chat(c.Request.Context(), requestBody.Message, requestBody.History)
	if err != nil {
		h.log.Errorf("Failed to produce chat reply: %v", err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Chat reply retrieved successfully", reply)
}
