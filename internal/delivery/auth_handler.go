package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
	"github.com/eunwoo0701/cafe-delight/internal/middleware"
)

type AuthHandler struct {
	useCase domain.UserUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc domain.UserUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", requireAuth, h.Me)
		authGroup.PUT("/me", requireAuth, h.UpdateMe)
		authGroup.PUT("/me/password", requireAuth, h.ChangePassword)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var requestBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for signup: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.useCase.RegisterUser(requestBody.Name, requestBody.Email, requestBody.Password)
	if err != nil {
		h.log.Warnf("Signup failed for email %s: %v", requestBody.Email, err)
		respondError(c, err)
		return
	}

	h.log.Infof("User %d signed up successfully", user.ID)
	SuccessResponse(c, http.StatusCreated, "Account created successfully", gin.H{"id": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var requestBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for login: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	authResp, err := h.useCase.AuthenticateUser(requestBody.Email, requestBody.Password)
	if err != nil {
		h.log.Errorf("Login failed with internal error for %s: %v", requestBody.Email, err)
		respondError(c, err)
		return
	}
	if !authResp.Authenticated {
		ErrorResponse(c, http.StatusBadRequest, authResp.ErrorMessage)
		return
	}

	h.log.Infof("User %d logged in", authResp.User.ID)
	SuccessResponse(c, http.StatusOK, "Login successful", gin.H{
		"token": authResp.Token,
		"user":  authResp.User,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	profile, err := h.useCase.GetUserProfile(userID)
	if err != nil {
		h.log.Warnf("Failed to get profile for user %d: %v", userID, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID := middleware.UserID(c)

	var requestBody struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for profile update (user %d): %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.useCase.UpdateProfile(userID, requestBody.Name, requestBody.Email)
	if err != nil {
		h.log.Warnf("Profile update failed for user %d: %v", userID, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Profile updated successfully", profile)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.UserID(c)

	var requestBody struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		h.log.Warnf("Failed to bind JSON for password change (user %d): %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.ChangePassword(userID, requestBody.CurrentPassword, requestBody.NewPassword); err != nil {
		h.log.Warnf("Password change failed for user %d: %v", userID, err)
		respondError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Password updated", nil)
}
