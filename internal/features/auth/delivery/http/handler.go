package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/middleware"
	"church-platform-backend/internal/features/auth/models"
	"church-platform-backend/internal/features/auth/service"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}

	protected := router.Group("/auth")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/me", h.me)
		protected.PUT("/profile", h.updateProfile)
	}
}

// @Summary Register a new member
// @Description Create an account and return an access token with the member profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 200 {object} models.TokenResponse "Token and profile"
// @Failure 400 {object} middleware.ErrorResponse "Validation error"
// @Failure 409 {object} middleware.ErrorResponse "Email or username taken"
// @Router /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Log in
// @Description Exchange email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.TokenResponse "Token and profile"
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Current member profile
// @Description Return the profile tied to the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Profile"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (h *AuthHandler) me(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	user, err := h.service.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Update profile
// @Description Apply a partial profile update and return the stored profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.User "Updated profile"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Router /auth/profile [put]
func (h *AuthHandler) updateProfile(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}
