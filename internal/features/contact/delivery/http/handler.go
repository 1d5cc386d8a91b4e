package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/middleware"
	"church-platform-backend/internal/features/contact/models"
	"church-platform-backend/internal/features/contact/service"
)

type ContactHandler struct {
	service service.ContactService
}

func NewContactHandler(service service.ContactService) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", h.submitMessage)
	router.POST("/newsletter/subscribe", h.subscribe)

	admin := router.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/contact", h.listMessages)
		admin.GET("/newsletter/subscribers", h.listSubscribers)
	}
}

// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body models.CreateMessageRequest true "Message"
// @Success 200 {object} models.ContactMessage "Stored message"
// @Router /contact [post]
func (h *ContactHandler) submitMessage(c *gin.Context) {
	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	message, err := h.service.SubmitMessage(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// @Summary Contact messages
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ContactMessage "Messages, newest first"
// @Failure 403 {object} middleware.ErrorResponse "Admin only"
// @Router /contact [get]
func (h *ContactHandler) listMessages(c *gin.Context) {
	messages, err := h.service.Messages(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// @Summary Subscribe to the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param request body models.SubscribeRequest true "Subscription"
// @Success 200 {object} models.Subscriber "Subscription"
// @Failure 409 {object} middleware.ErrorResponse "Already subscribed"
// @Router /newsletter/subscribe [post]
func (h *ContactHandler) subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	subscriber, err := h.service.Subscribe(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subscriber)
}

// @Summary Newsletter subscribers
// @Tags newsletter
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscriber "Active subscribers"
// @Failure 403 {object} middleware.ErrorResponse "Admin only"
// @Router /newsletter/subscribers [get]
func (h *ContactHandler) listSubscribers(c *gin.Context) {
	subscribers, err := h.service.Subscribers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subscribers)
}
