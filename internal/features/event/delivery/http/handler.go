package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/middleware"
	"church-platform-backend/internal/features/event/models"
	"church-platform-backend/internal/features/event/service"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{
		service: service,
	}
}

func (h *EventHandler) RegisterRoutes(router *gin.RouterGroup) {
	events := router.Group("/events")
	{
		events.GET("", h.list)
		events.GET("/:id", h.get)
	}

	admin := router.Group("/events")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", h.create)
	}
}

// @Summary Upcoming events
// @Tags events
// @Produce json
// @Success 200 {array} models.Event "Events sorted by date"
// @Router /events [get]
func (h *EventHandler) list(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// @Summary Event details
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Event "Event"
// @Failure 404 {object} middleware.ErrorResponse "Unknown event"
// @Router /events/{id} [get]
func (h *EventHandler) get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateEventRequest true "Event data"
// @Success 200 {object} models.Event "Created event"
// @Failure 403 {object} middleware.ErrorResponse "Admin only"
// @Router /events [post]
func (h *EventHandler) create(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	event, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}
