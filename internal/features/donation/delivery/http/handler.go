package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/middleware"
	"church-platform-backend/internal/features/donation/models"
	"church-platform-backend/internal/features/donation/service"
	"church-platform-backend/internal/platform/stripe"
)

type DonationHandler struct {
	service       service.DonationService
	webhookSecret string
}

func NewDonationHandler(service service.DonationService, webhookSecret string) *DonationHandler {
	return &DonationHandler{
		service:       service,
		webhookSecret: webhookSecret,
	}
}

func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	donations := router.Group("/donations")
	{
		donations.GET("/packages", h.packages)
		donations.POST("/checkout", h.checkout)
		donations.GET("/status/:session_id", h.status)
	}

	protected := router.Group("/donations")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/me", h.myDonations)
	}

	admin := router.Group("/donations")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", h.stats)
	}

	router.POST("/webhook/stripe", h.webhook)
}

// @Summary Donation packages
// @Description List the fixed giving tiers
// @Tags donations
// @Produce json
// @Success 200 {array} models.DonationPackage "Packages"
// @Router /donations/packages [get]
func (h *DonationHandler) packages(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Packages())
}

// @Summary Start a donation checkout
// @Description Create a hosted payment session and return its redirect URL. Works with or without authentication.
// @Tags donations
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Checkout data"
// @Success 200 {object} models.CheckoutResponse "Redirect URL and session ID"
// @Failure 400 {object} middleware.ErrorResponse "Invalid package or amount"
// @Failure 502 {object} middleware.ErrorResponse "Payment provider unavailable"
// @Router /donations/checkout [post]
func (h *DonationHandler) checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	var userID, userEmail *string
	if claims, ok := middleware.GetClaims(c); ok {
		userID = &claims.UserID
		userEmail = &claims.Subject
	}

	resp, err := h.service.CreateCheckout(c.Request.Context(), &req, userID, userEmail)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Checkout session status
// @Description Report whether a checkout session is pending, paid, or expired
// @Tags donations
// @Produce json
// @Param session_id path string true "Checkout session ID"
// @Success 200 {object} models.StatusResponse "Session status"
// @Failure 404 {object} middleware.ErrorResponse "Unknown session"
// @Router /donations/status/{session_id} [get]
func (h *DonationHandler) status(c *gin.Context) {
	resp, err := h.service.CheckStatus(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary My donation history
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Donation "Donations, newest first"
// @Router /donations/me [get]
func (h *DonationHandler) myDonations(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	donations, err := h.service.UserDonations(c.Request.Context(), claims.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	if donations == nil {
		donations = []*models.Donation{}
	}
	c.JSON(http.StatusOK, donations)
}

// @Summary Donation statistics
// @Description Totals for the admin dashboard
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Stats "Totals"
// @Failure 403 {object} middleware.ErrorResponse "Admin only"
// @Router /donations/stats [get]
func (h *DonationHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DonationHandler) webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Requête invalide"))
		return
	}

	if h.webhookSecret != "" {
		signature := c.GetHeader("Stripe-Signature")
		if err := stripe.VerifySignature(payload, signature, h.webhookSecret, time.Now()); err != nil {
			c.Error(apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Signature de webhook invalide"))
			return
		}
	}

	event, err := stripe.ParseEvent(payload)
	if err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Événement invalide"))
		return
	}

	if event.Type == "checkout.session.completed" {
		if err := h.service.HandleCompletedSession(c.Request.Context(), event.Data.Object.ID); err != nil {
			c.Error(err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
