package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/logger"
)

// RequestID assigns every request an ID, propagated via header and context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorHandler recovers panics and translates errors pushed onto the gin
// context into JSON responses. Handlers report failures with c.Error(err)
// and this middleware does the rest.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				requestID := getRequestID(c)

				logger.Error().
					Str("request_id", requestID).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("panic", fmt.Sprintf("%v", recovered)).
					Str("stack", string(debug.Stack())).
					Msg("Panic recovered")

				appErr := errors.New(errors.ErrCodeInternal, "Erreur interne du serveur").
					WithRequestID(requestID)
				sendErrorResponse(c, appErr)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.Wrap(err, errors.ErrCodeInternal, "Erreur interne du serveur")
		}
		sendErrorResponse(c, appErr)
	}
}

// ErrorResponse is the error envelope returned by every endpoint. Detail
// mirrors the message so form code can read a single field.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Detail    string           `json:"detail"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
}

func sendErrorResponse(c *gin.Context, appErr *errors.AppError) {
	requestID := getRequestID(c)
	appErr.WithRequestID(requestID)

	logError(c, appErr)

	c.AbortWithStatusJSON(httpStatusFor(appErr), ErrorResponse{
		Success:   false,
		Detail:    appErr.Message,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
	})
}

func httpStatusFor(appErr *errors.AppError) int {
	switch {
	case appErr.IsValidation():
		return http.StatusBadRequest
	case appErr.IsNotFound():
		return http.StatusNotFound
	case appErr.Code == errors.ErrCodeUnauthorized || appErr.Code == errors.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case appErr.Code == errors.ErrCodeForbidden || appErr.Code == errors.ErrCodeAccountSuspended:
		return http.StatusForbidden
	case appErr.Code == errors.ErrCodeConflict || appErr.Code == errors.ErrCodeEmailTaken || appErr.Code == errors.ErrCodeUsernameTaken:
		return http.StatusConflict
	case appErr.Code == errors.ErrCodePaymentProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func logError(c *gin.Context, appErr *errors.AppError) {
	event := logger.Info()
	switch {
	case appErr.IsInternal():
		event = logger.Error()
	case appErr.IsUnauthorized():
		event = logger.Warn()
	}

	event.
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message).
		Err(appErr.Cause).
		Msg("Request failed")
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
