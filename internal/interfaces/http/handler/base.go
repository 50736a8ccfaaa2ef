// Package handler implements the stockmesh REST API handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/shared"
	"github.com/stockmesh/backend/internal/infrastructure/logger"
	"github.com/stockmesh/backend/internal/interfaces/http/dto"
	"github.com/stockmesh/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 response for work started on request
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts application errors to HTTP responses. Marketplace
// errors keep their kind; unknown errors are logged and answered with a
// generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var (
		marketErr *integration.MarketplaceError
		domainErr *shared.DomainError
	)
	switch {
	case errors.Is(err, integration.ErrUnknownChannel):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeUnknownChannel, err.Error())
	case errors.Is(err, integration.ErrInvalidChannelCode):
		h.BadRequest(c, err.Error())
	case errors.As(err, &marketErr):
		code := dto.NormalizeErrorCode(string(marketErr.Kind))
		h.logFailure(c, err, zap.String("channel", marketErr.Channel.String()))
		h.Error(c, dto.GetHTTPStatus(code), code, err.Error())
	case errors.As(err, &domainErr):
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
	default:
		h.logFailure(c, err)
		h.InternalError(c, "An unexpected error occurred")
	}
}

func (h *BaseHandler) logFailure(c *gin.Context, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	logger.GetGinLogger(c).Error("Request failed", fields...)
}

// BindJSON binds the request body into req. It answers 400 itself and
// returns false when the body is malformed or fails validation.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var (
		validationErrs validator.ValidationErrors
		syntaxErr      *json.SyntaxError
		typeErr        *json.UnmarshalTypeError
		tooLarge       *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErrs):
		middleware.HandleValidationError(c, err)
	case errors.As(err, &tooLarge):
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid JSON body")
	default:
		h.BadRequest(c, err.Error())
	}
	return false
}

// HandleQueryError answers 400 for a query string that failed to bind
func (h *BaseHandler) HandleQueryError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		middleware.HandleValidationError(c, err)
		return
	}
	h.BadRequest(c, "Invalid query parameters")
}

// ParseUUIDParam parses a UUID path parameter. It answers 400 itself and
// returns false when the value is malformed.
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// ParseChannelParam parses the :channel path parameter
func (h *BaseHandler) ParseChannelParam(c *gin.Context) (integration.ChannelCode, bool) {
	code, err := integration.NewChannelCode(c.Param("channel"))
	if err != nil {
		h.BadRequest(c, "Invalid channel code")
		return "", false
	}
	return code, true
}
