package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/infrastructure/auth"
	"github.com/saturday/backend/internal/infrastructure/logger"
	"github.com/saturday/backend/internal/interfaces/http/dto"
	"github.com/saturday/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID set by the RequestID middleware
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// getCaller returns the authenticated user id and claims
func getCaller(c *gin.Context) (uuid.UUID, *auth.Claims, error) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		return uuid.Nil, nil, errors.New("jwt claims not found in context")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil, nil, err
	}
	return userID, claims, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message).WithRequestID(getRequestID(c)))
}

// FieldError sends an error response naming the offending field
func (h *BaseHandler) FieldError(c *gin.Context, statusCode int, code, message, field string) {
	c.JSON(statusCode, dto.NewFieldErrorResponse(code, message, field).WithRequestID(getRequestID(c)))
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleBindError answers a failed ShouldBind call. Validator failures list
// every field, a fractional stock or quantity is ERR_INVALID_QUANTITY, and
// anything else is malformed JSON.
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(validationErrs, getRequestID(c)))
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && isQuantityField(typeErr.Field) && strings.HasPrefix(typeErr.Value, "number") {
		h.FieldError(c, dto.GetHTTPStatus(dto.ErrCodeInvalidQuantity), dto.ErrCodeInvalidQuantity,
			shared.ErrInvalidQuantity.Message, typeErr.Field)
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
}

// HandleError converts domain errors to their API code and status.
// Anything else is logged and reported as ERR_INTERNAL without details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.FieldError(c, dto.GetHTTPStatus(code), code, domainErr.Message, domainErr.Field)
		return
	}

	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}

// isQuantityField matches stock counts at any depth, e.g. "stock" or
// "products.quantity"
func isQuantityField(field string) bool {
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return field == "stock" || field == "quantity"
}

// bindUUIDParam parses a path parameter, answering 400 when it is malformed
func (h *BaseHandler) bindUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.FieldError(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid "+name+" format", name)
		return uuid.Nil, false
	}
	return id, true
}

// bindPage reads page and page_size from the query string
func (h *BaseHandler) bindPage(c *gin.Context) (dto.PageQuery, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleBindError(c, err)
		return q, false
	}
	return q.Normalize(), true
}
