package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getUserID extracts the authenticated user ID from the context
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
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

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// transitionErrorBody is the payload for rejected status changes.
// ValidTransitions always lists the complete legal set for the order's
// current status.
type transitionErrorBody struct {
	From             string   `json:"from"`
	To               string   `json:"to"`
	ValidTransitions []string `json:"valid_transitions"`
}

// HandleError converts domain and lifecycle errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := getRequestID(c)

	var transitionErr *order.TransitionError
	if errors.As(err, &transitionErr) {
		valid := make([]string, 0, len(transitionErr.Valid))
		for _, s := range transitionErr.Valid {
			valid = append(valid, s.String())
		}
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidTransition, transitionErr.Error(), requestID)
		resp.Data = transitionErrorBody{
			From:             transitionErr.From.String(),
			To:               transitionErr.To.String(),
			ValidTransitions: valid,
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	var unknownErr *order.UnknownStateError
	if errors.As(err, &unknownErr) {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeUnknownState, unknownErr.Error(), requestID))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code),
			dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	if code, ok := accountingErrorCode(err); ok {
		c.JSON(dto.GetHTTPStatus(code),
			dto.NewErrorResponseWithRequestID(code, err.Error(), requestID))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}

// accountingErrorCode maps ledger integration sentinels to API codes
func accountingErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, accounting.ErrNoActiveConnection):
		return dto.ErrCodeNoActiveConnection, true
	case errors.Is(err, accounting.ErrProviderTimeout):
		return dto.ErrCodeNetworkTimeout, true
	case errors.Is(err, accounting.ErrRefreshFailed):
		return dto.ErrCodeTokenRefresh, true
	case errors.Is(err, accounting.ErrExchangeFailed):
		return dto.ErrCodeOAuthExchange, true
	case errors.Is(err, accounting.ErrMetadataFetchFailed):
		return dto.ErrCodeMetadataFetch, true
	case errors.Is(err, accounting.ErrProviderUnavailable):
		return dto.ErrCodeProviderUnavailable, true
	case errors.Is(err, accounting.ErrStateMismatch):
		return dto.ErrCodeCSRFMismatch, true
	default:
		return "", false
	}
}
