package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"shortly/internal/logger"
	"shortly/internal/models"
	"shortly/internal/resilience"
	"shortly/internal/service"
)

const (
	codeInternal   = "INTERNAL_ERROR"
	msgInternal    = "Internal server error"
	codeValidation = string(service.KindValidation)
)

var kindStatus = map[service.Kind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindConflict:     http.StatusConflict,
	service.KindNotFound:     http.StatusNotFound,
	service.KindExpired:      http.StatusGone,
	service.KindGeneration:   http.StatusInternalServerError,
	service.KindStore:        http.StatusInternalServerError,
	service.KindUnavailable:  http.StatusServiceUnavailable,
	service.KindTracking:     http.StatusInternalServerError,
	service.KindUnauthorized: http.StatusUnauthorized,
}

// StatusOf maps a service error to its HTTP status.
func StatusOf(err error) int {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if status, ok := kindStatus[svcErr.Kind]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the error body for err. Only the service message is
// exposed; wrapped causes are logged.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgInternal, ErrorCode: codeInternal})
		return
	}

	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Str("kind", string(svcErr.Kind)).Msg("request failed")
	}

	var openErr *resilience.CircuitOpenError
	if errors.As(err, &openErr) {
		c.Header("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(openErr.Remaining.Seconds())))))
	}

	c.JSON(status, models.ErrorResponse{
		Error:     svcErr.Message,
		ErrorCode: string(svcErr.Kind),
		Details:   svcErr.Fields,
	})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	details := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fieldMessage(fe)
		}
	} else {
		details["request"] = err.Error()
	}

	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "Invalid request",
		ErrorCode: codeValidation,
		Details:   details,
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_with":
		return fe.Field() + " must be given together with " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "shortcode":
		return fe.Field() + " is not a valid short code"
	default:
		return fe.Field() + " is invalid"
	}
}
