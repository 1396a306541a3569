package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/services/apperr"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ResponseServiceError maps a service error to its HTTP status. Unclassified
// errors are logged and answered with a generic 500.
func ResponseServiceError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return ResponseError(ctx, statusFor(appErr.Kind), appErr.Msg)
	}

	if log != nil {
		log.Error("request failed",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
	}
	return ResponseError(ctx, http.StatusInternalServerError, "internal server error")
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
