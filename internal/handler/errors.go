package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/middleware"
	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler maps handler errors to responses.
// NOT_FOUND is sent as a bare 404; unexpected errors never leak their text.
func ErrorHandler(logger *zap.Logger, sentryEnabled bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := apperrors.MessageInternal

		var fiberErr *fiber.Error
		if appErr := apperrors.GetAppError(err); appErr != nil {
			code = appErr.StatusCode
			if code < fiber.StatusInternalServerError {
				message = appErr.Message
			}
		} else if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
			if code == fiber.StatusNotFound {
				message = apperrors.MessageUnknownEndpoint
			}
		}

		fields := []zap.Field{
			zap.Int("status", code),
			zap.Error(err),
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("request_id", middleware.GetRequestID(c)),
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("request error", fields...)
			if sentryEnabled {
				middleware.CaptureError(c, err)
			}
		} else {
			logger.Debug("request rejected", fields...)
		}

		if apperrors.IsNotFound(err) {
			c.Status(fiber.StatusNotFound)
			return nil
		}
		return c.Status(code).JSON(ErrorResponse{Error: message})
	}
}

// UnknownEndpoint answers every request no route matched
func UnknownEndpoint(c *fiber.Ctx) error {
	return apperrors.UnknownEndpoint()
}
