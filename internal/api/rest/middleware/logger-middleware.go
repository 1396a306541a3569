package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type RequestMiddleware struct {
	logger *zap.Logger
}

func NewRequestMiddleware(logger *zap.Logger) *RequestMiddleware {
	return &RequestMiddleware{logger: logger}
}

// LogRequest tags the request with an id and logs it once it completes.
func (rm *RequestMiddleware) LogRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Locals("request_id", requestID)
		c.Set(requestIDHeader, requestID)

		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the app's error handler write the response before logging
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.IP()),
		}
		if sess := CurrentSession(c); sess != nil {
			fields = append(fields, zap.Stringer("user_id", sess.UserID))
		}

		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			rm.logger.Error("HTTP Request", fields...)
		} else {
			rm.logger.Info("HTTP Request", fields...)
		}
		return nil
	}
}

// RecoverPanic turns a panic into an error for the app's error handler and
// logs the stack.
func (rm *RequestMiddleware) RecoverPanic() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			requestID, _ := c.Locals("request_id").(string)
			rm.logger.Error("Panic recovered",
				zap.String("request_id", requestID),
				zap.Any("error", e),
				zap.Stack("stack"))
		},
	})
}
