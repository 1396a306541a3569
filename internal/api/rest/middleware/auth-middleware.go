package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/temped/temped-api/internal/helper"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/session"
)

const AccessTokenCookie = "access_token"

// RoleChecker looks roles up in the database.
type RoleChecker interface {
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}

// AuthMiddleware verifies the access token and stores the caller's session
// on the request context.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies(AccessTokenCookie))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		}

		sess, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
		}

		ctx.SetUserContext(session.WithSession(ctx.UserContext(), sess))
		return ctx.Next()
	}
}

// RequireRole re-checks the role against the database so a revoked role
// takes effect before the token expires.
func RequireRole(checker RoleChecker, role string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess := CurrentSession(ctx)
		if sess == nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		}

		ok, err := checker.HasRole(ctx.UserContext(), sess.UserID, role)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "role lookup failed")
		}
		if !ok {
			return utils.ResponseError(ctx, fiber.StatusForbidden, strings.ToLower(role)+" only")
		}

		return ctx.Next()
	}
}

func CurrentSession(ctx *fiber.Ctx) *session.Session {
	return session.FromContext(ctx.UserContext())
}
