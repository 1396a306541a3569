package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/api/rest/middleware"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/services"
)

type AuthHandler struct {
	svc          services.AuthService
	log          *zap.Logger
	secureCookie bool
}

func NewAuthHandler(svc services.AuthService, log *zap.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, log: log, secureCookie: secureCookie}
}

func (h *AuthHandler) SetupRoutes(api fiber.Router, g Guards) {
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", g.LoginLimit, h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", g.Auth, h.Me)

	admin := api.Group("/admin/users", g.Auth, g.Admin)
	admin.Put("/:userID/roles", h.SetRoles)
	admin.Patch("/:userID/status", h.SetStatus)
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(ctx.UserContext(), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	resp, err := h.svc.Login(ctx.UserContext(), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// Logout ends the session on this client by expiring the token cookie.
func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "logged out")
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	user, err := h.svc.Me(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *AuthHandler) SetRoles(ctx *fiber.Ctx) error {
	userID, err := uuidParam(ctx, "userID")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}

	var requestBody dto.SetRolesRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "roles are required")
	}

	resp, err := h.svc.SetRoles(ctx.UserContext(), middleware.CurrentSession(ctx), userID, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AuthHandler) SetStatus(ctx *fiber.Ctx) error {
	userID, err := uuidParam(ctx, "userID")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}

	var requestBody dto.SetStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	if err := h.svc.SetStatus(ctx.UserContext(), middleware.CurrentSession(ctx), userID, requestBody.Status); err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "status updated")
}
