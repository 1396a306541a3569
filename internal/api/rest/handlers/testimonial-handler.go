package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/api/rest/middleware"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/services"
)

type TestimonialHandler struct {
	svc services.TestimonialService
	log *zap.Logger
}

func NewTestimonialHandler(svc services.TestimonialService, log *zap.Logger) *TestimonialHandler {
	return &TestimonialHandler{svc: svc, log: log}
}

func (h *TestimonialHandler) SetupRoutes(api fiber.Router, g Guards) {
	api.Get("/testimonials", h.ListApproved)
	api.Post("/testimonials", g.Auth, h.Create)

	admin := api.Group("/admin/testimonials", g.Auth, g.Admin)
	admin.Get("/pending", h.ListPending)
	admin.Post("/:id/approve", h.Approve)
	admin.Post("/:id/reject", h.Reject)
}

func (h *TestimonialHandler) ListApproved(ctx *fiber.Ctx) error {
	resp, err := h.svc.ListApproved(ctx.UserContext(), ctx.QueryInt("limit", 20), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TestimonialHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.TestimonialRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.Create(ctx.UserContext(), middleware.CurrentSession(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *TestimonialHandler) ListPending(ctx *fiber.Ctx) error {
	resp, err := h.svc.ListPending(ctx.UserContext(), middleware.CurrentSession(ctx), ctx.QueryInt("limit", 20), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TestimonialHandler) Approve(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	resp, err := h.svc.Approve(ctx.UserContext(), middleware.CurrentSession(ctx), id)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TestimonialHandler) Reject(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	var requestBody dto.RejectRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&requestBody); err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
		}
	}

	resp, err := h.svc.Reject(ctx.UserContext(), middleware.CurrentSession(ctx), id, requestBody.Reason)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
