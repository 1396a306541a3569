package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/api/rest/middleware"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/services"
)

type DocumentHandler struct {
	svc services.DocumentService
	log *zap.Logger
}

func NewDocumentHandler(svc services.DocumentService, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: log}
}

func (h *DocumentHandler) SetupRoutes(api fiber.Router, g Guards) {
	// Teacher
	me := api.Group("/teachers/me")
	me.Post("/documents", g.Auth, h.Upload)
	me.Get("/documents", g.Auth, h.ListMine)
	me.Delete("/documents/:id", g.Auth, h.Delete)
	me.Get("/verification", g.Auth, h.Verification)

	// Admin review queue
	admin := api.Group("/admin/documents", g.Auth, g.Admin)
	admin.Get("/pending", h.ListPending)
	admin.Get("/pending/count", h.CountPending)
	admin.Post("/:id/approve", h.Approve)
	admin.Post("/:id/reject", h.Reject)

	api.Get("/admin/teachers/:teacherID", g.Auth, g.Admin, h.TeacherDetail)
}

// POST /api/teachers/me/documents
// form-data: document_type=<type>, file=<pdf|image>
func (h *DocumentHandler) Upload(ctx *fiber.Ctx) error {
	docType := ctx.FormValue("document_type")
	if docType == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "document_type is required")
	}

	file, err := readUpload(ctx, "file", maxDocumentUpload)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}

	resp, err := h.svc.Upload(ctx.UserContext(), middleware.CurrentSession(ctx), docType, file)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *DocumentHandler) ListMine(ctx *fiber.Ctx) error {
	resp, err := h.svc.ListMine(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *DocumentHandler) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	if err := h.svc.Delete(ctx.UserContext(), middleware.CurrentSession(ctx), id); err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "document deleted")
}

func (h *DocumentHandler) Verification(ctx *fiber.Ctx) error {
	resp, err := h.svc.Verification(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *DocumentHandler) ListPending(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	resp, err := h.svc.ListPending(ctx.UserContext(), middleware.CurrentSession(ctx), limit, offset)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *DocumentHandler) CountPending(ctx *fiber.Ctx) error {
	n, err := h.svc.CountPending(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.CountResponse{Count: n})
}

func (h *DocumentHandler) Approve(ctx *fiber.Ctx) error {
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

func (h *DocumentHandler) Reject(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}

	// the reason is optional, so an empty body is fine
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

func (h *DocumentHandler) TeacherDetail(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "teacherID")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	resp, err := h.svc.TeacherDetail(ctx.UserContext(), middleware.CurrentSession(ctx), id)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
