package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/api/rest/middleware"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/services"
)

type TeacherHandler struct {
	svc services.TeacherService
	log *zap.Logger
}

func NewTeacherHandler(svc services.TeacherService, log *zap.Logger) *TeacherHandler {
	return &TeacherHandler{svc: svc, log: log}
}

func (h *TeacherHandler) SetupRoutes(api fiber.Router, g Guards) {
	teachers := api.Group("/teachers")

	// Profile
	teachers.Get("/me", g.Auth, h.GetMe)
	teachers.Put("/me", g.Auth, h.UpdateMe)
	teachers.Post("/me/completeness", g.Auth, h.PreviewCompleteness)
	teachers.Post("/me/profile-picture", g.Auth, h.UploadProfilePicture)
	teachers.Delete("/me/profile-picture", g.Auth, h.RemoveProfilePicture)

	// Experience
	teachers.Post("/me/experiences", g.Auth, h.AddExperience)
	teachers.Get("/me/experiences", g.Auth, h.ListExperiences)
	teachers.Delete("/me/experiences/:id", g.Auth, h.DeleteExperience)

	teachers.Get("/:teacherID", g.Auth, h.GetByID)
}

func (h *TeacherHandler) GetMe(ctx *fiber.Ctx) error {
	resp, err := h.svc.GetMe(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TeacherHandler) UpdateMe(ctx *fiber.Ctx) error {
	var requestBody dto.TeacherProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.UpdateMe(ctx.UserContext(), middleware.CurrentSession(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TeacherHandler) PreviewCompleteness(ctx *fiber.Ctx) error {
	var requestBody dto.CompletenessPreviewRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.PreviewCompleteness(ctx.UserContext(), middleware.CurrentSession(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// POST /api/teachers/me/profile-picture
// form-data: file=<image>
func (h *TeacherHandler) UploadProfilePicture(ctx *fiber.Ctx) error {
	file, err := readUpload(ctx, "file", maxPictureUpload)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}

	resp, err := h.svc.UploadProfilePicture(ctx.UserContext(), middleware.CurrentSession(ctx), file)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TeacherHandler) RemoveProfilePicture(ctx *fiber.Ctx) error {
	if err := h.svc.RemoveProfilePicture(ctx.UserContext(), middleware.CurrentSession(ctx)); err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "profile picture removed")
}

func (h *TeacherHandler) AddExperience(ctx *fiber.Ctx) error {
	var requestBody dto.ExperienceRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.AddExperience(ctx.UserContext(), middleware.CurrentSession(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *TeacherHandler) ListExperiences(ctx *fiber.Ctx) error {
	resp, err := h.svc.ListExperiences(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *TeacherHandler) DeleteExperience(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	if err := h.svc.DeleteExperience(ctx.UserContext(), middleware.CurrentSession(ctx), id); err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "experience deleted")
}

func (h *TeacherHandler) GetByID(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "teacherID")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	resp, err := h.svc.GetByID(ctx.UserContext(), middleware.CurrentSession(ctx), id)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
