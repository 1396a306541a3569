package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/api/rest/middleware"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/services"
)

type SchoolHandler struct {
	svc  services.SchoolService
	jobs services.JobService
	log  *zap.Logger
}

func NewSchoolHandler(svc services.SchoolService, jobs services.JobService, log *zap.Logger) *SchoolHandler {
	return &SchoolHandler{svc: svc, jobs: jobs, log: log}
}

func (h *SchoolHandler) SetupRoutes(api fiber.Router, g Guards) {
	me := api.Group("/schools/me", g.Auth)
	me.Get("/", h.GetMe)
	me.Put("/", h.UpdateMe)
	me.Post("/registration-certificate", h.UploadRegistrationCertificate)
	me.Get("/jobs", h.ListJobs)
}

func (h *SchoolHandler) GetMe(ctx *fiber.Ctx) error {
	resp, err := h.svc.GetMe(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *SchoolHandler) UpdateMe(ctx *fiber.Ctx) error {
	var requestBody dto.SchoolProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.UpdateMe(ctx.UserContext(), middleware.CurrentSession(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// POST /api/schools/me/registration-certificate
// form-data: file=<pdf|image>
func (h *SchoolHandler) UploadRegistrationCertificate(ctx *fiber.Ctx) error {
	file, err := readUpload(ctx, "file", maxDocumentUpload)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}

	resp, err := h.svc.UploadRegistrationCertificate(ctx.UserContext(), middleware.CurrentSession(ctx), file)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *SchoolHandler) ListJobs(ctx *fiber.Ctx) error {
	resp, err := h.jobs.ListMine(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
