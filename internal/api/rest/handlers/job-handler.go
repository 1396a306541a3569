package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/api/rest/middleware"
	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/services"
)

type JobHandler struct {
	jobs services.JobService
	apps services.ApplicationService
	log  *zap.Logger
}

func NewJobHandler(jobs services.JobService, apps services.ApplicationService, log *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps, log: log}
}

func (h *JobHandler) SetupRoutes(api fiber.Router, g Guards) {
	jobs := api.Group("/jobs", g.Auth)
	jobs.Post("/", h.Create)
	jobs.Get("/", h.List)
	jobs.Get("/:id", h.Get)
	jobs.Put("/:id", h.Update)
	jobs.Patch("/:id/status", h.SetStatus)

	// Applications
	jobs.Post("/:id/applications", h.Apply)
	jobs.Get("/:id/applications", h.ListApplications)

	apps := api.Group("/applications", g.Auth)
	apps.Patch("/:id/status", h.SetApplicationStatus)
	apps.Patch("/:id/shortlist", h.SetShortlisted)

	api.Get("/teachers/me/applications", g.Auth, h.ListMyApplications)
}

func (h *JobHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.JobRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.jobs.Create(ctx.UserContext(), middleware.CurrentSession(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

// GET /api/jobs?q=&phase=&subject=&status=&near=1&limit=&offset=
func (h *JobHandler) List(ctx *fiber.Ctx) error {
	var q dto.JobQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid query")
	}
	// accept near=1 as well as near=true
	q.Near = q.Near || ctx.Query("near") == "1"

	resp, err := h.jobs.List(ctx.UserContext(), middleware.CurrentSession(ctx), q)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *JobHandler) Get(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	resp, err := h.jobs.Get(ctx.UserContext(), middleware.CurrentSession(ctx), id)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *JobHandler) Update(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	var requestBody dto.JobRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.jobs.Update(ctx.UserContext(), middleware.CurrentSession(ctx), id, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *JobHandler) SetStatus(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	var requestBody dto.SetStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	resp, err := h.jobs.SetStatus(ctx.UserContext(), middleware.CurrentSession(ctx), id, requestBody.Status)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *JobHandler) Apply(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	var requestBody dto.ApplyRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&requestBody); err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
		}
	}

	resp, err := h.apps.Apply(ctx.UserContext(), middleware.CurrentSession(ctx), id, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, resp)
}

func (h *JobHandler) ListApplications(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	resp, err := h.apps.ListForJob(ctx.UserContext(), middleware.CurrentSession(ctx), id)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *JobHandler) ListMyApplications(ctx *fiber.Ctx) error {
	resp, err := h.apps.ListMine(ctx.UserContext(), middleware.CurrentSession(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *JobHandler) SetApplicationStatus(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	var requestBody dto.SetStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	resp, err := h.apps.SetStatus(ctx.UserContext(), middleware.CurrentSession(ctx), id, requestBody.Status)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *JobHandler) SetShortlisted(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	var requestBody dto.ShortlistRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "shortlisted is required")
	}

	resp, err := h.apps.SetShortlisted(ctx.UserContext(), middleware.CurrentSession(ctx), id, requestBody.Shortlisted)
	if err != nil {
		return utils.ResponseServiceError(ctx, h.log, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}
