package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hiring-platform-backend/controllers"
	xlsexport "hiring-platform-backend/lib/export/xls"
	jobhandler "hiring-platform-backend/lib/job"
	"hiring-platform-backend/middleware"
	"hiring-platform-backend/models"
	apimodels "hiring-platform-backend/models/api"
	jobapimodels "hiring-platform-backend/models/api/job"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app *fiber.App) {
	controller := jobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Get("stats", controller.stats)
		router.Get("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("submit", controller.submit)
			idRoute.Post("approve", controller.approve)
			idRoute.Post("reject", controller.reject)
			idRoute.Post("publish", controller.publish)
			idRoute.Post("close", controller.close)
			idRoute.Post("cancel", controller.cancel)
			idRoute.Post("fill", controller.fill)
		})
	})
}

// @Summary Create job posting
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/jobs [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse request")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "validation failed")
	}
	id, err := jobhandler.Instance.Create(userID, role, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create job")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary List jobs
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	status			query	string	false	"status filter"
// @Param	search			query	string	false	"free text search"
// @Param	page			query	int		false	"page (1-indexed)"
// @Param	limit			query	int		false	"page size"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/jobs [get]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	var filter jobapimodels.JobFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse query")
	}
	list, rowCount, err := jobhandler.Instance.List(userID, role, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list jobs")
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, page, limit, rowCount))
}

// @Summary Get job by id
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/jobs/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid id")
	}
	resp, err := jobhandler.Instance.GetByID(id, userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update job posting
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id} [put]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid id")
	}
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse request")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "validation failed")
	}
	if err := jobhandler.Instance.Update(id, userID, role, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete job posting
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id} [delete]
func (c *jobApiController) delete(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid id")
	}
	if err := jobhandler.Instance.Delete(id, userID, role); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Submit job for approval
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/submit [post]
func (c *jobApiController) submit(ctx *fiber.Ctx) error {
	return c.runTransition(ctx, func(id, userID string, role models.UserRole) error {
		return jobhandler.Instance.SubmitForApproval(id, userID, role)
	}, "failed to submit job for approval")
}

// @Summary Approve job
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Param	body body	 jobapimodels.ApproveRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/approve [post]
func (c *jobApiController) approve(ctx *fiber.Ctx) error {
	var payload jobapimodels.ApproveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse request")
	}
	return c.runTransition(ctx, func(id, userID string, role models.UserRole) error {
		return jobhandler.Instance.Approve(id, userID, role, payload)
	}, "failed to approve job")
}

// @Summary Reject job
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Param	body body	 jobapimodels.RejectRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/reject [post]
func (c *jobApiController) reject(ctx *fiber.Ctx) error {
	var payload jobapimodels.RejectRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse request")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "validation failed")
	}
	return c.runTransition(ctx, func(id, userID string, role models.UserRole) error {
		return jobhandler.Instance.Reject(id, userID, role, payload)
	}, "failed to reject job")
}

// @Summary Publish job
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/publish [post]
func (c *jobApiController) publish(ctx *fiber.Ctx) error {
	return c.runTransition(ctx, func(id, userID string, role models.UserRole) error {
		return jobhandler.Instance.Publish(id, userID, role)
	}, "failed to publish job")
}

// @Summary Close job
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Param	body body	 jobapimodels.CloseRequest	false	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/close [post]
func (c *jobApiController) close(ctx *fiber.Ctx) error {
	var payload jobapimodels.CloseRequest
	if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse request")
		}
	}
	return c.runTransition(ctx, func(id, userID string, role models.UserRole) error {
		return jobhandler.Instance.Close(id, userID, role, payload)
	}, "failed to close job")
}

// @Summary Cancel draft job
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/cancel [post]
func (c *jobApiController) cancel(ctx *fiber.Ctx) error {
	return c.runTransition(ctx, func(id, userID string, role models.UserRole) error {
		return jobhandler.Instance.Cancel(id, userID, role)
	}, "failed to cancel job")
}

// @Summary Mark job as filled
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/fill [post]
func (c *jobApiController) fill(ctx *fiber.Ctx) error {
	return c.runTransition(ctx, func(id, userID string, role models.UserRole) error {
		return jobhandler.Instance.MarkFilled(id, userID, role)
	}, "failed to mark job as filled")
}

// @Summary Job stats
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=jobapimodels.StatsView}
// @Failure 503 {object} apimodels.Response
// @router /api/v1/jobs/stats [get]
func (c *jobApiController) stats(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	stats, err := jobhandler.Instance.Stats(userID, role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get job stats")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(stats))
}

// @Summary Export jobs to xlsx
// @Tags Jobs
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403 {object} apimodels.Response
// @router /api/v1/jobs/export [get]
func (c *jobApiController) export(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	var filter jobapimodels.JobFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse query")
	}
	list, err := jobhandler.Instance.ListForExport(userID, role, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export jobs")
	}
	buf, err := xlsexport.Instance.ExportJobList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build xlsx")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="jobs.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

func (c *jobApiController) runTransition(ctx *fiber.Ctx, run func(id, userID string, role models.UserRole) error, failMsg string) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid id")
	}
	if err := run(id, userID, role); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, failMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
