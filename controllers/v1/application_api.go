package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hiring-platform-backend/controllers"
	"hiring-platform-backend/lib/apperror"
	applicationhandler "hiring-platform-backend/lib/application"
	"hiring-platform-backend/middleware"
	"hiring-platform-backend/models"
	apimodels "hiring-platform-backend/models/api"
	applicationapimodels "hiring-platform-backend/models/api/application"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("jobs/:id/applications", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Get("", controller.listByJob)
	})
	app.Route("applications", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("my", controller.listMy)
	})
}

// @Summary Apply to a job
// @Tags Applications
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"job ID"
// @Param	body body	 applicationapimodels.ApplicationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/jobs/{id}/applications [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	if role != models.UserRoleCandidate {
		return c.SendError(ctx, c.GetLogger(ctx),
			apperror.Forbidden("only candidates may apply to jobs"), "forbidden")
	}
	jobID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid id")
	}
	var payload applicationapimodels.ApplicationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse request")
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "validation failed")
	}
	id, err := applicationhandler.Instance.Create(jobID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create application")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}

// @Summary List applications for a job
// @Tags Applications
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id				path	string	true	"job ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 403 {object} apimodels.Response
// @router /api/v1/jobs/{id}/applications [get]
func (c *applicationApiController) listByJob(ctx *fiber.Ctx) error {
	userID, role, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	jobID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "invalid id")
	}
	var filter applicationapimodels.ApplicationFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse query")
	}
	list, count, err := applicationhandler.Instance.ListByJob(jobID, userID, role, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list applications")
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, page, limit, count))
}

// @Summary List caller's own applications
// @Tags Applications
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @router /api/v1/applications/my [get]
func (c *applicationApiController) listMy(ctx *fiber.Ctx) error {
	userID, _, err := c.Identity(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "authentication required")
	}
	var filter applicationapimodels.ApplicationFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse query")
	}
	list, count, err := applicationhandler.Instance.ListMy(userID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list applications")
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, page, limit, count))
}
