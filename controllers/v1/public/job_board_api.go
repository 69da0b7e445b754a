package public

import (
	"github.com/gofiber/fiber/v2"

	"hiring-platform-backend/controllers"
	"hiring-platform-backend/lib/apperror"
	jobhandler "hiring-platform-backend/lib/job"
	apimodels "hiring-platform-backend/models/api"
	jobapimodels "hiring-platform-backend/models/api/job"
)

type jobBoardApiController struct {
	controllers.BaseAPIController
}

// InitJobBoardApiRouters registers the anonymous job board; no identity is
// required, so these routes must be mounted before the authorized /jobs
// group.
func InitJobBoardApiRouters(app *fiber.App) {
	controller := jobBoardApiController{}
	app.Route("jobs/public", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":link", controller.get)
	})
}

// @Summary Public job board listing
// @Tags Job board
// @Param	search	query	string	false	"free text search"
// @Param	page	query	int		false	"page (1-indexed)"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.JobView}
// @Failure 503 {object} apimodels.Response
// @router /api/v1/jobs/public [get]
func (c *jobBoardApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.JobFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to parse query")
	}
	list, rowCount, err := jobhandler.Instance.BoardList(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list public jobs")
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewListResponse(list, page, limit, rowCount))
}

// @Summary Public job detail by slug
// @Tags Job board
// @Param   link	path	string	true	"public link"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/jobs/public/{link} [get]
func (c *jobBoardApiController) get(ctx *fiber.Ctx) error {
	link := ctx.Params("link")
	if link == "" {
		return c.SendError(ctx, c.GetLogger(ctx), apperror.NotFound("job not found"), "job not found")
	}
	resp, err := jobhandler.Instance.BoardGetByLink(link)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get public job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
