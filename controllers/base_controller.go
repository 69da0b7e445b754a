package controllers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"hiring-platform-backend/fiberlog"
	"hiring-platform-backend/lib/apperror"
	"hiring-platform-backend/middleware"
	"hiring-platform-backend/models"
	apimodels "hiring-platform-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return apperror.Validation([]apperror.FieldError{
			{Field: "body", Message: "malformed request body"},
		})
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", apperror.Validation([]apperror.FieldError{
			{Field: "id", Message: "record id is required"},
		})
	}
	return id, nil
}

// Identity extracts the verified {userId, role} pair the jwt middleware put
// on the request; every engine call authorizes on these two values alone.
func (c *BaseAPIController) Identity(ctx *fiber.Ctx) (userID string, role models.UserRole, err error) {
	userID = middleware.GetUserID(ctx)
	role = middleware.GetUserRole(ctx)
	if userID == "" || !role.IsKnown() {
		return "", "", apperror.New(apperror.CodeAuthRequired, "identity assertion is missing user id or role")
	}
	return userID, role, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("request_id", fiberlog.RequestID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

var httpStatusByCode = map[apperror.Code]int{
	apperror.CodeAuthRequired:         fiber.StatusUnauthorized,
	apperror.CodeForbidden:            fiber.StatusForbidden,
	apperror.CodeUnauthorized:         fiber.StatusForbidden,
	apperror.CodeNotFound:             fiber.StatusNotFound,
	apperror.CodeInvalidStatus:        fiber.StatusConflict,
	apperror.CodeValidation:           fiber.StatusBadRequest,
	apperror.CodeDuplicateApplication: fiber.StatusConflict,
	apperror.CodeUnavailable:          fiber.StatusServiceUnavailable,
	apperror.CodeInternal:             fiber.StatusInternalServerError,
}

// SendError maps an error to the response envelope. Unrecognized errors are
// logged with the request correlation id and reported as a generic internal
// failure, never with internal detail.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	appErr, ok := apperror.As(err)
	if !ok {
		logger.WithError(err).Error(msg)
		appErr = apperror.New(apperror.CodeInternal, msg)
	}
	status, exist := httpStatusByCode[appErr.Code]
	if !exist {
		status = fiber.StatusInternalServerError
	}
	if status >= fiber.StatusInternalServerError {
		logger.WithError(err).Error(msg)
	}
	return ctx.Status(status).JSON(apimodels.NewError(appErr))
}
