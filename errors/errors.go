package errors

import (
	"github.com/gofiber/fiber/v2"
)

func RaiseError(context *fiber.Ctx, status int, message string, data interface{}) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusForbidden, message, nil)
}

func RaiseUnauthorizedError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusUnauthorized, message, nil)
}

func RaiseInternalServerError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusInternalServerError, message, nil)
}

func RaiseBadRequestError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusBadRequest, message, nil)
}

func RaiseConflictError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusConflict, message, nil)
}

func RaiseTooManyRequestsError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusTooManyRequests, message, nil)
}

func RaiseNotFoundError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusNotFound, message, nil)
}
