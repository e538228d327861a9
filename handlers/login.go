package handlers

import (
	"errors"

	apierrors "tickets-webapp/errors"
	"tickets-webapp/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) Register(c *fiber.Ctx) error {
	req := new(service.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return apierrors.RaiseBadRequestError(c, "Error on register request when parse credentials")
	}

	result, err := h.accounts.Register(c.UserContext(), *req)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(result)
	case errors.Is(err, service.ErrInvalidAccount):
		return apierrors.RaiseBadRequestError(c, err.Error())
	case errors.Is(err, service.ErrAccountExists):
		return apierrors.RaiseConflictError(c, "An account with this email already exists")
	default:
		h.logger.Error().Err(err).Msg("Error registering account")
		return apierrors.RaiseInternalServerError(c, "Registration failed")
	}
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	req := new(service.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return apierrors.RaiseBadRequestError(c, "Error on login request when parse credentials")
	}

	result, err := h.accounts.Login(c.UserContext(), *req)
	switch {
	case err == nil:
		return c.JSON(result)
	case errors.Is(err, service.ErrInvalidCredentials):
		return apierrors.RaiseUnauthorizedError(c, "Invalid email or password")
	default:
		h.logger.Error().Err(err).Msg("Error on login request")
		return apierrors.RaiseInternalServerError(c, "Login failed")
	}
}
