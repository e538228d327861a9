package handlers

import (
	"net/url"
	"strings"

	apierrors "tickets-webapp/errors"
	"tickets-webapp/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) GetUserBookings(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || strings.TrimSpace(email) == "" {
		return apierrors.RaiseBadRequestError(c, "Invalid email")
	}

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apierrors.RaiseUnauthorizedError(c, "Invalid or expired JWT")
	}
	if !identity.IsAdmin() && !strings.EqualFold(identity.Email, email) {
		return apierrors.RaisePermissionsError(c, "bookings of other users are not accessible")
	}

	bookings, err := h.bookings.BookingsForEmail(c.UserContext(), email)
	if err != nil {
		h.logger.Error().Err(err).Msg("Error fetching user bookings")
		return apierrors.RaiseInternalServerError(c, "Error fetching bookings")
	}

	return c.JSON(bookings)
}

func (h *Handlers) GetBookings(c *fiber.Ctx) error {
	bookings, err := h.bookings.AllBookings(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("Error fetching bookings")
		return apierrors.RaiseInternalServerError(c, "Error fetching bookings")
	}

	return c.JSON(bookings)
}

func (h *Handlers) GetMyPasses(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apierrors.RaiseUnauthorizedError(c, "Invalid or expired JWT")
	}

	passes, err := h.bookings.PassesForUser(c.UserContext(), identity.UserID)
	if err != nil {
		h.logger.Error().Err(err).Str("userId", identity.UserID).Msg("Error fetching passes")
		return apierrors.RaiseInternalServerError(c, "Error fetching passes")
	}

	return c.JSON(passes)
}
