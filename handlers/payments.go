package handlers

import (
	"errors"

	apierrors "tickets-webapp/errors"
	"tickets-webapp/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) VerifyPayment(c *fiber.Ctx) error {
	req := new(service.VerifyPaymentRequest)
	if err := c.BodyParser(req); err != nil {
		return apierrors.RaiseBadRequestError(c, "Invalid payment payload")
	}

	booking, err := h.payments.VerifyPayment(c.UserContext(), *req)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"success": true,
			"booking": booking,
		})
	case errors.Is(err, service.ErrInvalidSignature):
		return apierrors.RaiseBadRequestError(c, "Invalid payment signature")
	case errors.Is(err, service.ErrAmountMismatch):
		return apierrors.RaiseBadRequestError(c, "Booking total does not match the order amount")
	case errors.Is(err, service.ErrInvalidBooking):
		return apierrors.RaiseBadRequestError(c, "Invalid booking details")
	default:
		return apierrors.RaiseInternalServerError(c, "Error verifying payment")
	}
}
