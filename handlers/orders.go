package handlers

import (
	"errors"

	apierrors "tickets-webapp/errors"
	"tickets-webapp/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	type createOrderRequest struct {
		Amount float64 `json:"amount"`
	}

	req := new(createOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return apierrors.RaiseBadRequestError(c, "Invalid order request")
	}

	order, err := h.orders.CreateOrder(c.UserContext(), req.Amount)
	if errors.Is(err, service.ErrInvalidAmount) {
		return apierrors.RaiseBadRequestError(c, "Amount must be a positive number")
	}
	if err != nil {
		return apierrors.RaiseInternalServerError(c, "Error creating order")
	}

	return c.JSON(order)
}
