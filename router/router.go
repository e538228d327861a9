package router

import (
	"tickets-webapp/config"
	apierrors "tickets-webapp/errors"
	"tickets-webapp/handlers"
	"tickets-webapp/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config, logger *zerolog.Logger) {
	app.Use(recover.New(), cors.New(), middleware.RequestLogger(logger))

	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	//Accounts
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)

	//Payments
	limit := middleware.RateLimit(cfg.RateLimit)
	api.Post("/create-order", limit, h.CreateOrder)
	api.Post("/verify-payment", limit, h.VerifyPayment)

	//Bookings
	bookings := api.Group("/bookings", middleware.Authorize(cfg.Auth.SigningKey))
	bookings.Get("/my-passes", h.GetMyPasses)
	bookings.Get("/user/:email", h.GetUserBookings)
	bookings.Get("/", middleware.RequireAdmin(), h.GetBookings)

	app.Use(func(c *fiber.Ctx) error {
		return apierrors.RaiseNotFoundError(c, "Route not found")
	})
}
