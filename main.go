package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tickets-webapp/config"
	"tickets-webapp/database"
	"tickets-webapp/handlers"
	"tickets-webapp/logging"
	"tickets-webapp/metrics"
	"tickets-webapp/payment"
	"tickets-webapp/router"
	"tickets-webapp/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", config.DEFAULT_CONFIG_PATH, "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
	var (
		bookingStore service.BookingStore
		userStore    service.UserStore
		ledger       payment.OrderLedger
	)

	switch cfg.Database.Driver {
	case "mongo":
		client, err := database.Connect(ctx, cfg.Database.Mongo)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error().Err(err).Msg("mongo disconnect")
			}
		}()

		db := client.Database(cfg.Database.Mongo.Database)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		bookingStore = database.NewMongoBookingStore(db.Collection(database.BookingsCollection))
		userStore = database.NewMongoUserStore(db.Collection(database.UsersCollection))
		logger.Info().Str("database", cfg.Database.Mongo.Database).Msg("MongoDB connected")
	default:
		logger.Warn().Msg("using in-memory booking store, data is lost on restart")
		bookingStore = database.NewMemoryBookingStore()
		userStore = database.NewMemoryUserStore()
	}

	switch cfg.Ledger.Driver {
	case "redis":
		client := payment.NewRedisClient(cfg.Redis)
		defer client.Close()
		if err := payment.Ping(ctx, client); err != nil {
			return err
		}
		ledger = payment.NewRedisLedger(client, cfg.Ledger.TTL)
	default:
		memoryLedger := payment.NewMemoryLedger(cfg.Ledger.TTL)
		go memoryLedger.RunSweeper(ctx, time.Minute)
		ledger = memoryLedger
	}

	metrics.Register()

	gateway := payment.NewRazorpayGateway(cfg.Razorpay)
	h := handlers.New(
		service.NewOrderService(gateway, ledger, logger),
		service.NewPaymentService(cfg.Razorpay.KeySecret, service.NewCatalog(cfg.Tickets.Prices, cfg.Tickets.MaxQuantity), gateway, ledger, bookingStore, logger),
		service.NewBookingService(bookingStore),
		service.NewAccountService(userStore, cfg.Auth.SigningKey, cfg.Auth.TokenTTL, logger),
		logger,
	)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		DisableStartupMessage: true,
	})
	router.SetupRoutes(app, h, cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		logger.Info().Str("addr", addr).Msg("Server running")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
