package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/smartpark/smartpark/config"
	"github.com/smartpark/smartpark/internal/handler"
	"github.com/smartpark/smartpark/internal/middleware"
	"github.com/smartpark/smartpark/internal/repository"
	"github.com/smartpark/smartpark/internal/service"
	"github.com/smartpark/smartpark/pkg/database"
	"github.com/smartpark/smartpark/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Reservation events are best-effort: the API stays up without a broker.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, reservation events disabled: %v", err)
	} else {
		defer publisher.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	zoneSvc := service.NewZoneService(zoneRepo)
	slotSvc := service.NewSlotService(slotRepo, zoneRepo)
	reservationSvc := service.NewReservationService(reservationRepo, slotRepo, publisher)
	dashboardSvc := service.NewDashboardService(zoneRepo, slotRepo, reservationRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "smartpark"})
	})

	api := e.Group("/api/v1")
	handler.NewAuthHandler(authSvc).RegisterRoutes(api.Group("/auth"))

	authed := api.Group("", middleware.Auth(authSvc))
	handler.NewReservationHandler(reservationSvc).RegisterRoutes(authed.Group("/reservations"))
	handler.NewZoneHandler(zoneSvc).RegisterRoutes(authed.Group("/zones"))
	handler.NewSlotHandler(slotSvc).RegisterRoutes(authed.Group("/slots"))
	handler.NewDashboardHandler(dashboardSvc).RegisterRoutes(authed.Group("/dashboard"))

	log.Printf("SmartPark API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
