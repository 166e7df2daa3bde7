package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-ticket-booking/internal/booking"
	"github.com/iliyamo/airline-ticket-booking/internal/config"
	"github.com/iliyamo/airline-ticket-booking/internal/database"
	"github.com/iliyamo/airline-ticket-booking/internal/handler"
	"github.com/iliyamo/airline-ticket-booking/internal/queue"
	"github.com/iliyamo/airline-ticket-booking/internal/repository"
	"github.com/iliyamo/airline-ticket-booking/internal/router"
)

func main() {
	cfg := config.Load()

	// MySQL comes up alongside the server in the container stack, so wait
	// for it instead of failing on the first refused connection.
	db, err := database.WaitFor(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		cfg.DBWaitAttempts, cfg.DBWaitInterval)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	flightRepo := repository.NewFlightRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	couponRepo := repository.NewCouponRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	workflow := booking.NewWorkflow(repository.NewBookingCatalog(flightRepo, catalogRepo, couponRepo))

	// Redis backs the response cache and the rate limiter; both degrade to
	// no-ops when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer appends committed orders to logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterFlights(e, handler.NewFlightHandler(flightRepo), rdb)
	router.RegisterOrders(e, handler.NewOrderHandler(orderRepo, workflow), cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
