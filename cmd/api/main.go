package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"

	httpadp "renthive-backend/internal/adapter/http"
	rhmw "renthive-backend/internal/adapter/middleware"
	"renthive-backend/internal/adapter/notify"
	"renthive-backend/internal/adapter/repository/gormrepo"
	"renthive-backend/internal/adapter/ws"
	"renthive-backend/internal/config"
	"renthive-backend/internal/domain/pricing"
	"renthive-backend/internal/infrastructure/cache"
	"renthive-backend/internal/infrastructure/db"
	"renthive-backend/internal/infrastructure/gateway"
	ucApplicant "renthive-backend/internal/usecase/applicant"
	ucApplication "renthive-backend/internal/usecase/application"
	ucListing "renthive-backend/internal/usecase/listing"
	ucPayment "renthive-backend/internal/usecase/payment"
	ucRental "renthive-backend/internal/usecase/rental"
	ucReview "renthive-backend/internal/usecase/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gormrepo.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestID(), middleware.Logger(), middleware.Recover())
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{echo.HeaderAuthorization, echo.HeaderContentType, rhmw.HeaderIdempotencyKey, rhmw.HeaderRequestAt},
		ExposedHeaders:   []string{"Idempotent-Replayed", echo.HeaderXRequestID},
		AllowCredentials: true,
	}).Handler))

	// events: usecases publish to redis, the hub pushes to sockets
	hub := ws.NewHub(e.Logger, cfg.CORSAllowedOrigins)
	defer hub.Close()
	pub := notify.NewRedisPublisher(rdb, cfg.EventsChannel)
	sub, err := notify.Subscribe(ctx, rdb, cfg.EventsChannel, e.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer sub.Close()
	go sub.Run(ctx, hub.Deliver)

	repos := gormrepo.NewRepos(gdb)
	tx := gormrepo.NewGormUoW(gdb)
	calc := pricing.NewCalculator(cfg.Fees)
	gw := gateway.NewSimulated(cfg.GatewayDelay)

	router := httpadp.Router{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "db", Ping: sqlDB.PingContext},
			httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
		Listings: httpadp.NewListingHandler(
			ucListing.NewUsecase(repos.Listings, calc),
			ucReview.NewUsecase(repos.Reviews, repos.Rentals, repos.Listings),
		),
		Applications: httpadp.NewApplicationHandler(
			ucApplication.NewUsecase(repos.Applications, repos.Listings, tx, calc, pub),
			ucApplicant.NewUsecase(repos.Applications),
		),
		Payments: httpadp.NewPaymentHandler(ucPayment.NewUsecase(repos.Applications, gw, tx, pub)),
		Rentals:  httpadp.NewRentalHandler(ucRental.NewUsecase(repos.Rentals, tx, pub)),

		Auth:        rhmw.JWTAuth([]byte(cfg.JWTSecret)),
		Idempotency: rhmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
		WS:          hub.Handle,
	}
	router.Register(e)

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
