package http

import (
	"github.com/labstack/echo/v4"

	"renthive-backend/internal/adapter/middleware"
	"renthive-backend/internal/domain/auth"
)

// Router wires handlers onto echo. Idempotency and WS are optional.
type Router struct {
	Health       *Handler
	Listings     *ListingHandler
	Applications *ApplicationHandler
	Payments     *PaymentHandler
	Rentals      *RentalHandler

	Auth        echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
	WS          echo.HandlerFunc
}

func (r Router) Register(e *echo.Echo) {
	renter := middleware.RequireRole(auth.RoleRenter, auth.RoleOwner)
	owner := middleware.RequireRole(auth.RoleOwner)

	// reads: auth + role; writes additionally go through idempotency
	read := func(role echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{r.Auth, role}
	}
	write := func(role echo.MiddlewareFunc) []echo.MiddlewareFunc {
		if r.Idempotency == nil {
			return read(role)
		}
		return []echo.MiddlewareFunc{r.Auth, role, r.Idempotency}
	}

	e.GET("/health", r.Health.Health)
	if r.WS != nil {
		e.GET("/ws", r.WS, r.Auth)
	}

	l := e.Group("/listings")
	l.GET("/:type/:id", r.Listings.Get)
	l.GET("/:type/:id/quote", r.Listings.Quote)
	l.GET("/:type/:id/reviews", r.Listings.Reviews)
	l.PUT("/:type/:id/reviews", r.Listings.UpsertReview, write(renter)...)

	b := e.Group("/bookings")
	b.GET("/applications", r.Applications.ListMine, read(renter)...)
	b.GET("/applications/:id", r.Applications.Get, read(renter)...)
	b.GET("/rentals", r.Rentals.ListMine, read(renter)...)
	b.POST("/applications", r.Applications.Create, write(renter)...)
	b.PUT("/applications/:id", r.Applications.Update, write(renter)...)
	b.DELETE("/applications/:id", r.Applications.Cancel, write(renter)...)
	b.POST("/pay/:applicationId", r.Payments.Pay, write(renter)...)

	o := e.Group("/owners")
	o.GET("/all-bookings", r.Applications.AllBookings, read(owner)...)
	o.GET("/applicants", r.Applications.Applicants, read(owner)...)
	o.GET("/rentals", r.Rentals.ListForOwner, read(owner)...)
	o.GET("/listings", r.Listings.ListMine, read(owner)...)
	o.POST("/listings/properties", r.Listings.CreateProperty, write(owner)...)
	o.POST("/listings/vehicles", r.Listings.CreateVehicle, write(owner)...)
	o.PATCH("/bookings/:id/approve", r.Applications.Approve, write(owner)...)
	o.PATCH("/bookings/:id/reject", r.Applications.Reject, write(owner)...)
	o.PATCH("/rentals/:id/complete", r.Rentals.Complete, write(owner)...)
}
