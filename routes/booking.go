package routes

import (
	"velora/handlers"
	"velora/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	catalog := r.Group("/api")
	{
		catalog.GET("/services", bh.ListServices)
		catalog.GET("/services/:serviceID/professionals", bh.ListProfessionals)
	}

	booking := r.Group("/api/booking")
	{
		// Sessions can be started before logging in; the client binds on
		// confirmation.
		booking.POST("/session", middleware.OptionalAuthMiddleware(), bh.StartSession)
		booking.POST("/session/edit", middleware.JWTAuthMiddleware(), bh.StartEditSession)

		booking.GET("/session/:sessionID", bh.GetSession)
		booking.PUT("/session/:sessionID/service", bh.SelectService)
		booking.PUT("/session/:sessionID/professional", bh.SelectProfessional)
		booking.PUT("/session/:sessionID/datetime", bh.SelectDateTime)
		booking.POST("/session/:sessionID/back", bh.StepBack)
		booking.GET("/session/:sessionID/slots", bh.Availability)
		booking.POST("/session/:sessionID/search", bh.SearchSlots)
		booking.DELETE("/session/:sessionID", bh.CancelSession)

		booking.POST("/session/:sessionID/confirm", middleware.JWTAuthMiddleware(), bh.Confirm)
	}
}
