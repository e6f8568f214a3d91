package routes

import (
	"net/http"
	"time"

	"velora/handlers"
	"velora/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterClientRoutes registers account and profile endpoints.
func RegisterClientRoutes(r *gin.Engine, ch *handlers.ClientHandler) {
	api := r.Group("/api/clients")
	{
		api.POST("/register", ch.Register)
		api.POST("/login", ch.Login)
	}

	profile := r.Group("/api/profile")
	{
		profile.Use(middleware.JWTAuthMiddleware())
		profile.GET("", ch.Profile)
		profile.PUT("", ch.UpdateProfile)
		profile.GET("/appointments", ch.Appointments)
		profile.POST("/appointments/:appointmentID/cancel", ch.CancelAppointment)
		profile.GET("/vouchers", ch.Vouchers)
		profile.GET("/vouchers/:voucherID/usable", ch.VoucherUsable)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ch *handlers.ClientHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterClientRoutes(r, ch)
	RegisterBookingRoutes(r, bh)
}
