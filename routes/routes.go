package routes

import (
	"ridebook/handlers"
	"ridebook/middleware"
	"ridebook/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the assembled handlers for route registration.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Payment  *handlers.PaymentHandler
	Auth     *handlers.AuthHandler
	Operator *handlers.OperatorHandler
	Records  *handlers.RecordsHandler
	Sessions user.SessionService
}

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, b *HandlerBundle) {
	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")

	api.GET("/operator/params", b.Operator.GetParams)

	auth := api.Group("/auth")
	{
		auth.POST("/otp/request", b.Auth.RequestOTP)
		auth.POST("/otp/verify", b.Auth.VerifyOTP)

		authed := auth.Group("", middleware.UserAuthMiddleware(b.Sessions))
		{
			authed.GET("/profile", b.Auth.GetProfile)
			authed.PUT("/profile", b.Auth.UpdateProfile)
			authed.POST("/logout", b.Auth.Logout)
		}
	}

	// Draft mutation works before login; quoting and submission need the
	// session identifier pair.
	booking := api.Group("/booking", middleware.DraftMiddleware())
	{
		booking.POST("/mount", b.Booking.Mount)
		booking.GET("/draft", b.Booking.GetDraft)
		booking.PUT("/draft/pickup", b.Booking.SetPickup)
		booking.PUT("/draft/dropoff", b.Booking.SetDropoff)
		booking.PUT("/draft/stops", b.Booking.SetStops)
		booking.PUT("/draft/party", b.Booking.SetParty)
		booking.PUT("/draft/schedule", b.Booking.SetSchedule)
		booking.PUT("/draft/region", b.Booking.SelectRegion)
		booking.PUT("/draft/payment", b.Booking.SelectPayment)
		booking.PUT("/draft/coupon", b.Booking.ApplyCoupon)
		booking.PUT("/draft/customer", b.Booking.SetCustomer)
		booking.POST("/draft/validate", b.Booking.Validate)

		authed := booking.Group("", middleware.UserAuthMiddleware(b.Sessions))
		{
			authed.POST("/find-drivers", b.Booking.FindDrivers)
			authed.GET("/promotions", b.Booking.FetchPromotions)
			authed.POST("/submit", b.Booking.Submit)
		}
	}

	payment := api.Group("/payment", middleware.DraftMiddleware(), middleware.UserAuthMiddleware(b.Sessions))
	{
		payment.POST("/sync", b.Payment.Sync)
		payment.GET("", b.Payment.GetDetails)
		payment.DELETE("/cards/:provider/:cardId", b.Payment.DeleteCard)
		payment.POST("/setup-intent", b.Payment.CreateSetupIntent)
	}

	records := api.Group("/records", middleware.UserAuthMiddleware(b.Sessions))
	{
		records.GET("/bookings", b.Records.ListBookings)
		records.GET("/locations/recent", b.Records.ListRecentLocations)
		records.DELETE("/locations/recent", b.Records.ClearRecentLocations)
	}
}
