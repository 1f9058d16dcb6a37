package routes

import (
	"time"

	"keyless-stay/config"
	"keyless-stay/constants"
	accessCodeController "keyless-stay/controllers/access_code"
	bookingController "keyless-stay/controllers/booking"
	dashboardController "keyless-stay/controllers/dashboard"
	propertyController "keyless-stay/controllers/property"
	roomController "keyless-stay/controllers/room"
	"keyless-stay/httpServices/notify"
	"keyless-stay/logger"
	"keyless-stay/middleware"
	accessCodeService "keyless-stay/services/access_code"
	bookingService "keyless-stay/services/booking"
	dashboardService "keyless-stay/services/dashboard"
	"keyless-stay/services/notification"
	roomService "keyless-stay/services/room"
	"keyless-stay/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires services, controllers and middleware onto app.
// The returned function flushes background work and must be called on shutdown.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) func() {
	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	var notifier notification.Notifier = notification.LogNotifier{}
	if cfg.NotifyBaseURL != "" {
		notifier = notify.NewClient(cfg.NotifyBaseURL, cfg.NotifyAPIKey)
	}
	dispatcher := notification.NewDispatcher(notifier)

	accessCodes := accessCodeService.NewAccessCodeService(db, cfg.AccessCodeLength, time.Duration(cfg.AccessCodeGraceHours)*time.Hour, dispatcher)
	bookings := bookingService.NewBookingService(db, accessCodes, cfg.EncryptionKey)
	rooms := roomService.NewRoomService(db)

	propertyCtl := propertyController.NewPropertyController(rooms.Properties)
	roomCtl := roomController.NewRoomController(rooms)
	bookingCtl := bookingController.NewBookingController(bookings)
	accessCodeCtl := accessCodeController.NewAccessCodeController(accessCodes, bookings)
	dashboardCtl := dashboardController.NewDashboardController(dashboardService.NewDashboardService(db))

	verifier := middleware.NewTokenVerifier(cfg.JWTSecret, cfg.PublicKeyURL)
	requireAuth := middleware.RequireAuthentication(verifier)
	optionalAuth := middleware.OptionalAuthentication(verifier)
	staffOnly := middleware.RequireRole(constants.RoleAdmin, constants.RoleOwner, constants.RoleStaff)

	codeLimiter := middleware.NewIPRateLimiter(cfg.AccessCodeRatePerMin, cfg.AccessCodeRateBurst, 5*time.Minute)
	rateLimited := middleware.RateLimitByIP(codeLimiter)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(types.ApiResponse{Status: fiber.StatusOK, Message: "ok"})
	})

	api := app.Group("/api", middleware.RequestLogger(asyncLogger))

	/*=============================================================================
	| Property Routes
	===============================================================================*/
	properties := api.Group("/properties", requireAuth, staffOnly)
	properties.Post("/", propertyCtl.Store)
	properties.Get("/", propertyCtl.Index)
	properties.Get("/:id", propertyCtl.Show)
	properties.Patch("/:id", propertyCtl.Update)
	properties.Delete("/:id", propertyCtl.Destroy)

	/*=============================================================================
	| Room Routes
	===============================================================================*/
	roomGroup := api.Group("/rooms", requireAuth, staffOnly)
	roomGroup.Post("/", roomCtl.Store)
	roomGroup.Get("/", roomCtl.Index)
	roomGroup.Get("/available", roomCtl.Available)
	roomGroup.Patch("/:id", roomCtl.Update)
	roomGroup.Patch("/:id/status", roomCtl.UpdateStatus)
	roomGroup.Delete("/:id", roomCtl.Destroy)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings")

	// Public routes
	bookingGroup.Post("/", optionalAuth, bookingCtl.Store)
	bookingGroup.Get("/number/:number", optionalAuth, bookingCtl.ShowByNumber)

	// Protected routes
	bookingGroup.Post("/admin", requireAuth, staffOnly, bookingCtl.StoreAdmin)
	bookingGroup.Get("/", requireAuth, staffOnly, bookingCtl.Index)
	bookingGroup.Get("/today/:propertyId", requireAuth, staffOnly, bookingCtl.Today)
	bookingGroup.Get("/:id", requireAuth, staffOnly, bookingCtl.Show)
	bookingGroup.Get("/:id/history", requireAuth, staffOnly, bookingCtl.History)
	bookingGroup.Patch("/:id", requireAuth, staffOnly, bookingCtl.Update)
	bookingGroup.Patch("/:id/status", requireAuth, staffOnly, bookingCtl.UpdateStatus)
	bookingGroup.Post("/:id/confirm", requireAuth, staffOnly, bookingCtl.Confirm)
	bookingGroup.Post("/:id/checkin", requireAuth, staffOnly, bookingCtl.CheckIn)
	bookingGroup.Post("/:id/checkout", requireAuth, staffOnly, bookingCtl.CheckOut)
	bookingGroup.Post("/:id/cancel", requireAuth, staffOnly, bookingCtl.Cancel)
	bookingGroup.Post("/:id/payment", requireAuth, staffOnly, bookingCtl.Payment)

	/*=============================================================================
	| Access Code Routes
	===============================================================================*/
	codeGroup := api.Group("/access-codes")

	// Door terminal routes, rate limited per IP
	codeGroup.Post("/validate", rateLimited, accessCodeCtl.Validate)
	codeGroup.Post("/use/:code", rateLimited, accessCodeCtl.Use)

	codeGroup.Get("/", requireAuth, staffOnly, accessCodeCtl.Index)
	codeGroup.Get("/booking/:bookingId", requireAuth, staffOnly, accessCodeCtl.ByBooking)
	codeGroup.Post("/generate", requireAuth, staffOnly, accessCodeCtl.Generate)
	codeGroup.Post("/regenerate/:bookingId", requireAuth, staffOnly, accessCodeCtl.Regenerate)
	codeGroup.Post("/cleanup/:propertyId", requireAuth, staffOnly, accessCodeCtl.Cleanup)
	codeGroup.Get("/:id/history", requireAuth, staffOnly, accessCodeCtl.History)
	codeGroup.Post("/:id/revoke", requireAuth, staffOnly, accessCodeCtl.Revoke)

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	dashboard := api.Group("/dashboard", requireAuth, staffOnly)
	dashboard.Get("/stats", dashboardCtl.Stats)
	dashboard.Get("/today-bookings", dashboardCtl.TodayBookings)

	return func() {
		codeLimiter.Stop()
		dispatcher.Wait()
		asyncLogger.Close()
	}
}
