package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	"github.com/BruksfildServices01/ironpeak-gym/internal/config"
	"github.com/BruksfildServices01/ironpeak-gym/internal/handlers"
	infraRepo "github.com/BruksfildServices01/ironpeak-gym/internal/infra/repository"
	"github.com/BruksfildServices01/ironpeak-gym/internal/media"
	"github.com/BruksfildServices01/ironpeak-gym/internal/middleware"
	"github.com/BruksfildServices01/ironpeak-gym/internal/payments"
	"github.com/BruksfildServices01/ironpeak-gym/internal/ratelimit"
	ucBooking "github.com/BruksfildServices01/ironpeak-gym/internal/usecase/booking"
	ucMembership "github.com/BruksfildServices01/ironpeak-gym/internal/usecase/membership"
)

// Deps are the long-lived collaborators built in main. Redis, Gateway and
// Uploader are optional.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Audit    *audit.Dispatcher
	Redis    redis.UniversalClient
	Gateway  payments.Gateway
	Uploader *media.Uploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestLogging(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSOrigins),
	)

	apiLimiter, verifyLimiter := limiters(d.Redis, cfg)

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	membershipRepo := infraRepo.NewMembershipGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	verifyUC := ucMembership.NewVerifyMembership(membershipRepo, d.Audit)

	var checkoutUC *ucMembership.StartCheckout
	var confirmUC *ucMembership.ConfirmPayment
	if d.Gateway != nil {
		checkoutUC = ucMembership.NewStartCheckout(
			d.Gateway,
			cfg.PlanCurrency,
			strings.TrimSuffix(cfg.PublicBaseURL, "/")+"/membership",
			strings.TrimSuffix(cfg.APIBaseURL, "/")+"/api/memberships/webhook",
		)
		confirmUC = ucMembership.NewConfirmPayment(d.Gateway, membershipRepo, d.Audit)
	}

	submitUC := ucBooking.NewSubmitBooking(bookingRepo, verifyUC, d.Audit, cfg.Timezone)
	updateUC := ucBooking.NewUpdateBookingStatus(bookingRepo, d.Audit)
	deleteUC := ucBooking.NewDeleteBooking(bookingRepo, d.Audit)
	listUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(submitUC, updateUC, deleteUC, listUC)
	membershipHandler := handlers.NewMembershipHandler(verifyUC, checkoutUC, confirmUC)
	memberHandler := handlers.NewMemberHandler(d.DB, d.Audit)
	trainerHandler := handlers.NewTrainerHandler(d.DB, d.Audit, d.Uploader)
	classHandler := handlers.NewClassHandler(d.DB, d.Audit, d.Uploader)
	scheduleHandler := handlers.NewScheduleHandler(d.DB, d.Audit)
	contactHandler := handlers.NewContactHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, cfg.Timezone)

	// ======================================================
	// SYSTEM
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.RateLimit("api", apiLimiter))
	{
		api.POST("/verify-membership", middleware.RateLimit("verify", verifyLimiter), membershipHandler.Verify)
		api.POST("/memberships/checkout", membershipHandler.Checkout)
		api.POST("/memberships/webhook", membershipHandler.Webhook)

		api.GET("/bookings", bookingHandler.List)
		api.POST("/bookings", bookingHandler.Create)
		api.PATCH("/bookings/:id", bookingHandler.UpdateStatus)
		api.DELETE("/bookings/:id", bookingHandler.Delete)

		api.GET("/members", memberHandler.List)
		api.POST("/members", memberHandler.Create)
		api.GET("/members/:id", memberHandler.Get)
		api.PUT("/members/:id", memberHandler.Update)
		api.DELETE("/members/:id", memberHandler.Delete)

		api.GET("/trainers", trainerHandler.List)
		api.POST("/trainers", trainerHandler.Create)
		api.GET("/trainers/:id", trainerHandler.Get)
		api.PUT("/trainers/:id", trainerHandler.Update)
		api.DELETE("/trainers/:id", trainerHandler.Delete)
		api.PUT("/trainers/:id/image", trainerHandler.UploadImage)

		api.GET("/classes", classHandler.List)
		api.POST("/classes", classHandler.Create)
		api.GET("/classes/:id", classHandler.Get)
		api.PUT("/classes/:id", classHandler.Update)
		api.DELETE("/classes/:id", classHandler.Delete)
		api.PUT("/classes/:id/image", classHandler.UploadImage)
		api.POST("/classes/:id/schedules", scheduleHandler.Create)

		api.GET("/schedules", scheduleHandler.List)
		api.PUT("/schedules/:id", scheduleHandler.Update)
		api.DELETE("/schedules/:id", scheduleHandler.Delete)

		api.GET("/contact", contactHandler.List)
		api.POST("/contact", contactHandler.Create)
		api.PATCH("/contact/:id", contactHandler.UpdateStatus)
		api.DELETE("/contact/:id", contactHandler.Delete)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}

// limiters picks Redis-backed limiters when a client is configured, so that
// every API instance shares one budget.
func limiters(rdb redis.UniversalClient, cfg *config.Config) (api, verify ratelimit.Limiter) {
	if rdb != nil {
		perMinute := int(cfg.RateLimitRPS * 60)
		return ratelimit.NewRedisLimiter(rdb, "ironpeak:rl", perMinute, time.Minute),
			ratelimit.NewRedisLimiter(rdb, "ironpeak:rl", cfg.VerifyLimitPerMinute, time.Minute)
	}

	return ratelimit.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute),
		ratelimit.NewMemoryLimiterPerWindow(cfg.VerifyLimitPerMinute, time.Minute)
}
