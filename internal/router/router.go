package router

import (
	"fmt"
	"strings"

	"github.com/mediantar/mediantar/internal/cache"
	"github.com/mediantar/mediantar/internal/config"
	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/http/handlers"
	"github.com/mediantar/mediantar/internal/logger"
	"github.com/mediantar/mediantar/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the API routes
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ma"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), h.Login)
		}

		// authenticated, any role
		me := apiV1.Group("")
		me.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			me.GET("/me", h.Me)
			me.PUT("/me/password", h.ChangePassword)
		}

		// admin surface
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		admin.Use(RequireRole(constants.RoleAdmin))
		{
			admin.GET("/customers", h.ListCustomers)
			admin.POST("/customers", h.CreateCustomer)
			admin.POST("/customers/import", h.ImportCustomers)
			admin.GET("/customers/:id", h.GetCustomer)
			admin.PUT("/customers/:id", h.UpdateCustomer)
			admin.DELETE("/customers/:id", h.DeleteCustomer)
			admin.POST("/customers/:id/recalculate-fee", h.RecalculateCustomerFee)
			admin.POST("/customers/:id/recalculate-distance", h.RecalculateCustomerDistance)

			admin.GET("/couriers", h.ListCouriers)
			admin.POST("/couriers", h.CreateCourier)
			admin.GET("/couriers/:id", h.GetCourier)
			admin.PUT("/couriers/:id", h.UpdateCourier)
			admin.DELETE("/couriers/:id", h.DeleteCourier)
			admin.POST("/couriers/:id/toggle-availability", h.ToggleCourierAvailability)

			admin.GET("/deliveries", h.ListDeliveries)
			admin.POST("/deliveries", h.CreateDelivery)
			admin.GET("/deliveries/:id", h.GetDelivery)
			admin.DELETE("/deliveries/:id", h.DeleteDelivery)
			admin.POST("/deliveries/:id/assign", h.AssignDeliveryCourier)
			admin.POST("/deliveries/:id/start", h.MarkDeliveryOnDelivery)
			admin.POST("/deliveries/:id/complete", h.MarkDeliveryCompleted)

			admin.GET("/reports/summary", h.ReportSummary)
			admin.GET("/reports/export.csv", h.ExportReportCSV)

			admin.GET("/templates", h.ListTemplates)
			admin.PUT("/templates", h.UpsertTemplate)
			admin.GET("/templates/:type", h.GetTemplate)
			admin.DELETE("/templates/:type", h.DeleteTemplate)
		}

		// courier surface: own deliveries, restricted report, own templates
		courier := apiV1.Group("/courier")
		courier.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		courier.Use(RequireRole(constants.RoleCourier))
		{
			courier.GET("/deliveries", h.ListDeliveries)
			courier.GET("/deliveries/:id", h.GetDelivery)
			courier.POST("/deliveries/:id/start", h.MarkDeliveryOnDelivery)
			courier.POST("/deliveries/:id/complete", h.MarkDeliveryCompleted)

			courier.GET("/reports/summary", h.ReportSummary)

			courier.GET("/templates", h.ListTemplates)
			courier.PUT("/templates", h.UpsertTemplate)
			courier.GET("/templates/:type", h.GetTemplate)
			courier.DELETE("/templates/:type", h.DeleteTemplate)

			courier.POST("/availability/toggle", h.ToggleOwnAvailability)
		}
	}

	return r
}
