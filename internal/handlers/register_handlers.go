package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/middleware"
	"github.com/nocap/captrack_backend/pkg/config"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", actorHeader},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAccountingRoutes(v1, services.Generation, services.Accounting)
	registerReportRoutes(v1, services.Reporting)
	registerDeveloperRoutes(v1, services.Developer)
	registerProjectRoutes(v1, services.Project)
	registerTicketRoutes(v1, services.Ticket)
	registerPayrollRoutes(v1, services.Payroll)
	registerAdminRoutes(v1, services.Admin)

	// The simulated external integrations get their own rate-limited group
	// so a runaway client cannot flood the ticket table.
	rate, err := limiter.NewRateFromFormatted(cfg.SyncRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	integrations := v1.Group("", middleware.RateLimit(ipLimiter))
	registerIntegrationRoutes(integrations, services.Sync)
}
