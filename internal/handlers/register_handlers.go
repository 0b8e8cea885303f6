package handlers

import (
	"time"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/bizbooks/bizbooks_backend/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	pool *pgxpool.Pool,
) error {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-User-ID")
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	registerHomeRoutes(r, pool, cfg.EnableDBCheck)

	setupAPIV1Routes(r, services, ipLimiter)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group. All business routes are
// tenant-scoped; TenantScope binds the tenant id into the request context so
// no handler or query reads it ad hoc.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, ipLimiter *limiter.Limiter) {
	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter))

	tenant := v1.Group("/tenants/:tenant_id", middleware.TenantScope())

	RegisterAccountRoutes(tenant, services.Account, services.Reporting)
	RegisterDocumentRoutes(tenant, services.Document)
	RegisterFeedRoutes(tenant, services.Feed)
	RegisterReportingRoutes(tenant, services.Reporting)
}
