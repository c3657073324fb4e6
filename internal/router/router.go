package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"entregas/internal/config"
	"entregas/internal/handler"
	"entregas/internal/middleware"
	"entregas/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Delivery *handler.DeliveryHandler
	Report   *handler.ReportHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware. Paths stay
// at the root where existing clients call them.
func Setup(cfg *config.Config, log logrus.FieldLogger, authSvc service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Logger(log))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.POST("/login", h.Auth.Login)

	// Tenant-scoped routes. A bearer token, when sent, fixes the tenant.
	scoped := r.Group("")
	scoped.Use(middleware.OptionalAuth(authSvc))

	entregas := scoped.Group("/entrega")
	entregas.GET("", h.Delivery.List)
	entregas.POST("", h.Delivery.Create)
	entregas.GET("/:id", h.Delivery.GetByID)
	entregas.PUT("/:id", h.Delivery.Update)
	entregas.DELETE("/:id", h.Delivery.Delete)

	scoped.GET("/caderno", h.Report.Ledger)
	scoped.GET("/caderno/export", h.Report.Export)
	scoped.GET("/dashboard-data", h.Report.Dashboard)

	return r
}
