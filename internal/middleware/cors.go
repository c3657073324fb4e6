package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"entregas/internal/config"
)

// CORS returns a middleware that allows the configured origins. With no
// origins configured every origin is allowed, without credentials.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH")
	corsConfig.AddAllowHeaders("Authorization", "Accept", "X-Requested-With", "X-Request-ID")
	corsConfig.AddExposeHeaders("Content-Disposition", "X-Request-ID")
	corsConfig.MaxAge = 24 * time.Hour
	return cors.New(corsConfig)
}
