package employee

import (
	"github.com/vjorihoxha/tiktak-vjori/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	employees.Use(middleware.IngressAuth())
	{
		employees.GET("",
			middleware.RateLimitByIP(5, 20),
			handler.List,
		)

		employees.POST("/sync",
			middleware.RateLimitByIP(0.2, 1),
			handler.SyncAll,
		)

		employees.POST("/:provider",
			middleware.RateLimitByIP(2, 10),
			middleware.Idempotency(rdb),
			handler.Ingest,
		)
	}
}
