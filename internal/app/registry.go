package app

import (
	"database/sql"
	"net/http"

	"github.com/vjorihoxha/tiktak-vjori/internal/employee"
	"github.com/vjorihoxha/tiktak-vjori/internal/messaging/kafka"
	"github.com/vjorihoxha/tiktak-vjori/internal/middleware"
	"github.com/vjorihoxha/tiktak-vjori/internal/provider"
	"github.com/vjorihoxha/tiktak-vjori/internal/tracktik"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	trackTikClient *tracktik.Client,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Provider mappers ---
	mappers := employee.NewMapperRegistry(
		provider.NewProvider1Mapper(),
		provider.NewProvider2Mapper(),
	)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(
		db, employeeRepo, mappers, trackTikClient, outboxRepo, rdb, logger,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("")
	{
		employee.RegisterRoutes(api, employeeHandler, rdb, logger)
	}

	router.GET("/healthz", func(c *gin.Context) {
		status := gin.H{
			"status":   "ok",
			"database": "ok",
			"redis":    "ok",
			"tracktik": "ok",
		}
		healthy := true

		if err := db.PingContext(c.Request.Context()); err != nil {
			status["database"] = "unreachable"
			healthy = false
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "unreachable"
			healthy = false
		}
		if !trackTikClient.TestConnection(c.Request.Context()) {
			status["tracktik"] = "no usable credential"
			healthy = false
		}

		if !healthy {
			status["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	return nil
}
