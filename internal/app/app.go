package app

import (
	"os"
	"time"

	"github.com/vjorihoxha/tiktak-vjori/internal/shared/connection"
	"github.com/vjorihoxha/tiktak-vjori/internal/tracktik"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	trackTikClient := tracktik.NewClient(trackTikConfigFromEnv(), logger)

	return registerModules(router, sqlDB, gormDB, redisClient, trackTikClient, logger)
}

func trackTikConfigFromEnv() tracktik.Config {
	timeout := 30 * time.Second
	if raw := os.Getenv("TRACKTIK_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}

	return tracktik.Config{
		BaseURL:      os.Getenv("TRACKTIK_BASE_URL"),
		ClientID:     os.Getenv("TRACKTIK_CLIENT_ID"),
		ClientSecret: os.Getenv("TRACKTIK_CLIENT_SECRET"),
		AccessToken:  os.Getenv("TRACKTIK_ACCESS_TOKEN"),
		RefreshToken: os.Getenv("TRACKTIK_REFRESH_TOKEN"),
		Timeout:      timeout,
	}
}
