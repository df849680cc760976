package main

import (
	"github.com/vjorihoxha/tiktak-vjori/internal/app"
	"github.com/vjorihoxha/tiktak-vjori/internal/bootstrap"
	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := bootstrap.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	logger.Info("starting sync worker")

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
