package main

import (
	"os"

	"github.com/DRSN-tech/recommender-backend/internal/app"
	config "github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/joho/godotenv"
)

//	@title			Product Recommendation API
//	@version		1.0
//	@description	Рекомендации товаров каталога: персональные, похожие и сезонные

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	log := logger.NewSlogLogger()

	// .env опционален: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Debugf(".env file not loaded: %s", err.Error())
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
