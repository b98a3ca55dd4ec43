package http

import (
	_ "github.com/DRSN-tech/recommender-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(cfg *cfg.HTTPConfig, recUC usecase.RecommendationUC, authUC usecase.AuthUC) {
	r.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		recHandler := NewRecommendationHandler(recUC, authUC, r.logger)
		prHandler := NewProductHandler(recUC, r.logger)
		authHandler := NewAuthHandler(authUC, r.logger)

		registerRecommendationRoutes(v1, recHandler)
		registerProductRoutes(v1, prHandler)
		registerAuthRoutes(v1, authHandler)
	})
}

func registerRecommendationRoutes(router chi.Router, recHandler *RecommendationHandler) {
	router.Get("/recommend", recHandler.itemRecommendations)
	router.Get("/user-recommendations", recHandler.userRecommendations)
	router.Get("/season-recommendations", recHandler.seasonRecommendations)
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Get("/products", prHandler.listProducts)
}

func registerAuthRoutes(router chi.Router, authHandler *AuthHandler) {
	router.Post("/login", authHandler.login)
	router.Post("/logout", authHandler.logout)
	router.Get("/check-login", authHandler.checkLogin)
}
