package http

import (
	"errors"
	"net/http"

	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
)

const (
	defaultProfileRecommendations = 4
	defaultPageLimit              = 8
)

type RecommendationHandler struct {
	recUsecase  usecase.RecommendationUC
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewRecommendationHandler(recUsecase usecase.RecommendationUC, authUsecase usecase.AuthUC, logger logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{recUsecase: recUsecase, authUsecase: authUsecase, logger: logger}
}

// userRecommendations
//
//	@Summary		Персональные рекомендации
//	@Description	Подбирает товары по профилю пользователя сессии, исключая уже показанные
//	@Tags			recommendations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			num_recommendations	query		int	false	"Количество товаров (по умолчанию 4)"
//	@Param			offset				query		int	false	"Принимается для совместимости, не влияет на выдачу"
//	@Success		200					{array}		usecase.ProductInfo
//	@Failure		401					{object}	ErrorResponse	"Нет активной сессии"
//	@Router			/user-recommendations [get]
func (h *RecommendationHandler) userRecommendations(w http.ResponseWriter, r *http.Request) {
	session, err := h.authUsecase.Check(r.Context(), bearerToken(r))
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusUnauthorized, err.Error())
		WriteError(w, err)
		return
	}

	count, err := parseIntQuery(r, "num_recommendations", defaultProfileRecommendations)
	if err != nil {
		WriteError(w, err)
		return
	}

	offset, err := parseIntQuery(r, "offset", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.recUsecase.GetProfileRecommendations(r.Context(),
		usecase.NewProfileRecommendationsReq(session.UserID, count, offset))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if res.Degraded {
		w.Header().Set("X-Recommendations-Degraded", "true")
	}
	WriteSuccess(w, http.StatusOK, res.Products)
}

// itemRecommendations
//
//	@Summary		Похожие товары
//	@Description	Возвращает до пяти товаров, ближайших по описанию к заданному
//	@Tags			recommendations
//	@Produce		json
//	@Param			product_id	query		string	true	"Идентификатор товара"
//	@Success		200			{array}		usecase.ProductInfo
//	@Failure		400			{object}	ErrorResponse	"Не указан product_id"
//	@Router			/recommend [get]
func (h *RecommendationHandler) itemRecommendations(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")

	products, err := h.recUsecase.GetItemRecommendations(r.Context(), productID)
	if err != nil {
		if !errors.Is(err, e.ErrProductIDRequired) {
			h.logger.Warnf("%s", err.Error())
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}

// seasonRecommendations
//
//	@Summary		Сезонные рекомендации
//	@Description	Товары сезона, отсортированные по текстовой близости и цене
//	@Tags			recommendations
//	@Produce		json
//	@Param			season	query		string	true	"Название сезона"
//	@Param			offset	query		int		false	"Смещение страницы"
//	@Param			limit	query		int		false	"Размер страницы (по умолчанию 8)"
//	@Success		200		{array}		usecase.ScoredProductInfo
//	@Failure		400		{object}	ErrorResponse	"Не указан сезон"
//	@Router			/season-recommendations [get]
func (h *RecommendationHandler) seasonRecommendations(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")

	offset, err := parseIntQuery(r, "offset", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	limit, err := parseIntQuery(r, "limit", defaultPageLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	products, err := h.recUsecase.GetSeasonalRecommendations(r.Context(),
		usecase.NewSeasonRecommendationsReq(season, offset, limit))
	if err != nil {
		if !errors.Is(err, e.ErrSeasonRequired) {
			h.logger.Warnf("%s", err.Error())
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}
