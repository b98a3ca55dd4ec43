package http

import (
	"net/http"

	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
)

type ProductHandler struct {
	recUsecase usecase.RecommendationUC
	logger     logger.Logger
}

func NewProductHandler(recUsecase usecase.RecommendationUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{recUsecase: recUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Страница каталога
//	@Description	Возвращает товары каталога в порядке загрузки
//	@Tags			products
//	@Produce		json
//	@Param			offset	query		int	false	"Смещение страницы"
//	@Param			limit	query		int	false	"Размер страницы (по умолчанию 8)"
//	@Success		200		{array}		usecase.ProductInfo
//	@Failure		400		{object}	ErrorResponse	"Некорректная пагинация"
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
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

	products, err := p.recUsecase.ListProducts(r.Context(), offset, limit)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}
