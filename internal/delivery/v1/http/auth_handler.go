package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

// login
//
//	@Summary		Вход пользователя
//	@Description	Проверяет учетные данные и выдает токен сессии
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		usecase.LoginReq		true	"Учетные данные"
//	@Success		200			{object}	map[string]interface{}	"valid и token при успехе"
//	@Failure		400			{object}	ErrorResponse			"Не все поля заполнены"
//	@Router			/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req usecase.LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	session, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		// неверные данные не считаются ошибкой запроса
		if errors.Is(err, e.ErrInvalidCredentials) {
			WriteSuccess(w, http.StatusOK, map[string]interface{}{"valid": false})
			return
		}

		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"token": session.Token,
	})
}

// logout
//
//	@Summary		Выход пользователя
//	@Description	Удаляет сессию и сбрасывает историю показов пользователя
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}	"success"
//	@Router			/logout [post]
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.Logout(r.Context(), bearerToken(r)); err != nil {
		// выход без активной сессии не считается провалом
		if !errors.Is(err, e.ErrNotLoggedIn) && !errors.Is(err, e.ErrSessionNotFound) {
			h.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"success": true})
}

// checkLogin
//
//	@Summary		Проверка сессии
//	@Description	Сообщает, действителен ли токен, и чей он
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}	"logged_in и userId"
//	@Router			/check-login [get]
func (h *AuthHandler) checkLogin(w http.ResponseWriter, r *http.Request) {
	session, err := h.authUsecase.Check(r.Context(), bearerToken(r))
	if err != nil {
		if errors.Is(err, e.ErrNotLoggedIn) || errors.Is(err, e.ErrSessionNotFound) {
			WriteSuccess(w, http.StatusOK, map[string]interface{}{"logged_in": false})
			return
		}

		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"logged_in": true,
		"userId":    session.UserID,
	})
}
