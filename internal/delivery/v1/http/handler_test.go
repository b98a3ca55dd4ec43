package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any)            {}
func (noopLogger) Infof(format string, args ...any)             {}
func (noopLogger) Warnf(format string, args ...any)             {}
func (noopLogger) Errorf(err error, format string, args ...any) {}

type stubRecUC struct {
	profileRes *usecase.ProfileRecommendationsRes
	profileErr error
	items      []usecase.ProductInfo
	itemsErr   error
	seasonal   []usecase.ScoredProductInfo
	seasonErr  error
	products   []usecase.ProductInfo

	lastProfileReq *usecase.ProfileRecommendationsReq
	lastSeasonReq  *usecase.SeasonRecommendationsReq
}

func (s *stubRecUC) GetProfileRecommendations(ctx context.Context, req *usecase.ProfileRecommendationsReq) (*usecase.ProfileRecommendationsRes, error) {
	s.lastProfileReq = req
	return s.profileRes, s.profileErr
}

func (s *stubRecUC) GetItemRecommendations(ctx context.Context, productID string) ([]usecase.ProductInfo, error) {
	if productID == "" {
		return nil, e.ErrProductIDRequired
	}
	return s.items, s.itemsErr
}

func (s *stubRecUC) GetSeasonalRecommendations(ctx context.Context, req *usecase.SeasonRecommendationsReq) ([]usecase.ScoredProductInfo, error) {
	s.lastSeasonReq = req
	if req.Season == "" {
		return nil, e.ErrSeasonRequired
	}
	return s.seasonal, s.seasonErr
}

func (s *stubRecUC) ListProducts(ctx context.Context, offset, limit int) ([]usecase.ProductInfo, error) {
	return s.products, nil
}

type stubAuthUC struct {
	session  *domain.Session
	loginErr error
	checkErr error
}

func (s *stubAuthUC) Login(ctx context.Context, req *usecase.LoginReq) (*domain.Session, error) {
	return s.session, s.loginErr
}

func (s *stubAuthUC) Logout(ctx context.Context, token string) error {
	if token == "" {
		return e.ErrNotLoggedIn
	}
	return nil
}

func (s *stubAuthUC) Check(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, e.ErrNotLoggedIn
	}
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	return s.session, nil
}

func testRouter(recUC usecase.RecommendationUC, authUC usecase.AuthUC) *chi.Mux {
	r := chi.NewRouter()
	router := NewRouter(r, noopLogger{})
	router.Init(&cfg.HTTPConfig{AllowedOrigins: []string{"*"}}, recUC, authUC)
	return r
}

func TestListProductsEndpoint(t *testing.T) {
	rec := &stubRecUC{products: []usecase.ProductInfo{{ID: "P001", Category: "Clothing", Price: 1299}}}
	router := testRouter(rec, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ProductID":"P001"`)
	assert.Contains(t, w.Body.String(), `"Price (INR)":1299`)
}

func TestListProductsRejectsBadPagination(t *testing.T) {
	router := testRouter(&stubRecUC{}, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?offset=-1", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemRecommendationsRequireProductID(t *testing.T) {
	router := testRouter(&stubRecUC{}, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recommend", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var errRes ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errRes))
	assert.Equal(t, e.ErrProductIDRequired.Error(), errRes.Message)
}

func TestItemRecommendationsOK(t *testing.T) {
	rec := &stubRecUC{items: []usecase.ProductInfo{{ID: "P002"}, {ID: "P003"}}}
	router := testRouter(rec, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recommend?product_id=P001", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var items []usecase.ProductInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestSeasonRecommendationsRequireSeason(t *testing.T) {
	router := testRouter(&stubRecUC{}, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/season-recommendations", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeasonRecommendationsDefaults(t *testing.T) {
	rec := &stubRecUC{seasonal: []usecase.ScoredProductInfo{}}
	router := testRouter(rec, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/season-recommendations?season=winter", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, rec.lastSeasonReq)
	assert.Equal(t, "winter", rec.lastSeasonReq.Season)
	assert.Equal(t, 0, rec.lastSeasonReq.Offset)
	assert.Equal(t, 8, rec.lastSeasonReq.Limit)
}

func TestUserRecommendationsRequireSession(t *testing.T) {
	router := testRouter(&stubRecUC{}, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user-recommendations", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserRecommendationsUseSessionUser(t *testing.T) {
	rec := &stubRecUC{profileRes: &usecase.ProfileRecommendationsRes{Products: []usecase.ProductInfo{{ID: "P001"}}}}
	auth := &stubAuthUC{session: domain.NewSession("token-1", "U001")}
	router := testRouter(rec, auth)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user-recommendations?num_recommendations=2", nil)
	req.Header.Set("Authorization", "Bearer token-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, rec.lastProfileReq)
	assert.Equal(t, "U001", rec.lastProfileReq.UserID)
	assert.Equal(t, 2, rec.lastProfileReq.Count)
}

func TestUserRecommendationsDegradedHeader(t *testing.T) {
	rec := &stubRecUC{profileRes: &usecase.ProfileRecommendationsRes{
		Products: []usecase.ProductInfo{{ID: "P004"}},
		Degraded: true,
	}}
	auth := &stubAuthUC{session: domain.NewSession("token-1", "U001")}
	router := testRouter(rec, auth)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user-recommendations", nil)
	req.Header.Set("Authorization", "Bearer token-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Recommendations-Degraded"))
}

func TestLoginSuccess(t *testing.T) {
	auth := &stubAuthUC{session: domain.NewSession("token-1", "U001")}
	router := testRouter(&stubRecUC{}, auth)

	body := strings.NewReader(`{"userId":"U001","password":"secret"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/login", body))

	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, true, res["valid"])
	assert.Equal(t, "token-1", res["token"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := &stubAuthUC{loginErr: e.ErrInvalidCredentials}
	router := testRouter(&stubRecUC{}, auth)

	body := strings.NewReader(`{"userId":"U001","password":"wrong"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/login", body))

	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, false, res["valid"])
	assert.NotContains(t, res, "token")
}

func TestLoginMalformedBody(t *testing.T) {
	router := testRouter(&stubRecUC{}, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader("{broken")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	router := testRouter(&stubRecUC{}, &stubAuthUC{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestCheckLoginStates(t *testing.T) {
	auth := &stubAuthUC{session: domain.NewSession("token-1", "U001")}
	router := testRouter(&stubRecUC{}, auth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/check-login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logged_in":false`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/check-login", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logged_in":true`)
	assert.Contains(t, w.Body.String(), `"userId":"U001"`)
}
