package api_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlab/pointd/internal/api"
	"github.com/ledgerlab/pointd/internal/auth"
	"github.com/ledgerlab/pointd/internal/config"
	"github.com/ledgerlab/pointd/internal/middleware"
	"github.com/ledgerlab/pointd/internal/models"
	repo "github.com/ledgerlab/pointd/internal/repository"
	"github.com/ledgerlab/pointd/internal/repository/memory"
	"github.com/ledgerlab/pointd/internal/services"
	"github.com/ledgerlab/pointd/internal/worker"
)

func newTestRouter(t *testing.T, am *middleware.AuthMiddleware) (http.Handler, repo.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	wp := worker.NewPool(2)
	t.Cleanup(wp.Stop)
	svc := services.NewPointService(repos, wp, 100_000)
	cfg := config.Config{Env: "test", RateRPS: 0}
	return api.NewRouter(cfg, svc, am), repos
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e.Code
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	w := do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestGetPointForNewUser(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, http.MethodGet, "/api/v1/points/42", "")
	require.Equal(t, http.StatusOK, w.Code)

	var p models.UserPoint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, int64(0), p.Point)
}

func TestChargeThenHistories(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, http.MethodPatch, "/api/v1/points/1/charge", `{"amount":1000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var p models.UserPoint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, int64(1000), p.Point)

	w = do(h, http.MethodGet, "/api/v1/points/1/histories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var hs []models.PointHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hs))
	require.Len(t, hs, 1)
	assert.Equal(t, models.TxnCharge, hs[0].Type)
	assert.Equal(t, int64(1000), hs[0].Amount)
}

func TestHistoriesEmptyArrayForNewUser(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, http.MethodGet, "/api/v1/points/5/histories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestUseInsufficientReturns400(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, http.MethodPatch, "/api/v1/points/1/charge", `{"amount":1000}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodPatch, "/api/v1/points/1/use", `{"amount":2000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "insufficient_points", errCode(t, w))

	// balance unchanged
	w = do(h, http.MethodGet, "/api/v1/points/1", "")
	var p models.UserPoint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, int64(1000), p.Point)
}

func TestInvalidAmountReturns400(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`, `{"amount":100001}`} {
		w := do(h, http.MethodPatch, "/api/v1/points/1/charge", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "invalid_amount", errCode(t, w), body)
	}
}

func TestOverflowReturns422(t *testing.T) {
	h, repos := newTestRouter(t, nil)

	_, err := repos.Points.InsertOrUpdate(7, math.MaxInt64-1000)
	require.NoError(t, err)

	w := do(h, http.MethodPatch, "/api/v1/points/7/charge", `{"amount":2000}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "point_overflow", errCode(t, w))
}

func TestBadUserIDReturns400(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	for _, path := range []string{"/api/v1/points/abc", "/api/v1/points/-3", "/api/v1/points/0"} {
		w := do(h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "bad_request", errCode(t, w), path)
	}
}

func TestBadBodyReturns400(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, http.MethodPatch, "/api/v1/points/1/charge", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", errCode(t, w))
}

func TestAuthGuardsMutationsOnly(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", "pointd", time.Minute)
	h, _ := newTestRouter(t, middleware.NewAuthMiddleware(tm))

	// reads stay open
	w := do(h, http.MethodGet, "/api/v1/points/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// mutation without a token
	w = do(h, http.MethodPatch, "/api/v1/points/1/charge", `{"amount":100}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// mutation with a valid token
	tok, _, err := tm.Generate("ops")
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/points/1/charge", strings.NewReader(`{"amount":100}`))
	r.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}
