package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ingredient-resolver/internal/core/cache"
	"ingredient-resolver/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App:          config.AppConfig{Version: "test", Debug: true},
		Server:       config.ServerConfig{RequestTimeout: 5 * time.Second},
		Cache:        config.CacheConfig{Enabled: true, Backend: config.CacheBackendMemory, MaxSize: 10, TTL: time.Minute},
		RateLimit:    config.RateLimitConfig{Enabled: true, Requests: 100, Window: time.Minute},
		Import:       config.ImportConfig{Workers: 2, MaxItems: 10},
		DedupWindow:  time.Minute,
		MaxBodyBytes: 1 << 20,
	}
}

func setup(t *testing.T) (*gin.Engine, cache.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	store, err := cache.NewStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return SetupRouter(cfg, store), store
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealthRoutes(t *testing.T) {
	r, _ := setup(t)

	w := serve(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
	assert.Contains(t, w.Body.String(), `"backend":"memory"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ready")

	w = serve(r, http.MethodGet, "/live", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")
}

func TestReadyWithoutCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Cache.Enabled = false
	r := SetupRouter(cfg, nil)

	w := serve(r, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}

func TestIngredientRoutes(t *testing.T) {
	r, store := setup(t)
	catalog := `[{"id":"c1","name":"Coriander","unit":"bunch","cost_per_unit":"1.50","category":"Produce"}]`

	w := serve(r, http.MethodPost, "/api/v1/ingredients/resolve", `{"query":"cilantro","catalog":`+catalog+`}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"label":"Variation"`)
	assert.Contains(t, w.Body.String(), `"should_offer_create":true`)
	assert.Equal(t, int64(1), store.Stats()["misses"])

	w = serve(r, http.MethodPost, "/api/v1/ingredients/infer", `{"name":"coriander seeds"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"suggested_category":"Spices"`)

	importBody := `{"names":["coriander"],"catalog":` + catalog + `}`
	w = serve(r, http.MethodPost, "/api/v1/ingredients/import", importBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"batch_id"`)

	// 時間窗內重複送出會被拒絕
	w = serve(r, http.MethodPost, "/api/v1/ingredients/import", importBody)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

}

func TestUnknownRoutes(t *testing.T) {
	r, _ := setup(t)

	w := serve(r, http.MethodGet, "/api/v1/ingredients/resolve", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")

	w = serve(r, http.MethodPost, "/api/v1/ingredients/merge", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestBodyLimitRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.MaxBodyBytes = 32
	r := SetupRouter(cfg, nil)

	w := serve(r, http.MethodPost, "/api/v1/ingredients/infer", `{"name":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
