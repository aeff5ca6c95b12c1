package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopsync/internal/config"
	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/models"
	"github.com/shopsync/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerTestEnv struct {
	engine    *gin.Engine
	container *provider.Container
}

func setupRouterTest(t *testing.T) *routerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupMiddlewareTestDB(t)
	cfg := &config.Config{
		JWT:      config.JWTConfig{SecretKey: middlewareTestSecret, ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: 4},
		Catalog:  config.CatalogConfig{BaseURL: "http://127.0.0.1:1", BatchSize: 30},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	c, err := provider.NewContainerWithDB(cfg, db, nil)
	require.NoError(t, err)
	return &routerTestEnv{engine: SetupRouter(cfg, c), container: c}
}

func (env *routerTestEnv) do(t *testing.T, method, path, token string, body interface{}) response.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp response.Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object: %#v", resp.Data)
	return data
}

func TestRouterRegisterAndCartFlow(t *testing.T) {
	env := setupRouterTest(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      "Buyer@Example.com",
		"password":   "Secret123!",
		"first_name": "Ana",
		"last_name":  "Lopez",
	})
	require.Equal(t, response.CodeOK, resp.StatusCode, resp.Msg)
	token, _ := dataMap(t, resp)["access_token"].(string)
	require.NotEmpty(t, token)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      "buyer@example.com",
		"password":   "Secret123!",
		"first_name": "Ana",
		"last_name":  "Lopez",
	})
	assert.Equal(t, response.CodeConflict, resp.StatusCode)

	product := &models.Product{Title: "Lipstick", Price: models.NewMoneyFromFloat(12.5), Stock: 5, IsActive: true}
	require.NoError(t, env.container.DB.Create(product).Error)

	resp = env.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"product_id": product.ID, "quantity": 2})
	require.Equal(t, response.CodeOK, resp.StatusCode, resp.Msg)
	cart := dataMap(t, resp)
	assert.Equal(t, "25.00", cart["total_amount"])
	assert.EqualValues(t, 2, cart["total_items"])

	resp = env.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"product_id": product.ID, "quantity": 10})
	assert.Equal(t, response.CodeUnprocessable, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"product_id": product.ID})
	assert.Equal(t, response.CodeBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/v1/cart", token, nil)
	assert.Equal(t, response.CodeOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, response.CodeUnauthorized, resp.StatusCode)
}

func TestRouterAdminRoutesRequireAdminRole(t *testing.T) {
	env := setupRouterTest(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      "ops@example.com",
		"password":   "Secret123!",
		"first_name": "Ops",
		"last_name":  "Team",
	})
	require.Equal(t, response.CodeOK, resp.StatusCode, resp.Msg)
	data := dataMap(t, resp)
	token := data["access_token"].(string)
	user := data["user"].(map[string]interface{})
	userID := uint(user["id"].(float64))

	resp = env.do(t, http.MethodGet, "/api/v1/admin/tasks/status", token, nil)
	assert.Equal(t, response.CodeForbidden, resp.StatusCode)

	require.NoError(t, env.container.DB.Model(&models.User{}).Where("id = ?", userID).Update("role", constants.UserRoleAdmin).Error)

	resp = env.do(t, http.MethodGet, "/api/v1/admin/tasks/status", token, nil)
	assert.Equal(t, response.CodeOK, resp.StatusCode, resp.Msg)

	resp = env.do(t, http.MethodGet, "/api/v1/admin/authz/permissions", token, nil)
	require.Equal(t, response.CodeOK, resp.StatusCode, resp.Msg)
	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	permissions := make([]string, 0, len(items))
	for _, item := range items {
		permissions = append(permissions, item.(map[string]interface{})["permission"].(string))
	}
	assert.Contains(t, permissions, "POST:/admin/products/sync")
	assert.Contains(t, permissions, "PUT:/admin/authz/users/:id/roles")

	// 无队列时异步同步不可用
	resp = env.do(t, http.MethodPost, "/api/v1/admin/tasks/sync-products/async", token, nil)
	assert.Equal(t, response.CodeUnavailable, resp.StatusCode)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/authz/users/%d/roles", userID), token, nil)
	assert.Equal(t, response.CodeOK, resp.StatusCode, resp.Msg)
}

func TestRouterPublicCatalogAndHealth(t *testing.T) {
	env := setupRouterTest(t)

	resp := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, response.CodeOK, resp.StatusCode)
	assert.Equal(t, constants.AppName, dataMap(t, resp)["service"])

	resp = env.do(t, http.MethodGet, "/api/v1/products?page=1&limit=10", "", nil)
	require.Equal(t, response.CodeOK, resp.StatusCode, resp.Msg)
	_, ok := dataMap(t, resp)["products"]
	assert.True(t, ok)

	resp = env.do(t, http.MethodGet, "/api/v1/products/999", "", nil)
	assert.Equal(t, response.CodeNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/products?limit=500", "", nil)
	assert.Equal(t, response.CodeBadRequest, resp.StatusCode)

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "shopsync_"), "metrics output should expose app collectors")
}

func TestDeriveAdminPermissionModule(t *testing.T) {
	assert.Equal(t, "authz", deriveAdminPermissionModule("/admin/authz/roles"))
	assert.Equal(t, "system", deriveAdminPermissionModule("/health"))
	assert.Empty(t, buildAdminPermissionCatalog(nil))
}
