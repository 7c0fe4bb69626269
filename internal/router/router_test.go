package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/provider"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type routerFixture struct {
	db        *gorm.DB
	engine    *gin.Engine
	container *provider.Container
	tokens    map[string]string
	colorIDs  []uint
	sizeIDs   []uint
	colorID   uint
	sizeID    uint
	category  uint
}

type envelope struct {
	Code       string          `json:"code"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		JWT:     config.JWTConfig{SecretKey: "router-test-secret", Issuer: "handmade-test", ExpireHours: 1},
		Order:   config.OrderConfig{PaymentExpireMinutes: 30},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	container, err := provider.NewContainer(cfg, db)
	require.NoError(t, err)

	f := &routerFixture{
		db:        db,
		engine:    SetupRouter(cfg, container),
		container: container,
		tokens:    map[string]string{},
	}
	for _, actor := range []service.Actor{
		{ID: "admin-1", Username: "admin", Role: "admin"},
		{ID: "seller-1", Username: "weaver", Role: "seller"},
		{ID: "customer-1", Username: "buyer", Role: "customer"},
	} {
		token, _, err := container.TokenService.Issue(actor)
		require.NoError(t, err)
		f.tokens[actor.Role] = token
	}
	f.seedCatalog(t)
	return f
}

func (f *routerFixture) seedCatalog(t *testing.T) {
	t.Helper()
	admin := service.Actor{ID: "admin-1", Role: "admin"}
	seller := service.Actor{ID: "seller-1", Role: "seller"}

	category, err := f.container.CategoryService.Create(admin, service.CreateCategoryInput{
		Slug:     "knitwear",
		NameJSON: map[string]interface{}{"en-US": "Knitwear"},
	})
	require.NoError(t, err)
	f.category = category.ID

	color, err := f.container.VariationService.Create(seller, service.VariationInput{CategoryID: category.ID, Name: "Color"})
	require.NoError(t, err)
	size, err := f.container.VariationService.Create(seller, service.VariationInput{CategoryID: category.ID, Name: "Size"})
	require.NoError(t, err)
	f.colorID, f.sizeID = color.ID, size.ID

	for _, value := range []string{"Red", "Blue"} {
		option, err := f.container.VariationService.CreateOption(seller, color.ID, service.VariationOptionInput{Value: value})
		require.NoError(t, err)
		f.colorIDs = append(f.colorIDs, option.ID)
	}
	for _, value := range []string{"S", "M"} {
		option, err := f.container.VariationService.CreateOption(seller, size.ID, service.VariationOptionInput{Value: value})
		require.NoError(t, err)
		f.sizeIDs = append(f.sizeIDs, option.ID)
	}
}

func (f *routerFixture) do(t *testing.T, method, path, role string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+f.tokens[role])
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (f *routerFixture) productPayload(combinations []gin.H) gin.H {
	return gin.H{
		"category_id": f.category,
		"slug":        "alpaca-scarf",
		"title":       gin.H{"en-US": "Alpaca scarf"},
		"variations": []gin.H{
			{"variation_id": f.colorID, "option_ids": f.colorIDs},
			{"variation_id": f.sizeID, "option_ids": f.sizeIDs},
		},
		"combinations": combinations,
	}
}

func (f *routerFixture) fullCombinations() []gin.H {
	combos := make([]gin.H, 0, 4)
	for _, color := range f.colorIDs {
		for _, size := range f.sizeIDs {
			combos = append(combos, gin.H{"option_ids": []uint{size, color}, "price": "120.00", "stock": 3})
		}
	}
	return combos
}

func TestHealthzAndMetrics(t *testing.T) {
	f := newRouterFixture(t)

	w, env := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", env.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "handmade_http_requests_total")
}

func TestAdminRoutesRequireActor(t *testing.T) {
	f := newRouterFixture(t)

	w, env := f.do(t, http.MethodGet, "/api/v1/admin/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", env.Code)
	assert.Equal(t, 401, env.StatusCode)
	assert.Equal(t, "null", string(env.Data))

	w, env = f.do(t, http.MethodGet, "/api/v1/admin/products", "customer", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.Code)

	w, _ = f.do(t, http.MethodGet, "/api/v1/admin/products", "seller", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/v1/admin/categories", "seller", gin.H{"slug": "toys", "name": gin.H{"en-US": "Toys"}})
	assert.Equal(t, http.StatusForbidden, w.Code, "category management is admin only")
}

func TestCreateProductIncompleteCombinations(t *testing.T) {
	f := newRouterFixture(t)

	combos := f.fullCombinations()[:3]
	w, env := f.do(t, http.MethodPost, "/api/v1/admin/products", "seller", f.productPayload(combos))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "incomplete_combinations", env.Code)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "null", string(env.Data))
	assert.True(t, strings.HasPrefix(env.Message, "Variation combinations are incomplete"), env.Message)

	var products, items int64
	require.NoError(t, f.db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, f.db.Model(&models.ProductItem{}).Count(&items).Error)
	assert.Zero(t, products)
	assert.Zero(t, items)
}

func TestCreateProductRejectsInvalidPayload(t *testing.T) {
	f := newRouterFixture(t)

	payload := f.productPayload(f.fullCombinations())
	payload["slug"] = "Not A Slug"
	w, env := f.do(t, http.MethodPost, "/api/v1/admin/products", "seller", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", env.Code)
}

func TestProductAndOrderFlow(t *testing.T) {
	f := newRouterFixture(t)

	w, env := f.do(t, http.MethodPost, "/api/v1/admin/product-combinations/preview", "seller", gin.H{
		"category_id": f.category,
		"variations": []gin.H{
			{"variation_id": f.colorID, "option_ids": f.colorIDs},
			{"variation_id": f.sizeID, "option_ids": f.sizeIDs},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var preview struct {
		Total        int      `json:"total"`
		Combinations [][]uint `json:"combinations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.Equal(t, 4, preview.Total)
	assert.Equal(t, []uint{f.colorIDs[0], f.sizeIDs[0]}, preview.Combinations[0])

	w, env = f.do(t, http.MethodPost, "/api/v1/admin/products", "seller", f.productPayload(f.fullCombinations()))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID            uint `json:"id"`
		ConfigVersion uint `json:"config_version"`
		TotalStock    int  `json:"total_stock"`
		Items         []struct {
			ID uint `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Items, 4)
	assert.Equal(t, 12, created.TotalStock)

	w, env = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/public/products/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail struct {
		Axes []struct {
			VariationID uint   `json:"variation_id"`
			OptionIDs   []uint `json:"option_ids"`
		} `json:"axes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Len(t, detail.Axes, 2)

	w, env = f.do(t, http.MethodPost, "/api/v1/orders", "customer", gin.H{
		"product_id":      created.ID,
		"product_item_id": created.Items[0].ID,
		"quantity":        2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "awaiting_payment", order.Status)

	w, env = f.do(t, http.MethodPost, "/api/v1/orders", "customer", gin.H{
		"product_id":      created.ID,
		"product_item_id": created.Items[0].ID,
		"quantity":        5,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "stock_insufficient", env.Code)

	w, env = f.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), "seller", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "order_transition_invalid", env.Code)

	w, _ = f.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), "seller", gin.H{"status": "pending"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/products/%d", created.ID), "seller", func() gin.H {
		payload := f.productPayload(f.fullCombinations())
		payload["config_version"] = created.ConfigVersion + 5
		return payload
	}())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "config_version_conflict", env.Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	f := newRouterFixture(t)
	w, env := f.do(t, http.MethodGet, "/api/v1/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Code)
}

func TestAuthzAdministration(t *testing.T) {
	f := newRouterFixture(t)

	w, env := f.do(t, http.MethodGet, "/api/v1/admin/authz/roles", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roles []struct {
		Role     string   `json:"role"`
		Inherits []string `json:"inherits"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	require.Len(t, roles, 3)
	assert.Equal(t, "admin", roles[0].Role)
	assert.Equal(t, []string{"seller"}, roles[0].Inherits)

	w, _ = f.do(t, http.MethodGet, "/api/v1/admin/authz/roles", "seller", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 卖家获得分类创建权限后可以调用原本被拒绝的接口
	w, _ = f.do(t, http.MethodPost, "/api/v1/admin/authz/policies", "admin", map[string]string{
		"role": "seller", "object": "/admin/categories", "action": "POST",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = f.do(t, http.MethodPost, "/api/v1/admin/categories", "seller", map[string]interface{}{
		"slug": "pottery", "name": map[string]string{"en-US": "Pottery"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env = f.do(t, http.MethodPost, "/api/v1/admin/authz/policies/revoke", "admin", map[string]string{
		"role": "customer", "object": "/orders", "action": "POST",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.Code)

	w, env = f.do(t, http.MethodGet, "/api/v1/admin/authz/roles/guest/policies", "admin", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Code)
}
