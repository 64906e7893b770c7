package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecommerceBackend/internal/middleware"
	"ecommerceBackend/internal/rest"
	"ecommerceBackend/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers() Handlers {
	return Handlers{
		User:     rest.NewUserHandler(nil),
		Category: rest.NewCategoryHandler(nil),
		Product:  rest.NewProductHandler(nil),
		Orders:   rest.NewOrdersHandler(nil),
		Payments: rest.NewPaymentsHandler(nil),
		Review:   rest.NewReviewHandler(nil),
		Cart:     rest.NewCartHandler(nil),
		Address:  rest.NewAddressHandler(nil, nil),
	}
}

func concretePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = "00000000-0000-0000-0000-000000000001"
		}
	}
	return strings.Join(parts, "/")
}

func TestRouteTableIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Routes(testHandlers()) {
		key := r.Method + " " + r.Path
		assert.False(t, seen[key], "duplicate route %s", key)
		seen[key] = true
		assert.NotNil(t, r.Handler, key)
	}
}

func TestProtectedRoutesRejectAnonymousCallers(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	userToken, err := tokens.GenerateJWT("00000000-0000-0000-0000-000000000009", "user", true)
	require.NoError(t, err)

	e := echo.New()
	routes := Routes(testHandlers())
	Register(e.Group("/api/v1"), middleware.NewGuard(tokens, nil, true), routes)

	for _, r := range routes {
		if r.Access == middleware.Public {
			continue
		}

		req := httptest.NewRequest(r.Method, "/api/v1"+concretePath(r.Path), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.Method, r.Path)

		if r.Access == middleware.Admin {
			req = httptest.NewRequest(r.Method, "/api/v1"+concretePath(r.Path), nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+userToken)
			rec = httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", r.Method, r.Path)
		}
	}
}

func TestAccessPolicy(t *testing.T) {
	access := map[string]middleware.Access{}
	for _, r := range Routes(testHandlers()) {
		access[r.Method+" "+r.Path] = r.Access
	}

	assert.Equal(t, middleware.Public, access["POST /auth/login"])
	assert.Equal(t, middleware.Public, access["GET /products"])
	assert.Equal(t, middleware.Public, access["GET /reviews"])
	assert.Equal(t, middleware.Admin, access["POST /products"])
	assert.Equal(t, middleware.Admin, access["GET /orders/total-sales"])
	assert.Equal(t, middleware.Admin, access["PUT /orders/update-order-status/:id"])
	assert.Equal(t, middleware.Owner, access["POST /orders"])
	assert.Equal(t, middleware.Owner, access["PUT /users/:id"])
	assert.Equal(t, middleware.Owner, access["DELETE /orders/:id"])
	assert.Equal(t, middleware.Owner, access["PUT /address/:user_id/:id"])
	assert.Equal(t, middleware.Authenticated, access["POST /auth/logout"])
}
