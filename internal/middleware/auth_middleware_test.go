package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions map[string]string

func (f fakeSessions) ValidateSession(_ context.Context, token string) (string, error) {
	userID, ok := f[token]
	if !ok {
		return "", errors.New("no session")
	}
	return userID, nil
}

func serve(t *testing.T, guard *Guard, level Access, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	var seen string
	e.GET("/thing", func(c echo.Context) error {
		seen, _ = UserID(c)
		return c.NoContent(http.StatusOK)
	}, guard.Require(level))

	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec, seen
}

func TestGuard(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	userToken, err := tokens.GenerateJWT("u-1", "user", false)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateJWT("a-1", "admin", true)
	require.NoError(t, err)
	forged, err := utils.NewTokenIssuer("other", time.Hour).GenerateJWT("u-1", "admin", true)
	require.NoError(t, err)

	guard := NewGuard(tokens, nil, true)

	tests := []struct {
		name   string
		level  Access
		header string
		status int
		userID string
	}{
		{"public without token", Public, "", http.StatusOK, ""},
		{"public attaches identity", Public, "Bearer " + userToken, http.StatusOK, "u-1"},
		{"missing header", Authenticated, "", http.StatusUnauthorized, ""},
		{"wrong scheme", Authenticated, "Basic " + userToken, http.StatusUnauthorized, ""},
		{"forged signature", Authenticated, "Bearer " + forged, http.StatusUnauthorized, ""},
		{"authenticated user", Authenticated, "Bearer " + userToken, http.StatusOK, "u-1"},
		{"user on admin route", Admin, "Bearer " + userToken, http.StatusForbidden, ""},
		{"admin on admin route", Admin, "Bearer " + adminToken, http.StatusOK, "a-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := serve(t, guard, tt.level, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.userID, seen)
		})
	}
}

func TestGuardExpiredToken(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Nanosecond)
	token, err := tokens.GenerateJWT("u-1", "user", false)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	rec, _ := serve(t, NewGuard(tokens, nil, true), Authenticated, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardNotEnforced(t *testing.T) {
	guard := NewGuard(utils.NewTokenIssuer("secret", time.Hour), nil, false)

	rec, _ := serve(t, guard, Admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardRequiresSession(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	token, err := tokens.GenerateJWT("u-1", "user", false)
	require.NoError(t, err)
	other, err := tokens.GenerateJWT("u-2", "user", false)
	require.NoError(t, err)

	sessions := fakeSessions{token: "u-1", other: "u-1"}
	guard := NewGuard(tokens, sessions, true)

	rec, _ := serve(t, guard, Authenticated, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, guard, Authenticated, "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	delete(sessions, token)
	rec, _ = serve(t, guard, Authenticated, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizeOwner(t *testing.T) {
	e := echo.New()
	newContext := func(userID, role string, scoped bool) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if userID != "" {
			c.Set(ContextUserID, userID)
			c.Set(ContextRole, role)
		}
		if scoped {
			c.Set(ContextScoped, true)
		}
		return c
	}

	assert.NoError(t, AuthorizeOwner(newContext("u-1", "user", true), "u-1"))
	assert.NoError(t, AuthorizeOwner(newContext("a-1", "admin", true), "u-1"))
	assert.NoError(t, AuthorizeOwner(newContext("u-2", "user", false), "u-1"))
	assert.ErrorIs(t, AuthorizeOwner(newContext("u-2", "user", true), "u-1"), domain.ErrForbidden)
	assert.ErrorIs(t, AuthorizeOwner(newContext("", "", true), "u-1"), domain.ErrForbidden)

	assert.NoError(t, AuthorizeAdmin(newContext("a-1", "admin", true)))
	assert.NoError(t, AuthorizeAdmin(newContext("u-1", "user", false)))
	assert.ErrorIs(t, AuthorizeAdmin(newContext("u-1", "user", true)), domain.ErrForbidden)
}

func TestGuardOwnerLevelScopesRequest(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	userToken, err := tokens.GenerateJWT("u-1", "user", true)
	require.NoError(t, err)

	e := echo.New()
	var scopedSeen bool
	e.GET("/thing", func(c echo.Context) error {
		scopedSeen = OwnerScoped(c)
		return c.NoContent(http.StatusOK)
	}, NewGuard(tokens, nil, true).Require(Owner))

	req := httptest.NewRequest(http.MethodGet, "/thing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/thing", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+userToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, scopedSeen)
}
