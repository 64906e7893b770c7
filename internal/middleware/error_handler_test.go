package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	jsonres "ecommerceBackend/pkg/response"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(echomiddleware.Recover())
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/panic", func(c echo.Context) error { panic("boom") })
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) jsonres.Envelope {
	t.Helper()
	var env jsonres.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestErrorHandler(t *testing.T) {
	e := newErrorServer()

	tests := []struct {
		name    string
		method  string
		path    string
		status  int
		message string
	}{
		{"unknown path", http.MethodGet, "/nowhere", http.StatusNotFound, "Invalid Path"},
		{"wrong method", http.MethodPost, "/ok", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"panic", http.MethodGet, "/panic", http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Error)
			assert.Equal(t, jsonres.CodeFailed, env.ResponseCode)
		})
	}
}
