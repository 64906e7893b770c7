package rest

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/internal/middleware"
	"ecommerceBackend/pkg/logger"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// newValidator reports request fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// statusCode maps the error taxonomy onto HTTP statuses.
func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidReference):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the failure envelope. Unclassified errors are
// logged and answered with a generic 500.
func respondError(c echo.Context, err error) error {
	status := statusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(status, jsonres.Error("Internal Server Error"))
	}

	message, ok := domain.PublicMessage(err)
	if !ok {
		message = http.StatusText(status)
	}

	return c.JSON(status, jsonres.Error(message))
}

// bindRequest decodes the body into req and validates its tags.
func bindRequest(c echo.Context, v *validator.Validate, req any) error {
	if err := c.Bind(req); err != nil {
		logger.Debug("Invalid request body", "path", c.Path(), "error", err)
		return domain.ValidationError("Invalid request body")
	}

	if err := v.Struct(req); err != nil {
		return domain.ValidationError(validationMessage(err))
	}

	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func pathID(c echo.Context, param, label string) (uuid.UUID, error) {
	return reference.ParseID(c.Param(param), label)
}

// actor names who performs a write: the authenticated caller, else the value
// from the body.
func actor(c echo.Context, given string) string {
	if userID, ok := middleware.UserID(c); ok {
		return userID
	}

	return given
}
