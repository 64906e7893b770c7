package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"
	jsonres "ecommerceBackend/pkg/response"
	"ecommerceBackend/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Context keys set by the guard.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextScoped = "owner_scoped"
)

// Access is the level a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
	// Owner routes act on one user's records. Handlers confirm the caller
	// owns the record with AuthorizeOwner; admins pass.
	Owner
	Admin
)

// SessionValidator checks that a token still belongs to a live login session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (string, error)
}

type Guard struct {
	tokens   *utils.TokenIssuer
	sessions SessionValidator
	enforced bool
	timeout  time.Duration
}

// NewGuard builds the route guard. sessions may be nil, in which case a valid
// signature is enough. When enforced is false every route behaves as Public.
func NewGuard(tokens *utils.TokenIssuer, sessions SessionValidator, enforced bool) *Guard {
	return &Guard{
		tokens:   tokens,
		sessions: sessions,
		enforced: enforced,
		timeout:  5 * time.Second,
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, jsonres.Error(message))
}

// authenticate validates the bearer token and stores the caller identity on c.
func (g *Guard) authenticate(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "Missing authorization header", domain.ErrUnauthorized
	}

	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return "Invalid authorization format", domain.ErrUnauthorized
	}

	tokenString := tokenParts[1]

	claims, err := g.tokens.ParseJWT(tokenString)
	if err != nil {
		logger.Debug("Rejected token", "error", err)
		return "Invalid or expired token", domain.ErrUnauthorized
	}

	if g.sessions != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), g.timeout)
		defer cancel()

		userID, err := g.sessions.ValidateSession(ctx, tokenString)
		if err != nil {
			logger.Warn("Session lookup failed", "user_id", claims.UserID, "error", err)
			return "Session expired or logged out", domain.ErrUnauthorized
		}

		if userID != claims.UserID {
			logger.Error("UserID mismatch between token and session", "user_id", claims.UserID)
			return "Invalid token", domain.ErrUnauthorized
		}
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)

	return "", nil
}

// Require returns the middleware enforcing level.
func (g *Guard) Require(level Access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if level == Public || !g.enforced {
				// identity is still attached when a valid token is sent
				if c.Request().Header.Get(echo.HeaderAuthorization) != "" {
					_, _ = g.authenticate(c)
				}
				return next(c)
			}

			if message, err := g.authenticate(c); err != nil {
				return unauthorized(c, message)
			}

			if level == Admin && !IsAdmin(c) {
				return c.JSON(http.StatusForbidden, jsonres.Error("Admin access required"))
			}

			if level == Owner {
				c.Set(ContextScoped, true)
			}

			return next(c)
		}
	}
}

// UserID returns the authenticated caller id, if any.
func UserID(c echo.Context) (string, bool) {
	userID, ok := c.Get(ContextUserID).(string)
	return userID, ok && userID != ""
}

func Role(c echo.Context) string {
	role, _ := c.Get(ContextRole).(string)
	return role
}

func IsAdmin(c echo.Context) bool {
	return strings.EqualFold(Role(c), domain.RoleAdmin)
}

// OwnerScoped reports whether the guard scoped the request to an owner.
func OwnerScoped(c echo.Context) bool {
	on, _ := c.Get(ContextScoped).(bool)
	return on
}

// AuthorizeOwner fails with Forbidden unless the caller is ownerID or an
// admin. It passes on routes the guard did not scope to an owner.
func AuthorizeOwner(c echo.Context, ownerID string) error {
	if !OwnerScoped(c) || IsAdmin(c) {
		return nil
	}

	if userID, ok := UserID(c); ok && strings.EqualFold(userID, ownerID) {
		return nil
	}

	return domain.ForbiddenError("You do not have access to this resource")
}

// AuthorizeAdmin fails with Forbidden unless the caller is an admin, on routes
// the guard scoped to an owner.
func AuthorizeAdmin(c echo.Context) error {
	if !OwnerScoped(c) || IsAdmin(c) {
		return nil
	}

	return domain.ForbiddenError("Admin access required")
}
