package rest

import (
	"context"
	"net/http"
	"time"

	userService "ecommerceBackend/business/user"
	"ecommerceBackend/domain"
	"ecommerceBackend/internal/middleware"
	"ecommerceBackend/pkg/logger"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, in userService.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Logout(ctx context.Context, userID string) error
	VerifyEmail(ctx context.Context, code string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.UserDetail, error)
	GetAllUsers(ctx context.Context) ([]domain.UserDetail, int64, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in userService.UpdateUserInput) (domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   newValidator(),
		timeout:     10 * time.Second,
	}
}

// UserRegisterRequest is validated by the service so that every missing field
// reports the same message.
type UserRegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Sex         string `json:"sex"`
	PhoneNumber string `json:"phone_number"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	Password     *string `json:"password" validate:"omitempty,min=6"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Sex          *string `json:"sex"`
	Role         *string `json:"role"`
	ProfilePhoto *string `json:"profile_photo"`
	PhoneNumber  *string `json:"phone_number"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req UserRegisterRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, userService.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Sex:         req.Sex,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		logger.Warn("Failed to register user", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.SuccessWithMessage("User registered successfully", user))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.Warn("Failed to login", "ip", c.RealIP(), "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("User logged in successfully", LoginResponse{
		Token: token,
		User:  user,
	}))
}

// Logout ends the caller's session
func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, domain.UnauthorizedError("User not authenticated"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.Logout(ctx, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Logout successful", nil))
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.VerifyEmail(ctx, c.Param("code")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Email verified successfully", nil))
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, total, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(users, total))
}

func (h *UserHandler) CountUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.userService.CountUsers(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(count))
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID, err := pathID(c, "id", "user")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(user))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := pathID(c, "id", "user")
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	var req UserUpdateRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	if req.Role != nil {
		if err := middleware.AuthorizeAdmin(c); err != nil {
			return respondError(c, domain.ForbiddenError("Only admins can change roles"))
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.UpdateUser(ctx, userID, userService.UpdateUserInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Sex:          req.Sex,
		Role:         req.Role,
		ProfilePhoto: req.ProfilePhoto,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(user))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := pathID(c, "id", "user")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("User deleted successfully", nil))
}
