package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceBackend/business/cart"
	"ecommerceBackend/domain"
	"ecommerceBackend/internal/middleware"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CartService interface {
	ListCarts(ctx context.Context) ([]domain.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (domain.CartDetail, error)
	CreateCart(ctx context.Context, in cart.CreateCartInput) (domain.Cart, error)
	DeleteCart(ctx context.Context, id uuid.UUID) error
	ListCartItems(ctx context.Context) ([]domain.CartItem, error)
	CreateCartItem(ctx context.Context, in cart.CreateCartItemInput) (domain.CartItem, error)
	UpdateCartItem(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) (domain.CartItem, error)
	DeleteCartItem(ctx context.Context, id uuid.UUID) error
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   newValidator(),
		timeout:     10 * time.Second,
	}
}

type CreateCartRequest struct {
	UserID    string `json:"user_id"`
	CreatedBy string `json:"created_by"`
}

type CreateCartItemRequest struct {
	CartID    string `json:"cart_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	CreatedBy string `json:"created_by"`
}

type UpdateCartItemRequest struct {
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	UpdatedBy string `json:"updated_by"`
}

func (h *CartHandler) GetAllCarts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	carts, err := h.cartService.ListCarts(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(carts, int64(len(carts))))
}

func (h *CartHandler) GetCartByID(c echo.Context) error {
	cartID, err := pathID(c, "id", "cart")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.cartService.GetCart(ctx, cartID)
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, found.UserID.String()); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(found))
}

func (h *CartHandler) CreateCart(c echo.Context) error {
	var req CreateCartRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userID := req.UserID
	if userID == "" {
		userID, _ = middleware.UserID(c)
	}

	if err := middleware.AuthorizeOwner(c, userID); err != nil {
		return respondError(c, err)
	}

	created, err := h.cartService.CreateCart(ctx, cart.CreateCartInput{
		UserID:    userID,
		CreatedBy: actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(created))
}

func (h *CartHandler) DeleteCart(c echo.Context) error {
	cartID, err := pathID(c, "id", "cart")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if middleware.OwnerScoped(c) {
		found, err := h.cartService.GetCart(ctx, cartID)
		if err != nil {
			return respondError(c, err)
		}

		if err := middleware.AuthorizeOwner(c, found.UserID.String()); err != nil {
			return respondError(c, err)
		}
	}

	if err := h.cartService.DeleteCart(ctx, cartID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Cart deleted successfully", nil))
}

func (h *CartHandler) GetAllCartItems(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.cartService.ListCartItems(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(items, int64(len(items))))
}

func (h *CartHandler) CreateCartItem(c echo.Context) error {
	var req CreateCartItemRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.CreateCartItem(ctx, cart.CreateCartItemInput{
		CartID:    req.CartID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		CreatedBy: actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(item))
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	itemID, err := pathID(c, "id", "cart item")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateCartItemRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.UpdateCartItem(ctx, itemID, req.Quantity, actor(c, req.UpdatedBy))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(item))
}

func (h *CartHandler) DeleteCartItem(c echo.Context) error {
	itemID, err := pathID(c, "id", "cart item")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.DeleteCartItem(ctx, itemID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Cart item deleted successfully", nil))
}
