package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceBackend/business/orders"
	"ecommerceBackend/domain"
	"ecommerceBackend/internal/middleware"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrdersService interface {
	CreateOrderItem(ctx context.Context, in orders.CreateOrderItemInput) (domain.OrderItem, error)
	ListOrderItems(ctx context.Context) ([]domain.OrderItem, error)
	GetOrderItem(ctx context.Context, id uuid.UUID) (domain.OrderItem, error)

	CreateOrder(ctx context.Context, in orders.CreateOrderInput) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.OrderDetail, int64, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.OrderDetail, int64, error)
	GetOrder(ctx context.Context, id uuid.UUID) (domain.OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, updatedBy string) (domain.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID, updatedBy string) (domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status, updatedBy string) (domain.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	CountOrders(ctx context.Context) (int64, error)
}

type OrdersHandler struct {
	ordersService OrdersService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		validator:     newValidator(),
		timeout:       10 * time.Second,
	}
}

type CreateOrderItemRequest struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	CreatedBy string `json:"created_by"`
}

type CreateOrderRequest struct {
	UserID          string   `json:"user_id" validate:"required"`
	OrderItems      []string `json:"order_item" validate:"required,min=1"`
	ShippingAddress string   `json:"shipping_address"`
	CreatedBy       string   `json:"created_by"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status" validate:"required"`
	UpdatedBy   string `json:"updated_by"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
	UpdatedBy     string `json:"updated_by"`
}

type CancelOrderRequest struct {
	UpdatedBy string `json:"updated_by"`
}

func (h *OrdersHandler) CreateOrderItem(c echo.Context) error {
	var req CreateOrderItemRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.ordersService.CreateOrderItem(ctx, orders.CreateOrderItemInput{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		CreatedBy: actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(item))
}

func (h *OrdersHandler) GetAllOrderItems(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.ordersService.ListOrderItems(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(items, int64(len(items))))
}

func (h *OrdersHandler) GetOrderItemByID(c echo.Context) error {
	itemID, err := pathID(c, "id", "order item")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.ordersService.GetOrderItem(ctx, itemID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(item))
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := middleware.AuthorizeOwner(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	order, err := h.ordersService.CreateOrder(ctx, orders.CreateOrderInput{
		UserID:          req.UserID,
		OrderItemIDs:    req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		CreatedBy:       actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(order))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	list, total, err := h.ordersService.ListOrders(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(list, total))
}

func (h *OrdersHandler) GetUserOrders(c echo.Context) error {
	userID, err := pathID(c, "user_id", "user order")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	list, total, err := h.ordersService.ListUserOrders(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(list, total))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	orderID, err := pathID(c, "id", "order")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, orderID)
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, order.UserID.String()); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(order))
}

func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathID(c, "id", "order")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateOrderStatus(ctx, orderID, req.OrderStatus, actor(c, req.UpdatedBy))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(order))
}

func (h *OrdersHandler) CancelOrder(c echo.Context) error {
	orderID, err := pathID(c, "id", "order")
	if err != nil {
		return respondError(c, err)
	}

	var req CancelOrderRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authorizeOrder(ctx, c, orderID); err != nil {
		return respondError(c, err)
	}

	order, err := h.ordersService.CancelOrder(ctx, orderID, actor(c, req.UpdatedBy))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(order))
}

func (h *OrdersHandler) UpdatePaymentStatus(c echo.Context) error {
	orderID, err := pathID(c, "id", "order")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdatePaymentStatusRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdatePaymentStatus(ctx, orderID, req.PaymentStatus, actor(c, req.UpdatedBy))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(order))
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	orderID, err := pathID(c, "id", "order")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authorizeOrder(ctx, c, orderID); err != nil {
		return respondError(c, err)
	}

	if err := h.ordersService.DeleteOrder(ctx, orderID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Order deleted successfully", nil))
}

func (h *OrdersHandler) GetTotalSales(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	total, err := h.ordersService.TotalSales(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(total))
}

func (h *OrdersHandler) CountOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.ordersService.CountOrders(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(count))
}

// authorizeOrder checks that the caller owns the order on owner-scoped routes.
func (h *OrdersHandler) authorizeOrder(ctx context.Context, c echo.Context, orderID uuid.UUID) error {
	if !middleware.OwnerScoped(c) {
		return nil
	}

	order, err := h.ordersService.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	return middleware.AuthorizeOwner(c, order.UserID.String())
}
