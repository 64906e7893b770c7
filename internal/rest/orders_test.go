package rest

import (
	"context"
	"net/http"
	"testing"

	"ecommerceBackend/business/orders"
	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrdersService embeds the interface so tests only stub what they call.
type fakeOrdersService struct {
	OrdersService

	created   orders.CreateOrderInput
	orders    map[uuid.UUID]domain.OrderDetail
	total     decimal.Decimal
	deleteErr error
}

func (f *fakeOrdersService) CreateOrder(_ context.Context, in orders.CreateOrderInput) (domain.Order, error) {
	f.created = in
	if len(in.OrderItemIDs) == 1 && in.OrderItemIDs[0] == "missing" {
		return domain.Order{}, domain.InvalidReferenceError("Order item missing not found")
	}
	return domain.Order{ID: uuid.New(), OrderStatus: domain.OrderStatusPending}, nil
}

func (f *fakeOrdersService) GetOrder(_ context.Context, id uuid.UUID) (domain.OrderDetail, error) {
	detail, ok := f.orders[id]
	if !ok {
		return domain.OrderDetail{}, domain.NotFoundError("Order not found")
	}
	return detail, nil
}

func (f *fakeOrdersService) TotalSales(_ context.Context) (decimal.Decimal, error) {
	return f.total, nil
}

func (f *fakeOrdersService) DeleteOrder(_ context.Context, _ uuid.UUID) error {
	return f.deleteErr
}

func newOrdersServer(svc OrdersService) *echo.Echo {
	h := NewOrdersHandler(svc)
	e := echo.New()
	e.POST("/orders", h.CreateOrder)
	e.GET("/orders/total-sales", h.GetTotalSales)
	e.GET("/orders/:id", h.GetOrderByID)
	e.DELETE("/orders/:id", h.DeleteOrder)
	return e
}

func TestCreateOrderHandler(t *testing.T) {
	svc := &fakeOrdersService{}
	e := newOrdersServer(svc)

	userID := uuid.NewString()
	rec := doRequest(e, http.MethodPost, "/orders",
		`{"user_id":"`+userID+`","order_item":["a","b"],"created_by":"clerk"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope(t, rec).Success)
	assert.Equal(t, []string{"a", "b"}, svc.created.OrderItemIDs)
	assert.Equal(t, "clerk", svc.created.CreatedBy)

	rec = doRequest(e, http.MethodPost, "/orders", `{"user_id":"`+userID+`","order_item":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/orders", `{"user_id":"`+userID+`","order_item":["missing"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodPost, "/orders", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", envelope(t, rec).Error)
}

func TestGetOrderHandler(t *testing.T) {
	known := uuid.New()
	svc := &fakeOrdersService{orders: map[uuid.UUID]domain.OrderDetail{
		known: {Order: domain.Order{ID: known}, Items: []domain.OrderItem{}},
	}}
	e := newOrdersServer(svc)

	rec := doRequest(e, http.MethodGet, "/orders/"+known.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/orders/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid order ID format", envelope(t, rec).Error)

	rec = doRequest(e, http.MethodGet, "/orders/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", envelope(t, rec).Error)
}

func TestTotalSalesHandler(t *testing.T) {
	e := newOrdersServer(&fakeOrdersService{total: decimal.RequireFromString("119.94")})

	rec := doRequest(e, http.MethodGet, "/orders/total-sales", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := envelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "00", env.ResponseCode)
	assert.NotNil(t, env.ResponseData)
}

func TestDeleteOrderHandler(t *testing.T) {
	svc := &fakeOrdersService{}
	e := newOrdersServer(svc)

	rec := doRequest(e, http.MethodDelete, "/orders/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.deleteErr = domain.NotFoundError("Order not found")
	rec = doRequest(e, http.MethodDelete, "/orders/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
