package orders

import (
	"context"
	"testing"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createItem(t *testing.T, svc *orderService, product domain.Product, qty int) domain.OrderItem {
	t.Helper()
	item, err := svc.CreateOrderItem(context.Background(), CreateOrderItemInput{
		ProductID: product.ID.String(),
		Quantity:  qty,
		CreatedBy: "tester",
	})
	require.NoError(t, err)
	return item
}

func TestCreateOrderItem_SnapshotsPrice(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	product := store.addProduct("19.99")

	item := createItem(t, svc, product, 3)

	assert.True(t, decimal.RequireFromString("19.99").Equal(item.UnitPrice))
	assert.True(t, decimal.RequireFromString("59.97").Equal(item.TotalPrice), item.TotalPrice.String())

	changed := store.products[product.ID]
	changed.Price = decimal.RequireFromString("25.00")
	store.products[product.ID] = changed

	stored, err := svc.GetOrderItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("19.99").Equal(stored.UnitPrice))
	assert.True(t, decimal.RequireFromString("59.97").Equal(stored.TotalPrice))
}

func TestCreateOrderItem_Rejections(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	product := store.addProduct("5.00")

	tests := []struct {
		name string
		in   CreateOrderItemInput
		kind error
	}{
		{
			name: "malformed product id",
			in:   CreateOrderItemInput{ProductID: "abc", Quantity: 1, CreatedBy: "t"},
			kind: domain.ErrValidation,
		},
		{
			name: "unknown product",
			in:   CreateOrderItemInput{ProductID: uuid.NewString(), Quantity: 1, CreatedBy: "t"},
			kind: domain.ErrInvalidReference,
		},
		{
			name: "zero quantity",
			in:   CreateOrderItemInput{ProductID: product.ID.String(), Quantity: 0, CreatedBy: "t"},
			kind: domain.ErrValidation,
		},
		{
			name: "malformed order id",
			in:   CreateOrderItemInput{OrderID: "x", ProductID: product.ID.String(), Quantity: 1, CreatedBy: "t"},
			kind: domain.ErrValidation,
		},
		{
			name: "unknown order",
			in:   CreateOrderItemInput{OrderID: uuid.NewString(), ProductID: product.ID.String(), Quantity: 1, CreatedBy: "t"},
			kind: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrderItem(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
	assert.Empty(t, store.items)
}

func TestCreateOrder_SumsItems(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	user := store.addUser()
	product := store.addProduct("19.99")
	first := createItem(t, svc, product, 3)
	second := createItem(t, svc, product, 3)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:       user.ID.String(),
		OrderItemIDs: []string{first.ID.String(), second.ID.String()},
		CreatedBy:    "tester",
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("119.94").Equal(order.TotalAmount), order.TotalAmount.String())
	assert.Equal(t, domain.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, domain.PaymentStatusNotPaid, order.PaymentStatus)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, order.ItemIDs())

	for _, id := range order.ItemIDs() {
		require.NotNil(t, store.items[id].OrderID)
		assert.Equal(t, order.ID, *store.items[id].OrderID)
	}
}

func TestCreateOrder_Rejections(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	user := store.addUser()
	item := createItem(t, svc, store.addProduct("1.00"), 1)

	tests := []struct {
		name string
		in   CreateOrderInput
		kind error
	}{
		{
			name: "empty item list",
			in:   CreateOrderInput{UserID: user.ID.String(), CreatedBy: "t"},
			kind: domain.ErrValidation,
		},
		{
			name: "malformed item id",
			in:   CreateOrderInput{UserID: user.ID.String(), OrderItemIDs: []string{item.ID.String(), "nope"}, CreatedBy: "t"},
			kind: domain.ErrValidation,
		},
		{
			name: "duplicate item id",
			in:   CreateOrderInput{UserID: user.ID.String(), OrderItemIDs: []string{item.ID.String(), item.ID.String()}, CreatedBy: "t"},
			kind: domain.ErrValidation,
		},
		{
			name: "unknown item id",
			in:   CreateOrderInput{UserID: user.ID.String(), OrderItemIDs: []string{item.ID.String(), uuid.NewString()}, CreatedBy: "t"},
			kind: domain.ErrInvalidReference,
		},
		{
			name: "malformed user id",
			in:   CreateOrderInput{UserID: "u1", OrderItemIDs: []string{item.ID.String()}, CreatedBy: "t"},
			kind: domain.ErrValidation,
		},
		{
			name: "unknown user",
			in:   CreateOrderInput{UserID: uuid.NewString(), OrderItemIDs: []string{item.ID.String()}, CreatedBy: "t"},
			kind: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
	assert.Empty(t, store.orders)
}

func TestCreateOrder_RejectsItemsOfAnotherOrder(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	user := store.addUser()
	product := store.addProduct("4.00")
	shared := createItem(t, svc, product, 1)
	fresh := createItem(t, svc, product, 2)

	first, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:       user.ID.String(),
		OrderItemIDs: []string{shared.ID.String()},
		CreatedBy:    "t",
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:       user.ID.String(),
		OrderItemIDs: []string{fresh.ID.String(), shared.ID.String()},
		CreatedBy:    "t",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, store.orders, 1)
	require.NotNil(t, store.items[shared.ID].OrderID)
	assert.Equal(t, first.ID, *store.items[shared.ID].OrderID)
	assert.Nil(t, store.items[fresh.ID].OrderID)

	linked, err := svc.CreateOrderItem(context.Background(), CreateOrderItemInput{
		OrderID:   first.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  1,
		CreatedBy: "t",
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:       user.ID.String(),
		OrderItemIDs: []string{linked.ID.String()},
		CreatedBy:    "t",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteOrder_CascadesToOwnItemsOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	user := store.addUser()
	product := store.addProduct("2.50")
	a := createItem(t, svc, product, 1)
	b := createItem(t, svc, product, 2)
	other := createItem(t, svc, product, 4)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:       user.ID.String(),
		OrderItemIDs: []string{a.ID.String(), b.ID.String()},
		CreatedBy:    "t",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))

	assert.NotContains(t, store.orders, order.ID)
	assert.NotContains(t, store.items, a.ID)
	assert.NotContains(t, store.items, b.ID)
	assert.Contains(t, store.items, other.ID)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	item := createItem(t, svc, store.addProduct("1.00"), 1)

	err := svc.DeleteOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, store.items, item.ID)
}

func newPendingOrder(t *testing.T, store *fakeStore, svc *orderService) domain.Order {
	t.Helper()
	item := createItem(t, svc, store.addProduct("3.00"), 1)
	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:       store.addUser().ID.String(),
		OrderItemIDs: []string{item.ID.String()},
		CreatedBy:    "t",
	})
	require.NoError(t, err)
	return order
}

func TestUpdateOrderStatus_Strict(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	order := newPendingOrder(t, store, svc)
	ctx := context.Background()

	_, err := svc.UpdateOrderStatus(ctx, order.ID, "Delivered", "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, "teleported", "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)

	for _, status := range []string{"processing", "Shipped", "Shipped", "Delivered"} {
		updated, err := svc.UpdateOrderStatus(ctx, order.ID, status, "admin")
		require.NoError(t, err, status)
		assert.Equal(t, "admin", updated.UpdatedBy)
	}
	assert.Equal(t, domain.OrderStatusDelivered, store.orders[order.ID].OrderStatus)

	_, err = svc.CancelOrder(ctx, order.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateOrderStatus(ctx, uuid.New(), "Processing", "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOrderStatus_Lax(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, false)
	order := newPendingOrder(t, store, svc)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, "Delivered", "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.OrderStatus)

	updated, err = svc.UpdateOrderStatus(context.Background(), order.ID, "Pending", "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, updated.OrderStatus)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, "lost", "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancelOrder(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	order := newPendingOrder(t, store, svc)

	cancelled, err := svc.CancelOrder(context.Background(), order.ID, "buyer")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.OrderStatus)
}

func TestUpdatePaymentStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	order := newPendingOrder(t, store, svc)

	updated, err := svc.UpdatePaymentStatus(context.Background(), order.ID, "paid", "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPending, store.orders[order.ID].OrderStatus)

	_, err = svc.UpdatePaymentStatus(context.Background(), order.ID, "maybe", "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTotalSales(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)

	total, err := svc.TotalSales(context.Background())
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	newPendingOrder(t, store, svc)
	newPendingOrder(t, store, svc)

	total, err = svc.TotalSales(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("6.00").Equal(total), total.String())

	count, err := svc.CountOrders(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGetOrder_JoinsItemsAndUser(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	order := newPendingOrder(t, store, svc)

	detail, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.NotNil(t, detail.User)
	assert.Equal(t, order.UserID, detail.User.ID)

	delete(store.users, order.UserID)
	detail, err = svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.User)
}

func TestListUserOrders(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, true)
	order := newPendingOrder(t, store, svc)
	newPendingOrder(t, store, svc)

	details, total, err := svc.ListUserOrders(context.Background(), order.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, order.ID, details[0].ID)

	_, _, err = svc.ListUserOrders(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, total, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}
