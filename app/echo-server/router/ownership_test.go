package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecommerceBackend/business/address"
	"ecommerceBackend/business/billing"
	"ecommerceBackend/business/cart"
	"ecommerceBackend/business/orders"
	userService "ecommerceBackend/business/user"
	"ecommerceBackend/domain"
	"ecommerceBackend/internal/middleware"
	"ecommerceBackend/internal/rest"
	"ecommerceBackend/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	rest.UserService
	updates []userService.UpdateUserInput
}

func (s *stubUsers) GetUserByID(_ context.Context, id uuid.UUID) (domain.UserDetail, error) {
	return domain.UserDetail{User: domain.User{ID: id, Role: domain.RoleUser}}, nil
}

func (s *stubUsers) UpdateUser(_ context.Context, id uuid.UUID, in userService.UpdateUserInput) (domain.User, error) {
	s.updates = append(s.updates, in)
	user := domain.User{ID: id, Role: domain.RoleUser}
	if in.Role != nil {
		user.Role = *in.Role
	}
	return user, nil
}

type stubOrders struct {
	rest.OrdersService
	orders  map[uuid.UUID]domain.OrderDetail
	deleted []uuid.UUID
}

func (s *stubOrders) GetOrder(_ context.Context, id uuid.UUID) (domain.OrderDetail, error) {
	order, ok := s.orders[id]
	if !ok {
		return domain.OrderDetail{}, domain.NotFoundError("Order not found")
	}
	return order, nil
}

func (s *stubOrders) ListUserOrders(_ context.Context, _ uuid.UUID) ([]domain.OrderDetail, int64, error) {
	return []domain.OrderDetail{}, 0, nil
}

func (s *stubOrders) CreateOrder(_ context.Context, _ orders.CreateOrderInput) (domain.Order, error) {
	return domain.Order{ID: uuid.New()}, nil
}

func (s *stubOrders) CancelOrder(_ context.Context, id uuid.UUID, _ string) (domain.Order, error) {
	return domain.Order{ID: id, OrderStatus: domain.OrderStatusCancelled}, nil
}

func (s *stubOrders) DeleteOrder(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCarts struct {
	rest.CartService
	carts   map[uuid.UUID]domain.CartDetail
	deleted []uuid.UUID
}

func (s *stubCarts) GetCart(_ context.Context, id uuid.UUID) (domain.CartDetail, error) {
	found, ok := s.carts[id]
	if !ok {
		return domain.CartDetail{}, domain.NotFoundError("Cart not found")
	}
	return found, nil
}

func (s *stubCarts) CreateCart(_ context.Context, in cart.CreateCartInput) (domain.Cart, error) {
	return domain.Cart{ID: uuid.New(), UserID: uuid.MustParse(in.UserID)}, nil
}

func (s *stubCarts) DeleteCart(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubAddresses struct {
	rest.AddressService
}

func (stubAddresses) ListUserAddresses(_ context.Context, _ uuid.UUID) ([]domain.Address, error) {
	return []domain.Address{}, nil
}

func (stubAddresses) CreateAddress(_ context.Context, userID uuid.UUID, _ address.AddressInput) (domain.Address, error) {
	return domain.Address{ID: uuid.New(), UserID: userID}, nil
}

func (stubAddresses) UpdateAddress(_ context.Context, userID, addressID uuid.UUID, _ address.UpdateAddressInput) (domain.Address, bool, error) {
	return domain.Address{ID: addressID, UserID: userID}, true, nil
}

type stubBillings struct {
	rest.BillingService
}

func (stubBillings) GetBillingByUser(_ context.Context, userID uuid.UUID) (domain.Billing, error) {
	return domain.Billing{ID: uuid.New(), UserID: userID}, nil
}

func (stubBillings) CreateBilling(_ context.Context, userID uuid.UUID, _ billing.BillingInput) (domain.Billing, error) {
	return domain.Billing{ID: uuid.New(), UserID: userID}, nil
}

func (stubBillings) SyncBilling(_ context.Context, userID uuid.UUID) (domain.Billing, error) {
	return domain.Billing{ID: uuid.New(), UserID: userID}, nil
}

type ownershipFixture struct {
	e        *echo.Echo
	users    *stubUsers
	orders   *stubOrders
	carts    *stubCarts
	ownerID  uuid.UUID
	orderID  uuid.UUID
	cartID   uuid.UUID
	owner    string
	stranger string
	admin    string
}

func newOwnershipFixture(t *testing.T, enforced bool) *ownershipFixture {
	t.Helper()

	f := &ownershipFixture{
		ownerID: uuid.New(),
		orderID: uuid.New(),
		cartID:  uuid.New(),
	}
	f.users = &stubUsers{}
	f.orders = &stubOrders{orders: map[uuid.UUID]domain.OrderDetail{
		f.orderID: {Order: domain.Order{ID: f.orderID, UserID: f.ownerID}},
	}}
	f.carts = &stubCarts{carts: map[uuid.UUID]domain.CartDetail{
		f.cartID: {Cart: domain.Cart{ID: f.cartID, UserID: f.ownerID}},
	}}

	tokens := utils.NewTokenIssuer("secret", time.Hour)
	var err error
	f.owner, err = tokens.GenerateJWT(f.ownerID.String(), domain.RoleUser, true)
	require.NoError(t, err)
	f.stranger, err = tokens.GenerateJWT(uuid.NewString(), domain.RoleUser, true)
	require.NoError(t, err)
	f.admin, err = tokens.GenerateJWT(uuid.NewString(), domain.RoleAdmin, true)
	require.NoError(t, err)

	handlers := testHandlers()
	handlers.User = rest.NewUserHandler(f.users)
	handlers.Orders = rest.NewOrdersHandler(f.orders)
	handlers.Cart = rest.NewCartHandler(f.carts)
	handlers.Address = rest.NewAddressHandler(stubAddresses{}, stubBillings{})

	f.e = echo.New()
	Register(f.e.Group("/api/v1"), middleware.NewGuard(tokens, nil, enforced), Routes(handlers))

	return f
}

func (f *ownershipFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

type ownedCall struct {
	method string
	path   string
	body   string
	status int
}

func (f *ownershipFixture) ownedCalls() []ownedCall {
	owner := f.ownerID.String()
	addressBody := `{"street_address":"1 Main St","city":"Springfield","postal_code":"12345","country":"US"}`

	return []ownedCall{
		{http.MethodGet, "/users/" + owner, "", http.StatusOK},
		{http.MethodPut, "/users/" + owner, `{"first_name":"Ann"}`, http.StatusOK},
		{http.MethodGet, "/orders/user/" + owner, "", http.StatusOK},
		{http.MethodGet, "/orders/" + f.orderID.String(), "", http.StatusOK},
		{http.MethodPost, "/orders", `{"user_id":"` + owner + `","order_item":["` + uuid.NewString() + `"]}`, http.StatusCreated},
		{http.MethodPut, "/orders/cancel/" + f.orderID.String(), `{}`, http.StatusOK},
		{http.MethodDelete, "/orders/" + f.orderID.String(), "", http.StatusOK},
		{http.MethodGet, "/carts/" + f.cartID.String(), "", http.StatusOK},
		{http.MethodPost, "/carts", `{"user_id":"` + owner + `"}`, http.StatusCreated},
		{http.MethodDelete, "/carts/" + f.cartID.String(), "", http.StatusOK},
		{http.MethodGet, "/address/" + owner, "", http.StatusOK},
		{http.MethodPost, "/address/" + owner, addressBody, http.StatusCreated},
		{http.MethodPut, "/address/" + owner + "/" + uuid.NewString(), `{"city":"Shelbyville"}`, http.StatusOK},
		{http.MethodGet, "/billing-address/" + owner, "", http.StatusOK},
		{http.MethodPost, "/billing-address/" + owner, addressBody, http.StatusCreated},
		{http.MethodPost, "/billing-address/" + owner + "/sync", "", http.StatusOK},
	}
}

func TestOwnerRoutesRejectOtherUsers(t *testing.T) {
	f := newOwnershipFixture(t, true)

	for _, call := range f.ownedCalls() {
		rec := f.do(call.method, call.path, call.body, f.stranger)
		assert.Equal(t, http.StatusForbidden, rec.Code, "stranger %s %s", call.method, call.path)
	}

	assert.Empty(t, f.users.updates)
	assert.Empty(t, f.orders.deleted)
	assert.Empty(t, f.carts.deleted)
}

func TestOwnerRoutesAllowOwnerAndAdmin(t *testing.T) {
	for name, pick := range map[string]func(f *ownershipFixture) string{
		"owner": func(f *ownershipFixture) string { return f.owner },
		"admin": func(f *ownershipFixture) string { return f.admin },
	} {
		t.Run(name, func(t *testing.T) {
			f := newOwnershipFixture(t, true)
			token := pick(f)

			for _, call := range f.ownedCalls() {
				rec := f.do(call.method, call.path, call.body, token)
				assert.Equal(t, call.status, rec.Code, "%s %s: %s", call.method, call.path, rec.Body.String())
			}

			assert.Equal(t, []uuid.UUID{f.orderID}, f.orders.deleted)
			assert.Equal(t, []uuid.UUID{f.cartID}, f.carts.deleted)
		})
	}
}

func TestOwnerRoutesOpenWhenNotEnforced(t *testing.T) {
	f := newOwnershipFixture(t, false)

	rec := f.do(http.MethodDelete, "/orders/"+f.orderID.String(), "", f.stranger)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/address/"+f.ownerID.String(), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOnlyAdminsChangeRoles(t *testing.T) {
	f := newOwnershipFixture(t, true)
	self := "/users/" + f.ownerID.String()

	rec := f.do(http.MethodPut, self, `{"role":"admin"}`, f.owner)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only admins can change roles")
	assert.Empty(t, f.users.updates)

	rec = f.do(http.MethodGet, "/users", "", f.owner)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPut, self, `{"role":"admin"}`, f.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.users.updates, 1)
	assert.Equal(t, domain.RoleAdmin, *f.users.updates[0].Role)
}

func TestUsersCannotEditOtherAccounts(t *testing.T) {
	f := newOwnershipFixture(t, true)

	rec := f.do(http.MethodPut, "/users/"+f.ownerID.String(), `{"email":"taken@example.com","password":"hunter22"}`, f.stranger)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.users.updates)

	rec = f.do(http.MethodPut, "/users/"+f.ownerID.String(), `{"email":"mine@example.com"}`, f.owner)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.users.updates, 1)
	assert.Equal(t, "mine@example.com", *f.users.updates[0].Email)
}
