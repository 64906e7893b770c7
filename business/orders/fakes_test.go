package orders

import (
	"context"
	"sort"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type inlineTx struct{}

func (inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStore struct {
	orders   map[uuid.UUID]domain.Order
	items    map[uuid.UUID]domain.OrderItem
	products map[uuid.UUID]domain.Product
	users    map[uuid.UUID]domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   map[uuid.UUID]domain.Order{},
		items:    map[uuid.UUID]domain.OrderItem{},
		products: map[uuid.UUID]domain.Product{},
		users:    map[uuid.UUID]domain.User{},
	}
}

func (f *fakeStore) addProduct(price string) domain.Product {
	p := domain.Product{ID: uuid.New(), Name: "p", Price: decimal.RequireFromString(price)}
	f.products[p.ID] = p
	return p
}

func (f *fakeStore) addUser() domain.User {
	u := domain.User{ID: uuid.New(), Username: "buyer", Email: "buyer@example.com", Role: domain.RoleUser}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) resolver() *reference.Resolver {
	return reference.NewResolver().
		Register(reference.User, reference.CheckerFunc(func(_ context.Context, id uuid.UUID) (bool, error) {
			_, ok := f.users[id]
			return ok, nil
		})).
		Register(reference.Order, reference.CheckerFunc(func(_ context.Context, id uuid.UUID) (bool, error) {
			_, ok := f.orders[id]
			return ok, nil
		}))
}

type fakeOrderRepo struct{ s *fakeStore }

func (r fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.s.orders[order.ID] = *order
	return nil
}

func (r fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Order, error) {
	order, ok := r.s.orders[id]
	if !ok {
		return domain.Order{}, domain.NotFoundError("Order not found")
	}
	return order, nil
}

func (r fakeOrderRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeOrderRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	all, _ := r.FindAll(ctx)
	var out []domain.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r fakeOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.s.orders)), nil
}

func (r fakeOrderRepo) SumTotalAmount(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.s.orders {
		total = total.Add(o.TotalAmount)
	}
	return total, nil
}

func (r fakeOrderRepo) UpdateStatus(_ context.Context, order *domain.Order) error {
	stored, ok := r.s.orders[order.ID]
	if !ok {
		return domain.NotFoundError("Order not found")
	}
	stored.OrderStatus = order.OrderStatus
	stored.PaymentStatus = order.PaymentStatus
	stored.UpdatedBy = order.UpdatedBy
	r.s.orders[order.ID] = stored
	return nil
}

func (r fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.orders[id]; !ok {
		return domain.NotFoundError("Order not found")
	}
	delete(r.s.orders, id)
	return nil
}

type fakeItemRepo struct{ s *fakeStore }

func (r fakeItemRepo) Create(_ context.Context, item *domain.OrderItem) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (domain.OrderItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return domain.OrderItem{}, domain.NotFoundError("Order item not found")
	}
	return item, nil
}

func (r fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, id := range ids {
		if item, ok := r.s.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r fakeItemRepo) FindAll(_ context.Context) ([]domain.OrderItem, error) {
	out := make([]domain.OrderItem, 0, len(r.s.items))
	for _, item := range r.s.items {
		out = append(out, item)
	}
	return out, nil
}

func (r fakeItemRepo) AssignOrder(_ context.Context, ids []uuid.UUID, orderID uuid.UUID) error {
	for _, id := range ids {
		item := r.s.items[id]
		if item.OrderID != nil {
			return domain.ValidationError("Order item already belongs to another order")
		}
		oid := orderID
		item.OrderID = &oid
		r.s.items[id] = item
	}
	return nil
}

func (r fakeItemRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.s.items[id]; ok {
			delete(r.s.items, id)
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return domain.Product{}, domain.NotFoundError("Product not found")
	}
	return p, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestService(s *fakeStore, strict bool) *orderService {
	return NewOrderService(fakeOrderRepo{s}, fakeItemRepo{s}, fakeProductRepo{s}, fakeUserRepo{s}, s.resolver(), inlineTx{}, strict)
}
