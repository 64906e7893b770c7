package orders

import (
	"context"
	"fmt"
	"time"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"
	"ecommerceBackend/pkg/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderRepository contract interface
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderItemRepository contract interface
type OrderItemRepository interface {
	Create(ctx context.Context, item *domain.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.OrderItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.OrderItem, error)
	FindAll(ctx context.Context) ([]domain.OrderItem, error)
	AssignOrder(ctx context.Context, ids []uuid.UUID, orderID uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
}

type UserReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

type CreateOrderItemInput struct {
	OrderID   string
	ProductID string
	Quantity  int
	CreatedBy string
}

type CreateOrderInput struct {
	UserID          string
	OrderItemIDs    []string
	ShippingAddress string
	CreatedBy       string
}

type orderService struct {
	orderRepo    OrderRepository
	itemRepo     OrderItemRepository
	productRepo  ProductReader
	userRepo     UserReader
	resolver     *reference.Resolver
	tx           domain.Transactor
	strictStatus bool
}

func NewOrderService(
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	productRepo ProductReader,
	userRepo UserReader,
	resolver *reference.Resolver,
	tx domain.Transactor,
	strictStatus bool,
) *orderService {
	return &orderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		resolver:     resolver,
		tx:           tx,
		strictStatus: strictStatus,
	}
}

// CreateOrderItem prices a line item from the product's current price. The
// price is copied, so later product price changes leave the item untouched.
func (s *orderService) CreateOrderItem(ctx context.Context, in CreateOrderItemInput) (domain.OrderItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.OrderItem{}, errors.Wrap(err, "context error")
	}

	if in.Quantity <= 0 {
		return domain.OrderItem{}, domain.ValidationError("Quantity must be greater than zero")
	}

	if in.CreatedBy == "" {
		return domain.OrderItem{}, domain.ValidationError("created_by is required")
	}

	productID, err := reference.ParseID(in.ProductID, "product")
	if err != nil {
		return domain.OrderItem{}, err
	}

	orderID, err := reference.ParseOptionalID(in.OrderID, "order")
	if err != nil {
		return domain.OrderItem{}, err
	}

	var item domain.OrderItem
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolver.RequireOptional(ctx, reference.Order, orderID); err != nil {
			return err
		}

		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.InvalidReferenceError("Product not found")
			}
			return err
		}

		item = domain.OrderItem{
			ID:         uuid.New(),
			OrderID:    orderID,
			ProductID:  product.ID,
			Quantity:   in.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			CreatedBy:  in.CreatedBy,
			CreatedAt:  time.Now(),
		}

		return s.itemRepo.Create(ctx, &item)
	})
	if err != nil {
		logger.Error("Failed to create order item", "product_id", in.ProductID, "error", err)
		return domain.OrderItem{}, err
	}

	metrics.OrderItemsCreated.Inc()

	return item, nil
}

// CreateOrder totals the referenced order items into a new Pending order and
// links the items back to it. Every referenced item must exist.
func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, errors.Wrap(err, "context error")
	}

	userID, err := reference.ParseID(in.UserID, "user")
	if err != nil {
		return domain.Order{}, err
	}

	if len(in.OrderItemIDs) == 0 {
		return domain.Order{}, domain.ValidationError("Order must contain at least one order item")
	}

	if in.CreatedBy == "" {
		return domain.Order{}, domain.ValidationError("created_by is required")
	}

	itemIDs, err := reference.ParseIDs(in.OrderItemIDs, "order item")
	if err != nil {
		return domain.Order{}, err
	}

	seen := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if _, dup := seen[id]; dup {
			return domain.Order{}, domain.ValidationError(fmt.Sprintf("Duplicate order item %s", id))
		}
		seen[id] = struct{}{}
	}

	var order domain.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
			return err
		}

		items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
		if err != nil {
			return err
		}

		found := make(map[uuid.UUID]domain.OrderItem, len(items))
		for _, item := range items {
			found[item.ID] = item
		}

		total := decimal.Zero
		stored := make([]string, 0, len(itemIDs))
		for _, id := range itemIDs {
			item, ok := found[id]
			if !ok {
				return domain.InvalidReferenceError(fmt.Sprintf("Order item %s not found", id))
			}
			if item.OrderID != nil {
				return domain.ValidationError(fmt.Sprintf("Order item %s already belongs to order %s", id, *item.OrderID))
			}
			total = total.Add(item.TotalPrice)
			stored = append(stored, id.String())
		}

		order = domain.Order{
			ID:              uuid.New(),
			UserID:          userID,
			OrderItemIDs:    stored,
			TotalAmount:     total,
			OrderStatus:     domain.OrderStatusPending,
			PaymentStatus:   domain.PaymentStatusNotPaid,
			ShippingAddress: in.ShippingAddress,
			CreatedBy:       in.CreatedBy,
			CreatedAt:       time.Now(),
		}

		if err := s.orderRepo.Create(ctx, &order); err != nil {
			return err
		}

		return s.itemRepo.AssignOrder(ctx, itemIDs, order.ID)
	})
	if err != nil {
		logger.Error("Failed to create order", "user_id", in.UserID, "error", err)
		return domain.Order{}, err
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderSalesAmount.Add(order.TotalAmount.InexactFloat64())

	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, updatedBy string) (domain.Order, error) {
	next, ok := domain.ParseOrderStatus(status)
	if !ok {
		return domain.Order{}, domain.ValidationError(fmt.Sprintf("Invalid order status %q", status))
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find order for status update", "order_id", id, "error", err)
		return domain.Order{}, err
	}

	if s.strictStatus && !order.OrderStatus.CanTransitionTo(next) {
		return domain.Order{}, domain.ValidationError(
			fmt.Sprintf("Cannot change order status from %s to %s", order.OrderStatus, next))
	}

	order.OrderStatus = next
	order.UpdatedBy = updatedBy
	if err := s.orderRepo.UpdateStatus(ctx, &order); err != nil {
		logger.Error("Failed to update order status", "order_id", id, "error", err)
		return domain.Order{}, err
	}

	metrics.OrderStatusChanges.WithLabelValues(string(next)).Inc()

	return order, nil
}

func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID, updatedBy string) (domain.Order, error) {
	return s.UpdateOrderStatus(ctx, id, string(domain.OrderStatusCancelled), updatedBy)
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status, updatedBy string) (domain.Order, error) {
	next, ok := domain.ParsePaymentStatus(status)
	if !ok {
		return domain.Order{}, domain.ValidationError(fmt.Sprintf("Invalid payment status %q", status))
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	order.PaymentStatus = next
	order.UpdatedBy = updatedBy
	if err := s.orderRepo.UpdateStatus(ctx, &order); err != nil {
		logger.Error("Failed to update payment status", "order_id", id, "error", err)
		return domain.Order{}, err
	}

	return order, nil
}

// DeleteOrder removes the order and exactly the items it references, atomically.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Delete(ctx, id); err != nil {
			return err
		}

		removed, err := s.itemRepo.DeleteByIDs(ctx, order.ItemIDs())
		if err != nil {
			return err
		}

		logger.Debug("Order deleted", "order_id", id, "items_removed", removed)
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete order", "order_id", id, "error", err)
		return err
	}

	metrics.OrdersDeleted.Inc()

	return nil
}

func (s *orderService) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.orderRepo.SumTotalAmount(ctx)
	if err != nil {
		logger.Error("Failed to compute total sales", "error", err)
		return decimal.Zero, err
	}

	return total, nil
}

func (s *orderService) CountOrders(ctx context.Context) (int64, error) {
	count, err := s.orderRepo.Count(ctx)
	if err != nil {
		logger.Error("Failed to count orders", "error", err)
		return 0, err
	}

	return count, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]domain.OrderDetail, int64, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all orders", "error", err)
		return nil, 0, err
	}

	details, err := s.details(ctx, orders)
	if err != nil {
		return nil, 0, err
	}

	return details, int64(len(details)), nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.OrderDetail, int64, error) {
	if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
		return nil, 0, err
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user orders", "user_id", userID, "error", err)
		return nil, 0, err
	}

	details, err := s.details(ctx, orders)
	if err != nil {
		return nil, 0, err
	}

	return details, int64(len(details)), nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (domain.OrderDetail, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	details, err := s.details(ctx, []domain.Order{order})
	if err != nil {
		return domain.OrderDetail{}, err
	}

	return details[0], nil
}

// details joins orders with their items and owners using one lookup per table.
func (s *orderService) details(ctx context.Context, orders []domain.Order) ([]domain.OrderDetail, error) {
	var itemIDs, userIDs []uuid.UUID
	for _, order := range orders {
		itemIDs = append(itemIDs, order.ItemIDs()...)
		userIDs = append(userIDs, order.UserID)
	}

	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		logger.Error("Failed to load order items", "error", err)
		return nil, err
	}

	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		logger.Error("Failed to load order owners", "error", err)
		return nil, err
	}

	itemByID := make(map[uuid.UUID]domain.OrderItem, len(items))
	for _, item := range items {
		itemByID[item.ID] = item
	}

	userByID := make(map[uuid.UUID]domain.User, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	details := make([]domain.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail := domain.OrderDetail{Order: order, Items: []domain.OrderItem{}}
		for _, id := range order.ItemIDs() {
			if item, ok := itemByID[id]; ok {
				detail.Items = append(detail.Items, item)
			}
		}
		if user, ok := userByID[order.UserID]; ok {
			detail.User = &user
		}
		details = append(details, detail)
	}

	return details, nil
}

func (s *orderService) ListOrderItems(ctx context.Context) ([]domain.OrderItem, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find order items", "error", err)
		return nil, err
	}

	return items, nil
}

func (s *orderService) GetOrderItem(ctx context.Context, id uuid.UUID) (domain.OrderItem, error) {
	return s.itemRepo.FindByID(ctx, id)
}
