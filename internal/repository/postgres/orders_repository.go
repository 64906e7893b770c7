package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "context error")
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(order).Error; err != nil {
		return translate(err, "failed to create order", "Order not found", "Order already exists")
	}

	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	var order domain.Order

	err := conn(ctx, r.DB).First(&order, "id = ?", id).Error
	if err != nil {
		return domain.Order{}, translate(err, "failed to find order", "Order not found", "")
	}

	return order, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order

	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders")
	}

	return orders, nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var orders []domain.Order

	err := conn(ctx, r.DB).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user orders")
	}

	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.DB).Model(&domain.Order{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

func (r *OrderRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.DB), &domain.Order{}, "id = ?", id)
}

// SumTotalAmount returns the sum of total_amount over every order, zero when there are none.
func (r *OrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := conn(ctx, r.DB).Model(&domain.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to sum order totals")
	}

	return total, nil
}

// UpdateStatus writes the status pair and the update stamp of order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	order.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.Order{}).Where("id = ?", order.ID).
		Select("order_status", "payment_status", "updated_by", "updated_at").
		Updates(order)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Order not found")
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.Order{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Order not found")
	}

	return nil
}

type OrderItemRepository struct {
	DB *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) *OrderItemRepository {
	return &OrderItemRepository{
		DB: db,
	}
}

func (r *OrderItemRepository) Create(ctx context.Context, item *domain.OrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(item).Error; err != nil {
		return translate(err, "failed to create order item", "Order item not found", "Order item already exists")
	}

	return nil
}

func (r *OrderItemRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.OrderItem, error) {
	var item domain.OrderItem

	err := conn(ctx, r.DB).First(&item, "id = ?", id).Error
	if err != nil {
		return domain.OrderItem{}, translate(err, "failed to find order item", "Order item not found", "")
	}

	return item, nil
}

func (r *OrderItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	if len(ids) == 0 {
		return items, nil
	}

	if err := conn(ctx, r.DB).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find order items")
	}

	return items, nil
}

func (r *OrderItemRepository) FindAll(ctx context.Context) ([]domain.OrderItem, error) {
	var items []domain.OrderItem

	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find order items")
	}

	return items, nil
}

// AssignOrder points every item in ids at orderID. Items already linked to an
// order are left alone and fail the call.
func (r *OrderItemRepository) AssignOrder(ctx context.Context, ids []uuid.UUID, orderID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	result := conn(ctx, r.DB).Model(&domain.OrderItem{}).
		Where("id IN ? AND order_id IS NULL", ids).
		Update("order_id", orderID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to link order items")
	}

	if result.RowsAffected != int64(len(ids)) {
		return domain.ValidationError("Order item already belongs to another order")
	}

	return nil
}

func (r *OrderItemRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := conn(ctx, r.DB).Where("id IN ?", ids).Delete(&domain.OrderItem{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete order items")
	}

	return result.RowsAffected, nil
}
