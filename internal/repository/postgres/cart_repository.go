package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

func (r *CartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(cart).Error; err != nil {
		return translate(err, "failed to create cart", "Cart not found", "Cart already exists")
	}

	return nil
}

func (r *CartRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Cart, error) {
	var cart domain.Cart

	err := conn(ctx, r.DB).First(&cart, "id = ?", id).Error
	if err != nil {
		return domain.Cart{}, translate(err, "failed to find cart", "Cart not found", "")
	}

	return cart, nil
}

func (r *CartRepository) FindAll(ctx context.Context) ([]domain.Cart, error) {
	var carts []domain.Cart

	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&carts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find carts")
	}

	return carts, nil
}

func (r *CartRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.DB), &domain.Cart{}, "id = ?", id)
}

func (r *CartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.Cart{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete cart")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Cart not found")
	}

	return nil
}

type CartItemRepository struct {
	DB *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) *CartItemRepository {
	return &CartItemRepository{
		DB: db,
	}
}

func (r *CartItemRepository) Create(ctx context.Context, item *domain.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(item).Error; err != nil {
		return translate(err, "failed to create cart item", "Cart item not found", "Cart item already exists")
	}

	return nil
}

func (r *CartItemRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.CartItem, error) {
	var item domain.CartItem

	err := conn(ctx, r.DB).First(&item, "id = ?", id).Error
	if err != nil {
		return domain.CartItem{}, translate(err, "failed to find cart item", "Cart item not found", "")
	}

	return item, nil
}

func (r *CartItemRepository) FindAll(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem

	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cart items")
	}

	return items, nil
}

func (r *CartItemRepository) FindByCart(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	var items []domain.CartItem

	err := conn(ctx, r.DB).Where("cart_id = ?", cartID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart items")
	}

	return items, nil
}

func (r *CartItemRepository) Update(ctx context.Context, item *domain.CartItem) error {
	item.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.CartItem{}).Where("id = ?", item.ID).
		Select("quantity", "updated_by", "updated_at").
		Updates(item)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cart item")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Cart item not found")
	}

	return nil
}

func (r *CartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete cart item")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Cart item not found")
	}

	return nil
}

func (r *CartItemRepository) DeleteByCart(ctx context.Context, cartID uuid.UUID) error {
	if err := conn(ctx, r.DB).Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart items")
	}

	return nil
}
