package cart

import (
	"context"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
)

// CartRepository contract interface
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Cart, error)
	FindAll(ctx context.Context) ([]domain.Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartItemRepository contract interface
type CartItemRepository interface {
	Create(ctx context.Context, item *domain.CartItem) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.CartItem, error)
	FindAll(ctx context.Context) ([]domain.CartItem, error)
	FindByCart(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
	Update(ctx context.Context, item *domain.CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCart(ctx context.Context, cartID uuid.UUID) error
}

type CreateCartInput struct {
	UserID    string
	CreatedBy string
}

type CreateCartItemInput struct {
	CartID    string
	ProductID string
	Quantity  int
	CreatedBy string
}

type cartService struct {
	cartRepo CartRepository
	itemRepo CartItemRepository
	resolver *reference.Resolver
	tx       domain.Transactor
}

func NewCartService(cartRepo CartRepository, itemRepo CartItemRepository, resolver *reference.Resolver, tx domain.Transactor) *cartService {
	return &cartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		resolver: resolver,
		tx:       tx,
	}
}

func (s *cartService) ListCarts(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.cartRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find carts", "error", err)
		return nil, err
	}

	return carts, nil
}

func (s *cartService) GetCart(ctx context.Context, id uuid.UUID) (domain.CartDetail, error) {
	cart, err := s.cartRepo.FindByID(ctx, id)
	if err != nil {
		return domain.CartDetail{}, err
	}

	items, err := s.itemRepo.FindByCart(ctx, id)
	if err != nil {
		logger.Error("Failed to find cart items", "cart_id", id, "error", err)
		return domain.CartDetail{}, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	return domain.CartDetail{Cart: cart, Items: items}, nil
}

func (s *cartService) CreateCart(ctx context.Context, in CreateCartInput) (domain.Cart, error) {
	userID, err := reference.ParseID(in.UserID, "user")
	if err != nil {
		return domain.Cart{}, err
	}

	if in.CreatedBy == "" {
		return domain.Cart{}, domain.ValidationError("created_by is required")
	}

	if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
		return domain.Cart{}, err
	}

	cart := domain.Cart{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedBy: in.CreatedBy,
	}

	if err := s.cartRepo.Create(ctx, &cart); err != nil {
		logger.Error("Failed to create cart", "user_id", userID, "error", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

// DeleteCart removes the cart together with its items.
func (s *cartService) DeleteCart(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.cartRepo.FindByID(ctx, id); err != nil {
			return err
		}

		if err := s.itemRepo.DeleteByCart(ctx, id); err != nil {
			return err
		}

		return s.cartRepo.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("Failed to delete cart", "cart_id", id, "error", err)
		return err
	}

	return nil
}

func (s *cartService) ListCartItems(ctx context.Context) ([]domain.CartItem, error) {
	return s.itemRepo.FindAll(ctx)
}

func (s *cartService) CreateCartItem(ctx context.Context, in CreateCartItemInput) (domain.CartItem, error) {
	if in.Quantity <= 0 {
		return domain.CartItem{}, domain.ValidationError("Quantity must be greater than zero")
	}

	if in.CreatedBy == "" {
		return domain.CartItem{}, domain.ValidationError("created_by is required")
	}

	cartID, err := reference.ParseID(in.CartID, "cart")
	if err != nil {
		return domain.CartItem{}, err
	}

	productID, err := reference.ParseID(in.ProductID, "product")
	if err != nil {
		return domain.CartItem{}, err
	}

	if err := s.resolver.Require(ctx, reference.Cart, cartID); err != nil {
		return domain.CartItem{}, err
	}

	if err := s.resolver.Require(ctx, reference.Product, productID); err != nil {
		return domain.CartItem{}, err
	}

	item := domain.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  in.Quantity,
		CreatedBy: in.CreatedBy,
	}

	if err := s.itemRepo.Create(ctx, &item); err != nil {
		logger.Error("Failed to create cart item", "cart_id", cartID, "error", err)
		return domain.CartItem{}, err
	}

	return item, nil
}

func (s *cartService) UpdateCartItem(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) (domain.CartItem, error) {
	if quantity <= 0 {
		return domain.CartItem{}, domain.ValidationError("Quantity must be greater than zero")
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return domain.CartItem{}, err
	}

	item.Quantity = quantity
	item.UpdatedBy = updatedBy
	if err := s.itemRepo.Update(ctx, &item); err != nil {
		logger.Error("Failed to update cart item", "cart_item_id", id, "error", err)
		return domain.CartItem{}, err
	}

	return item, nil
}

func (s *cartService) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}
