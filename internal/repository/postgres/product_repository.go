package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "context error")
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(product).Error; err != nil {
		return translate(err, "failed to create product", "Product not found", "Product already exists")
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	var product domain.Product

	err := conn(ctx, r.DB).First(&product, "id = ?", id).Error
	if err != nil {
		return domain.Product{}, translate(err, "failed to find product", "Product not found", "")
	}

	return product, nil
}

func (r *ProductRepository) filtered(ctx context.Context, filter domain.ProductFilter) *gorm.DB {
	q := conn(ctx, r.DB).Model(&domain.Product{})
	if len(filter.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}

	return q
}

func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var products []domain.Product

	q := r.filtered(ctx, filter).Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if err := q.Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products")
	}

	return products, nil
}

func (r *ProductRepository) FindSummaries(ctx context.Context) ([]domain.ProductSummary, error) {
	var summaries []domain.ProductSummary

	err := conn(ctx, r.DB).Model(&domain.Product{}).
		Select("id", "name", "description", "brand", "price", "stock_quantity", "is_featured").
		Order("created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product summaries")
	}

	return summaries, nil
}

func (r *ProductRepository) Count(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

func (r *ProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.DB), &domain.Product{}, "id = ?", id)
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.Product{}).Where("id = ?", product.ID).
		Select("name", "description", "price", "stock_quantity", "brand", "is_featured",
			"category_id", "product_image_id", "product_video_id", "weight", "shipping_class",
			"meta_title", "meta_description", "seo_url", "updated_by", "updated_at").
		Updates(product)
	if result.Error != nil {
		return translate(result.Error, "failed to update product", "Product not found", "Product already exists")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Product not found")
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.Product{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Product not found")
	}

	return nil
}
