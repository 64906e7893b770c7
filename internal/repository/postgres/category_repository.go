package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "context error")
	}

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(category).Error; err != nil {
		return translate(err, "failed to create category", "Category not found", "Category name already exists")
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	var category domain.Category

	err := conn(ctx, r.DB).Where("id = ?", id).First(&category).Error
	if err != nil {
		return domain.Category{}, translate(err, "failed to find category", "Category not found", "")
	}

	return category, nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Category, error) {
	var categories []domain.Category
	if len(ids) == 0 {
		return categories, nil
	}

	if err := conn(ctx, r.DB).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find categories")
	}

	return categories, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category

	if err := conn(ctx, r.DB).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find categories")
	}

	return categories, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.DB), &domain.Category{}, "id = ?", id)
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	category.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.Category{}).Where("id = ?", category.ID).
		Select("name", "description", "parent_category_id", "updated_by", "updated_at").
		Updates(category)
	if result.Error != nil {
		return translate(result.Error, "failed to update category", "Category not found", "Category name already exists")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Category not found")
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.Category{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete category")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Category not found")
	}

	return nil
}
