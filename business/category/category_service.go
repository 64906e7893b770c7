package category

import (
	"context"
	"strings"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateCategoryInput struct {
	Name             string
	Description      string
	ParentCategoryID string
	CreatedBy        string
}

// UpdateCategoryInput holds the fields to merge; nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name             *string
	Description      *string
	ParentCategoryID *string
	UpdatedBy        string
}

type categoryService struct {
	categoryRepo CategoryRepository
	resolver     *reference.Resolver
}

func NewCategoryService(categoryRepo CategoryRepository, resolver *reference.Resolver) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		resolver:     resolver,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories", "error", err)
		return nil, errors.Wrap(err, "context error")
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", "error", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Warn("Failed to find category", "category_id", id, "error", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, errors.Wrap(err, "context error")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Category{}, domain.ValidationError("Category name is required")
	}

	if in.CreatedBy == "" {
		return domain.Category{}, domain.ValidationError("created_by is required")
	}

	parentID, err := reference.ParseOptionalID(in.ParentCategoryID, "parent category")
	if err != nil {
		return domain.Category{}, err
	}

	if err := s.resolver.RequireOptional(ctx, reference.Category, parentID); err != nil {
		return domain.Category{}, err
	}

	category := domain.Category{
		ID:               uuid.New(),
		Name:             name,
		Description:      in.Description,
		ParentCategoryID: parentID,
		CreatedBy:        in.CreatedBy,
		UpdatedBy:        in.CreatedBy,
	}

	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		logger.Error("failed to create new category", "name", name, "error", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.Category{}, domain.ValidationError("Category name is required")
		}
		category.Name = name
	}

	if in.Description != nil {
		category.Description = *in.Description
	}

	if in.ParentCategoryID != nil {
		parentID, err := reference.ParseOptionalID(*in.ParentCategoryID, "parent category")
		if err != nil {
			return domain.Category{}, err
		}

		if parentID != nil && *parentID == id {
			return domain.Category{}, domain.ValidationError("Category cannot be its own parent")
		}

		if err := s.resolver.RequireOptional(ctx, reference.Category, parentID); err != nil {
			return domain.Category{}, err
		}
		category.ParentCategoryID = parentID
	}

	category.UpdatedBy = in.UpdatedBy
	if err := s.categoryRepo.Update(ctx, &category); err != nil {
		logger.Error("Failed to update category", "category_id", id, "error", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete category", "category_id", id, "error", err)
		return err
	}

	return nil
}
