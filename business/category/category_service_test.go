package category

import (
	"context"
	"testing"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]domain.Category
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return domain.ConflictError("Category name already exists")
		}
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return domain.Category{}, domain.NotFoundError("Category not found")
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return domain.NotFoundError("Category not found")
	}
	delete(r.categories, id)
	return nil
}

func newService() (*categoryService, *fakeCategoryRepo) {
	repo := &fakeCategoryRepo{categories: map[uuid.UUID]domain.Category{}}
	resolver := reference.NewResolver().Register(reference.Category, reference.CheckerFunc(
		func(_ context.Context, id uuid.UUID) (bool, error) {
			_, ok := repo.categories[id]
			return ok, nil
		}))
	return NewCategoryService(repo, resolver), repo
}

func TestCreateCategory(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	root, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Electronics", CreatedBy: "admin"})
	require.NoError(t, err)

	child, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Phones", ParentCategoryID: root.ID.String(), CreatedBy: "admin"})
	require.NoError(t, err)
	require.NotNil(t, child.ParentCategoryID)
	assert.Equal(t, root.ID, *child.ParentCategoryID)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: "Orphans", ParentCategoryID: uuid.NewString(), CreatedBy: "admin"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: "Bad", ParentCategoryID: "123", CreatedBy: "admin"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: "  ", CreatedBy: "admin"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: "Electronics", CreatedBy: "admin"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Len(t, repo.categories, 2)
}

func TestUpdateCategory(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	c, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Books", CreatedBy: "admin"})
	require.NoError(t, err)

	self := c.ID.String()
	_, err = svc.UpdateCategory(ctx, c.ID, UpdateCategoryInput{ParentCategoryID: &self})
	assert.ErrorIs(t, err, domain.ErrValidation)

	missing := uuid.NewString()
	_, err = svc.UpdateCategory(ctx, c.ID, UpdateCategoryInput{ParentCategoryID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	desc := "Paper and ebooks"
	updated, err := svc.UpdateCategory(ctx, c.ID, UpdateCategoryInput{Description: &desc, UpdatedBy: "editor"})
	require.NoError(t, err)
	assert.Equal(t, "Books", updated.Name)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, "editor", updated.UpdatedBy)

	_, err = svc.UpdateCategory(ctx, uuid.New(), UpdateCategoryInput{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteCategory(ctx, c.ID))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, c.ID), domain.ErrNotFound)
}
