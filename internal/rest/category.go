package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceBackend/business/category"
	"ecommerceBackend/domain"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (domain.Category, error)
	CreateCategory(ctx context.Context, in category.CreateCategoryInput) (domain.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, in category.UpdateCategoryInput) (domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type CategoryHandler struct {
	categoryService CategoryService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       newValidator(),
		timeout:         10 * time.Second,
	}
}

type CreateCategoryRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	ParentCategoryID string `json:"parent_category_id"`
	CreatedBy        string `json:"created_by"`
}

type UpdateCategoryRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=1"`
	Description      *string `json:"description"`
	ParentCategoryID *string `json:"parent_category_id"`
	UpdatedBy        string  `json:"updated_by"`
}

func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(categories, int64(len(categories))))
}

func (h *CategoryHandler) GetCategoryByID(c echo.Context) error {
	categoryID, err := pathID(c, "id", "category")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.categoryService.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(found))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.categoryService.CreateCategory(ctx, category.CreateCategoryInput{
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
		CreatedBy:        actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(created))
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	categoryID, err := pathID(c, "id", "category")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateCategoryRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.categoryService.UpdateCategory(ctx, categoryID, category.UpdateCategoryInput{
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
		UpdatedBy:        actor(c, req.UpdatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(updated))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := pathID(c, "id", "category")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.DeleteCategory(ctx, categoryID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Category deleted successfully", nil))
}
