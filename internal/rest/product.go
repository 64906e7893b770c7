package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecommerceBackend/business/product"
	"ecommerceBackend/domain"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	ListProducts(ctx context.Context, categoryIDs []string) ([]domain.ProductDetail, int64, error)
	FeaturedProducts(ctx context.Context, count int) ([]domain.ProductDetail, int64, error)
	SelectedProperties(ctx context.Context) ([]domain.ProductSummary, int64, error)
	CountProducts(ctx context.Context) (int64, error)
	GetProduct(ctx context.Context, id uuid.UUID) (domain.ProductDetail, error)
	CreateProduct(ctx context.Context, in product.CreateProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in product.UpdateProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListImages(ctx context.Context) ([]domain.ProductImage, error)
	ListVideos(ctx context.Context) ([]domain.ProductVideo, error)
	CreateImage(ctx context.Context, in product.MediaInput) (domain.ProductImage, error)
	CreateVideo(ctx context.Context, in product.MediaInput) (domain.ProductVideo, error)
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      newValidator(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description" validate:"required"`
	Price           decimal.Decimal `json:"price"`
	StockQuantity   int             `json:"stock_quantity" validate:"gte=0"`
	Brand           string          `json:"brand" validate:"required"`
	IsFeatured      bool            `json:"is_featured"`
	CategoryID      string          `json:"category_id" validate:"required"`
	ProductImageID  string          `json:"product_image_id"`
	ProductVideoID  string          `json:"product_video_id"`
	Weight          float64         `json:"weight" validate:"gte=0"`
	ShippingClass   string          `json:"shipping_class"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	SeoURL          string          `json:"seo_url"`
	CreatedBy       string          `json:"created_by"`
}

type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	StockQuantity   *int             `json:"stock_quantity"`
	Brand           *string          `json:"brand"`
	IsFeatured      *bool            `json:"is_featured"`
	CategoryID      *string          `json:"category_id"`
	ProductImageID  *string          `json:"product_image_id"`
	ProductVideoID  *string          `json:"product_video_id"`
	Weight          *float64         `json:"weight"`
	ShippingClass   *string          `json:"shipping_class"`
	MetaTitle       *string          `json:"meta_title"`
	MetaDescription *string          `json:"meta_description"`
	SeoURL          *string          `json:"seo_url"`
	UpdatedBy       string           `json:"updated_by"`
}

type CreateImageRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	ImageURL  string `json:"image_url" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
	CreatedBy string `json:"created_by"`
}

type CreateVideoRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VideoURL  string `json:"video_url" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
	CreatedBy string `json:"created_by"`
}

// GetAllProducts lists products, optionally filtered by ?categories=id1,id2.
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	var categoryIDs []string
	for _, raw := range strings.Split(c.QueryParam("categories"), ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			categoryIDs = append(categoryIDs, raw)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, total, err := h.productService.ListProducts(ctx, categoryIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(products, total))
}

func (h *ProductHandler) GetFeaturedProducts(c echo.Context) error {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		return respondError(c, domain.ValidationError("Invalid count"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, total, err := h.productService.FeaturedProducts(ctx, count)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(products, total))
}

func (h *ProductHandler) GetSelectedProperties(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, total, err := h.productService.SelectedProperties(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(products, total))
}

func (h *ProductHandler) CountProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.productService.CountProducts(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(count))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := pathID(c, "id", "product")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.productService.GetProduct(ctx, productID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(found))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.productService.CreateProduct(ctx, product.CreateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		Brand:           req.Brand,
		IsFeatured:      req.IsFeatured,
		CategoryID:      req.CategoryID,
		ProductImageID:  req.ProductImageID,
		ProductVideoID:  req.ProductVideoID,
		Weight:          req.Weight,
		ShippingClass:   req.ShippingClass,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		SeoURL:          req.SeoURL,
		CreatedBy:       actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(created))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := pathID(c, "id", "product")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateProductRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, productID, product.UpdateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		Brand:           req.Brand,
		IsFeatured:      req.IsFeatured,
		CategoryID:      req.CategoryID,
		ProductImageID:  req.ProductImageID,
		ProductVideoID:  req.ProductVideoID,
		Weight:          req.Weight,
		ShippingClass:   req.ShippingClass,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		SeoURL:          req.SeoURL,
		UpdatedBy:       actor(c, req.UpdatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := pathID(c, "id", "product")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Product deleted successfully", nil))
}

func (h *ProductHandler) GetAllImages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	images, err := h.productService.ListImages(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(images, int64(len(images))))
}

func (h *ProductHandler) CreateImage(c echo.Context) error {
	var req CreateImageRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	image, err := h.productService.CreateImage(ctx, product.MediaInput{
		ProductID: req.ProductID,
		URL:       req.ImageURL,
		IsPrimary: req.IsPrimary,
		CreatedBy: actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(image))
}

func (h *ProductHandler) GetAllVideos(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	videos, err := h.productService.ListVideos(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(videos, int64(len(videos))))
}

func (h *ProductHandler) CreateVideo(c echo.Context) error {
	var req CreateVideoRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	video, err := h.productService.CreateVideo(ctx, product.MediaInput{
		ProductID: req.ProductID,
		URL:       req.VideoURL,
		IsPrimary: req.IsPrimary,
		CreatedBy: actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(video))
}
