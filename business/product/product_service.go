package product

import (
	"context"
	"strings"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindSummaries(ctx context.Context) ([]domain.ProductSummary, error)
	Count(ctx context.Context, filter domain.ProductFilter) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Category, error)
}

// MediaRepository contract interface
type MediaRepository interface {
	CreateImage(ctx context.Context, image *domain.ProductImage) error
	FindImages(ctx context.Context) ([]domain.ProductImage, error)
	FindImagesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ProductImage, error)
	CreateVideo(ctx context.Context, video *domain.ProductVideo) error
	FindVideos(ctx context.Context) ([]domain.ProductVideo, error)
	FindVideosByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ProductVideo, error)
}

type CreateProductInput struct {
	Name            string
	Description     string
	Price           decimal.Decimal
	StockQuantity   int
	Brand           string
	IsFeatured      bool
	CategoryID      string
	ProductImageID  string
	ProductVideoID  string
	Weight          float64
	ShippingClass   string
	MetaTitle       string
	MetaDescription string
	SeoURL          string
	CreatedBy       string
}

// UpdateProductInput holds the fields to merge; nil fields are left unchanged.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	Price           *decimal.Decimal
	StockQuantity   *int
	Brand           *string
	IsFeatured      *bool
	CategoryID      *string
	ProductImageID  *string
	ProductVideoID  *string
	Weight          *float64
	ShippingClass   *string
	MetaTitle       *string
	MetaDescription *string
	SeoURL          *string
	UpdatedBy       string
}

// priceScale matches the numeric(14,2) price column.
const priceScale = 2

type productService struct {
	productRepo  ProductRepository
	categoryRepo CategoryReader
	mediaRepo    MediaRepository
	resolver     *reference.Resolver
	tx           domain.Transactor
}

func NewProductService(
	productRepo ProductRepository,
	categoryRepo CategoryReader,
	mediaRepo MediaRepository,
	resolver *reference.Resolver,
	tx domain.Transactor,
) *productService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mediaRepo:    mediaRepo,
		resolver:     resolver,
		tx:           tx,
	}
}

// ListProducts returns products newest first, restricted to the given category
// ids when any are passed.
func (s *productService) ListProducts(ctx context.Context, categoryIDs []string) ([]domain.ProductDetail, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "context error")
	}

	ids, err := reference.ParseIDs(categoryIDs, "category")
	if err != nil {
		return nil, 0, err
	}

	filter := domain.ProductFilter{CategoryIDs: ids}
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to find all products", "error", err)
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		logger.Error("Failed to count products", "error", err)
		return nil, 0, err
	}

	details, err := s.details(ctx, products)
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

// FeaturedProducts returns up to count featured products and the number of
// featured products overall. A count of zero means no limit.
func (s *productService) FeaturedProducts(ctx context.Context, count int) ([]domain.ProductDetail, int64, error) {
	if count < 0 {
		return nil, 0, domain.ValidationError("Count must not be negative")
	}

	products, err := s.productRepo.FindAll(ctx, domain.ProductFilter{FeaturedOnly: true, Limit: count})
	if err != nil {
		logger.Error("Failed to find featured products", "error", err)
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domain.ProductFilter{FeaturedOnly: true})
	if err != nil {
		return nil, 0, err
	}

	details, err := s.details(ctx, products)
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

func (s *productService) SelectedProperties(ctx context.Context) ([]domain.ProductSummary, int64, error) {
	summaries, err := s.productRepo.FindSummaries(ctx)
	if err != nil {
		logger.Error("Failed to find product summaries", "error", err)
		return nil, 0, err
	}

	return summaries, int64(len(summaries)), nil
}

func (s *productService) CountProducts(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx, domain.ProductFilter{})
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (domain.ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return domain.ProductDetail{}, err
	}

	details, err := s.details(ctx, []domain.Product{product})
	if err != nil {
		return domain.ProductDetail{}, err
	}

	return details[0], nil
}

func (s *productService) details(ctx context.Context, products []domain.Product) ([]domain.ProductDetail, error) {
	var categoryIDs, imageIDs, videoIDs []uuid.UUID
	for _, p := range products {
		categoryIDs = append(categoryIDs, p.CategoryID)
		if p.ProductImageID != nil {
			imageIDs = append(imageIDs, *p.ProductImageID)
		}
		if p.ProductVideoID != nil {
			videoIDs = append(videoIDs, *p.ProductVideoID)
		}
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	images, err := s.mediaRepo.FindImagesByIDs(ctx, imageIDs)
	if err != nil {
		return nil, err
	}
	videos, err := s.mediaRepo.FindVideosByIDs(ctx, videoIDs)
	if err != nil {
		return nil, err
	}

	categoryByID := make(map[uuid.UUID]domain.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}
	imageByID := make(map[uuid.UUID]domain.ProductImage, len(images))
	for _, i := range images {
		imageByID[i.ID] = i
	}
	videoByID := make(map[uuid.UUID]domain.ProductVideo, len(videos))
	for _, v := range videos {
		videoByID[v.ID] = v
	}

	details := make([]domain.ProductDetail, 0, len(products))
	for _, p := range products {
		detail := domain.ProductDetail{Product: p}
		if c, ok := categoryByID[p.CategoryID]; ok {
			detail.Category = &c
		}
		if p.ProductImageID != nil {
			if i, ok := imageByID[*p.ProductImageID]; ok {
				detail.Image = &i
			}
		}
		if p.ProductVideoID != nil {
			if v, ok := videoByID[*p.ProductVideoID]; ok {
				detail.Video = &v
			}
		}
		details = append(details, detail)
	}

	return details, nil
}

func (s *productService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, errors.Wrap(err, "context error")
	}

	switch {
	case strings.TrimSpace(in.Name) == "",
		strings.TrimSpace(in.Description) == "",
		strings.TrimSpace(in.Brand) == "",
		in.CreatedBy == "":
		return domain.Product{}, domain.ValidationError("name, description, brand and created_by are required")
	case in.Price.IsNegative():
		return domain.Product{}, domain.ValidationError("Price must not be negative")
	case in.StockQuantity < 0:
		return domain.Product{}, domain.ValidationError("Stock quantity must not be negative")
	}

	categoryID, err := reference.ParseID(in.CategoryID, "category")
	if err != nil {
		return domain.Product{}, err
	}

	imageID, err := reference.ParseOptionalID(in.ProductImageID, "product image")
	if err != nil {
		return domain.Product{}, err
	}

	videoID, err := reference.ParseOptionalID(in.ProductVideoID, "product video")
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.resolver.Require(ctx, reference.Category, categoryID); err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           in.Price.Round(priceScale),
		StockQuantity:   in.StockQuantity,
		Brand:           in.Brand,
		IsFeatured:      in.IsFeatured,
		CategoryID:      categoryID,
		ProductImageID:  imageID,
		ProductVideoID:  videoID,
		Weight:          in.Weight,
		ShippingClass:   in.ShippingClass,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		SeoURL:          in.SeoURL,
		CreatedBy:       in.CreatedBy,
		UpdatedBy:       in.CreatedBy,
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		logger.Error("Failed to create product", "name", product.Name, "error", err)
		return domain.Product{}, err
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if in.Price != nil {
		if in.Price.IsNegative() {
			return domain.Product{}, domain.ValidationError("Price must not be negative")
		}
		product.Price = in.Price.Round(priceScale)
	}

	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return domain.Product{}, domain.ValidationError("Stock quantity must not be negative")
		}
		product.StockQuantity = *in.StockQuantity
	}

	if in.CategoryID != nil {
		categoryID, err := reference.ParseID(*in.CategoryID, "category")
		if err != nil {
			return domain.Product{}, err
		}
		if err := s.resolver.Require(ctx, reference.Category, categoryID); err != nil {
			return domain.Product{}, err
		}
		product.CategoryID = categoryID
	}

	if in.ProductImageID != nil {
		if product.ProductImageID, err = reference.ParseOptionalID(*in.ProductImageID, "product image"); err != nil {
			return domain.Product{}, err
		}
	}

	if in.ProductVideoID != nil {
		if product.ProductVideoID, err = reference.ParseOptionalID(*in.ProductVideoID, "product video"); err != nil {
			return domain.Product{}, err
		}
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return domain.Product{}, domain.ValidationError("Product name is required")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}

	setString(&product.Description, in.Description)
	setString(&product.Brand, in.Brand)
	setString(&product.ShippingClass, in.ShippingClass)
	setString(&product.MetaTitle, in.MetaTitle)
	setString(&product.MetaDescription, in.MetaDescription)
	setString(&product.SeoURL, in.SeoURL)
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if in.Weight != nil {
		product.Weight = *in.Weight
	}

	product.UpdatedBy = in.UpdatedBy
	if err := s.productRepo.Update(ctx, &product); err != nil {
		logger.Error("Failed to update product", "product_id", id, "error", err)
		return domain.Product{}, err
	}

	return product, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete product", "product_id", id, "error", err)
		return err
	}

	return nil
}
