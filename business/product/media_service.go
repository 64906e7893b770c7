package product

import (
	"context"
	"strings"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
)

type MediaInput struct {
	ProductID string
	URL       string
	IsPrimary bool
	CreatedBy string
}

func (s *productService) ListImages(ctx context.Context) ([]domain.ProductImage, error) {
	return s.mediaRepo.FindImages(ctx)
}

func (s *productService) ListVideos(ctx context.Context) ([]domain.ProductVideo, error) {
	return s.mediaRepo.FindVideos(ctx)
}

func (s *productService) validateMedia(in MediaInput) (uuid.UUID, error) {
	if strings.TrimSpace(in.URL) == "" || in.CreatedBy == "" {
		return uuid.Nil, domain.ValidationError("product_id, url and created_by are required")
	}

	return reference.ParseID(in.ProductID, "product")
}

// CreateImage stores an image of a product. A primary image also becomes the
// product's displayed image.
func (s *productService) CreateImage(ctx context.Context, in MediaInput) (domain.ProductImage, error) {
	productID, err := s.validateMedia(in)
	if err != nil {
		return domain.ProductImage{}, err
	}

	image := domain.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
		ImageURL:  strings.TrimSpace(in.URL),
		IsPrimary: in.IsPrimary,
		CreatedBy: in.CreatedBy,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := s.mediaRepo.CreateImage(ctx, &image); err != nil {
			return err
		}

		if !image.IsPrimary {
			return nil
		}

		product.ProductImageID = &image.ID
		product.UpdatedBy = in.CreatedBy
		return s.productRepo.Update(ctx, &product)
	})
	if err != nil {
		logger.Error("Failed to create product image", "product_id", in.ProductID, "error", err)
		return domain.ProductImage{}, err
	}

	return image, nil
}

// CreateVideo stores a video of a product. A primary video also becomes the
// product's displayed video.
func (s *productService) CreateVideo(ctx context.Context, in MediaInput) (domain.ProductVideo, error) {
	productID, err := s.validateMedia(in)
	if err != nil {
		return domain.ProductVideo{}, err
	}

	video := domain.ProductVideo{
		ID:        uuid.New(),
		ProductID: productID,
		VideoURL:  strings.TrimSpace(in.URL),
		IsPrimary: in.IsPrimary,
		CreatedBy: in.CreatedBy,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := s.mediaRepo.CreateVideo(ctx, &video); err != nil {
			return err
		}

		if !video.IsPrimary {
			return nil
		}

		product.ProductVideoID = &video.ID
		product.UpdatedBy = in.CreatedBy
		return s.productRepo.Update(ctx, &product)
	})
	if err != nil {
		logger.Error("Failed to create product video", "product_id", in.ProductID, "error", err)
		return domain.ProductVideo{}, err
	}

	return video, nil
}
