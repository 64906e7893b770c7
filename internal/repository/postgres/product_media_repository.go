package postgres

import (
	"context"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProductMediaRepository struct {
	DB *gorm.DB
}

func NewProductMediaRepository(db *gorm.DB) *ProductMediaRepository {
	return &ProductMediaRepository{
		DB: db,
	}
}

func (r *ProductMediaRepository) CreateImage(ctx context.Context, image *domain.ProductImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(image).Error; err != nil {
		return translate(err, "failed to create product image", "Product image not found", "Product image already exists")
	}

	return nil
}

func (r *ProductMediaRepository) FindImages(ctx context.Context) ([]domain.ProductImage, error) {
	var images []domain.ProductImage
	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product images")
	}

	return images, nil
}

func (r *ProductMediaRepository) FindImagesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ProductImage, error) {
	var images []domain.ProductImage
	if len(ids) == 0 {
		return images, nil
	}

	if err := conn(ctx, r.DB).Where("id IN ?", ids).Find(&images).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product images")
	}

	return images, nil
}

func (r *ProductMediaRepository) CreateVideo(ctx context.Context, video *domain.ProductVideo) error {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(video).Error; err != nil {
		return translate(err, "failed to create product video", "Product video not found", "Product video already exists")
	}

	return nil
}

func (r *ProductMediaRepository) FindVideos(ctx context.Context) ([]domain.ProductVideo, error) {
	var videos []domain.ProductVideo
	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product videos")
	}

	return videos, nil
}

func (r *ProductMediaRepository) FindVideosByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ProductVideo, error) {
	var videos []domain.ProductVideo
	if len(ids) == 0 {
		return videos, nil
	}

	if err := conn(ctx, r.DB).Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product videos")
	}

	return videos, nil
}
