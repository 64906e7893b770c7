package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(review).Error; err != nil {
		return translate(err, "failed to create review", "Review not found", "Review already exists")
	}

	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	var review domain.Review

	err := conn(ctx, r.DB).First(&review, "id = ?", id).Error
	if err != nil {
		return domain.Review{}, translate(err, "failed to find review", "Review not found", "")
	}

	return review, nil
}

// FindAll lists reviews, restricted to one product when productID is set.
func (r *ReviewRepository) FindAll(ctx context.Context, productID *uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review

	q := conn(ctx, r.DB).Order("created_at DESC")
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}

	if err := q.Find(&reviews).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find reviews")
	}

	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	review.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.Review{}).Where("id = ?", review.ID).
		Select("user_id", "product_id", "rating", "review_text", "updated_at").
		Updates(review)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update review")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Review not found")
	}

	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.Review{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Review not found")
	}

	return nil
}
