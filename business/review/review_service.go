package review

import (
	"context"
	"strings"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
)

// ReviewRepository contract interface
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Review, error)
	FindAll(ctx context.Context, productID *uuid.UUID) ([]domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateReviewInput struct {
	UserID     string
	ProductID  string
	Rating     int
	ReviewText string
}

// UpdateReviewInput holds the fields to merge; nil fields are left unchanged.
type UpdateReviewInput struct {
	UserID     *string
	ProductID  *string
	Rating     *int
	ReviewText *string
}

const maxRating = 5

type reviewService struct {
	reviewRepo ReviewRepository
	resolver   *reference.Resolver
}

func NewReviewService(reviewRepo ReviewRepository, resolver *reference.Resolver) *reviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		resolver:   resolver,
	}
}

func validRating(rating int) error {
	if rating < 0 || rating > maxRating {
		return domain.ValidationError("Rating must be between 0 and 5")
	}

	return nil
}

// ListReviews lists reviews, only those of one product when productID is not empty.
func (s *reviewService) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	id, err := reference.ParseOptionalID(productID, "product")
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindAll(ctx, id)
	if err != nil {
		logger.Error("Failed to find reviews", "error", err)
		return nil, err
	}

	return reviews, nil
}

func (s *reviewService) CreateReview(ctx context.Context, in CreateReviewInput) (domain.Review, error) {
	if strings.TrimSpace(in.ReviewText) == "" {
		return domain.Review{}, domain.ValidationError("review_text is required")
	}

	if err := validRating(in.Rating); err != nil {
		return domain.Review{}, err
	}

	userID, err := reference.ParseID(in.UserID, "user")
	if err != nil {
		return domain.Review{}, err
	}

	productID, err := reference.ParseID(in.ProductID, "product")
	if err != nil {
		return domain.Review{}, err
	}

	if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
		return domain.Review{}, err
	}

	if err := s.resolver.Require(ctx, reference.Product, productID); err != nil {
		return domain.Review{}, err
	}

	review := domain.Review{
		ID:         uuid.New(),
		UserID:     userID,
		ProductID:  productID,
		Rating:     in.Rating,
		ReviewText: in.ReviewText,
	}

	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		logger.Error("Failed to create review", "product_id", productID, "error", err)
		return domain.Review{}, err
	}

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id uuid.UUID, in UpdateReviewInput) (domain.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}

	if in.UserID != nil {
		userID, err := reference.ParseID(*in.UserID, "user")
		if err != nil {
			return domain.Review{}, err
		}
		if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
			return domain.Review{}, err
		}
		review.UserID = userID
	}

	if in.ProductID != nil {
		productID, err := reference.ParseID(*in.ProductID, "product")
		if err != nil {
			return domain.Review{}, err
		}
		if err := s.resolver.Require(ctx, reference.Product, productID); err != nil {
			return domain.Review{}, err
		}
		review.ProductID = productID
	}

	if in.Rating != nil {
		if err := validRating(*in.Rating); err != nil {
			return domain.Review{}, err
		}
		review.Rating = *in.Rating
	}

	if in.ReviewText != nil {
		if strings.TrimSpace(*in.ReviewText) == "" {
			return domain.Review{}, domain.ValidationError("review_text is required")
		}
		review.ReviewText = *in.ReviewText
	}

	if err := s.reviewRepo.Update(ctx, &review); err != nil {
		logger.Error("Failed to update review", "review_id", id, "error", err)
		return domain.Review{}, err
	}

	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.reviewRepo.Delete(ctx, id)
}
