package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceBackend/business/review"
	"ecommerceBackend/domain"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ReviewService interface {
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, in review.CreateReviewInput) (domain.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, in review.UpdateReviewInput) (domain.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     newValidator(),
		timeout:       10 * time.Second,
	}
}

type CreateReviewRequest struct {
	UserID     string `json:"user_id"`
	ProductID  string `json:"product_id" validate:"required"`
	Rating     int    `json:"rating" validate:"gte=0,lte=5"`
	ReviewText string `json:"review_text" validate:"required"`
}

type UpdateReviewRequest struct {
	UserID     *string `json:"user_id"`
	ProductID  *string `json:"product_id"`
	Rating     *int    `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewText *string `json:"review_text"`
}

// GetAllReviews lists reviews, narrowed by ?product_id= when given.
func (h *ReviewHandler) GetAllReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListReviews(ctx, c.QueryParam("product_id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(reviews, int64(len(reviews))))
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req CreateReviewRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.reviewService.CreateReview(ctx, review.CreateReviewInput{
		UserID:     actor(c, req.UserID),
		ProductID:  req.ProductID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(created))
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	reviewID, err := pathID(c, "id", "review")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateReviewRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.reviewService.UpdateReview(ctx, reviewID, review.UpdateReviewInput{
		UserID:     req.UserID,
		ProductID:  req.ProductID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(updated))
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	reviewID, err := pathID(c, "id", "review")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.reviewService.DeleteReview(ctx, reviewID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Review deleted successfully", nil))
}
