package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceBackend/business/payments"
	"ecommerceBackend/domain"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentsService interface {
	CreatePayment(ctx context.Context, in payments.CreatePaymentInput) (domain.Payment, error)
	GetAllPayments(ctx context.Context) ([]domain.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (domain.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, in payments.UpdatePaymentInput) (domain.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

type PaymentsHandler struct {
	paymentsService PaymentsService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewPaymentsHandler(paymentsService PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{
		paymentsService: paymentsService,
		validator:       newValidator(),
		timeout:         10 * time.Second,
	}
}

type CreatePaymentRequest struct {
	OrderID       string          `json:"order_id" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	TransactionID string          `json:"transaction_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus string          `json:"payment_status"`
	PaymentDate   *time.Time      `json:"payment_date"`
}

type UpdatePaymentRequest struct {
	OrderID       *string          `json:"order_id"`
	PaymentMethod *string          `json:"payment_method"`
	TransactionID *string          `json:"transaction_id"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentStatus *string          `json:"payment_status"`
	PaymentDate   *time.Time       `json:"payment_date"`
}

func (h *PaymentsHandler) CreatePayment(c echo.Context) error {
	var req CreatePaymentRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payment, err := h.paymentsService.CreatePayment(ctx, payments.CreatePaymentInput{
		OrderID:       req.OrderID,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		PaymentStatus: req.PaymentStatus,
		PaymentDate:   req.PaymentDate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(payment))
}

func (h *PaymentsHandler) GetAllPayments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	list, err := h.paymentsService.GetAllPayments(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(list, int64(len(list))))
}

func (h *PaymentsHandler) GetPaymentByID(c echo.Context) error {
	paymentID, err := pathID(c, "id", "payment")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payment, err := h.paymentsService.GetPayment(ctx, paymentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(payment))
}

func (h *PaymentsHandler) UpdatePayment(c echo.Context) error {
	paymentID, err := pathID(c, "id", "payment")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdatePaymentRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payment, err := h.paymentsService.UpdatePayment(ctx, paymentID, payments.UpdatePaymentInput{
		OrderID:       req.OrderID,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		PaymentStatus: req.PaymentStatus,
		PaymentDate:   req.PaymentDate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(payment))
}

func (h *PaymentsHandler) DeletePayment(c echo.Context) error {
	paymentID, err := pathID(c, "id", "payment")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.paymentsService.DeletePayment(ctx, paymentID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.SuccessWithMessage("Payment deleted successfully", nil))
}
