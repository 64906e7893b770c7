package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentsRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Payment, error)
	FindAll(ctx context.Context) ([]domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePaymentInput struct {
	OrderID       string
	PaymentMethod string
	TransactionID string
	Amount        decimal.Decimal
	PaymentStatus string
	PaymentDate   *time.Time
}

// UpdatePaymentInput holds the fields to merge; nil fields are left unchanged.
type UpdatePaymentInput struct {
	OrderID       *string
	PaymentMethod *string
	TransactionID *string
	Amount        *decimal.Decimal
	PaymentStatus *string
	PaymentDate   *time.Time
}

type PaymentsService struct {
	paymentRepo PaymentsRepository
	resolver    *reference.Resolver
}

func NewPaymentsService(paymentRepo PaymentsRepository, resolver *reference.Resolver) *PaymentsService {
	return &PaymentsService{
		paymentRepo: paymentRepo,
		resolver:    resolver,
	}
}

func parseStatus(raw string) (domain.PaymentStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.PaymentStatusNotPaid, nil
	}

	status, ok := domain.ParsePaymentStatus(raw)
	if !ok {
		return "", domain.ValidationError(fmt.Sprintf("Invalid payment status %q", raw))
	}

	return status, nil
}

func (s *PaymentsService) CreatePayment(ctx context.Context, in CreatePaymentInput) (domain.Payment, error) {
	if strings.TrimSpace(in.TransactionID) == "" {
		return domain.Payment{}, domain.ValidationError("transaction_id is required")
	}

	if in.Amount.IsNegative() {
		return domain.Payment{}, domain.ValidationError("Amount must not be negative")
	}

	orderID, err := reference.ParseID(in.OrderID, "order")
	if err != nil {
		return domain.Payment{}, err
	}

	status, err := parseStatus(in.PaymentStatus)
	if err != nil {
		return domain.Payment{}, err
	}

	if err := s.resolver.Require(ctx, reference.Order, orderID); err != nil {
		return domain.Payment{}, err
	}

	payment := domain.Payment{
		ID:            uuid.New(),
		OrderID:       orderID,
		PaymentMethod: in.PaymentMethod,
		TransactionID: in.TransactionID,
		Amount:        in.Amount,
		PaymentStatus: status,
		PaymentDate:   time.Now(),
	}
	if in.PaymentDate != nil {
		payment.PaymentDate = *in.PaymentDate
	}

	if err := s.paymentRepo.Create(ctx, &payment); err != nil {
		logger.Error("Failed to create payment", "order_id", orderID, "error", err)
		return domain.Payment{}, err
	}

	return payment, nil
}

func (s *PaymentsService) GetAllPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.FindAll(ctx)
}

func (s *PaymentsService) GetPayment(ctx context.Context, id uuid.UUID) (domain.Payment, error) {
	return s.paymentRepo.FindByID(ctx, id)
}

func (s *PaymentsService) UpdatePayment(ctx context.Context, id uuid.UUID, in UpdatePaymentInput) (domain.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}

	if in.OrderID != nil {
		orderID, err := reference.ParseID(*in.OrderID, "order")
		if err != nil {
			return domain.Payment{}, err
		}
		if err := s.resolver.Require(ctx, reference.Order, orderID); err != nil {
			return domain.Payment{}, err
		}
		payment.OrderID = orderID
	}

	if in.TransactionID != nil {
		if strings.TrimSpace(*in.TransactionID) == "" {
			return domain.Payment{}, domain.ValidationError("transaction_id is required")
		}
		payment.TransactionID = *in.TransactionID
	}

	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return domain.Payment{}, domain.ValidationError("Amount must not be negative")
		}
		payment.Amount = *in.Amount
	}

	if in.PaymentStatus != nil {
		if payment.PaymentStatus, err = parseStatus(*in.PaymentStatus); err != nil {
			return domain.Payment{}, err
		}
	}

	if in.PaymentMethod != nil {
		payment.PaymentMethod = *in.PaymentMethod
	}
	if in.PaymentDate != nil {
		payment.PaymentDate = *in.PaymentDate
	}

	if err := s.paymentRepo.Update(ctx, &payment); err != nil {
		logger.Error("Failed to update payment", "payment_id", id, "error", err)
		return domain.Payment{}, err
	}

	return payment, nil
}

func (s *PaymentsService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete payment", "payment_id", id, "error", err)
		return err
	}

	return nil
}
