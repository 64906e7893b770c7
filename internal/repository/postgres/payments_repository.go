package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{
		DB: db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(payment).Error; err != nil {
		return translate(err, "failed to create payment", "Payment not found", "Payment already exists")
	}

	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Payment, error) {
	var payment domain.Payment

	err := conn(ctx, r.DB).First(&payment, "id = ?", id).Error
	if err != nil {
		return domain.Payment{}, translate(err, "failed to find payment", "Payment not found", "")
	}

	return payment, nil
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment

	if err := conn(ctx, r.DB).Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find payments")
	}

	return payments, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	payment.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.Payment{}).Where("id = ?", payment.ID).
		Select("order_id", "payment_method", "transaction_id", "amount", "payment_status", "payment_date", "updated_at").
		Updates(payment)
	if result.Error != nil {
		return translate(result.Error, "failed to update payment", "Payment not found", "Payment already exists")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Payment not found")
	}

	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.Payment{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete payment")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Payment not found")
	}

	return nil
}
