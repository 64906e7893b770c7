package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"column:order_id;type:uuid;index;not null" json:"order_id"`
	PaymentMethod string          `gorm:"column:payment_method" json:"payment_method"`
	TransactionID string          `gorm:"column:transaction_id;not null" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2)" json:"amount"`
	PaymentStatus PaymentStatus   `gorm:"column:payment_status" json:"payment_status"`
	PaymentDate   time.Time       `gorm:"column:payment_date" json:"payment_date"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
