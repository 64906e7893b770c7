package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    *uuid.UUID      `gorm:"column:order_id;type:uuid;index" json:"order_id"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity   int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2)" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(14,2)" json:"total_price"`
	CreatedBy  string          `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"column:user_id;type:uuid;index;not null" json:"user_id"`
	OrderItemIDs    pq.StringArray  `gorm:"column:order_item;type:text[]" json:"order_item"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2)" json:"total_amount"`
	OrderStatus     OrderStatus     `gorm:"column:order_status;default:Pending" json:"order_status"`
	PaymentStatus   PaymentStatus   `gorm:"column:payment_status;default:Not Paid" json:"payment_status"`
	ShippingAddress string          `gorm:"column:shipping_address" json:"shipping_address,omitempty"`
	CreatedBy       string          `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedBy       string          `gorm:"column:updated_by" json:"updated_by,omitempty"`
	UpdatedAt       time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// ItemIDs returns the order item references in their stored order. Entries that
// are not UUIDs are skipped.
func (o Order) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.OrderItemIDs))
	for _, raw := range o.OrderItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids
}

// OrderDetail is an order joined with its items and owner.
type OrderDetail struct {
	Order
	Items []OrderItem `json:"items"`
	User  *User       `json:"user"`
}
